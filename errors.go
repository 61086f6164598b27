package lion

import "errors"

// ErrInvalidProcessLabel is returned (wrapped, via a caller such as
// cmd/lionctl's runner) whenever a Continue or Finish call ends in
// StateError: the saved process label did not correspond to any known
// resume point. This can only happen if a caller corrupts the saved
// state; the kernel itself never produces this label internally.
var ErrInvalidProcessLabel = errors.New("lion: invalid process label")

// StateCode is the result of a single Continue or Finish call.
type StateCode uint8

const (
	// StateReady indicates the call completed without needing more input
	// or output room; the caller may invoke Continue/Finish again freely.
	StateReady StateCode = iota
	// StateStallOnInput means the kernel needs more bytes than the input
	// teleport currently has available. State is preserved; refill and
	// call again.
	StateStallOnInput
	// StateStallOnOutput means the output location has too little room
	// for the kernel's minimum lookahead. State is preserved; grow or
	// drain the output and call again.
	StateStallOnOutput
	// StateInfoEfficiencyCheck is an interrupt: the block has reached the
	// preferred efficiency-check signature count. The driver may inspect
	// the ratio so far and decide whether to keep or abandon the block.
	// State remains valid for resumption either way.
	StateInfoEfficiencyCheck
	// StateInfoNewBlock is an interrupt: a block boundary was crossed.
	// The driver may record this for outer framing purposes.
	StateInfoNewBlock
	// StateError is fatal: the saved process label was invalid.
	StateError
)

func (s StateCode) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateStallOnInput:
		return "STALL_ON_INPUT"
	case StateStallOnOutput:
		return "STALL_ON_OUTPUT"
	case StateInfoEfficiencyCheck:
		return "INFO_EFFICIENCY_CHECK"
	case StateInfoNewBlock:
		return "INFO_NEW_BLOCK"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
