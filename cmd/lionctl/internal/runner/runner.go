// Package runner drives a Lion or Mandala kernel to completion against an
// in-memory buffer. It is deliberately not a container format: no header
// or footer framing, just raw concatenated kernel output copied in and
// back out of memory.
package runner

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/flowcodec/lion"
)

// Stats tallies the scheduler interrupts and output regrowths a run
// observed, for the CLI's summary line.
type Stats struct {
	EfficiencyChecks int
	NewBlocks        int
	OutputGrows      int
}

// encoder is the subset of Encoder/MandalaEncoder's method set the runner
// needs. Both concrete types satisfy it without any adapter.
type encoder interface {
	Continue(in lion.Teleport, out *lion.Location, flush bool) lion.StateCode
	Finish(in lion.Teleport, out *lion.Location) lion.StateCode
}

// decoder is the subset of Decoder/MandalaDecoder's method set the runner
// needs.
type decoder interface {
	Continue(in *lion.Location, out lion.Teleport, flush bool) lion.StateCode
	Finish(in *lion.Location, out lion.Teleport) lion.StateCode
}

// Encode drives enc over the whole of input and returns the compressed
// bytes.
func Encode(log zerolog.Logger, enc encoder, input []byte) ([]byte, Stats, error) {
	in := lion.NewSliceTeleport(input)
	out := &lion.Location{Buf: make([]byte, len(input)+64)}
	var stats Stats

	for {
		code := enc.Continue(in, out, false)
		if code == lion.StateStallOnInput {
			break
		}
		if err := observe(log, &stats, out, code); err != nil {
			return nil, stats, err
		}
	}

	for {
		code := enc.Finish(in, out)
		if code == lion.StateReady {
			return out.Buf[:out.Pos], stats, nil
		}
		if err := observe(log, &stats, out, code); err != nil {
			return nil, stats, err
		}
	}
}

// Decode drives dec over the whole of compressed and returns the
// decompressed bytes.
func Decode(log zerolog.Logger, dec decoder, compressed []byte) ([]byte, Stats, error) {
	in := &lion.Location{Buf: compressed}
	out := &growingTeleport{}
	var stats Stats

	for {
		code := dec.Continue(in, out, false)
		if code == lion.StateStallOnInput {
			break
		}
		if err := observeDecode(log, &stats, code); err != nil {
			return nil, stats, err
		}
	}

	for {
		code := dec.Finish(in, out)
		if code == lion.StateReady {
			return out.buf, stats, nil
		}
		if err := observeDecode(log, &stats, code); err != nil {
			return nil, stats, err
		}
	}
}

// observe handles the interrupts and output-room stalls Encode's driving
// loop can see, growing the output location in place on a stall.
func observe(log zerolog.Logger, stats *Stats, out *lion.Location, code lion.StateCode) error {
	switch code {
	case lion.StateStallOnOutput:
		stats.OutputGrows++
		grow(out)
	case lion.StateInfoEfficiencyCheck:
		stats.EfficiencyChecks++
		log.Debug().Int("efficiency_checks", stats.EfficiencyChecks).Msg("efficiency check")
	case lion.StateInfoNewBlock:
		stats.NewBlocks++
		log.Debug().Int("block", stats.NewBlocks).Msg("block boundary")
	case lion.StateError:
		return fmt.Errorf("encode: %w", lion.ErrInvalidProcessLabel)
	default:
		return fmt.Errorf("encode: unexpected state %v", code)
	}
	return nil
}

func observeDecode(log zerolog.Logger, stats *Stats, code lion.StateCode) error {
	switch code {
	case lion.StateInfoEfficiencyCheck:
		stats.EfficiencyChecks++
		log.Debug().Int("efficiency_checks", stats.EfficiencyChecks).Msg("efficiency check")
	case lion.StateInfoNewBlock:
		stats.NewBlocks++
		log.Debug().Int("block", stats.NewBlocks).Msg("block boundary")
	case lion.StateError:
		return fmt.Errorf("decode: %w", lion.ErrInvalidProcessLabel)
	default:
		return fmt.Errorf("decode: unexpected state %v", code)
	}
	return nil
}

// grow doubles out's backing array (plus a fixed pad), preserving every
// byte already written. Continue/Finish never shrink Pos, so the prefix
// up to Pos is always the data to preserve.
func grow(out *lion.Location) {
	buf := make([]byte, len(out.Buf)*2+minimumOutputLookaheadPad)
	copy(buf, out.Buf[:out.Pos])
	out.Buf = buf
}

const minimumOutputLookaheadPad = 64

// growingTeleport is a write-only Teleport backed by a slice that grows on
// demand, standing in for the fixed-size destination a real streaming
// decoder would request from its caller. Read always succeeds: there is
// no upper bound on decompressed output size from the kernel's point of
// view, only from the driver's willingness to keep allocating.
type growingTeleport struct {
	buf []byte
}

func (t *growingTeleport) Read(n int) (lion.Location, bool) {
	start := len(t.buf)
	t.buf = append(t.buf, make([]byte, n)...)
	return lion.Location{Buf: t.buf[start : start+n]}, true
}

func (t *growingTeleport) Available() int { return 1<<31 - 1 }

func (t *growingTeleport) CopyRemaining(out *lion.Location) int { return 0 }
