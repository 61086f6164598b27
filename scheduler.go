package lion

// processLabel is the resumable dispatch point an encoder (or decoder)
// saves across a stall. It replaces a goto-based state machine with an
// explicit enum plus a switch in Continue/Finish.
type processLabel uint8

const (
	labelPrepareNewBlock processLabel = iota
	labelCheckSignatureState
	labelReadChunk
)

const (
	// unitSize is 8 chunks of 4 bytes each, the inner iteration
	// granularity both kernels suspend at (outside Finish's tail drain).
	unitSize = 32

	// preferredEfficiencyCheckSignatures and preferredBlockSignatures are
	// the block-framing cadence: after this many reserved signatures, the
	// scheduler raises an interrupt the outer driver can act on before
	// resuming. These are compiled-in per the wire format, not runtime
	// configuration.
	preferredEfficiencyCheckSignatures = 256
	preferredBlockSignatures           = 1024

	// preferredResetCycle is how many block boundaries pass between
	// dictionary resets when parallel-decompressible mode is enabled.
	preferredResetCycle = 8

	// minimumOutputLookahead is a conservative upper bound on the bytes a
	// single unit (8 chunks) can emit, worst case (every chunk a
	// secondary-access miss falling back to plain bigrams), plus room for
	// the signature word(s) that frame it.
	minimumOutputLookahead = 64
)

// blockState tracks progress within the current block: how many
// signatures have been reserved, whether the efficiency-check interrupt
// already fired this block, and the parallel-decompressible reset
// countdown.
type blockState struct {
	count             int
	efficiencyChecked bool
	resetCycle        int
}

func (b *blockState) reset() {
	b.count = 0
	b.efficiencyChecked = false
}

// prepareNewBlock implements the PREPARE_NEW_BLOCK process label shared by
// Lion and Mandala's encoders. It returns (code, true) when the caller
// must return code immediately (a stall or an interrupt), or
// (StateReady, false) once a fresh signature slot has been reserved and
// the caller should fall through to CHECK_SIGNATURE_STATE.
func prepareNewBlock(out *Location, w *signatureWriter, b *blockState, parallelDecompressible bool, resetDict func()) (StateCode, bool) {
	if out.Available() < minimumOutputLookahead {
		return StateStallOnOutput, true
	}

	switch b.count {
	case preferredEfficiencyCheckSignatures:
		if !b.efficiencyChecked {
			b.efficiencyChecked = true
			return StateInfoEfficiencyCheck, true
		}
	case preferredBlockSignatures:
		b.count = 0
		b.efficiencyChecked = false
		if parallelDecompressible {
			if b.resetCycle > 0 {
				b.resetCycle--
			} else {
				resetDict()
				b.resetCycle = preferredResetCycle - 1
			}
		}
		return StateInfoNewBlock, true
	}

	b.count++
	w.reserve(out)
	return StateReady, false
}

// checkSignatureState implements CHECK_SIGNATURE_STATE: a pure output
// lookahead guard before the scheduler attempts to read another unit.
func checkSignatureState(out *Location) (StateCode, bool) {
	if out.Available() < minimumOutputLookahead {
		return StateStallOnOutput, true
	}
	return StateReady, false
}

// prepareNewBlockDecode is PREPARE_NEW_BLOCK's decode-side mirror. Decode's
// scarce resource at this point is compressed input, not output room (the
// fixed-size output write in READ_CHUNK checks its own room via the
// teleport's atomic Read), so this gates on in.Available() instead of out.
func prepareNewBlockDecode(in *Location, r *signatureReader, b *blockState, parallelDecompressible bool, resetDict func()) (StateCode, bool) {
	switch b.count {
	case preferredEfficiencyCheckSignatures:
		if !b.efficiencyChecked {
			b.efficiencyChecked = true
			return StateInfoEfficiencyCheck, true
		}
	case preferredBlockSignatures:
		b.count = 0
		b.efficiencyChecked = false
		if parallelDecompressible {
			if b.resetCycle > 0 {
				b.resetCycle--
			} else {
				resetDict()
				b.resetCycle = preferredResetCycle - 1
			}
		}
		return StateInfoNewBlock, true
	}

	if in.Available() < minimumOutputLookahead {
		return StateStallOnInput, true
	}
	b.count++
	r.reload(in)
	return StateReady, false
}

// checkSignatureStateDecode mirrors checkSignatureState against the input
// side.
func checkSignatureStateDecode(in *Location) (StateCode, bool) {
	if in.Available() < minimumOutputLookahead {
		return StateStallOnInput, true
	}
	return StateReady, false
}
