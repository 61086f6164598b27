package lion

import "encoding/binary"

// Encoder is a resumable Lion compressor. It implements the Kernel API
// (Init/Continue/Finish) directly against Teleport input and Location
// output, suspending cleanly at unit boundaries whenever either buffer
// runs dry.
type Encoder struct {
	process                 processLabel
	dict                    lionDictionary
	forms                   formRankCoder
	sig                     signatureWriter
	block                   blockState
	parallelDecompressible bool
}

// NewEncoder returns an Encoder ready for Init. parallelDecompressible
// enables periodic dictionary resets on block boundaries so independently
// compressed ranges can be decompressed without shared history.
func NewEncoder(parallelDecompressible bool) *Encoder {
	e := &Encoder{parallelDecompressible: parallelDecompressible}
	e.Init()
	return e
}

// Init resets the encoder to a fresh stream-start state.
func (e *Encoder) Init() StateCode {
	e.dict.reset()
	e.forms.reset()
	e.block.reset()
	e.block.resetCycle = preferredResetCycle - 1
	e.process = labelPrepareNewBlock
	return StateReady
}

// encodeChunk classifies one 4-byte chunk and emits its form code plus
// payload, updating the dictionary and predictor exactly as §4.3
// prescribes.
func (e *Encoder) encodeChunk(out *Location, chunk uint32) {
	h := chunkHash(chunk)
	predicted := &e.dict.predictions[e.dict.lastHash]

	if *predicted == chunk {
		code := e.forms.use(formChunkPrediction)
		e.sig.push(out, code.value, code.length)
	} else {
		row := &e.dict.chunks[h]
		switch {
		case row.a == chunk:
			code := e.forms.use(formChunkDictionaryA)
			e.sig.push(out, code.value, code.length)
			putUint16LE(out, h)
		case row.b == chunk:
			code := e.forms.use(formChunkDictionaryB)
			e.sig.push(out, code.value, code.length)
			putUint16LE(out, h)
			row.b, row.a = row.a, chunk
		default:
			code := e.forms.use(formSecondaryAccess)
			e.sig.push(out, code.value, code.length)
			encodeSecondaryAccess(out, &e.sig, &e.dict, e.dict.lastChunk, chunk)
			row.b, row.a = row.a, chunk
		}
		*predicted = chunk
	}

	e.dict.lastHash = h
	e.dict.lastChunk = chunk
}

func putUint16LE(out *Location, h uint16) {
	binary.LittleEndian.PutUint16(out.Buf[out.Pos:], h)
	out.Pos += 2
}

// processUnit reads and classifies the 8 chunks of one 32-byte unit, in
// stream order.
func (e *Encoder) processUnit(out *Location, loc Location) {
	for i := 0; i < 8; i++ {
		chunk := binary.LittleEndian.Uint32(loc.Buf[i*4:])
		e.encodeChunk(out, chunk)
	}
}

// Continue drives the encoder until it produces a result that requires
// the caller's attention: a stall, an interrupt, or (never, for Continue)
// completion. flush is accepted but not consulted, matching the reference
// kernel, which keeps it only for symmetry with Finish.
func (e *Encoder) Continue(in Teleport, out *Location, flush bool) StateCode {
	_ = flush
	for {
		switch e.process {
		case labelPrepareNewBlock:
			code, stop := prepareNewBlock(out, &e.sig, &e.block, e.parallelDecompressible, e.dict.reset)
			if stop {
				return code
			}
			e.process = labelCheckSignatureState
		case labelCheckSignatureState:
			code, stop := checkSignatureState(out)
			if stop {
				return code
			}
			e.process = labelReadChunk
		case labelReadChunk:
			loc, ok := in.Read(unitSize)
			if !ok {
				return StateStallOnInput
			}
			e.processUnit(out, loc)
			e.process = labelCheckSignatureState
		default:
			return StateError
		}
	}
}

// Finish drains whatever remains of the input, falling back to a 4-byte-
// at-a-time tail drain once fewer than unitSize bytes remain, then emits
// the exit marker the decoder recognizes as end-of-stream and copies any
// final 1-3 trailing bytes verbatim.
//
// The reference kernel re-checks output room mid-drain so callers don't
// need to over-provision the output buffer for a full unit just to finish
// a partial one; this port skips that recheck because
// minimumOutputLookahead is already sized for a whole unit, which is a
// strictly larger bound than the at-most-7-chunk tail this drains.
func (e *Encoder) Finish(in Teleport, out *Location) StateCode {
	for {
		switch e.process {
		case labelPrepareNewBlock:
			code, stop := prepareNewBlock(out, &e.sig, &e.block, e.parallelDecompressible, e.dict.reset)
			if stop {
				return code
			}
			e.process = labelCheckSignatureState
		case labelCheckSignatureState:
			code, stop := checkSignatureState(out)
			if stop {
				return code
			}
			e.process = labelReadChunk
		case labelReadChunk:
			loc, ok := in.Read(unitSize)
			if ok {
				e.processUnit(out, loc)
				e.process = labelCheckSignatureState
				continue
			}

			for {
				loc4, ok4 := in.Read(4)
				if !ok4 {
					break
				}
				chunk := binary.LittleEndian.Uint32(loc4.Buf)
				e.encodeChunk(out, chunk)
			}

			code := e.forms.use(formChunkDictionaryA)
			e.sig.push(out, code.value, code.length)
			e.sig.flush(out)
			in.CopyRemaining(out)
			return StateReady
		default:
			return StateError
		}
	}
}
