package lion

import "encoding/binary"

// MandalaEncoder is Lion's simpler sibling: same framing and dictionary
// shape, a flat 2-bit flag per chunk instead of an adaptive form code, and
// a verbatim 4-byte copy on a miss instead of decomposing into bigrams.
type MandalaEncoder struct {
	process                 processLabel
	dict                    mandalaDictionary
	sig                     signatureWriter
	block                   blockState
	parallelDecompressible bool
}

func NewMandalaEncoder(parallelDecompressible bool) *MandalaEncoder {
	e := &MandalaEncoder{parallelDecompressible: parallelDecompressible}
	e.Init()
	return e
}

func (e *MandalaEncoder) Init() StateCode {
	e.dict.reset()
	e.block.reset()
	e.block.resetCycle = preferredResetCycle - 1
	e.process = labelPrepareNewBlock
	return StateReady
}

func (e *MandalaEncoder) encodeChunk(out *Location, chunk uint32) {
	h := chunkHash(chunk)
	predicted := &e.dict.predictions[e.dict.lastHash]

	if *predicted == chunk {
		e.sig.push(out, mandalaFlagPredicted, mandalaFlagBits)
	} else {
		row := &e.dict.chunks[h]
		switch {
		case row.a == chunk:
			e.sig.push(out, mandalaFlagMapA, mandalaFlagBits)
			putUint16LE(out, h)
		case row.b == chunk:
			e.sig.push(out, mandalaFlagMapB, mandalaFlagBits)
			putUint16LE(out, h)
			row.b, row.a = row.a, chunk
		default:
			e.sig.push(out, mandalaFlagChunk, mandalaFlagBits)
			binary.LittleEndian.PutUint32(out.Buf[out.Pos:], chunk)
			out.Pos += 4
			row.b, row.a = row.a, chunk
		}
		*predicted = chunk
	}

	e.dict.lastHash = h
	e.dict.lastChunk = chunk
}

func (e *MandalaEncoder) processUnit(out *Location, loc Location) {
	for i := 0; i < 8; i++ {
		chunk := binary.LittleEndian.Uint32(loc.Buf[i*4:])
		e.encodeChunk(out, chunk)
	}
}

func (e *MandalaEncoder) Continue(in Teleport, out *Location, flush bool) StateCode {
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

// Finish mirrors Encoder.Finish: drain the tail 4 bytes at a time, then
// emit the exit marker (mandalaFlagChunk with no following payload,
// mirroring Lion's reuse of chunk-dict-A for the same purpose) before
// flushing and copying any final 1-3 trailing bytes.
func (e *MandalaEncoder) Finish(in Teleport, out *Location) StateCode {
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

			e.sig.push(out, mandalaFlagChunk, mandalaFlagBits)
			e.sig.flush(out)
			in.CopyRemaining(out)
			return StateReady
		default:
			return StateError
		}
	}
}
