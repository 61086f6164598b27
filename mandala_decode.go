package lion

import "encoding/binary"

// MandalaDecoder is MandalaEncoder's mirror. The reference decoder body
// for this kernel is largely commented out in the source; this is the
// symmetric implementation derived from the encode-side flag contract and
// Lion's decoder shape (§9 design note b).
type MandalaDecoder struct {
	process                 processLabel
	dict                    mandalaDictionary
	sig                     signatureReader
	block                   blockState
	parallelDecompressible bool
}

func NewMandalaDecoder(parallelDecompressible bool) *MandalaDecoder {
	d := &MandalaDecoder{parallelDecompressible: parallelDecompressible}
	d.Init()
	return d
}

func (d *MandalaDecoder) Init() StateCode {
	d.dict.reset()
	d.block.reset()
	d.block.resetCycle = preferredResetCycle - 1
	d.sig = signatureReader{shift: 64} // exhausted: forces a reload before the first bit is read
	d.process = labelPrepareNewBlock
	return StateReady
}

// applyFlag reads whatever payload flag requires, reconstructs the
// chunk, and updates the dictionary and predictor.
func (d *MandalaDecoder) applyFlag(in *Location, flag uint64) uint32 {
	var chunk uint32
	var h uint16

	switch flag {
	case mandalaFlagPredicted:
		chunk = d.dict.predictions[d.dict.lastHash]
		h = chunkHash(chunk)
	case mandalaFlagMapA:
		h = readUint16LE(in)
		chunk = d.dict.chunks[h].a
	case mandalaFlagMapB:
		h = readUint16LE(in)
		row := &d.dict.chunks[h]
		chunk = row.b
		row.b, row.a = row.a, chunk
	default: // mandalaFlagChunk
		chunk = binary.LittleEndian.Uint32(in.Buf[in.Pos:])
		in.Pos += 4
		h = chunkHash(chunk)
		row := &d.dict.chunks[h]
		row.b, row.a = row.a, chunk
	}

	d.dict.predictions[d.dict.lastHash] = chunk
	d.dict.lastHash = h
	d.dict.lastChunk = chunk
	return chunk
}

func (d *MandalaDecoder) decodeChunk(in *Location) uint32 {
	flag := d.sig.readBits(in, mandalaFlagBits)
	return d.applyFlag(in, flag)
}

func (d *MandalaDecoder) decodeUnit(in *Location, loc Location) {
	for i := 0; i < 8; i++ {
		chunk := d.decodeChunk(in)
		binary.LittleEndian.PutUint32(loc.Buf[i*4:], chunk)
	}
}

func (d *MandalaDecoder) Continue(in *Location, out Teleport, flush bool) StateCode {
	_ = flush
	for {
		switch d.process {
		case labelPrepareNewBlock:
			code, stop := prepareNewBlockDecode(in, &d.sig, &d.block, d.parallelDecompressible, d.dict.reset)
			if stop {
				return code
			}
			d.process = labelCheckSignatureState
		case labelCheckSignatureState:
			code, stop := checkSignatureStateDecode(in)
			if stop {
				return code
			}
			d.process = labelReadChunk
		case labelReadChunk:
			loc, ok := out.Read(unitSize)
			if !ok {
				return StateStallOnOutput
			}
			d.decodeUnit(in, loc)
			d.process = labelCheckSignatureState
		default:
			return StateError
		}
	}
}

// Finish mirrors Decoder.Finish: try full units, then fall back to a
// one-chunk tail that recognizes the exit marker — a CHUNK flag with
// fewer than 4 raw bytes left — and stops there.
func (d *MandalaDecoder) Finish(in *Location, out Teleport) StateCode {
	for {
		switch d.process {
		case labelPrepareNewBlock:
			code, stop := prepareNewBlockDecode(in, &d.sig, &d.block, d.parallelDecompressible, d.dict.reset)
			if stop {
				if code == StateStallOnInput {
					return d.finishTail(in, out)
				}
				return code
			}
			d.process = labelCheckSignatureState
		case labelCheckSignatureState:
			code, stop := checkSignatureStateDecode(in)
			if stop {
				if code == StateStallOnInput {
					return d.finishTail(in, out)
				}
				return code
			}
			d.process = labelReadChunk
		case labelReadChunk:
			loc, ok := out.Read(unitSize)
			if !ok {
				return StateStallOnOutput
			}
			d.decodeUnit(in, loc)
			d.process = labelCheckSignatureState
		default:
			return StateError
		}
	}
}

func (d *MandalaDecoder) finishTail(in *Location, out Teleport) StateCode {
	for {
		flag := d.sig.readBits(in, mandalaFlagBits)
		if flag == mandalaFlagChunk && in.Available() < 4 {
			n := in.Available()
			loc, ok := out.Read(n)
			if !ok {
				return StateStallOnOutput
			}
			if n > 0 {
				copy(loc.Buf, in.Buf[in.Pos:])
			}
			in.Pos = len(in.Buf)
			return StateReady
		}

		loc, ok := out.Read(4)
		if !ok {
			return StateStallOnOutput
		}
		chunk := d.applyFlag(in, flag)
		binary.LittleEndian.PutUint32(loc.Buf, chunk)
	}
}
