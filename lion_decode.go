package lion

import "encoding/binary"

// Decoder is a resumable Lion decompressor. Input is a Location (the
// compressed bytes, fetched and owned by the caller for the call's
// duration) since decode's payload consumption is variable-length per
// chunk, unlike the encoder's fixed 4-bytes-in. Output is a Teleport since
// decode's production is fixed 4-bytes-out per chunk, so the caller's
// writable regions can be requested atomically the same way the encoder
// requests its fixed-size input.
type Decoder struct {
	process                 processLabel
	dict                    lionDictionary
	forms                   formRankCoder
	sig                     signatureReader
	block                   blockState
	parallelDecompressible bool
}

// NewDecoder returns a Decoder ready for Init. parallelDecompressible must
// match the value the stream was encoded with.
func NewDecoder(parallelDecompressible bool) *Decoder {
	d := &Decoder{parallelDecompressible: parallelDecompressible}
	d.Init()
	return d
}

func (d *Decoder) Init() StateCode {
	d.dict.reset()
	d.forms.reset()
	d.block.reset()
	d.block.resetCycle = preferredResetCycle - 1
	d.sig = signatureReader{shift: 64} // exhausted: forces a reload before the first bit is read
	d.process = labelPrepareNewBlock
	return StateReady
}

func readUint16LE(in *Location) uint16 {
	h := binary.LittleEndian.Uint16(in.Buf[in.Pos:])
	in.Pos += 2
	return h
}

// decodeForm reads one form's rank off the signature stream and resolves
// it to a form, applying the same bubble-up usage accounting the encoder
// applied when it emitted this code.
func (d *Decoder) decodeForm(in *Location) form {
	rank := decodeFormRank(&d.sig, in)
	return d.forms.decodeUse(rank)
}

// applyForm reads whatever payload form f requires, reconstructs the
// chunk, and updates the dictionary and predictor exactly as §4.3
// prescribes on the encode side.
func (d *Decoder) applyForm(in *Location, f form) uint32 {
	var chunk uint32
	var h uint16

	switch f {
	case formChunkPrediction:
		chunk = d.dict.predictions[d.dict.lastHash]
		h = chunkHash(chunk)
	case formChunkDictionaryA:
		h = readUint16LE(in)
		chunk = d.dict.chunks[h].a
	case formChunkDictionaryB:
		h = readUint16LE(in)
		row := &d.dict.chunks[h]
		chunk = row.b
		row.b, row.a = row.a, chunk
	default: // formSecondaryAccess
		chunk = decodeSecondaryAccess(in, &d.sig, &d.dict, d.dict.lastChunk)
		h = chunkHash(chunk)
		row := &d.dict.chunks[h]
		row.b, row.a = row.a, chunk
	}

	d.dict.predictions[d.dict.lastHash] = chunk
	d.dict.lastHash = h
	d.dict.lastChunk = chunk
	return chunk
}

func (d *Decoder) decodeChunk(in *Location) uint32 {
	return d.applyForm(in, d.decodeForm(in))
}

func (d *Decoder) decodeUnit(in *Location, loc Location) {
	for i := 0; i < 8; i++ {
		chunk := d.decodeChunk(in)
		binary.LittleEndian.PutUint32(loc.Buf[i*4:], chunk)
	}
}

// Continue drives the decoder until it produces a result requiring the
// caller's attention. flush is accepted but not consulted, matching the
// encoder's contract.
func (d *Decoder) Continue(in *Location, out Teleport, flush bool) StateCode {
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

// Finish drains whatever remains of the compressed input. It tries full
// units first, exactly like Continue, but treats a resulting
// StateStallOnInput as "no more real units" rather than propagating it:
// decode falls back to a one-chunk-at-a-time tail that recognizes the
// exit marker — a chunk-dict-A form code read with fewer than 2 payload
// bytes left, or with room for fewer than 4 bytes left in out — and stops
// there, copying whatever raw bytes remain verbatim. With an output
// teleport that never runs short, only the input test applies, so a marker
// followed by 2 or 3 trailing bytes is read as a genuine dict-A hit.
func (d *Decoder) Finish(in *Location, out Teleport) StateCode {
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

func (d *Decoder) finishTail(in *Location, out Teleport) StateCode {
	for {
		f := d.decodeForm(in)
		if f == formChunkDictionaryA && (in.Available() < 2 || out.Available() < 4) {
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
		chunk := d.applyForm(in, f)
		binary.LittleEndian.PutUint32(loc.Buf, chunk)
	}
}
