package lion

// chunkRow is a two-way MRU bucket: a holds the most recently inserted
// chunk for this hash, b the one before it.
type chunkRow struct {
	a, b uint32
}

// chunkDictionary is the dual-row chunk table and next-chunk predictor
// shared by Lion and Mandala. It is deliberately zero-init-friendly: a
// freshly reset dictionary reads as all-zero chunks and predictions, which
// means a genuine all-zero chunk will appear to "hit" immediately. That
// matches the reference kernel's own zero-initialized state rather than
// special-casing it away with extra validity flags.
type chunkDictionary struct {
	chunks      [1 << chunkHashBits]chunkRow
	predictions [1 << chunkHashBits]uint32

	lastHash  uint16
	lastChunk uint32
}

func (d *chunkDictionary) reset() {
	d.chunks = [1 << chunkHashBits]chunkRow{}
	d.predictions = [1 << chunkHashBits]uint32{}
	d.lastHash = 0
	d.lastChunk = 0
}

// lionDictionary adds the bigram table and unigram MTF pool that only the
// Lion kernel's secondary-access path needs.
type lionDictionary struct {
	chunkDictionary
	bigrams  [1 << bigramHashBits]uint16
	unigrams unigramTable
}

func (d *lionDictionary) reset() {
	d.chunkDictionary.reset()
	d.bigrams = [1 << bigramHashBits]uint16{}
	d.unigrams.reset()
}

// mandalaDictionary is the simpler sibling: just the shared chunk table,
// no bigram/unigram machinery, since Mandala falls back to a verbatim
// 4-byte chunk copy on a miss instead of decomposing into bigrams.
type mandalaDictionary struct {
	chunkDictionary
}

func (d *mandalaDictionary) reset() {
	d.chunkDictionary.reset()
}
