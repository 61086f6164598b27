package lion

// form identifies one of the four ways a Lion chunk can be encoded.
type form uint8

const (
	formChunkPrediction form = iota
	formChunkDictionaryA
	formChunkDictionaryB
	formSecondaryAccess
	formCount = 4
)

// formEntropyCodes maps a *rank* (not a form identity) to its entropy
// code. rank 0 gets the cheapest code; ranks 2 and 3 share a bit length
// but differ in their final bit so the code stays prefix-free when read
// least-significant-bit-first:
//
//	rank 0: 1 bit  -> 0
//	rank 1: 2 bits -> 1,0
//	rank 2: 3 bits -> 1,1,0
//	rank 3: 3 bits -> 1,1,1
var formEntropyCodes = [formCount]entropyCode{
	{value: 0b0, length: 1},
	{value: 0b01, length: 2},
	{value: 0b011, length: 3},
	{value: 0b111, length: 3},
}

// formRankCoder tracks usage counts per form and the current rank
// ordering, reordering adjacent ranks as usage evidence accumulates so
// that cheaper codes drift toward whichever form is actually most common.
type formRankCoder struct {
	usage      [formCount]uint32
	rank       [formCount]uint8 // form -> rank
	formAtRank [formCount]form  // rank -> form
}

// newFormRankCoder builds a coder with the initial ranking prescribed by
// the kernel: secondary-access starts cheapest (rank 0) since a cold
// dictionary misses far more than it hits, and chunk-prediction starts
// most expensive (rank 3) since it needs a warm predictor to pay off.
func newFormRankCoder() *formRankCoder {
	c := &formRankCoder{}
	c.reset()
	return c
}

func (c *formRankCoder) reset() {
	c.usage = [formCount]uint32{}
	c.rank[formSecondaryAccess] = 0
	c.rank[formChunkDictionaryA] = 1
	c.rank[formChunkDictionaryB] = 2
	c.rank[formChunkPrediction] = 3
	c.formAtRank[0] = formSecondaryAccess
	c.formAtRank[1] = formChunkDictionaryA
	c.formAtRank[2] = formChunkDictionaryB
	c.formAtRank[3] = formChunkPrediction
}

// use records one occurrence of form f and returns the entropy code for
// f's rank *before* any adjustment. The adjacent bubble-up swap, if
// triggered, updates state for future calls but never changes the code
// emitted for this call — matching the reference kernel's "capture rank,
// maybe reorder, emit the captured rank's code" sequencing, which is what
// makes the rank emitted self-describing enough for decodeUse to reverse.
func (c *formRankCoder) use(f form) entropyCode {
	r := c.rank[f]
	c.applyBubbleUp(f, r)
	c.usage[f]++
	return formEntropyCodes[r]
}

// applyBubbleUp performs the adjacent swap for form f currently at rank r,
// if f's (pre-increment) usage already exceeds the form ranked just above
// it. Shared by use and decodeUse so both sides mutate rank/formAtRank
// identically.
func (c *formRankCoder) applyBubbleUp(f form, r uint8) {
	if r == 0 {
		return
	}
	upper := c.formAtRank[r-1]
	if c.usage[f] > c.usage[upper] {
		c.rank[upper] = r
		c.rank[f] = r - 1
		c.formAtRank[r-1] = f
		c.formAtRank[r] = upper
	}
}

// decodeUse reverses use: given the rank read off the bitstream, it looks
// up the form that held that rank at the start of this call, applies the
// identical bubble-up, and returns the form.
func (c *formRankCoder) decodeUse(r uint8) form {
	f := c.formAtRank[r]
	c.applyBubbleUp(f, r)
	c.usage[f]++
	return f
}

// decodeFormRank reads one form's entropy code bit by bit and returns its
// rank, mirroring formEntropyCodes' prefix structure.
func decodeFormRank(r *signatureReader, in *Location) uint8 {
	if r.readBits(in, 1) == 0 {
		return 0
	}
	if r.readBits(in, 1) == 0 {
		return 1
	}
	if r.readBits(in, 1) == 0 {
		return 2
	}
	return 3
}

// invariant checks the rank/formAtRank bijection the rank-invariant
// testable property requires. It is not on the hot path; tests call it.
func (c *formRankCoder) invariant() bool {
	seen := [formCount]bool{}
	for r := uint8(0); r < formCount; r++ {
		f := c.formAtRank[r]
		if c.rank[f] != r {
			return false
		}
		if seen[f] {
			return false
		}
		seen[f] = true
	}
	return true
}
