package lion

import "testing"

func TestFormEntropyCodesPrefixFree(t *testing.T) {
	for i, a := range formEntropyCodes {
		for j, b := range formEntropyCodes {
			if i == j {
				continue
			}
			n := a.length
			if b.length < n {
				n = b.length
			}
			if (a.value&bitMask(n)) == (b.value & bitMask(n)) {
				t.Fatalf("codes for rank %d and %d share a common prefix", i, j)
			}
		}
	}
}

func TestFormRankCoderBubbleUp(t *testing.T) {
	c := newFormRankCoder()
	if c.rank[formSecondaryAccess] != 0 || c.rank[formChunkPrediction] != 3 {
		t.Fatalf("unexpected initial ranks: %v", c.rank)
	}

	// Drive chunk-prediction's usage past every form ranked above it so
	// it bubbles from rank 3 down to rank 0 over successive calls.
	for i := 0; i < 10; i++ {
		c.use(formChunkPrediction)
	}
	if c.rank[formChunkPrediction] != 0 {
		t.Fatalf("expected chunk-prediction to bubble to rank 0, got rank %d", c.rank[formChunkPrediction])
	}
	if !c.invariant() {
		t.Fatalf("rank/formAtRank bijection broken")
	}
}

func TestFormRankCoderEncodeDecodeAgree(t *testing.T) {
	enc := newFormRankCoder()
	dec := newFormRankCoder()

	sequence := []form{
		formSecondaryAccess, formSecondaryAccess, formChunkDictionaryA,
		formChunkPrediction, formChunkDictionaryB, formChunkPrediction,
		formChunkPrediction, formSecondaryAccess,
	}

	for _, f := range sequence {
		before := enc.rank[f]
		code := enc.use(f)
		if code.length != formEntropyCodes[before].length || code.value != formEntropyCodes[before].value {
			t.Fatalf("use() did not emit the pre-swap rank's code")
		}
		got := dec.decodeUse(before)
		if got != f {
			t.Fatalf("decodeUse(%d) = %v, want %v", before, got, f)
		}
		if enc.rank != dec.rank || enc.formAtRank != dec.formAtRank {
			t.Fatalf("encoder/decoder rank state diverged after form %v", f)
		}
	}
}
