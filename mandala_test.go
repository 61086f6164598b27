package lion

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestMandalaRoundTripEmpty(t *testing.T) {
	compressed := encodeMandala(t, nil, false)
	if len(compressed) != 8 {
		t.Fatalf("empty input: want exactly one flushed signature word, got %d bytes", len(compressed))
	}
	got := decodeMandala(t, compressed, 0, false)
	if len(got) != 0 {
		t.Fatalf("want empty output, got %d bytes", len(got))
	}
}

func TestMandalaRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	src := make([]byte, 200000)
	r.Read(src)
	compressed := encodeMandala(t, src, false)
	got := decodeMandala(t, compressed, len(src), false)
	if !bytes.Equal(src, got) {
		t.Fatalf("round trip mismatch for random input")
	}
}

func TestMandalaRoundTripRepeatingPattern(t *testing.T) {
	pattern := []byte{10, 20, 30, 40}
	src := bytes.Repeat(pattern, 300)
	compressed := encodeMandala(t, src, false)
	got := decodeMandala(t, compressed, len(src), false)
	if !bytes.Equal(src, got) {
		t.Fatalf("round trip mismatch for repeating pattern")
	}
}

func TestMandalaRoundTripTrailingBytes(t *testing.T) {
	for trail := 1; trail <= 3; trail++ {
		src := bytes.Repeat([]byte{1, 2, 3, 4}, 8)
		for i := 0; i < trail; i++ {
			src = append(src, byte(0x50+i))
		}
		compressed := encodeMandala(t, src, false)
		got := decodeMandala(t, compressed, len(src), false)
		if !bytes.Equal(src, got) {
			t.Fatalf("round trip mismatch with %d trailing bytes", trail)
		}
	}
}

func TestMandalaParallelDecompressibleReset(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	src := make([]byte, 40000)
	r.Read(src)
	compressed := encodeMandala(t, src, true)
	got := decodeMandala(t, compressed, len(src), true)
	if !bytes.Equal(src, got) {
		t.Fatalf("round trip mismatch with parallel-decompressible resets enabled")
	}
}
