package runner

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flowcodec/lion"
)

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestEncodeDecodeRoundTripLion(t *testing.T) {
	src := make([]byte, 300000)
	rand.New(rand.NewSource(7)).Read(src)

	compressed, stats, err := Encode(discardLogger(), lion.NewEncoder(false), src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if stats.NewBlocks == 0 {
		t.Fatalf("expected at least one block boundary over 300000 bytes")
	}

	out, _, err := Decode(discardLogger(), lion.NewDecoder(false), compressed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(out), len(src))
	}
}

func TestEncodeDecodeRoundTripMandalaParallelDecompressible(t *testing.T) {
	src := make([]byte, 50000)
	rand.New(rand.NewSource(11)).Read(src)

	compressed, _, err := Encode(discardLogger(), lion.NewMandalaEncoder(true), src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out, _, err := Decode(discardLogger(), lion.NewMandalaDecoder(true), compressed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(out), len(src))
	}
}

func TestEncodeGrowsUndersizedOutputLocation(t *testing.T) {
	// Random bytes expand under Lion, so the initial len(src)+64 output
	// location is too small and Encode must grow it.
	src := make([]byte, 20000)
	rand.New(rand.NewSource(5)).Read(src)

	out, stats, err := Encode(discardLogger(), lion.NewEncoder(false), src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty compressed output")
	}
	if stats.OutputGrows == 0 {
		t.Fatalf("expected the undersized output location to be grown")
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	out, _, err := Encode(discardLogger(), lion.NewEncoder(false), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 8 {
		t.Fatalf("expected an 8-byte exit-marker-only signature word, got %d bytes", len(out))
	}

	dec, _, err := Decode(discardLogger(), lion.NewDecoder(false), out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(dec) != 0 {
		t.Fatalf("expected empty decoded output, got %d bytes", len(dec))
	}
}
