package lion

import "testing"

func TestChunkHashRange(t *testing.T) {
	for _, c := range []uint32{0, 1, 0xFFFFFFFF, 0x12345678, 0x9E3779B1} {
		h := chunkHash(c)
		if uint32(h) >= 1<<chunkHashBits {
			t.Fatalf("chunkHash(%#x) = %d out of range", c, h)
		}
	}
}

func TestBigramHashRange(t *testing.T) {
	for _, b := range []uint16{0, 1, 0xFFFF, 0xBEEF} {
		h := bigramHash(b)
		if uint32(h) >= 1<<bigramHashBits {
			t.Fatalf("bigramHash(%#x) = %d out of range", b, h)
		}
	}
}

func TestChunkHashDeterministic(t *testing.T) {
	if chunkHash(0x41414141) != chunkHash(0x41414141) {
		t.Fatalf("chunkHash is not pure")
	}
}
