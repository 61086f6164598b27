package lion

import "testing"

// encodeLion runs a one-shot Lion compression of src against a generously
// sized output buffer, looping over info interrupts until the stream is
// fully flushed.
func encodeLion(t *testing.T, src []byte, parallel bool) []byte {
	t.Helper()
	enc := NewEncoder(parallel)
	in := NewSliceTeleport(src)
	out := &Location{Buf: make([]byte, len(src)*4+256)}
	for {
		switch enc.Finish(in, out) {
		case StateReady:
			return out.Buf[:out.Pos]
		case StateInfoEfficiencyCheck, StateInfoNewBlock:
			continue
		default:
			t.Fatalf("unexpected encode state")
		}
	}
}

// decodeLion runs a one-shot Lion decompression of compressed, given the
// known uncompressed length (external framing, per the kernel's
// out-of-scope boundary).
func decodeLion(t *testing.T, compressed []byte, rawLen int, parallel bool) []byte {
	t.Helper()
	dec := NewDecoder(parallel)
	in := &Location{Buf: compressed}
	dst := make([]byte, rawLen)
	out := NewSliceTeleport(dst)
	for {
		switch dec.Finish(in, out) {
		case StateReady:
			return dst
		case StateInfoEfficiencyCheck, StateInfoNewBlock:
			continue
		default:
			t.Fatalf("unexpected decode state")
		}
	}
}

func encodeMandala(t *testing.T, src []byte, parallel bool) []byte {
	t.Helper()
	enc := NewMandalaEncoder(parallel)
	in := NewSliceTeleport(src)
	out := &Location{Buf: make([]byte, len(src)*4+256)}
	for {
		switch enc.Finish(in, out) {
		case StateReady:
			return out.Buf[:out.Pos]
		case StateInfoEfficiencyCheck, StateInfoNewBlock:
			continue
		default:
			t.Fatalf("unexpected encode state")
		}
	}
}

func decodeMandala(t *testing.T, compressed []byte, rawLen int, parallel bool) []byte {
	t.Helper()
	dec := NewMandalaDecoder(parallel)
	in := &Location{Buf: compressed}
	dst := make([]byte, rawLen)
	out := NewSliceTeleport(dst)
	for {
		switch dec.Finish(in, out) {
		case StateReady:
			return dst
		case StateInfoEfficiencyCheck, StateInfoNewBlock:
			continue
		default:
			t.Fatalf("unexpected decode state")
		}
	}
}

// growableTeleport wraps a fixed backing buffer but only exposes the
// first `visible` bytes of it, simulating a producer that delivers bytes
// incrementally. Tests grow visible between calls to exercise the
// stall/resume path.
type growableTeleport struct {
	buf     []byte
	pos     int
	visible int
}

func (g *growableTeleport) Read(n int) (Location, bool) {
	if g.pos+n > g.visible {
		return Location{}, false
	}
	loc := Location{Buf: g.buf[g.pos : g.pos+n]}
	g.pos += n
	return loc, true
}

func (g *growableTeleport) Available() int { return g.visible - g.pos }

func (g *growableTeleport) CopyRemaining(out *Location) int {
	n := copy(out.Buf[out.Pos:], g.buf[g.pos:g.visible])
	out.Pos += n
	g.pos += n
	return n
}
