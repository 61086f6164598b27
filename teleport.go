package lion

// Location is the output-side abstraction the kernel writes into:
// {pointer, available_bytes} in spec terms. Pos advances and Buf shrinks
// effectively as bytes are written; Available reports the remaining room.
type Location struct {
	Buf []byte
	Pos int
}

// Available returns the number of unused bytes remaining in the location.
func (l *Location) Available() int { return len(l.Buf) - l.Pos }

// Teleport is the atomic-fetch abstraction consumed by the kernel: it
// hands out exactly-n contiguous bytes or refuses, never a short read. The
// encoder uses it for input (fixed 4-bytes-per-chunk reads); the decoder
// uses it for output (fixed 4-bytes-per-chunk writes), since the returned
// Location's Buf aliases the backing storage and is writable through that
// alias for any concrete Teleport backed by a real byte slice.
type Teleport interface {
	// Read returns a Location covering the next n bytes and advances the
	// teleport past them, or ok=false if fewer than n bytes are currently
	// available. A false result leaves the teleport's position unchanged.
	Read(n int) (loc Location, ok bool)
	// Available reports how many bytes remain unread.
	Available() int
	// CopyRemaining copies every remaining unread byte into out and
	// advances out.Pos accordingly. It never stalls; callers use it only
	// once the kernel is done reading whole chunks and wants to drain the
	// tail verbatim.
	CopyRemaining(out *Location) int
}

// SliceTeleport is the minimal Teleport implementation: an in-memory byte
// slice read sequentially. It is the smallest thing that makes the kernel
// runnable and testable without a real streaming I/O layer.
type SliceTeleport struct {
	buf []byte
	pos int
}

// NewSliceTeleport wraps buf for sequential atomic reads.
func NewSliceTeleport(buf []byte) *SliceTeleport {
	return &SliceTeleport{buf: buf}
}

func (t *SliceTeleport) Read(n int) (Location, bool) {
	if len(t.buf)-t.pos < n {
		return Location{}, false
	}
	loc := Location{Buf: t.buf[t.pos : t.pos+n]}
	t.pos += n
	return loc, true
}

func (t *SliceTeleport) Available() int { return len(t.buf) - t.pos }

func (t *SliceTeleport) CopyRemaining(out *Location) int {
	n := copy(out.Buf[out.Pos:], t.buf[t.pos:])
	out.Pos += n
	t.pos += n
	return n
}
