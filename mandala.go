package lion

// Mandala's signature carries a fixed 2-bit flag per chunk instead of
// Lion's adaptive variable-length form code: there's no usage-driven
// reordering to earn, so a flat width is simplest and matches the
// reference kernel's framing intent of a cheaper sibling over the same
// dictionary shape.
const mandalaFlagBits = 2

const (
	mandalaFlagPredicted uint64 = iota
	mandalaFlagMapA
	mandalaFlagMapB
	mandalaFlagChunk
)
