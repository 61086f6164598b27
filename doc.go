// Package lion provides the Lion and Mandala streaming compression
// kernels: low-ratio, high-throughput codecs built around a bit-packed
// signature stream, a dual-row chunk dictionary, and (Lion only) an
// adaptive form-rank coder over a move-to-front bigram/unigram pipeline.
//
// # Overview
//
// Both kernels process input 4 bytes at a time ("chunks"), classifying
// each chunk against a next-chunk predictor and a two-way MRU dictionary
// before falling back to a miss path. Lion's miss path decomposes the
// chunk into two 16-bit bigrams and recurses into a byte-level
// move-to-front table; Mandala's miss path copies the 4 bytes verbatim.
// Every classification is recorded as a few bits in a 64-bit little-
// endian "signature word" that precedes the payload fragments it
// describes, so a decoder can always read the signature before deciding
// which bytes to consume next.
//
// # When to Use These Kernels
//
// Lion and Mandala trade compression ratio for predictable, cheap
// per-byte cost:
//   - High-throughput pipelines where CPU budget per byte matters more
//     than squeezing out the last few percent of ratio
//   - Data with local repetition at 4-byte granularity: columnar values,
//     fixed-width records, numeric series
//   - Contexts that need parallel-decompressible output: independent
//     ranges can each reset their dictionary on a block boundary
//
// They are not general entropy coders and do not support offline
// dictionary training or random access into the compressed stream.
//
// # Basic Usage
//
//	enc := lion.NewEncoder(false)
//	in := lion.NewSliceTeleport(rawBytes)
//	out := &lion.Location{Buf: make([]byte, len(rawBytes)*2+64)}
//	enc.Finish(in, out)
//	compressed := out.Buf[:out.Pos]
//
//	dec := lion.NewDecoder(false)
//	src := &lion.Location{Buf: compressed}
//	dst := lion.NewSliceTeleport(make([]byte, len(rawBytes)))
//	dec.Finish(src, dst)
//
// Mandala follows the identical shape via NewMandalaEncoder/
// NewMandalaDecoder, trading the adaptive form coder and bigram pipeline
// for a flat 2-bit-per-chunk flag.
//
// # Resumability
//
// Continue and Finish never block: when the input teleport or output
// location runs dry they return a stall code and leave all state
// (process label, dictionary, signature register, form ranks) valid for
// another call once the caller has refilled the respective buffer.
// Suspension only happens at unit (32-byte) boundaries, except in
// Finish's tail drain, which suspends at 4-byte boundaries.
package lion
