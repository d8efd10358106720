package field

import "math/bits"

// reduce128 reduces the 128-bit value hi*2^64 + lo modulo p without
// canonicalizing the result.
//
// With 2^64 = epsilon and 2^96 = -1 (mod p):
//
//	x = hiHi*2^96 + hiLo*2^64 + lo = lo - hiHi + hiLo*epsilon
func reduce128(hi, lo uint64) Element {
	hiHi := hi >> 32
	hiLo := hi & epsilon

	t0, borrow := bits.Sub64(lo, hiHi, 0)
	if borrow != 0 {
		// Rare; the borrowed 2^64 is replaced by its residue. Cannot underflow.
		t0 -= epsilon
	}
	t1 := hiLo * epsilon
	return Element{v: addNoCanonicalize(t0, t1)}
}

// addNoCanonicalize returns x + y, folding a single carry back in as
// epsilon. Callers guarantee x + y < 2^64 + p so one fold suffices.
func addNoCanonicalize(x, y uint64) uint64 {
	sum, carry := bits.Add64(x, y, 0)
	return sum + carry*epsilon
}
