// Package poseidon provides the Poseidon hash over the 64-bit Goldilocks field,
// using the width-12 permutation and constants of the Plonky2 proving system.
//
// The permutation runs 4 full rounds, 22 partial rounds and 4 more full rounds.
// Partial rounds use the sparse-matrix decomposition ("fast partial rounds"),
// which needs precomputed tables but only touches element 0 with the S-box and
// costs O(width) per round instead of a dense matrix multiply. Both shapes give
// bit-identical results.
//
// Hashing is a sponge with rate 8 and capacity 4: inputs are absorbed in
// chunks of up to 8 elements that overwrite the front of the state, each chunk
// followed by one permutation, and the digest is the first 4 state elements.
// No padding is applied. All functions are pure and safe for concurrent use.
package poseidon

import "github.com/Giulio2002/faster_poseidon/field"

const (
	// Width is the number of field elements in the permutation state.
	Width = 12
	// Rate is the number of state elements overwritten per absorbed chunk.
	Rate = 8
	// DigestSize is the number of field elements in a digest.
	DigestSize = 4

	HalfFullRounds = 4
	PartialRounds  = 22

	numRounds = 2*HalfFullRounds + PartialRounds
)

// State is the permutation state.
type State [Width]field.Element

// Permute applies the Poseidon permutation to s in place.
func Permute(s *State) {
	roundCtr := 0

	for i := 0; i < HalfFullRounds; i++ {
		fullRound(s, roundCtr)
		roundCtr++
	}

	partialFirstConstantLayer(s)
	mdsPartialLayerInit(s)
	for r := 0; r < PartialRounds-1; r++ {
		s[0] = sboxMonomial(s[0])
		s[0] = s[0].Add(field.FromCanonicalUint64(fastPartialRoundConstants[r]))
		mdsPartialLayerFast(s, r)
	}
	s[0] = sboxMonomial(s[0])
	mdsPartialLayerFast(s, PartialRounds-1)
	roundCtr += PartialRounds

	for i := 0; i < HalfFullRounds; i++ {
		fullRound(s, roundCtr)
		roundCtr++
	}
}

func fullRound(s *State, roundCtr int) {
	constantLayer(s, roundCtr)
	sboxLayer(s)
	mdsLayer(s)
}

func constantLayer(s *State, roundCtr int) {
	rc := allRoundConstants[Width*roundCtr : Width*(roundCtr+1)]
	for i := range s {
		s[i] = s[i].Add(field.FromCanonicalUint64(rc[i]))
	}
}

// sboxMonomial returns x^7.
func sboxMonomial(x field.Element) field.Element {
	x2 := x.Square()
	x4 := x2.Square()
	x3 := x.Mul(x2)
	return x3.Mul(x4)
}

func sboxLayer(s *State) {
	for i := range s {
		s[i] = sboxMonomial(s[i])
	}
}

// mdsRowShf is row r of the MDS matrix, a circulant plus a diagonal, applied to v.
func mdsRowShf(r int, v *State) field.Element {
	var res field.Element
	for i := 0; i < Width; i++ {
		res = res.Add(v[(i+r)%Width].Mul(field.FromCanonicalUint64(mdsMatrixCirc[i])))
	}
	return res.Add(v[r].Mul(field.FromCanonicalUint64(mdsMatrixDiag[r])))
}

func mdsLayer(s *State) {
	var res State
	for i := range res {
		res[i] = mdsRowShf(i, s)
	}
	*s = res
}

func partialFirstConstantLayer(s *State) {
	for i := range s {
		s[i] = s[i].Add(field.FromCanonicalUint64(fastPartialFirstRoundConstant[i]))
	}
}

// mdsPartialLayerInit applies the dense 11x11 matrix that precedes the
// sparse partial rounds. Element 0 passes through.
func mdsPartialLayerInit(s *State) {
	var res State
	res[0] = s[0]
	for r := 1; r < Width; r++ {
		for c := 1; c < Width; c++ {
			t := field.FromCanonicalUint64(fastPartialRoundInitialMatrix[r-1][c-1])
			res[c] = res[c].Add(s[r].Mul(t))
		}
	}
	*s = res
}

// mdsPartialLayerFast applies the sparse matrix of partial round r:
// a dense first row (ŵ) and a first column (v) on top of the identity.
func mdsPartialLayerFast(s *State, r int) {
	s0 := s[0]
	d := s0.Mul(field.FromCanonicalUint64(mdsMatrixCirc[0] + mdsMatrixDiag[0]))
	for i := 1; i < Width; i++ {
		t := field.FromCanonicalUint64(fastPartialRoundWHats[r][i-1])
		d = d.Add(s[i].Mul(t))
	}
	s[0] = d
	for i := 1; i < Width; i++ {
		t := field.FromCanonicalUint64(fastPartialRoundVs[r][i-1])
		s[i] = s0.Mul(t).Add(s[i])
	}
}
