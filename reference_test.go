package poseidon

import "github.com/Giulio2002/faster_poseidon/field"

// permuteNaive is the textbook permutation: every round adds its 12 round
// constants and applies the dense MDS layer, and partial rounds apply the
// S-box to element 0 only. It shares no tables with the fast partial rounds.
func permuteNaive(s *State) {
	for round := 0; round < numRounds; round++ {
		constantLayer(s, round)
		if round < HalfFullRounds || round >= HalfFullRounds+PartialRounds {
			sboxLayer(s)
		} else {
			s[0] = sboxMonomial(s[0])
		}
		mdsLayer(s)
	}
}

// hashNaive drives permuteNaive with the sponge rules and reports how many
// permutations ran.
func hashNaive(inputs []field.Element) (Digest, int) {
	var state State
	perms := 0
	for i := 0; i < len(inputs) || perms == 0; i += Rate {
		end := min(i+Rate, len(inputs))
		copy(state[:], inputs[i:end])
		permuteNaive(&state)
		perms++
	}
	return Digest(state[:DigestSize]), perms
}

func equalStates(a, b *State) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
