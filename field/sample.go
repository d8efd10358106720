package field

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Sampler deterministically expands a seed into field elements. It reads
// little-endian 64-bit words from SHAKE128(seed) and rejects words >= p, so
// every element it returns is canonical and uniformly distributed.
type Sampler struct {
	xof sha3.ShakeHash
	buf [8]byte
}

// NewSampler returns a Sampler keyed by seed.
func NewSampler(seed []byte) *Sampler {
	xof := sha3.NewShake128()
	xof.Write(seed)
	return &Sampler{xof: xof}
}

func (s *Sampler) word() uint64 {
	// A ShakeHash never returns a short read or an error.
	_, _ = s.xof.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// Element returns the next canonical element.
func (s *Sampler) Element() Element {
	for {
		if v := s.word(); v < Modulus {
			return Element{v: v}
		}
	}
}

// NoncanonicalElement returns the next raw word as an element without
// rejection; about 2^-32 of its outputs lie in [p, 2^64).
func (s *Sampler) NoncanonicalElement() Element {
	return Element{v: s.word()}
}

// Elements returns the next n canonical elements.
func (s *Sampler) Elements(n int) []Element {
	out := make([]Element, n)
	for i := range out {
		out[i] = s.Element()
	}
	return out
}

// Uint64s returns the next n canonical elements as words.
func (s *Sampler) Uint64s(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.Element().v
	}
	return out
}

// SampleElements returns n canonical elements derived from seed.
func SampleElements(seed []byte, n int) []Element {
	return NewSampler(seed).Elements(n)
}
