package poseidon

import (
	"github.com/pkg/errors"

	"github.com/Giulio2002/faster_poseidon/field"
)

// Digest is the first DigestSize state elements after the final permutation.
type Digest [DigestSize]field.Element

// HashElements hashes inputs with the rate-8 sponge. Each chunk of up to 8
// elements overwrites the front of the state and is followed by one
// permutation; a short final chunk is not padded and leaves the remaining rate
// positions as they were. Empty input permutes the zero state once.
func HashElements(inputs []field.Element) Digest {
	var state State
	for {
		n := copy(state[:Rate], inputs)
		inputs = inputs[n:]
		Permute(&state)
		if len(inputs) == 0 {
			break
		}
	}
	return Digest(state[:DigestSize])
}

// Hasher is a streaming Poseidon hasher. Any split of the input produces the
// same digest as the one-shot functions. Designed for stack allocation.
//
// Byte input is consumed as big-endian 8-byte words. A non-canonical word
// written through Write is a sticky error: Write and Sum keep returning it
// until Reset.
type Hasher struct {
	state    State
	absorbed int // elements of the current chunk already written into state
	permuted bool

	pending  [8]byte
	npending int
	err      error
}

// Reset resets the hasher to its initial state.
func (h *Hasher) Reset() {
	*h = Hasher{}
}

// WriteElements absorbs field elements. It fails without absorbing anything
// while a partial byte word from Write is pending, since the elements would
// otherwise land ahead of that word, and it returns the sticky Write error.
func (h *Hasher) WriteElements(xs ...field.Element) error {
	if err := h.writable(); err != nil {
		return err
	}
	h.absorb(xs)
	return nil
}

// WriteUint64s absorbs canonical words. If any word is >= p nothing is
// absorbed and the error wraps field.ErrNonCanonical. It has the same
// restrictions as WriteElements.
func (h *Hasher) WriteUint64s(words ...uint64) error {
	if err := h.writable(); err != nil {
		return err
	}
	for i, w := range words {
		if w >= field.Modulus {
			return errors.Wrapf(field.ErrNonCanonical, "word %d", i)
		}
	}
	for _, w := range words {
		h.absorb([]field.Element{field.FromCanonicalUint64(w)})
	}
	return nil
}

func (h *Hasher) writable() error {
	if h.err != nil {
		return h.err
	}
	if h.npending != 0 {
		return errors.Wrapf(ErrInvalidLength, "%d bytes of a word pending", h.npending)
	}
	return nil
}

func (h *Hasher) absorb(xs []field.Element) {
	for len(xs) > 0 {
		n := copy(h.state[h.absorbed:Rate], xs)
		h.absorbed += n
		xs = xs[n:]
		if h.absorbed == Rate {
			Permute(&h.state)
			h.permuted = true
			h.absorbed = 0
		}
	}
}

// Write absorbs p as big-endian 8-byte words, buffering a trailing partial
// word until the next call. It implements io.Writer.
func (h *Hasher) Write(p []byte) (int, error) {
	if h.err != nil {
		return 0, h.err
	}
	total := len(p)

	if h.npending > 0 {
		n := copy(h.pending[h.npending:], p)
		h.npending += n
		p = p[n:]
		if h.npending < 8 {
			return total, nil
		}
		h.npending = 0
		if err := h.absorbWord(be64(h.pending[:])); err != nil {
			return n, err
		}
	}

	for len(p) >= 8 {
		if err := h.absorbWord(be64(p)); err != nil {
			return total - len(p), err
		}
		p = p[8:]
	}

	h.npending = copy(h.pending[:], p)
	return total, nil
}

func (h *Hasher) absorbWord(w uint64) error {
	if w >= field.Modulus {
		h.err = errors.Wrapf(field.ErrNonCanonical, "word %#x", w)
		return h.err
	}
	h.absorb([]field.Element{field.FromCanonicalUint64(w)})
	return nil
}

// Sum finalizes and returns the digest. Does not modify the hasher state.
// It fails with ErrInvalidLength if the bytes written are not a multiple of 8.
func (h *Hasher) Sum() (Digest, error) {
	if h.err != nil {
		return Digest{}, h.err
	}
	if h.npending != 0 {
		return Digest{}, errors.Wrapf(ErrInvalidLength, "%d trailing bytes", h.npending)
	}
	state := h.state
	if h.absorbed > 0 || !h.permuted {
		Permute(&state)
	}
	return Digest(state[:DigestSize]), nil
}

// be64 reads a big-endian uint64 from at least 8 bytes.
func be64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[7]) | uint64(b[6])<<8 | uint64(b[5])<<16 | uint64(b[4])<<24 |
		uint64(b[3])<<32 | uint64(b[2])<<40 | uint64(b[1])<<48 | uint64(b[0])<<56
}

// putBE64 writes v big-endian into the first 8 bytes of b.
func putBE64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}
