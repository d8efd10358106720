package poseidon

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/Giulio2002/faster_poseidon/field"
)

// Sum hashes canonical 64-bit words and returns the raw digest words.
// Every input must be below field.Modulus.
func Sum(inputs []uint64) ([DigestSize]uint64, error) {
	xs, err := ToElements(inputs)
	if err != nil {
		return [DigestSize]uint64{}, err
	}
	return HashElements(xs).Uint64s(), nil
}

// SumBytes decodes data as big-endian 8-byte words and hashes them.
func SumBytes(data []byte) ([DigestSize]uint64, error) {
	words, err := BytesToUint64s(data)
	if err != nil {
		return [DigestSize]uint64{}, err
	}
	return Sum(words)
}

// SumToBytes is Sum with the digest serialized to 32 big-endian bytes.
func SumToBytes(inputs []uint64) ([32]byte, error) {
	xs, err := ToElements(inputs)
	if err != nil {
		return [32]byte{}, err
	}
	return HashElements(xs).Bytes(), nil
}

// SumBytesToBytes is SumBytes with the digest serialized to 32 big-endian bytes.
func SumBytesToBytes(data []byte) ([32]byte, error) {
	words, err := BytesToUint64s(data)
	if err != nil {
		return [32]byte{}, err
	}
	return SumToBytes(words)
}

// ToElements converts canonical words to field elements.
func ToElements(words []uint64) ([]field.Element, error) {
	xs := make([]field.Element, len(words))
	for i, w := range words {
		x, err := field.NewElement(w)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		xs[i] = x
	}
	return xs, nil
}

// BytesToUint64s splits data into big-endian 8-byte words.
func BytesToUint64s(data []byte) ([]uint64, error) {
	if len(data)%8 != 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "got %d bytes", len(data))
	}
	words := make([]uint64, len(data)/8)
	for i := range words {
		words[i] = be64(data[8*i:])
	}
	return words, nil
}

// Uint64sToBytes writes each word as 8 big-endian bytes.
func Uint64sToBytes(words []uint64) []byte {
	out := make([]byte, 8*len(words))
	for i, w := range words {
		putBE64(out[8*i:], w)
	}
	return out
}

// Uint64s returns the stored words of d without canonicalizing them.
func (d Digest) Uint64s() [DigestSize]uint64 {
	var out [DigestSize]uint64
	for i, x := range d {
		out[i] = x.Raw()
	}
	return out
}

// Canonical returns the canonical representatives of d.
func (d Digest) Canonical() [DigestSize]uint64 {
	var out [DigestSize]uint64
	for i, x := range d {
		out[i] = x.ToCanonicalUint64()
	}
	return out
}

// Bytes serializes the stored words of d big-endian, 8 bytes per word.
func (d Digest) Bytes() [32]byte {
	var out [32]byte
	for i, x := range d {
		putBE64(out[8*i:], x.Raw())
	}
	return out
}

// Equal compares digests as field elements.
func (d Digest) Equal(o Digest) bool {
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (d Digest) String() string {
	b := d.Bytes()
	return hex.EncodeToString(b[:])
}
