package field

import (
	"math/bits"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	// Modulus is the Goldilocks prime 2^64 - 2^32 + 1.
	Modulus uint64 = 0xffffffff00000001

	// epsilon is 2^64 mod p.
	epsilon uint64 = 1<<32 - 1

	twoAdicity = 32

	// multiplicativeGroupGenerator generates the whole multiplicative group.
	multiplicativeGroupGenerator = 7
	// powerOfTwoGenerator is 7^((p-1)/2^32), of order exactly 2^32.
	powerOfTwoGenerator = 1753635133440165772
)

// Element is a Goldilocks field element stored as a single 64-bit word.
//
// The stored word may be non-canonical, anywhere in [0, 2^64) instead of
// [0, p). Arithmetic keeps results congruent to the true value and within
// one conditional subtraction of p; canonicalization happens only in Equal
// and ToCanonicalUint64. The == operator compares raw words, use Equal.
type Element struct {
	v uint64
}

var (
	_ Field64[Element] = Element{}
)

// NewElement returns n as a field element, or ErrNonCanonical if n >= p.
func NewElement(n uint64) (Element, error) {
	if n >= Modulus {
		return Element{}, errors.Wrapf(ErrNonCanonical, "%d >= %d", n, Modulus)
	}
	return Element{v: n}, nil
}

// FromCanonicalUint64 wraps n without checking it; n must be below Modulus.
func FromCanonicalUint64(n uint64) Element { return Element{v: n} }

// FromNoncanonicalUint64 wraps any 64-bit word. Every word is a valid
// representation of n mod p.
func FromNoncanonicalUint64(n uint64) Element { return Element{v: n} }

// Order returns the field order as a 256-bit integer.
func Order() *uint256.Int { return uint256.NewInt(Modulus) }

// Characteristic returns the field characteristic, equal to Order.
func Characteristic() *uint256.Int { return Order() }

func (Element) Zero() Element   { return Element{v: 0} }
func (Element) One() Element    { return Element{v: 1} }
func (Element) Two() Element    { return Element{v: 2} }
func (Element) NegOne() Element { return Element{v: Modulus - 1} }

func (Element) Bits() int                     { return 64 }
func (Element) TwoAdicity() int               { return twoAdicity }
func (Element) CharacteristicTwoAdicity() int { return twoAdicity }
func (Element) Order() uint64                 { return Modulus }

func (Element) MultiplicativeGroupGenerator() Element {
	return Element{v: multiplicativeGroupGenerator}
}

func (Element) PowerOfTwoGenerator() Element {
	return Element{v: powerOfTwoGenerator}
}

func (Element) FromCanonicalUint64(n uint64) Element    { return Element{v: n} }
func (Element) FromNoncanonicalUint64(n uint64) Element { return Element{v: n} }

// Raw returns the stored word without canonicalizing it.
func (x Element) Raw() uint64 { return x.v }

// ToCanonicalUint64 returns the unique representative in [0, p).
func (x Element) ToCanonicalUint64() uint64 {
	c := x.v
	// 2p does not fit in 64 bits, so one subtraction is enough.
	if c >= Modulus {
		c -= Modulus
	}
	return c
}

func (x Element) Equal(y Element) bool {
	return x.ToCanonicalUint64() == y.ToCanonicalUint64()
}

func (x Element) IsZero() bool { return x.ToCanonicalUint64() == 0 }

func (x Element) Neg() Element {
	if x.IsZero() {
		return Element{}
	}
	return Element{v: Modulus - x.ToCanonicalUint64()}
}

func (x Element) Add(y Element) Element {
	sum, over := bits.Add64(x.v, y.v, 0)
	sum, over = bits.Add64(sum, over*epsilon, 0)
	if over != 0 {
		// Only reachable when both operands are above p.
		sum += epsilon
	}
	return Element{v: sum}
}

func (x Element) Sub(y Element) Element {
	diff, under := bits.Sub64(x.v, y.v, 0)
	diff, under = bits.Sub64(diff, under*epsilon, 0)
	if under != 0 {
		// Only reachable when x < epsilon - 1 and y > p.
		diff -= epsilon
	}
	return Element{v: diff}
}

func (x Element) Mul(y Element) Element {
	return reduce128(bits.Mul64(x.v, y.v))
}

func (x Element) Square() Element {
	return reduce128(bits.Mul64(x.v, x.v))
}

func (x Element) AddCanonicalUint64Unchecked(rhs uint64) Element {
	return x.Add(Element{v: rhs})
}

func (x Element) SubCanonicalUint64Unchecked(rhs uint64) Element {
	return x.Sub(Element{v: rhs})
}

// Inverse returns x^(p-2), the multiplicative inverse of a non-zero x.
// Zero maps to zero.
func (x Element) Inverse() Element {
	return Exp(x, Modulus-2)
}

// String prints the stored word in decimal.
func (x Element) String() string {
	return strconv.FormatUint(x.v, 10)
}
