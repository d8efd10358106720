// Package field defines the algebraic contract shared by prime-field element
// types, the operations derivable from it, and the 64-bit Goldilocks field
// (p = 2^64 - 2^32 + 1) that the Poseidon permutation runs over.
//
// The contracts are generic interfaces parameterized by the implementing
// type itself, so derived operations such as Cube or PrimitiveRootOfUnity
// are written once and work for any field. Distinguished constants are
// methods on the zero value: for a value type F, `var f F; f.One()`.
package field

import "github.com/pkg/errors"

var (
	// ErrNonCanonical is returned when an integer outside [0, p) is used
	// where a canonical field element is required.
	ErrNonCanonical = errors.New("field: value is not in canonical range")

	// ErrTwoAdicity is returned when a root of unity of a power-of-two
	// order larger than the field's 2-adicity is requested.
	ErrTwoAdicity = errors.New("field: requested order exceeds two-adicity")
)

// Field is the contract of a finite-field element type F.
type Field[F any] interface {
	Zero() F
	One() F
	Two() F
	NegOne() F

	Neg() F
	Add(y F) F
	Sub(y F) F
	Mul(y F) F
	Square() F
	Equal(y F) bool

	// Bits is the bit length of the field order.
	Bits() int
	// TwoAdicity is the largest k such that 2^k divides the order of the
	// multiplicative group.
	TwoAdicity() int
	// CharacteristicTwoAdicity is the 2-adicity of the characteristic's
	// multiplicative group; equal to TwoAdicity for prime fields.
	CharacteristicTwoAdicity() int
	// MultiplicativeGroupGenerator generates every non-zero element.
	MultiplicativeGroupGenerator() F
	// PowerOfTwoGenerator generates the subgroup of order 2^TwoAdicity.
	PowerOfTwoGenerator() F
}

// Field64 is a Field whose order fits in a uint64.
type Field64[F any] interface {
	Field[F]

	Order() uint64
	ToCanonicalUint64() uint64
	// FromCanonicalUint64 requires n < Order(); it is not checked.
	FromCanonicalUint64(n uint64) F
	// FromNoncanonicalUint64 accepts any n and returns n mod Order().
	FromNoncanonicalUint64(n uint64) F

	// AddCanonicalUint64Unchecked is x + FromCanonicalUint64(rhs). The
	// caller guarantees rhs < Order(); otherwise the result is unspecified
	// but the call does not panic.
	AddCanonicalUint64Unchecked(rhs uint64) F
	// SubCanonicalUint64Unchecked is x - FromCanonicalUint64(rhs) under the
	// same precondition as AddCanonicalUint64Unchecked.
	SubCanonicalUint64Unchecked(rhs uint64) F
}

// IsZero reports whether x is the additive identity.
func IsZero[F Field[F]](x F) bool { return x.Equal(x.Zero()) }

// IsOne reports whether x is the multiplicative identity.
func IsOne[F Field[F]](x F) bool { return x.Equal(x.One()) }

// Double returns x + x.
func Double[F Field[F]](x F) F { return x.Add(x) }

// Cube returns x^3.
func Cube[F Field[F]](x F) F { return x.Square().Mul(x) }

// Triple returns 3x.
func Triple[F Field[F]](x F) F { return x.Mul(x.One().Add(x.Two())) }

// ExpPowerOf2 returns x^(2^powerLog) by repeated squaring.
func ExpPowerOf2[F Field[F]](x F, powerLog int) F {
	res := x
	for i := 0; i < powerLog; i++ {
		res = res.Square()
	}
	return res
}

// Exp returns x^e using left-to-right square-and-multiply.
func Exp[F Field[F]](x F, e uint64) F {
	res := x.One()
	for i := 63; i >= 0; i-- {
		res = res.Square()
		if (e>>uint(i))&1 == 1 {
			res = res.Mul(x)
		}
	}
	return res
}

// PrimitiveRootOfUnity returns a generator of the subgroup of order 2^nLog.
func PrimitiveRootOfUnity[F Field[F]](nLog int) (F, error) {
	var f F
	adicity := f.TwoAdicity()
	if nLog < 0 || nLog > adicity {
		return f, errors.Wrapf(ErrTwoAdicity, "order 2^%d, two-adicity %d", nLog, adicity)
	}
	return ExpPowerOf2(f.PowerOfTwoGenerator(), adicity-nLog), nil
}

// CosetShift is the representative g of the coset gH used for low-degree
// extensions.
func CosetShift[F Field[F]]() F {
	var f F
	return f.MultiplicativeGroupGenerator()
}

// MultiplyAccumulate returns acc + x*y.
func MultiplyAccumulate[F Field[F]](acc, x, y F) F {
	return acc.Add(x.Mul(y))
}

// Sum folds xs with Add, starting from zero.
func Sum[F Field[F]](xs []F) F {
	var f F
	acc := f.Zero()
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}

// AddOne returns x + 1 through the unchecked fast path.
func AddOne[F Field64[F]](x F) F { return x.AddCanonicalUint64Unchecked(1) }

// SubOne returns x - 1 through the unchecked fast path.
func SubOne[F Field64[F]](x F) F { return x.SubCanonicalUint64Unchecked(1) }
