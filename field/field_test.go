package field

import (
	"errors"
	"testing"
)

func TestDerivedOps(t *testing.T) {
	s := NewSampler([]byte("derived"))
	xs := s.Elements(200)
	for _, w := range edgeWords {
		xs = append(xs, FromNoncanonicalUint64(w))
	}
	for _, x := range xs {
		if got, want := Double(x), x.Mul(x.Two()); !got.Equal(want) {
			t.Fatalf("Double(%v) = %v, want %v", x, got, want)
		}
		if got, want := Triple(x), x.Add(x).Add(x); !got.Equal(want) {
			t.Fatalf("Triple(%v) = %v, want %v", x, got, want)
		}
		if got, want := Cube(x), x.Mul(x).Mul(x); !got.Equal(want) {
			t.Fatalf("Cube(%v) = %v, want %v", x, got, want)
		}
		if got, want := ExpPowerOf2(x, 3), Exp(x, 8); !got.Equal(want) {
			t.Fatalf("x^8 mismatch for %v: %v vs %v", x, got, want)
		}
		if got, want := Exp(x, 7), Cube(x).Mul(Cube(x)).Mul(x); !got.Equal(want) {
			t.Fatalf("x^7 mismatch for %v: %v vs %v", x, got, want)
		}
	}
}

func TestRingAxioms(t *testing.T) {
	s := NewSampler([]byte("axioms"))
	for i := 0; i < 200; i++ {
		a, b, c := s.NoncanonicalElement(), s.NoncanonicalElement(), s.Element()
		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("addition not commutative for %v, %v", a, b)
		}
		if !a.Mul(b).Equal(b.Mul(a)) {
			t.Fatalf("multiplication not commutative for %v, %v", a, b)
		}
		if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
			t.Fatalf("distributivity fails for %v, %v, %v", a, b, c)
		}
		if !a.Add(b).Sub(b).Equal(a) {
			t.Fatalf("(a+b)-b != a for %v, %v", a, b)
		}
		if !a.Square().Equal(a.Mul(a)) {
			t.Fatalf("square mismatch for %v", a)
		}
		if got := MultiplyAccumulate(c, a, b); !got.Equal(c.Add(a.Mul(b))) {
			t.Fatalf("MultiplyAccumulate mismatch")
		}
	}
}

func TestExp(t *testing.T) {
	x := FromCanonicalUint64(3)
	if got := Exp(x, 0); !IsOne(got) {
		t.Fatalf("x^0 = %v", got)
	}
	if got := Exp(x, 5); got.ToCanonicalUint64() != 243 {
		t.Fatalf("3^5 = %v", got)
	}
	g := (Element{}).MultiplicativeGroupGenerator()
	if got := Exp(g, Modulus-1); !IsOne(got) {
		t.Fatalf("g^(p-1) = %v", got)
	}
	// 7 is a generator, so it is not a square.
	if got := Exp(g, (Modulus-1)/2); !got.Equal(g.NegOne()) {
		t.Fatalf("g^((p-1)/2) = %v, want -1", got)
	}
}

func TestPrimitiveRootOfUnity(t *testing.T) {
	for _, tc := range []struct {
		nLog int
		want uint64
	}{
		{0, 1},
		{1, Modulus - 1},
		{2, 281474976710656},
		{32, powerOfTwoGenerator},
	} {
		w, err := PrimitiveRootOfUnity[Element](tc.nLog)
		if err != nil {
			t.Fatalf("PrimitiveRootOfUnity(%d): %v", tc.nLog, err)
		}
		if got := w.ToCanonicalUint64(); got != tc.want {
			t.Fatalf("PrimitiveRootOfUnity(%d) = %d, want %d", tc.nLog, got, tc.want)
		}
	}

	w, err := PrimitiveRootOfUnity[Element](16)
	if err != nil {
		t.Fatal(err)
	}
	if !IsOne(ExpPowerOf2(w, 16)) {
		t.Fatalf("w^(2^16) != 1")
	}
	if IsOne(ExpPowerOf2(w, 15)) {
		t.Fatalf("w has order below 2^16")
	}

	if _, err := PrimitiveRootOfUnity[Element](33); !errors.Is(err, ErrTwoAdicity) {
		t.Fatalf("err = %v, want ErrTwoAdicity", err)
	}
	if _, err := PrimitiveRootOfUnity[Element](-1); !errors.Is(err, ErrTwoAdicity) {
		t.Fatalf("err = %v, want ErrTwoAdicity", err)
	}
}

func TestConstants(t *testing.T) {
	var f Element
	if !IsZero(f.Zero()) || !IsOne(f.One()) {
		t.Fatalf("zero/one wrong")
	}
	if !f.One().Add(f.One()).Equal(f.Two()) {
		t.Fatalf("1+1 != 2")
	}
	if !IsZero(f.NegOne().Add(f.One())) {
		t.Fatalf("-1+1 != 0")
	}
	if got := CosetShift[Element](); got.ToCanonicalUint64() != 7 {
		t.Fatalf("coset shift = %v", got)
	}
	if f.TwoAdicity() != 32 || f.CharacteristicTwoAdicity() != 32 {
		t.Fatalf("two-adicity = %d", f.TwoAdicity())
	}
}

func TestSum(t *testing.T) {
	if got := Sum[Element](nil); !IsZero(got) {
		t.Fatalf("empty sum = %v", got)
	}
	xs := []Element{
		FromCanonicalUint64(Modulus - 1),
		FromCanonicalUint64(2),
		FromNoncanonicalUint64(Modulus + 5),
	}
	if got := Sum(xs); got.ToCanonicalUint64() != 6 {
		t.Fatalf("sum = %v, want 6", got)
	}
}
