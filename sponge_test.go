package poseidon

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Giulio2002/faster_poseidon/field"
)

var emptyDigest = [DigestSize]uint64{
	4330397376401421145, 14124799381142128323, 8742572140681234676, 14345658006221440202,
}

func seqElements(n int) []field.Element {
	xs := make([]field.Element, n)
	for i := range xs {
		xs[i] = field.FromCanonicalUint64(uint64(i + 1))
	}
	return xs
}

func TestHashElementsEmpty(t *testing.T) {
	if got := HashElements(nil).Uint64s(); got != emptyDigest {
		t.Fatalf("HashElements(nil) = %v, want %v", got, emptyDigest)
	}
	var zero State
	Permute(&zero)
	if got := Digest(zero[:DigestSize]); !got.Equal(HashElements(nil)) {
		t.Fatalf("empty hash should be one permutation of the zero state")
	}
}

func TestHashElementsBoundaries(t *testing.T) {
	for k := 0; k <= 3*Rate+1; k++ {
		xs := seqElements(k)
		want, perms := hashNaive(xs)
		wantPerms := max(1, (k+Rate-1)/Rate)
		if perms != wantPerms {
			t.Fatalf("k=%d: reference ran %d permutations, want %d", k, perms, wantPerms)
		}
		if got := HashElements(xs); !got.Equal(want) {
			t.Fatalf("k=%d: got %v, want %v", k, got, want)
		}
	}
}

// A short final chunk leaves the previous chunk's tail in the rate, so it
// differs from the same chunk followed by explicit zeros.
func TestHashElementsNoPadding(t *testing.T) {
	short := HashElements(seqElements(9))
	padded := append(seqElements(9), make([]field.Element, Rate-1)...)
	if short.Equal(HashElements(padded)) {
		t.Fatalf("short final chunk was zero padded")
	}
}

func TestHasherStreamingElements(t *testing.T) {
	xs := seqElements(30)
	for k := 0; k <= len(xs); k++ {
		want := HashElements(xs[:k])
		for split := 0; split <= k; split++ {
			var h Hasher
			if err := h.WriteElements(xs[:split]...); err != nil {
				t.Fatal(err)
			}
			if err := h.WriteElements(xs[split:k]...); err != nil {
				t.Fatal(err)
			}
			got, err := h.Sum()
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Fatalf("k=%d split=%d: %v vs %v", k, split, got, want)
			}
		}
	}
}

func TestHasherByteByByte(t *testing.T) {
	data := make([]byte, 8*19)
	for i := range data {
		data[i] = byte(i)
	}
	want, err := SumBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	var h Hasher
	for _, b := range data {
		if n, err := h.Write([]byte{b}); err != nil || n != 1 {
			t.Fatalf("Write = %d, %v", n, err)
		}
	}
	got, err := h.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64s() != want {
		t.Fatalf("streaming byte-by-byte: %v vs %v", got.Uint64s(), want)
	}
}

func TestHasherSumDoesNotModify(t *testing.T) {
	var h Hasher
	h.WriteElements(seqElements(5)...)
	first, _ := h.Sum()
	second, _ := h.Sum()
	if first != second {
		t.Fatalf("Sum changed the hasher")
	}
	h.WriteElements(seqElements(14)[5:]...)
	got, _ := h.Sum()
	if want := HashElements(seqElements(14)); got != want {
		t.Fatalf("continuing after Sum: %v vs %v", got, want)
	}
}

func TestHasherReset(t *testing.T) {
	var h Hasher
	h.WriteElements(seqElements(11)...)
	if _, err := h.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	h.Reset()
	got, err := h.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64s() != emptyDigest {
		t.Fatalf("after Reset: %v", got.Uint64s())
	}
}

func TestHasherPartialWord(t *testing.T) {
	var h Hasher
	h.Write([]byte{1, 2, 3})
	if _, err := h.Sum(); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidLength", err)
	}
	h.Write([]byte{4, 5, 6, 7, 8})
	got, err := h.Sum()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := SumBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	if got.Uint64s() != want {
		t.Fatalf("%v vs %v", got.Uint64s(), want)
	}
}

func TestHasherNonCanonical(t *testing.T) {
	var h Hasher
	if err := h.WriteUint64s(1, field.Modulus); !errors.Is(err, field.ErrNonCanonical) {
		t.Fatalf("WriteUint64s err = %v", err)
	}
	// Nothing was absorbed.
	got, _ := h.Sum()
	if got.Uint64s() != emptyDigest {
		t.Fatalf("rejected words were absorbed")
	}

	bad := bytes.Repeat([]byte{0xff}, 8)
	data := append([]byte{0, 0, 0, 0, 0, 0, 0, 1}, bad...)
	n, err := h.Write(data)
	if !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("Write err = %v", err)
	}
	if n != 8 {
		t.Fatalf("Write consumed %d bytes, want 8", n)
	}
	if _, err := h.Write([]byte{0, 0, 0, 0, 0, 0, 0, 2}); !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("error should be sticky, got %v", err)
	}
	if _, err := h.Sum(); !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("Sum err = %v", err)
	}
}

// Elements written while a byte word is incomplete would be absorbed ahead of
// that word, so they are refused until the word is finished.
func TestHasherMixedWrites(t *testing.T) {
	var h Hasher
	if _, err := h.Write([]byte{0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	nine := field.FromCanonicalUint64(9)
	if err := h.WriteElements(nine); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("WriteElements with pending bytes: err = %v, want ErrInvalidLength", err)
	}
	if err := h.WriteUint64s(9); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("WriteUint64s with pending bytes: err = %v, want ErrInvalidLength", err)
	}
	if _, err := h.Write([]byte{0, 0, 0, 0, 7}); err != nil {
		t.Fatal(err)
	}
	if err := h.WriteElements(nine); err != nil {
		t.Fatal(err)
	}
	if err := h.WriteUint64s(10); err != nil {
		t.Fatal(err)
	}
	got, err := h.Sum()
	if err != nil {
		t.Fatal(err)
	}
	want := HashElements([]field.Element{
		field.FromCanonicalUint64(7), nine, field.FromCanonicalUint64(10),
	})
	if got != want {
		t.Fatalf("mixed writes: %v, want %v", got, want)
	}
}

func TestHasherElementWritesAfterError(t *testing.T) {
	var h Hasher
	if _, err := h.Write(bytes.Repeat([]byte{0xff}, 8)); !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("Write err = %v", err)
	}
	if err := h.WriteElements(field.FromCanonicalUint64(1)); !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("WriteElements should return the sticky error, got %v", err)
	}
	if err := h.WriteUint64s(1); !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("WriteUint64s should return the sticky error, got %v", err)
	}
	h.Reset()
	if err := h.WriteElements(field.FromCanonicalUint64(1)); err != nil {
		t.Fatalf("after Reset: %v", err)
	}
}

// A bad word completed from buffered bytes reports the bytes of p it used.
func TestHasherWriteCountOnPendingWord(t *testing.T) {
	var h Hasher
	if _, err := h.Write([]byte{0xff, 0xff, 0xff}); err != nil {
		t.Fatal(err)
	}
	n, err := h.Write(bytes.Repeat([]byte{0xff}, 13))
	if !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("err = %v, want ErrNonCanonical", err)
	}
	if n != 5 {
		t.Fatalf("Write consumed %d bytes, want 5", n)
	}
}

func FuzzHasher(f *testing.F) {
	f.Add([]byte(nil), uint8(0))
	f.Add(make([]byte, 64), uint8(3))
	f.Add(make([]byte, 72), uint8(64))
	f.Add(bytes.Repeat([]byte{0xff}, 24), uint8(9))

	f.Fuzz(func(t *testing.T, data []byte, split uint8) {
		data = data[:len(data)/8*8]
		want, wantErr := SumBytes(data)

		s := min(int(split), len(data))
		var h Hasher
		_, err1 := h.Write(data[:s])
		_, err2 := h.Write(data[s:])
		got, err := h.Sum()

		if wantErr != nil {
			if err == nil || (err1 == nil && err2 == nil) {
				t.Fatalf("non-canonical input accepted")
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		if got.Uint64s() != want {
			t.Fatalf("split %d: %v vs %v", s, got.Uint64s(), want)
		}
	})
}

func BenchmarkHashElements(b *testing.B) {
	for _, n := range []int{4, 8, 64, 1024} {
		xs := seqElements(n)
		b.Run(benchName(8*n), func(b *testing.B) {
			b.SetBytes(int64(8 * n))
			b.ReportAllocs()
			b.ResetTimer()
			for iter := 0; iter < b.N; iter++ {
				HashElements(xs)
			}
		})
	}
}

func BenchmarkHasher(b *testing.B) {
	xs := seqElements(1024)
	b.ReportAllocs()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		var h Hasher
		h.WriteElements(xs...)
		h.Sum()
	}
}
