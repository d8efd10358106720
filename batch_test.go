package poseidon

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/multierr"

	"github.com/Giulio2002/faster_poseidon/field"
)

func TestSumBatch(t *testing.T) {
	sampler := field.NewSampler([]byte("batch"))
	messages := make([][]uint64, 50)
	for i := range messages {
		messages[i] = sampler.Uint64s(i % 19)
	}
	for _, workers := range []int{0, 1, 4, 64} {
		out, err := SumBatch(context.Background(), messages, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(out) != len(messages) {
			t.Fatalf("workers=%d: %d results", workers, len(out))
		}
		for i, msg := range messages {
			want, _ := Sum(msg)
			if out[i] != want {
				t.Fatalf("workers=%d message %d: %v vs %v", workers, i, out[i], want)
			}
		}
	}
}

func TestSumBatchEmpty(t *testing.T) {
	out, err := SumBatch(context.Background(), nil, 2)
	if err != nil || len(out) != 0 {
		t.Fatalf("SumBatch(nil) = %v, %v", out, err)
	}
}

func TestSumBatchReportsEveryBadMessage(t *testing.T) {
	messages := [][]uint64{
		{1, 2},
		{field.Modulus},
		{3},
		{4, field.Modulus + 7},
	}
	out, err := SumBatch(context.Background(), messages, 2)
	if out != nil {
		t.Fatalf("results returned alongside an error")
	}
	if !errors.Is(err, ErrNonCanonical) {
		t.Fatalf("err = %v, want ErrNonCanonical", err)
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Fatalf("%d errors reported, want 2: %v", n, err)
	}
}

func TestSumBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	messages := make([][]uint64, 100)
	if _, err := SumBatch(ctx, messages, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func BenchmarkSumBatch(b *testing.B) {
	messages := make([][]uint64, 256)
	sampler := field.NewSampler([]byte("bench"))
	for i := range messages {
		messages[i] = sampler.Uint64s(64)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		if _, err := SumBatch(context.Background(), messages, 0); err != nil {
			b.Fatal(err)
		}
	}
}
