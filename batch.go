package poseidon

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// SumBatch hashes independent messages concurrently on at most workers
// goroutines (GOMAXPROCS when workers <= 0). out[i] equals Sum(messages[i]).
//
// Every message with a non-canonical word is reported in the combined error,
// in which case no results are returned. Cancelling ctx stops scheduling new
// messages and returns ctx.Err().
func SumBatch(ctx context.Context, messages [][]uint64, workers int) ([][DigestSize]uint64, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([][DigestSize]uint64, len(messages))
	errs := make([]error, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, msg := range messages {
		if gctx.Err() != nil {
			break
		}
		i, msg := i, msg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := Sum(msg)
			if err != nil {
				errs[i] = errors.Wrapf(err, "message %d", i)
				return nil
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return out, nil
}
