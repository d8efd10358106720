package poseidon

import (
	"github.com/pkg/errors"

	"github.com/Giulio2002/faster_poseidon/field"
)

var (
	// ErrInvalidLength is returned when byte input is not a whole number of
	// 8-byte words.
	ErrInvalidLength = errors.New("poseidon: byte length is not a multiple of 8")

	// ErrNonCanonical is field.ErrNonCanonical, for callers that only import
	// this package.
	ErrNonCanonical = field.ErrNonCanonical
)
