package search

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks request errors caught before any query is issued.
	ErrValidation = errors.New("invalid search request")

	// ErrQuery marks catalog store failures. Retries, if any, belong to the
	// caller; the engine never retries internally.
	ErrQuery = errors.New("catalog query failed")
)

// ErrVectorDimMismatch is returned when the request embedding does not
// match the stored embedding dimensionality. Vectors are never truncated
// or padded.
var ErrVectorDimMismatch = fmt.Errorf("%w: embedding dimension mismatch", ErrValidation)
