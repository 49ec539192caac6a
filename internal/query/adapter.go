// Package query wraps the external language model behind a narrow
// text-in/text-out interface so the store and renderer never depend on
// network availability and the HTTP layer can be tested with a stub.
package query

import (
	"context"
	"errors"
)

// ErrUnavailable covers any failure of the external model call. The
// dataset is untouched; the caller surfaces it as a user-visible message.
var ErrUnavailable = errors.New("query adapter unavailable")

// Adapter answers a free-text prompt over a snapshot of the stored
// dataset. The returned text is passed through verbatim: no parsing, no
// retries, no caching.
type Adapter interface {
	Ask(ctx context.Context, prompt string, snapshot []byte) (string, error)
}
