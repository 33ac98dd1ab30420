package tokenstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no value exists for a key.
var ErrNotFound = errors.New("tokenstore: key not found")

// Store is a key-value persistence capability for access tokens.
// Values are opaque strings with no TTL; a Set overwrites any previous value.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
