package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for object keys that escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid object key")

// ObjectStore persists uploaded media and hands back a reference that can be embedded
// in a document. Delete accepts that same reference and ignores ones it did not issue.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}
