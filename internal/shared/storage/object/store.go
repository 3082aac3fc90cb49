package object

import (
	"context"
	"io"
)

// Object describes a stored blob.
type Object struct {
	Key      string
	URL      string
	Size     int64
	MimeType string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
