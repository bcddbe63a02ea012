package blobstore

import (
	"context"
	"io"
)

// PutResult describes one persisted image payload.
type PutResult struct {
	Key       string
	URL       string
	SHA256    string
	SizeBytes int64
}

// BlobStore is the byte-storage abstraction behind pantry item images.
// Put stores a payload under a generated key and returns a resolvable URL.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, mediaType string) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
