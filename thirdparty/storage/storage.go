package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectExists is returned when an upload targets a key that is already taken.
var ErrObjectExists = errors.New("object already exists")

// ObjectStorage stores listing photos and resolves their public URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, input *UploadInput) error
	PublicURL(bucket, key string) string
}

type UploadInput struct {
	Bucket       string
	Key          string
	ContentType  string
	Size         int64
	CacheSeconds int
	Data         io.Reader
}
