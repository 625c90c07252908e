package service

import (
	"context"
	"io"
)

// Uploader stores backup artifacts. Upload returns where the object ended up.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
