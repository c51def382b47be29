package ports

import (
	"context"
	"io"
)

// FileStorage stores binary objects (product images) in an S3-compatible
// backend and returns their public URL.
type FileStorage interface {
	// UploadFile stores the object under key and returns its public URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile removes the object. Unknown keys are not an error.
	DeleteFile(ctx context.Context, key string) error
}
