// backend-go/internal/storage/storage.go
package storage

import (
	"context"
	"io"
)

// ObjectStorage captures the minimal operations GRN document handling
// needs: push bytes, get back a URL the browser can load.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
}
