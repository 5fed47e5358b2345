package storage

import (
	"context"
	"io"
)

// Uploader persists one uploaded object and returns the path it is served
// from. Backends returning a fully-qualified URL (GCS) are rendered
// verbatim by the serializers; relative paths (local disk) are made
// absolute against the incoming request.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
