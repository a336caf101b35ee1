package uploader

import (
	"context"
	"io"
)

// Params controls how the provider stores an upload.
type Params struct {
	Folder   string
	PublicID string
	// Transformation applied at storage time, e.g. "c_scale,w_200,h_200".
	// Empty stores the original.
	Transformation string
}

// Uploader sends raw image bytes to the media host and returns the canonical
// URL of the stored asset. The call is synchronous; callers must not retry a
// failed upload transparently, since the operation is not idempotent on the
// provider side.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, p Params) (string, error)
}
