package uploader

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	cldupload "github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary implements Uploader against the Cloudinary upload API. Derived
// thumbnail renditions are served on the fly via w_{n},h_{n} URL segments,
// so only the canonical asset is stored here.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, p Params) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, cldupload.UploadParams{
		PublicID:       p.PublicID,
		Folder:         p.Folder,
		Transformation: p.Transformation,
		Overwrite:      api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	// The SDK reports some API failures in the response body with a nil error
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	return resp.SecureURL, nil
}
