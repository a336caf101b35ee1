package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"imgvault/internal/model"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// ImageConstraints restricts uploads to jpg/png, the formats the media
// provider derives thumbnails from.
var ImageConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	},
	MaxSize: 10 << 20, // 10MB
}

const maxNameLength = 256

// ValidateUpload runs all field-level checks for an image upload before any
// external call is attempted. ttl is nil when no expiring link was requested.
func ValidateUpload(name string, header *multipart.FileHeader, ttl *int) Errors {
	errs := Errors{}

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "this field is required")
	} else if len(name) > maxNameLength {
		errs.Add("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}

	if header == nil {
		errs.Add("image", "this field is required")
	} else {
		err := ValidateFile(header, ImageConstraints)
		if err != nil {
			errs.Add("image", err.Error())
		}
	}

	if ttl != nil && (*ttl < model.LinkTTLMin || *ttl > model.LinkTTLMax) {
		errs.Add("link_expiry_time", fmt.Sprintf("must be between %d and %d seconds", model.LinkTTLMin, model.LinkTTLMax))
	}

	if !errs.Any() {
		return nil
	}
	return errs
}

// ValidateFile validates a file upload against a constraint set. The MIME
// type is detected from the file content (magic numbers), not the
// Content-Type header, so it cannot be faked by renaming.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads at most 512 bytes
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Reset file pointer to beginning for later use
	seeker, ok := file.(io.Seeker)
	if ok {
		_, err = seeker.Seek(0, 0)
		if err != nil {
			return fmt.Errorf("failed to reset file pointer: %w", err)
		}
	}

	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %s", ext)
	}

	return nil
}
