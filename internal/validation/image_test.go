package validation

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 64)...)
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["image"][0]
}

func TestValidateUploadAcceptsValidInput(t *testing.T) {
	header := fileHeader(t, "test.png", pngBytes)

	errs := ValidateUpload("foo", header, nil)
	assert.Nil(t, errs)
}

func TestValidateUploadRequiresName(t *testing.T) {
	header := fileHeader(t, "test.jpg", jpegBytes)

	errs := ValidateUpload("  ", header, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
}

func TestValidateUploadRejectsLongName(t *testing.T) {
	header := fileHeader(t, "test.jpg", jpegBytes)

	errs := ValidateUpload(strings.Repeat("x", 257), header, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
}

func TestValidateUploadRequiresFile(t *testing.T) {
	errs := ValidateUpload("foo", nil, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "image")
}

func TestValidateUploadRejectsDisallowedFormat(t *testing.T) {
	header := fileHeader(t, "test.gif", gifBytes)

	errs := ValidateUpload("foo", header, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "image")
}

func TestValidateUploadRejectsSpoofedExtension(t *testing.T) {
	// GIF content behind a .png name: content detection wins
	header := fileHeader(t, "test.png", gifBytes)

	errs := ValidateUpload("foo", header, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "image")
}

func TestValidateUploadTTLBounds(t *testing.T) {
	header := fileHeader(t, "test.jpg", jpegBytes)

	tests := []struct {
		ttl   int
		valid bool
	}{
		{299, false},
		{300, true},
		{30000, true},
		{30001, false},
		{-1, false},
	}

	for _, tt := range tests {
		ttl := tt.ttl
		errs := ValidateUpload("foo", header, &ttl)
		if tt.valid {
			assert.Nil(t, errs, "ttl %d should be accepted", tt.ttl)
		} else {
			require.NotNil(t, errs, "ttl %d should be rejected", tt.ttl)
			assert.Contains(t, errs, "link_expiry_time")
		}
	}
}

func TestValidateFileSizeLimit(t *testing.T) {
	header := fileHeader(t, "test.png", pngBytes)
	header.Size = ImageConstraints.MaxSize + 1

	err := ValidateFile(header, ImageConstraints)
	assert.Error(t, err)
}
