package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"imgvault/internal/model"
)

// uploadMarker is the provider's path segment that on-the-fly transforms are
// injected after. Cloudinary serves derived renditions for URLs of the form
// .../upload/w_{n},h_{n}/... so the insertion point must be exact.
const uploadMarker = "upload/"

// Field is a single name/value pair of a representation.
type Field struct {
	Name  string
	Value string
}

// Representation is the external-facing view of an image: an ordered list of
// fields that marshals to a JSON object preserving insertion order.
type Representation []Field

func (r Representation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of the named field, if present.
func (r Representation) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// ThumbnailURL derives the URL of a square rendition by reinserting
// "upload/w_{size},h_{size}/" at the first occurrence of the upload marker.
// URLs without the marker are returned unchanged; the provider cannot derive
// renditions for them.
func ThumbnailURL(canonicalURL string, size int) string {
	before, after, ok := strings.Cut(canonicalURL, uploadMarker)
	if !ok {
		return canonicalURL
	}
	return fmt.Sprintf("%s%sw_%d,h_%d/%s", before, uploadMarker, size, size, after)
}

// LinkURL builds the absolute URL of the resolution endpoint for a link id.
func LinkURL(baseURL, linkID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/expiringlink/" + linkID + "/"
}

// Image builds the representation of an image as seen by a holder of the
// given tier: base fields, one "Thumbnail {size}px" field per granted size
// when the tier exposes thumbnails, and an "Expiring link" field when a link
// exists. A nil link is not an error; the field is simply omitted.
func Image(img *model.Image, tier *model.AccountTier, link *model.ExpiringLink, baseURL string) Representation {
	rep := Representation{
		{Name: "name", Value: img.Name},
		{Name: "url", Value: img.URL},
	}

	if tier.ShowsThumbnails() {
		for _, size := range tier.GrantedThumbnailSizes() {
			rep = append(rep, Field{
				Name:  fmt.Sprintf("Thumbnail %dpx", size),
				Value: ThumbnailURL(img.URL, size),
			})
		}
	}

	if link != nil {
		rep = append(rep, Field{
			Name:  "Expiring link",
			Value: LinkURL(baseURL, link.ID),
		})
	}

	return rep
}
