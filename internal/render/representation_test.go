package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgvault/internal/model"
)

func TestThumbnailURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		size int
		want string
	}{
		{
			name: "inserts transform after first upload marker",
			url:  "http://host/upload/foo",
			size: 200,
			want: "http://host/upload/w_200,h_200/foo",
		},
		{
			name: "only the first marker is split",
			url:  "http://host/upload/dir/upload/foo",
			size: 400,
			want: "http://host/upload/w_400,h_400/dir/upload/foo",
		},
		{
			name: "url without marker is returned unchanged",
			url:  "http://host/foo.jpg",
			size: 200,
			want: "http://host/foo.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThumbnailURL(tt.url, tt.size))
		})
	}
}

func TestRepresentationMarshalPreservesOrder(t *testing.T) {
	rep := Representation{
		{Name: "name", Value: "foo"},
		{Name: "url", Value: "http://host/upload/foo"},
		{Name: "Thumbnail 200px", Value: "http://host/upload/w_200,h_200/foo"},
	}

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"foo","url":"http://host/upload/foo","Thumbnail 200px":"http://host/upload/w_200,h_200/foo"}`, string(data))
}

func TestImageRepresentationForPremiumTier(t *testing.T) {
	img := &model.Image{Name: "foo", URL: "http://host/upload/foo"}
	tier := &model.AccountTier{
		Name:              model.TierPremium,
		OriginalSize:      true,
		ExposesThumbnails: true,
		Sizes:             []int{200, 400},
	}

	rep := Image(img, tier, nil, "http://host")

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "foo",
		"url": "http://host/upload/foo",
		"Thumbnail 200px": "http://host/upload/w_200,h_200/foo",
		"Thumbnail 400px": "http://host/upload/w_400,h_400/foo"
	}`, string(data))
}

func TestImageRepresentationHidesThumbnailsForEntryTier(t *testing.T) {
	img := &model.Image{Name: "foo", URL: "http://host/upload/foo"}
	// Sizes are configured but the tier does not expose them
	tier := &model.AccountTier{
		Name:  model.TierBasic,
		Sizes: []int{200, 400},
	}

	rep := Image(img, tier, nil, "http://host")

	data, err := json.Marshal(rep)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"foo","url":"http://host/upload/foo"}`, string(data))
}

func TestImageRepresentationWithoutTier(t *testing.T) {
	img := &model.Image{Name: "foo", URL: "http://host/upload/foo"}

	rep := Image(img, nil, nil, "http://host")

	_, hasThumb := rep.Get("Thumbnail 200px")
	assert.False(t, hasThumb)

	name, _ := rep.Get("name")
	assert.Equal(t, "foo", name)
}

func TestImageRepresentationAppendsExpiringLink(t *testing.T) {
	img := &model.Image{ID: "img-1", Name: "foo", URL: "http://host/upload/foo"}
	tier := &model.AccountTier{
		Name:              model.TierEnterprise,
		FetchURL:          true,
		ExposesThumbnails: true,
		Sizes:             []int{200},
	}
	link := &model.ExpiringLink{ID: "link-1", ImageID: "img-1", URL: img.URL}

	rep := Image(img, tier, link, "http://api.example.com/")

	got, ok := rep.Get("Expiring link")
	assert.True(t, ok)
	assert.Equal(t, "http://api.example.com/expiringlink/link-1/", got)

	// Absent link omits the field, it is not an error
	rep = Image(img, tier, nil, "http://api.example.com/")
	_, ok = rep.Get("Expiring link")
	assert.False(t, ok)
}
