package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgvault/internal/model"
	"imgvault/internal/repository"
)

func seededLinkService(link *model.ExpiringLink, now time.Time) *LinkService {
	links := newFakeLinkRepo()
	if link != nil {
		_ = links.Create(link)
	}
	svc := NewLinkService(links, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

func TestResolveReturnsDestinationWhileValid(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	link := &model.ExpiringLink{
		ID:        "link-1",
		ImageID:   "img-1",
		URL:       "http://host/upload/foo",
		ExpiresIn: 300,
		CreatedAt: created,
	}

	svc := seededLinkService(link, created.Add(299*time.Second))

	res, err := svc.Resolve("link-1")
	require.NoError(t, err)
	assert.False(t, res.Expired)
	assert.Equal(t, "http://host/upload/foo", res.URL)
}

func TestResolveExpiresAtBoundary(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	link := &model.ExpiringLink{
		ID:        "link-1",
		ImageID:   "img-1",
		URL:       "http://host/upload/foo",
		ExpiresIn: 300,
		CreatedAt: created,
	}

	svc := seededLinkService(link, created.Add(300*time.Second))

	res, err := svc.Resolve("link-1")
	require.NoError(t, err)
	assert.True(t, res.Expired)
	assert.Empty(t, res.URL, "expired resolutions never leak the destination")
}

func TestResolveUnknownLink(t *testing.T) {
	svc := seededLinkService(nil, time.Now())

	_, err := svc.Resolve("nope")
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestResolveIgnoresDeploymentTimezoneOffset(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	link := &model.ExpiringLink{
		ID:        "link-1",
		ImageID:   "img-1",
		URL:       "http://host/upload/foo",
		ExpiresIn: 300,
		CreatedAt: created,
	}

	links := newFakeLinkRepo()
	require.NoError(t, links.Create(link))
	svc := NewLinkService(links, warsaw)
	svc.now = func() time.Time { return created.Add(299 * time.Second) }

	res, err := svc.Resolve("link-1")
	require.NoError(t, err)
	assert.False(t, res.Expired, "timezone conversion must not shift the expiry instant")
}
