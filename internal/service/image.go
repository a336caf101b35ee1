package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"imgvault/internal/model"
	"imgvault/internal/render"
	"imgvault/internal/repository"
	"imgvault/internal/uploader"
)

var (
	// ErrUploadFailed marks a media provider failure. It aborts record
	// creation and must not be retried: re-uploading a non-idempotent asset
	// risks duplicate storage on the provider side.
	ErrUploadFailed = errors.New("media upload failed")
)

// scaleTransformation is applied when the tier does not permit storing the
// original resolution.
const scaleTransformation = "c_scale,w_200,h_200"

type ImageService struct {
	imageRepo repository.ImageRepository
	linkRepo  repository.LinkRepository
	uploader  uploader.Uploader
	appURL    string
}

func NewImageService(imageRepo repository.ImageRepository, linkRepo repository.LinkRepository, up uploader.Uploader, appURL string) *ImageService {
	return &ImageService{
		imageRepo: imageRepo,
		linkRepo:  linkRepo,
		uploader:  up,
		appURL:    appURL,
	}
}

// UploadResult reports the created image plus the outcome of the optional
// link creation. LinkErr distinguishes "link not requested" (nil Link, nil
// LinkErr) from "link creation failed" — the image is still created in the
// latter case.
type UploadResult struct {
	Image   *model.Image
	Link    *model.ExpiringLink
	LinkErr error
}

// Upload stores the image with the media provider and persists the record.
// Callers must validate the input fields first. Users whose tier does not
// permit original-size storage get a 200x200 scaled rendition; the caller's
// requested link TTL (nil when absent) creates an expiring link when the
// tier permits issuing them.
func (s *ImageService) Upload(ctx context.Context, user *model.User, name string, file io.Reader, linkTTL *int) (*UploadResult, error) {
	params := uploader.Params{
		Folder:   user.ID,
		PublicID: name,
	}
	if !user.Tier.CanStoreOriginal() {
		params.Transformation = scaleTransformation
	}

	url, err := s.uploader.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	image := &model.Image{
		ID:        uuid.New().String(),
		OwnerID:   user.ID,
		Name:      name,
		URL:       url,
		CreatedAt: time.Now(),
	}

	err = s.imageRepo.Create(image)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{Image: image}

	if linkTTL != nil {
		if !user.Tier.CanIssueLinks() {
			slog.Info("link TTL ignored, tier does not permit links", "user_id", user.ID, "image_id", image.ID)
			return result, nil
		}

		link := &model.ExpiringLink{
			ImageID:   image.ID,
			URL:       image.URL,
			ExpiresIn: *linkTTL,
		}
		err = s.linkRepo.Create(link)
		if err != nil {
			// The image itself is created; losing a requested TTL is
			// reported, not silenced.
			slog.Error("expiring link creation failed", "error", err, "image_id", image.ID)
			result.LinkErr = err
			return result, nil
		}
		result.Link = link
	}

	return result, nil
}

// ByIDAndOwner returns the image only when owned by the given user.
func (s *ImageService) ByIDAndOwner(id, ownerID string) (*model.Image, error) {
	return s.imageRepo.ByIDAndOwner(id, ownerID)
}

func (s *ImageService) ByOwner(ownerID string) ([]*model.Image, error) {
	return s.imageRepo.ByOwner(ownerID)
}

// Representation builds the tier-gated view of an image. The expiring-link
// field only appears for tiers that can issue links and only when a link
// exists; a missing link is omitted silently.
func (s *ImageService) Representation(image *model.Image, tier *model.AccountTier) render.Representation {
	var link *model.ExpiringLink
	if tier.CanIssueLinks() {
		l, err := s.linkRepo.ByImageID(image.ID)
		if err == nil {
			link = l
		} else if !errors.Is(err, repository.ErrLinkNotFound) {
			slog.Error("expiring link lookup failed", "error", err, "image_id", image.ID)
		}
	}

	return render.Image(image, tier, link, s.appURL)
}
