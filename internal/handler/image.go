package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"imgvault/internal/ctxkeys"
	"imgvault/internal/render"
	"imgvault/internal/repository"
	"imgvault/internal/service"
	"imgvault/internal/validation"
)

type ImageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Create handles POST /image/: multipart {name, image, link_expiry_time?}.
// All field validation runs before the provider is contacted.
func (h *ImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	name := r.FormValue("name")

	var header *multipart.FileHeader
	file, header, err := r.FormFile("image")
	if err != nil {
		header = nil
	} else {
		defer func() { _ = file.Close() }()
	}

	linkTTL, ttlErrs := parseLinkTTL(r.FormValue("link_expiry_time"))

	errs := validation.ValidateUpload(name, header, linkTTL)
	if ttlErrs != nil {
		if errs == nil {
			errs = validation.Errors{}
		}
		errs["link_expiry_time"] = append(errs["link_expiry_time"], ttlErrs.Error())
	}
	if errs.Any() {
		respondFieldErrors(w, errs)
		return
	}

	// Links are only requested by tiers that may issue them; the TTL is
	// ignored otherwise (logged by the service)
	result, err := h.imageService.Upload(r.Context(), user, name, file, linkTTL)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			respondFieldErrors(w, validation.Errors{"name": {"image with this name already exists"}})
			return
		}
		if errors.Is(err, service.ErrUploadFailed) {
			slog.Error("upload provider failed", "error", err, "user_id", user.ID)
			respondDetail(w, http.StatusBadGateway, "media upload failed")
			return
		}
		slog.Error("image creation failed", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, h.imageService.Representation(result.Image, user.Tier))
}

// List handles GET /image/: the caller's images only.
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	images, err := h.imageService.ByOwner(user.ID)
	if err != nil {
		slog.Error("failed to list images", "error", err, "user_id", user.ID)
		respondDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	reps := make([]render.Representation, 0, len(images))
	for _, image := range images {
		reps = append(reps, h.imageService.Representation(image, user.Tier))
	}

	respondJSON(w, http.StatusOK, reps)
}

// Get handles GET /image/{id}/: 404 unless the image exists and is owned by
// the caller.
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	image, err := h.imageService.ByIDAndOwner(id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			respondDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		slog.Error("failed to get image", "error", err, "image_id", id)
		respondDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, h.imageService.Representation(image, user.Tier))
}

// parseLinkTTL parses the optional link_expiry_time form field. Returns nil
// when the field is absent; bounds are checked by validation.
func parseLinkTTL(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}

	ttl, err := strconv.Atoi(value)
	if err != nil {
		return nil, errors.New("must be an integer number of seconds")
	}

	return &ttl, nil
}
