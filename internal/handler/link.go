package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"imgvault/internal/repository"
	"imgvault/internal/service"
)

// expiredLinkMessage is returned with a success status: expiry is normal
// payload, not a failure.
const expiredLinkMessage = "This link has expired!"

type LinkHandler struct {
	linkService *service.LinkService
}

func NewLinkHandler(linkService *service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// Resolve handles GET /expiringlink/{id}/ (unauthenticated).
func (h *LinkHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	resolution, err := h.linkService.Resolve(id)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			respondDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		slog.Error("failed to resolve link", "error", err, "link_id", id)
		respondDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	if resolution.Expired {
		respondJSON(w, http.StatusOK, map[string]string{"url": expiredLinkMessage})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": resolution.URL})
}
