package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"imgvault/internal/ctxkeys"
	"imgvault/internal/service/payment"
)

type BillingHandler struct {
	provider payment.Provider
}

func NewBillingHandler(provider payment.Provider) *BillingHandler {
	return &BillingHandler{provider: provider}
}

type checkoutRequest struct {
	Plan string `json:"plan"`
}

// CreateCheckout handles POST /billing/checkout: returns the provider URL
// where the caller purchases a tier upgrade.
func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		respondDetail(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	user := ctxkeys.User(r.Context())

	var req checkoutRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, ok := payment.TierForPlan(req.Plan); !ok {
		respondDetail(w, http.StatusBadRequest, "unknown plan")
		return
	}

	url, err := h.provider.CreateCheckoutURL(user.ID, req.Plan, user.Email)
	if err != nil {
		slog.Error("checkout creation failed", "error", err, "user_id", user.ID, "plan", req.Plan)
		respondDetail(w, http.StatusBadGateway, "failed to create checkout")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Webhook handles POST /webhooks/payment. Signature verification happens in
// the provider.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		respondDetail(w, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	err = h.provider.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Error("webhook handling failed", "error", err, "provider", h.provider.Name())
		respondDetail(w, http.StatusBadRequest, "webhook rejected")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
