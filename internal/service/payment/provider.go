package payment

import (
	"log/slog"
	"net/http"

	"imgvault/internal/config"
	"imgvault/internal/model"
	"imgvault/internal/service"
)

// Plan ids offered at checkout, mapped to the account tiers they purchase.
const (
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// TierForPlan maps a purchasable plan to its account tier name.
func TierForPlan(planID string) (string, bool) {
	switch planID {
	case PlanPremium:
		return model.TierPremium, true
	case PlanEnterprise:
		return model.TierEnterprise, true
	default:
		return "", false
	}
}

// Provider defines the interface a payment provider must implement
type Provider interface {
	// CreateCheckoutURL creates a checkout session and returns the URL
	CreateCheckoutURL(userID, planID, customerEmail string) (string, error)

	// HandleWebhook processes webhook events from the payment provider
	HandleWebhook(payload []byte, headers http.Header) error

	// Name returns the provider name (e.g., "stripe")
	Name() string
}

// NewProvider creates the configured payment provider. Returns nil when no
// provider is configured; tier changes then require direct assignment.
func NewProvider(cfg *config.Config, userService *service.UserService) Provider {
	if cfg.StripeSecretKey == "" {
		slog.Info("payment provider disabled, no STRIPE_SECRET_KEY configured")
		return nil
	}

	slog.Info("initializing payment provider", "provider", "stripe")
	return NewStripeProvider(cfg, userService)
}
