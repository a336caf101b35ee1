package payment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"

	"imgvault/internal/config"
	"imgvault/internal/model"
	"imgvault/internal/service"
)

type StripeProvider struct {
	cfg         *config.Config
	userService *service.UserService
}

func NewStripeProvider(cfg *config.Config, userService *service.UserService) *StripeProvider {
	stripe.Key = cfg.StripeSecretKey

	return &StripeProvider{
		cfg:         cfg,
		userService: userService,
	}
}

func (s *StripeProvider) Name() string {
	return "stripe"
}

func (s *StripeProvider) CreateCheckoutURL(userID, planID, customerEmail string) (string, error) {
	priceID := s.priceID(planID)
	if priceID == "" {
		return "", fmt.Errorf("no price configured for plan: %s", planID)
	}

	metadata := map[string]string{
		"user_id": userID,
		"plan_id": planID,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(s.cfg.AppURL + "/billing/success"),
		CancelURL:  stripe.String(s.cfg.AppURL + "/billing/cancel"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(customerEmail),
		Metadata:      metadata,
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			// Carried onto the subscription so cancellation events can be
			// mapped back to the user
			Metadata: metadata,
		},
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	slog.Info("stripe checkout created", "user_id", userID, "plan_id", planID, "session_id", sess.ID)
	return sess.URL, nil
}

func (s *StripeProvider) HandleWebhook(payload []byte, headers http.Header) error {
	signature := headers.Get("Stripe-Signature")

	// Stripe API versions are backwards compatible; a version mismatch
	// between SDK and dashboard is safe to ignore
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	slog.Info("stripe webhook received", "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(event.Data.Raw)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(event.Data.Raw)
	default:
		// Unhandled event types are acknowledged, not errors
		return nil
	}
}

func (s *StripeProvider) handleCheckoutCompleted(raw json.RawMessage) error {
	var sess stripe.CheckoutSession
	err := json.Unmarshal(raw, &sess)
	if err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	userID := sess.Metadata["user_id"]
	planID := sess.Metadata["plan_id"]
	tierName, ok := TierForPlan(planID)
	if userID == "" || !ok {
		return fmt.Errorf("checkout session %s has unusable metadata (user_id=%q, plan_id=%q)", sess.ID, userID, planID)
	}

	return s.userService.AssignTierByName(userID, tierName)
}

func (s *StripeProvider) handleSubscriptionDeleted(raw json.RawMessage) error {
	var sub stripe.Subscription
	err := json.Unmarshal(raw, &sub)
	if err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		return fmt.Errorf("subscription %s has no user_id metadata", sub.ID)
	}

	return s.userService.AssignTierByName(userID, model.TierBasic)
}

func (s *StripeProvider) priceID(planID string) string {
	switch planID {
	case PlanPremium:
		return s.cfg.StripePriceIDPremium
	case PlanEnterprise:
		return s.cfg.StripePriceIDEnterprise
	default:
		return ""
	}
}
