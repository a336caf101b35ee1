package routes

import (
	"net/http"

	"imgvault/internal/app"
	"imgvault/internal/handler"
	"imgvault/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(a.AuthService)
	image := handler.NewImageHandler(a.ImageService)
	link := handler.NewLinkHandler(a.LinkService)
	billing := handler.NewBillingHandler(a.PaymentProvider)
	health := handler.NewHealthHandler(a.DB)

	mux := http.NewServeMux()

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// Images (owner only)
	mux.HandleFunc("POST /image/{$}", middleware.RequireAuth(image.Create))
	mux.HandleFunc("GET /image/{$}", middleware.RequireAuth(image.List))
	mux.HandleFunc("GET /image/{id}/{$}", middleware.RequireAuth(image.Get))

	// Expiring links (public; validity is checked per request)
	mux.HandleFunc("GET /expiringlink/{id}/{$}", link.Resolve)

	// Billing
	mux.HandleFunc("POST /billing/checkout", middleware.RequireAuth(billing.CreateCheckout))
	mux.HandleFunc("POST /webhooks/payment", billing.Webhook)

	// Health
	mux.HandleFunc("GET /healthz", health.Health)

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(a.AuthService, a.UserService),
	)

	return h
}
