package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/nikki1405/CSP/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Donation *apiHandler.DonationHandler
	Event    *apiHandler.EventHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/donations", authMiddleware(handlers.Donation.List))
	r.POST("/api/v1/donations", authMiddleware(handlers.Donation.Create))
	// Static segment registered before {id} so the router never treats it as a donation ID.
	r.GET("/api/v1/donations/claims/mine", authMiddleware(handlers.Donation.MyClaims))
	r.GET("/api/v1/donations/{id}", authMiddleware(handlers.Donation.Get))
	r.PUT("/api/v1/donations/{id}", authMiddleware(handlers.Donation.Update))
	r.DELETE("/api/v1/donations/{id}", authMiddleware(handlers.Donation.Withdraw))
	r.POST("/api/v1/donations/{id}/claim", authMiddleware(handlers.Donation.Claim))
	r.POST("/api/v1/donations/{id}/complete", authMiddleware(handlers.Donation.Complete))
	r.GET("/api/v1/donations/{id}/claims", authMiddleware(handlers.Donation.ClaimHistory))
	r.GET("/api/v1/claims/mine", authMiddleware(handlers.Donation.MyClaimHistory))

	// Event listing is public; everything past it requires a session.
	r.GET("/api/v1/events", handlers.Event.List)
	r.POST("/api/v1/events", authMiddleware(handlers.Event.Create))
	r.POST("/api/v1/events/{id}/register", authMiddleware(handlers.Event.Register))

	return r
}
