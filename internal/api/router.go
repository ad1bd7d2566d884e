package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/waryix/FightFind/internal/auth"
	"github.com/waryix/FightFind/internal/middleware"
)

// Router holds all handlers and creates the chi router
type Router struct {
	partnerHandler    *PartnerHandler
	profileHandler    *ProfileHandler
	gymHandler        *GymHandler
	connectionHandler *ConnectionHandler
	messageHandler    *MessageHandler
	healthHandler     *HealthHandler
	jwtManager        *auth.JWTManager
	logger            *zap.Logger
}

// NewRouter creates a new router
func NewRouter(
	partnerHandler *PartnerHandler,
	profileHandler *ProfileHandler,
	gymHandler *GymHandler,
	connectionHandler *ConnectionHandler,
	messageHandler *MessageHandler,
	healthHandler *HealthHandler,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *Router {
	return &Router{
		partnerHandler:    partnerHandler,
		profileHandler:    profileHandler,
		gymHandler:        gymHandler,
		connectionHandler: connectionHandler,
		messageHandler:    messageHandler,
		healthHandler:     healthHandler,
		jwtManager:        jwtManager,
		logger:            logger,
	}
}

// Setup configures and returns the chi router
func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware())
	r.Use(chimiddleware.Compress(5))

	// Health endpoints (no auth required)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", rt.healthHandler.Health)
		r.Get("/ready", rt.healthHandler.Ready)
		r.Get("/live", rt.healthHandler.Live)
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Browsing works without an account
		r.Get("/partners", rt.partnerHandler.Search)
		r.Get("/gyms", rt.gymHandler.ListGyms)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.jwtManager))

			r.Get("/me", rt.profileHandler.Me)
			r.Post("/me", rt.profileHandler.SyncMe)

			r.Get("/profile", rt.profileHandler.GetProfile)
			r.Post("/profile", rt.profileHandler.UpsertProfile)
			r.Post("/profiles/{userId}/ratings", rt.profileHandler.RateProfile)

			r.Post("/gyms", rt.gymHandler.CreateGym)

			r.Route("/connections", func(r chi.Router) {
				r.Post("/", rt.connectionHandler.CreateConnection)
				r.Get("/", rt.connectionHandler.ListConnections)
				r.Patch("/{id}", rt.connectionHandler.UpdateStatus)

				r.Get("/{id}/messages", rt.messageHandler.ListMessages)
				r.Post("/{id}/messages", rt.messageHandler.SendMessage)
				r.Post("/{id}/messages/read", rt.messageHandler.MarkRead)
			})
		})
	})

	return r
}
