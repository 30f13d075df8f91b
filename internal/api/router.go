package api

import (
	"log/slog"
	"net/http"

	"github.com/dom/hero-archive/internal/api/handlers"
	"github.com/dom/hero-archive/internal/api/middleware"
	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/config"
	"github.com/dom/hero-archive/internal/service"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	heroHandler := handlers.NewHeroHandler(services.Hero)
	favoriteHandler := handlers.NewFavoriteHandler(services.Favorite)
	draftHandler := handlers.NewDraftHandler(services.Draft)
	reviewHandler := handlers.NewReviewHandler(services.Review)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, cfg.CORSAllowedOrigins)

	signedIn := middleware.Require(services.Verifier, authz.RequireAuthenticated)
	admin := middleware.Require(services.Verifier, authz.RequireAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(signedIn).Get("/me", authHandler.Me)
		})

		// Catalog: public reads, admin writes
		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.List)
			r.Get("/{id}", heroHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", heroHandler.Create)
				r.Put("/{id}", heroHandler.Update)
				r.Delete("/{id}", heroHandler.Delete)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(signedIn)
			r.Get("/", favoriteHandler.List)
			r.Post("/", favoriteHandler.Create)
			r.Put("/{id}", favoriteHandler.Update)
			r.Delete("/{id}", favoriteHandler.Delete)
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Use(signedIn)
			r.Get("/", draftHandler.List)
			r.Post("/", draftHandler.Create)
			r.Get("/{id}", draftHandler.Get)
			r.Put("/{id}", draftHandler.Update)
			r.Delete("/{id}", draftHandler.Delete)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/hero/{heroId}", reviewHandler.ListByHero)

			r.Group(func(r chi.Router) {
				r.Use(signedIn)
				r.Get("/", reviewHandler.ListMine)
				r.Post("/", reviewHandler.Create)
				r.Put("/{id}", reviewHandler.Update)
				r.Delete("/{id}", reviewHandler.Delete)
			})
		})

		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
