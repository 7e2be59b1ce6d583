// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mindmash-api/internal/api/handler"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Auth *handler.AuthHandler
	Mint *handler.MintHandler
	Chat *handler.ChatHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/auth/callback", h.Auth.Callback)
	r.Get("/users/recent", h.Auth.ListRecent)

	r.Post("/nft/mint", h.Mint.Mint)
	r.Post("/chat", h.Chat.Chat)

	return r
}
