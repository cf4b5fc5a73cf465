package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"valorant-accounts/internal/middleware"
	"valorant-accounts/internal/service"
	"valorant-accounts/internal/vault"
)

// Server exposes the account manager to the desktop UI as a local JSON API.
type Server struct {
	accounts *service.AccountService
	auth     *service.AuthService
	store    *vault.Store
	logger   zerolog.Logger
}

func New(accounts *service.AccountService, auth *service.AuthService, store *vault.Store, logger zerolog.Logger) *Server {
	return &Server{accounts: accounts, auth: auth, store: store, logger: logger}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))

	r.Post("/auth/verify", s.handleVerifyPassword)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", s.handleListAccounts)
		r.Post("/", s.handleAddAccount)
		r.Post("/import", s.handleImport)

		r.Post("/refresh", s.handleRefreshAll)
		r.Delete("/refresh", s.handleStopRefresh)
		r.Get("/refresh", s.handleRefreshStatus)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", s.handleUpdateAccount)
			r.Delete("/", s.handleDeleteAccount)
			r.Post("/skins", s.handleToggleSkins)
			r.Post("/refresh", s.handleRefreshOne)
			r.Get("/history", s.handleHistory)
		})
	})

	r.Get("/settings/theme", s.handleGetTheme)
	r.Put("/settings/theme", s.handleSetTheme)

	return r
}
