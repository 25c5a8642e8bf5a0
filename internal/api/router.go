package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tradepulse/Social-Trading-Backend/internal/api/handlers"
	custommiddleware "github.com/tradepulse/Social-Trading-Backend/internal/api/middleware"
	"github.com/tradepulse/Social-Trading-Backend/internal/config"
	"github.com/tradepulse/Social-Trading-Backend/internal/service"
	"github.com/tradepulse/Social-Trading-Backend/internal/snaptrade"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	syncService *service.SyncService,
	accountService *service.AccountService,
	userService *service.UserService,
	client snaptrade.Client,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace, open for load balancer probes
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Everything else requires the internal API key
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)

			r.Route("/sync", func(r chi.Router) {
				syncHandler := handlers.NewSyncHandler(syncService)
				r.Post("/account-activities", syncHandler.SyncAccountActivities)
			})

			r.Route("/accounts", func(r chi.Router) {
				accountHandler := handlers.NewAccountHandler(accountService, client)
				r.Get("/", accountHandler.ListAccounts)
				r.Post("/save", accountHandler.SaveAccounts)
				r.Route("/{accountId}", func(r chi.Router) {
					r.Get("/", accountHandler.GetAccount)
					r.Get("/details", accountHandler.GetAccountDetails)
					r.Get("/positions", accountHandler.ListPositions)
					r.Get("/options", accountHandler.ListOptionPositions)
				})
			})

			r.Route("/connections", func(r chi.Router) {
				connectionHandler := handlers.NewConnectionHandler(accountService, client)
				r.Get("/", connectionHandler.ListConnections)
				r.Post("/save", connectionHandler.SaveConnection)
				r.Post("/portal", connectionHandler.CreatePortalURL)
				r.Delete("/{connectionId}", connectionHandler.DeleteConnection)
			})

			r.Route("/users", func(r chi.Router) {
				userHandler := handlers.NewUserHandler(userService)
				r.Post("/register", userHandler.RegisterUser)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", userHandler.DeleteUser)
				})
			})
		})
	})

	return r
}
