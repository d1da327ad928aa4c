package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/middleware"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/config"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
)

// Services bundles the services the router dispatches to.
type Services struct {
	System    *service.SystemService
	User      *service.UserService
	Holding   *service.HoldingService
	Reconcile *service.ReconcileService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, logger logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.CORS(cfg.CORS.AllowedOrigins))

	commitLimiter := custommiddleware.NewRateLimiter(cfg.RateLimit.CommitsPerMinute, cfg.RateLimit.Burst)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/user", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(services.User)
			holdingHandler := handlers.NewHoldingHandler(services.Holding)
			reconcileHandler := handlers.NewReconcileHandler(services.Reconcile)

			r.With(custommiddleware.APIKeyMiddleware).Post("/", userHandler.CreateUser)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDParam("uuid"))
				r.Get("/", userHandler.GetUser)
				r.Get("/holdings", holdingHandler.Holdings)
				r.Get("/holdings/duplicates", holdingHandler.DuplicateAliases)

				r.Route("/reconcile", func(r chi.Router) {
					r.Post("/simulate", reconcileHandler.Simulate)
					r.With(custommiddleware.APIKeyMiddleware, commitLimiter.Handler).Post("/commit", reconcileHandler.Commit)
				})
			})
		})
	})

	return r
}
