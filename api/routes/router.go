package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpcarreras/garagehub-admin/api/controllers"
	"github.com/jpcarreras/garagehub-admin/api/middleware"
	"github.com/jpcarreras/garagehub-admin/internal/auth"
	"github.com/jpcarreras/garagehub-admin/internal/commission"
	"github.com/jpcarreras/garagehub-admin/internal/garages"
	"github.com/jpcarreras/garagehub-admin/internal/notifications"
	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/internal/payments"
	"github.com/jpcarreras/garagehub-admin/internal/points"
	"github.com/jpcarreras/garagehub-admin/internal/settlement"
	pkgAuth "github.com/jpcarreras/garagehub-admin/pkg/auth"
	"github.com/jpcarreras/garagehub-admin/pkg/auth/session"
	"github.com/jpcarreras/garagehub-admin/pkg/config"
	"github.com/jpcarreras/garagehub-admin/pkg/db"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
)

type sessionManager interface {
	session.AccessSessionChecker
	Generate(context.Context, string) (string, error)
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services bundles the domain services the router exposes.
type Services struct {
	Auth          auth.Service
	Owners        owners.Service
	Commission    commission.Service
	Settlement    settlement.Service
	Payments      payments.Service
	Points        points.Service
	Garages       garages.Service
	Notifications notifications.Service
}

// NewRouter assembles the admin API's HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP db.Pinger,
	sessions sessionManager,
	registry *prometheus.Registry,
	services Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(services.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(services.Auth, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(services.Auth, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole(pkgAuth.RoleAdmin, logg))

		r.Post("/actions", controllers.AdminActions(controllers.ActionServices{
			Owners:     services.Owners,
			Commission: services.Commission,
			Settlement: services.Settlement,
			Payments:   services.Payments,
			Points:     services.Points,
		}, logg))

		r.Route("/owners", func(r chi.Router) {
			r.Patch("/{ownerId}/status", controllers.OwnerUpdateStatus(services.Owners, logg))
		})

		r.Route("/garages", func(r chi.Router) {
			r.Get("/{garageId}", controllers.GarageStatus(services.Garages, logg))
			r.Get("/{garageId}/owner", controllers.GarageOwnerResolve(services.Owners, logg))
			r.Patch("/{garageId}/verify", controllers.GarageSetVerified(services.Garages, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/{paymentId}", controllers.PaymentDetail(services.Payments, logg))
			r.Post("/{paymentId}/refund", controllers.PaymentRefund(services.Payments, logg))
		})

		r.Route("/settlement", func(r chi.Router) {
			r.Post("/backfill", controllers.SettlementBackfill(services.Settlement, logg))
			r.Get("/leaderboard", controllers.SettlementLeaderboard(services.Settlement, logg))
		})

		r.Post("/commission/default", controllers.CommissionApplyDefault(services.Commission, logg))

		r.Get("/users/{username}/points", controllers.PointsHistory(services.Points, logg))
		r.Get("/notifications/badges", controllers.NotificationBadges(services.Notifications, logg))
	})

	return r
}
