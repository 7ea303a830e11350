package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-notify-api/internal/application/audience"
	"github.com/go-notify-api/internal/application/feed"
	"github.com/go-notify-api/internal/application/publisher"
	"github.com/go-notify-api/internal/application/reminder"
	"github.com/go-notify-api/internal/application/retention"
	"github.com/go-notify-api/internal/config"
	"github.com/go-notify-api/internal/domain"
	"github.com/go-notify-api/internal/transport/http/handler"
	appmiddleware "github.com/go-notify-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWT != nil {
		authMw = appmiddleware.Auth(deps.JWT)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 10 requests/second, burst of 20 — applied to the publish endpoints.
	publishRL := appmiddleware.NewRateLimiter(rate.Limit(10), 20)

	resolver := audience.NewResolver(deps.Entities, cfg.FreshnessWindow)
	reminderSvc := reminder.NewService(deps.LogStore, deps.Entities, cfg.ReminderLookahead)
	feedSvc := feed.NewService(deps.LogStore, resolver)
	publishSvc := publisher.NewService(deps.LogStore, reminderSvc, deps.Mirror, deps.Names)
	retentionSvc := retention.NewService(deps.LogStore, deps.Archiver, cfg.RetentionAge)

	healthH := handler.NewHealthHandler()
	notifH := handler.NewNotificationHandler(feedSvc)
	eventH := handler.NewEventHandler(publishSvc)
	maintH := handler.NewMaintenanceHandler(reminderSvc, retentionSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/notifications", notifH.Feed)
			r.Get("/notifications/unread-count", notifH.UnreadCount)
			r.Put("/notifications/{id}/read", notifH.MarkRead)
			r.Post("/notifications/read-all", notifH.MarkAllRead)
			r.Delete("/notifications/{id}", notifH.Remove)

			r.Group(func(r chi.Router) {
				r.Use(publishRL.Limit)

				r.Post("/events/request-created", eventH.RequestCreated)
				r.Post("/events/request-updated", eventH.RequestUpdated)
				r.Post("/events/request-viewed", eventH.RequestViewed)
				r.Post("/events/request-reviewed", eventH.RequestReviewed)
				r.Post("/events/request-cancelled", eventH.RequestCancelled)
				r.Post("/events/request-converted", eventH.RequestConverted)
				r.Post("/events/order-status", eventH.OrderStatusChanged)
				r.Post("/events/order-arrival", eventH.OrderArrivalRecorded)
				r.Post("/events/order-closed", eventH.OrderClosed)
			})

			// Internal maintenance routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleSystem))

				r.Post("/reminders/sync", maintH.SyncReminders)
				r.Post("/retention/prune", maintH.Prune)
			})
		})
	})

	return r
}
