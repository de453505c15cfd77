package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	hrest "github.com/cropfresh/cropfresh-service-notification/internal/handler/http"
	wshandler "github.com/cropfresh/cropfresh-service-notification/internal/handler/ws"
)

// SetupRoutes configures the HTTP routes for the notification service
func SetupRoutes(
	r chi.Router,
	h *hrest.NotificationHandler,
	wsHandler *wshandler.WSHandler,
) chi.Router {
	// ---- Global Middleware ----
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Farmer-ID",
		},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// ============================================================
	// Farmer-facing routes (identity required)
	// ============================================================
	r.Route("/api/v1/farmer/notifications", func(r chi.Router) {
		r.Use(hrest.RequireFarmer)

		r.Get("/", h.ListNotifications)
		r.Get("/unread", h.ListUnread)
		r.Get("/unread/count", h.CountUnread)
		r.Patch("/{id}/read", h.MarkAsRead)
		r.Patch("/read-all", h.MarkAllRead)
		r.Delete("/{id}", h.DeleteNotification)

		r.Get("/preferences", h.GetPreferences)
		r.Put("/preferences", h.UpdatePreferences)

		r.Post("/devices", h.RegisterDevice)
		r.Delete("/devices", h.UnregisterDevice)

		r.Get("/sms-log", h.SmsAudit)

		// WebSocket endpoint
		r.Get("/ws", wsHandler.HandleNotifications)
	})

	// ============================================================
	// Internal routes (called by other services / the event bus)
	// ============================================================
	r.Route("/api/v1/internal/notifications", func(r chi.Router) {
		r.Post("/send", h.SendNotification)
		r.Post("/events", h.DispatchEvent)
	})

	return r
}
