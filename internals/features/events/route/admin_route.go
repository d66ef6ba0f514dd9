package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/events/controller"
)

// EventAdminRoutes: organizer endpoints, mounted under /api/a.
func EventAdminRoutes(r fiber.Router, db *gorm.DB) {
	eventCtrl := controller.NewEventController(db)
	sessionCtrl := controller.NewEventSessionController(db)

	r.Post("/events", eventCtrl.CreateEvent)
	r.Put("/events/:id", eventCtrl.UpdateEvent)
	r.Post("/events/:event_id/sessions", sessionCtrl.CreateEventSession)
	r.Put("/sessions/:id", sessionCtrl.UpdateEventSession)
	r.Patch("/sessions/:id/status", sessionCtrl.SetSessionStatus)
	r.Get("/sessions/:id/token", sessionCtrl.GetSessionToken)
}
