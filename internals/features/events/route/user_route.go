package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/events/controller"
)

// EventUserRoutes: member-facing event endpoints, mounted under /api/u.
func EventUserRoutes(r fiber.Router, db *gorm.DB) {
	eventCtrl := controller.NewEventController(db)
	sessionCtrl := controller.NewEventSessionController(db)
	participantCtrl := controller.NewEventParticipantController(db)

	r.Get("/events", eventCtrl.GetAllEvents)
	r.Get("/events/:id", eventCtrl.GetEventByID)
	r.Get("/events/:event_id/sessions", sessionCtrl.GetSessionsByEvent)
	r.Post("/events/:event_id/join", participantCtrl.JoinEvent)
	r.Delete("/events/:event_id/leave", participantCtrl.LeaveEvent)
	r.Get("/my-events", participantCtrl.GetMyEvents)
}
