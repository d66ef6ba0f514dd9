package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/attendance/controller"
)

// AttendanceUserRoutes: student-facing check-in endpoints, under /api/u.
func AttendanceUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCheckInController(db)

	r.Post("/sessions/:session_id/check-in", ctrl.CheckIn)
	r.Get("/events/:event_id/my-attendance", ctrl.GetMyAttendance)
}
