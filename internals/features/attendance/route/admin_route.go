package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/attendance/controller"
)

// AttendanceAdminRoutes: organizer ledger endpoints, under /api/a.
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceAdminController(db)

	r.Get("/sessions/:id/attendance", ctrl.GetSessionAttendance)
	r.Get("/sessions/:id/attendance/count", ctrl.GetSessionAttendanceCount)
	r.Get("/events/:event_id/attendance/search", ctrl.SearchEventAttendance)
}
