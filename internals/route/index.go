// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentorg_backend/internals/constants"
	attendanceRoute "studentorg_backend/internals/features/attendance/route"
	eventRoute "studentorg_backend/internals/features/events/route"
	userRoute "studentorg_backend/internals/features/users/route"
	authMiddleware "studentorg_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
	)
	eventRoute.EventUserRoutes(user, db)
	attendanceRoute.AttendanceUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("organizer tools"), constants.AdminOnly...),
	)
	eventRoute.EventAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db)
}
