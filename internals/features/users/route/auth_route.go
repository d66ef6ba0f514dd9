package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/users/controller"
	"studentorg_backend/internals/middlewares"
)

// AuthRoutes registers the public auth endpoints.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	grp := app.Group("/api/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}
