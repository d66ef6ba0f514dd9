package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"studentorg_backend/internals/constants"
)

func roleTestApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	})
	app.Get("/admin-only",
		OnlyRoles(constants.RoleErrorAdmin("organizer tools"), constants.AdminOnly...),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

func TestOnlyRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "admin passes", role: constants.RoleAdmin, wantStatus: fiber.StatusOK},
		{name: "regular user forbidden", role: constants.RoleUser, wantStatus: fiber.StatusForbidden},
		{name: "missing role unauthorized", role: "", wantStatus: fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := roleTestApp(tt.role)
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin-only", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
