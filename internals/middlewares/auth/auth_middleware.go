// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"studentorg_backend/internals/configs"
	helper "studentorg_backend/internals/helpers"
	userModel "studentorg_backend/internals/features/users/model"
)

// AuthMiddleware verifies the bearer token and stores the identity claims in
// Locals ("user_id", "role") for downstream handlers.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Token parse failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID)
		c.Locals(helper.LocRawToken, tokenString)

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] ensureUserActive:", err)
			return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
		}

		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		if name, ok := claims["user_name"].(string); ok {
			c.Locals("user_name", name)
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	if raw := helper.GetRawAccessToken(c); raw != "" {
		return raw, nil
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		return "", errors.New("Unauthorized - Missing Authorization header")
	}
	const p = "Bearer "
	if !strings.HasPrefix(auth, p) {
		return "", errors.New("Unauthorized - Invalid Authorization format")
	}
	return strings.TrimSpace(auth[len(p):]), nil
}

// validateTokenExpiry checks exp with a small leeway for clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiresAt.Add(leeway)) {
		return fmt.Errorf("token expired at %s", expiresAt)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (string, error) {
	idRaw, ok := claims["user_id"]
	if !ok {
		return "", errors.New("missing user_id claim")
	}
	id, ok := idRaw.(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", errors.New("invalid user_id claim")
	}
	return id, nil
}

func ensureUserActive(db *gorm.DB, userID string) error {
	var u userModel.UserModel
	if err := db.Select("id", "is_active").Where("id = ?", userID).First(&u).Error; err != nil {
		return err
	}
	if !u.IsActive {
		return errors.New("user is inactive")
	}
	return nil
}
