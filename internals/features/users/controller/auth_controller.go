package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studentorg_backend/internals/configs"
	"studentorg_backend/internals/features/users/dto"
	"studentorg_backend/internals/features/users/model"
	helper "studentorg_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// 🟢 POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] body parser: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, validationErrorsToMap(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] hash password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}

	user := model.UserModel{
		UserName:      strings.TrimSpace(req.UserName),
		StudentNumber: strings.TrimSpace(req.StudentNumber),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Password:      string(hashed),
	}
	user.SetDefaultValues()

	if err := ctrl.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Email or student number already registered")
		}
		log.Printf("[ERROR] create user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}

	return helper.JsonCreated(c, "Registration successful", dto.ToUserResponse(&user))
}

// 🟢 POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, validationErrorsToMap(err))
	}

	var user model.UserModel
	if err := ctrl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Printf("[ERROR] find user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := createAccessToken(&user)
	if err != nil {
		log.Printf("[ERROR] sign token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        *dto.ToUserResponse(&user),
	})
}

func createAccessToken(u *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func validationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}
