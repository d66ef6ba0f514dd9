package dto

import (
	"time"

	"github.com/google/uuid"

	"studentorg_backend/internals/features/users/model"
)

type RegisterRequest struct {
	UserName      string `json:"user_name" validate:"required,min=3,max=50"`
	StudentNumber string `json:"student_number" validate:"required,min=3,max=20"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	UserName      string    `json:"user_name"`
	StudentNumber string    `json:"student_number"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(u *model.UserModel) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		UserName:      u.UserName,
		StudentNumber: u.StudentNumber,
		Email:         u.Email,
		CreatedAt:     u.CreatedAt,
	}
}
