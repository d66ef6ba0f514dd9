package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table. A user is a student member of the
// organization; role "admin" marks organizers.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName      string    `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	StudentNumber string    `gorm:"size:20;unique;not null" json:"student_number" validate:"required,min=3,max=20"`
	Email         string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password      string    `gorm:"not null" json:"-" validate:"required,min=8"`
	Role          string    `gorm:"type:varchar(20);not null;default:'user'" json:"-"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "user"
	}
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
