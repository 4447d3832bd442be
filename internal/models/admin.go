package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Admin struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	Phone        string    `json:"phone" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsVerified   bool      `json:"is_verified" gorm:"not null;default:false"`
	IsSuperAdmin bool      `json:"is_super_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims is the payload embedded in access tokens. Subject carries the
// admin ID.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type AdminCreate struct {
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,startswith=+"`
	Password     string `json:"password" validate:"required,min=8"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// AdminLogin carries presence checks only; credential correctness is the
// authenticator's job.
type AdminLogin struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePassword struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type VerifyOTP struct {
	Email   string `json:"email" validate:"required,email"`
	OTPCode string `json:"otp_code" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
