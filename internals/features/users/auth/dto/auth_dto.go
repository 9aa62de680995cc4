package dto

import (
	"strings"

	"github.com/google/uuid"

	model "shuleni_backend/internals/features/users/auth/model"
)

/* =========================
   REQUEST
   ========================= */

type RegisterRequest struct {
	Name     string     `json:"name" validate:"required,min=3,max=120"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     string     `json:"role" validate:"required,oneof=admin teacher accountant"`
	SchoolID *uuid.UUID `json:"school_id" validate:"required"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

/* =========================
   RESPONSE
   ========================= */

type UserResponse struct {
	UserID   uuid.UUID  `json:"user_id"`
	SchoolID *uuid.UUID `json:"school_id,omitempty"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	IsActive bool       `json:"is_active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

func ToUserResponse(m *model.UserModel) UserResponse {
	return UserResponse{
		UserID:   m.UserID,
		SchoolID: m.UserSchoolID,
		Name:     m.UserName,
		Email:    m.UserEmail,
		Role:     m.UserRole,
		IsActive: m.UserIsActive,
	}
}
