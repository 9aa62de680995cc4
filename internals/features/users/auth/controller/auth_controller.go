package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "shuleni_backend/internals/features/users/auth/dto"
	model "shuleni_backend/internals/features/users/auth/model"
	service "shuleni_backend/internals/features/users/auth/service"
	helper "shuleni_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

// =========================================================
// REGISTER - POST /auth/register
// =========================================================
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var cnt int64
	if err := h.DB.Model(&model.UserModel{}).
		Where("lower(user_email) = ?", req.Email).
		Count(&cnt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing accounts")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	u := model.UserModel{
		UserSchoolID: req.SchoolID,
		UserName:     req.Name,
		UserEmail:    req.Email,
		UserPassword: hash,
		UserRole:     req.Role,
		UserIsActive: true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create account")
	}
	return helper.JsonCreated(c, "Account created", dto.ToUserResponse(&u))
}

// =========================================================
// LOGIN - POST /auth/login
// =========================================================
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var u model.UserModel
	if err := h.DB.Where("lower(user_email) = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if !u.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if !service.CheckPassword(u.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	access, refresh, err := service.GenerateTokens(&u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(&u),
	})
}

// =========================================================
// GOOGLE LOGIN - POST /auth/google
// Staff accounts must already exist; Google only authenticates.
// =========================================================
func (h *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email, _, err := service.VerifyGoogleIDToken(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google token verification failed")
	}

	var u model.UserModel
	if err := h.DB.Where("lower(user_email) = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusForbidden, "No account for this Google email")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if !u.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	access, refresh, err := service.GenerateTokens(&u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(&u),
	})
}

// =========================================================
// LOGOUT - POST /auth/logout (authenticated)
// =========================================================
func (h *AuthController) Logout(c *fiber.Ctx) error {
	tok, _ := c.Locals("token_string").(string)
	if tok == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No token to revoke")
	}
	entry := model.TokenBlacklistModel{
		TokenBlacklistToken:     tok,
		TokenBlacklistExpiresAt: time.Now().Add(service.AccessTokenTTL),
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}
	return helper.JsonOK(c, "Logged out", nil)
}

// =========================================================
// CHANGE PASSWORD - POST /auth/change-password (authenticated)
// Confirmation mismatch is rejected before any mutation.
// =========================================================
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.NewPassword != req.ConfirmPassword {
		return helper.JsonError(c, fiber.StatusBadRequest, "Password confirmation does not match")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var u model.UserModel
	if err := h.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Account not found")
	}
	if !service.CheckPassword(u.UserPassword, req.OldPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong current password")
	}

	hash, err := service.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.DB.Model(&u).Update("user_password", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helper.JsonOK(c, "Password updated", nil)
}
