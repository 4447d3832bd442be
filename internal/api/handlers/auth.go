package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/cleankili/backend/internal/auth"
	"github.com/cleankili/backend/internal/middleware"
	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/otp"
	"github.com/cleankili/backend/internal/storage"
	"github.com/cleankili/backend/internal/validation"
)

type AuthHandler struct {
	authenticator *auth.Authenticator
	codec         *auth.TokenCodec
	otp           *otp.Service
	store         storage.Storage
	logger        *logrus.Logger
}

func NewAuthHandler(
	authenticator *auth.Authenticator,
	codec *auth.TokenCodec,
	otpService *otp.Service,
	store storage.Storage,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		codec:         codec,
		otp:           otpService,
		store:         store,
		logger:        logger,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.AdminLogin
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidateStruct(req); err != nil {
		return validationResponse(c, err)
	}

	admin, err := h.authenticator.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		h.logger.WithError(err).Error("login failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	token, err := h.codec.Issue(admin.ID, admin.Email)
	if err != nil {
		h.logger.WithError(err).Error("token issuance failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.codec.TTL().Seconds()),
	})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.VerifyOTP
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidateStruct(req); err != nil {
		return validationResponse(c, err)
	}

	ok, err := h.otp.Verify(c.Context(), req.Email, req.OTPCode)
	if err != nil {
		h.logger.WithError(err).Error("otp verification failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired verification code",
		})
	}

	admin, err := h.store.GetAdminByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Admin not found",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	if err := h.store.SetAdminVerified(c.Context(), admin.ID); err != nil {
		h.logger.WithError(err).Error("admin verification update failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Account verified successfully",
	})
}

// ChangePassword rotates the calling admin's password after re-checking
// the current one. Admin-guarded by the router.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	admin, ok := c.Locals(middleware.AdminLocal).(*models.Admin)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "admin not found in context",
		})
	}

	var req models.ChangePassword
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidateStruct(req); err != nil {
		return validationResponse(c, err)
	}

	if !auth.VerifyPassword(req.CurrentPassword, admin.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Current password is incorrect",
		})
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.WithError(err).Error("password hashing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to change password",
		})
	}

	if err := h.store.UpdateAdminPassword(c.Context(), admin.ID, hash); err != nil {
		h.logger.WithError(err).Error("password update failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

// Me returns the admin resolved by the auth middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin, ok := c.Locals(middleware.AdminLocal).(*models.Admin)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "admin not found in context",
		})
	}
	return c.JSON(admin)
}
