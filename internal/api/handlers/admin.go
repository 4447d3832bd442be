package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/cleankili/backend/internal/auth"
	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/notify"
	"github.com/cleankili/backend/internal/otp"
	"github.com/cleankili/backend/internal/storage"
	"github.com/cleankili/backend/internal/validation"
)

type AdminHandler struct {
	store    storage.Storage
	otp      *otp.Service
	notifier notify.Notifier
	logger   *logrus.Logger
}

func NewAdminHandler(store storage.Storage, otpService *otp.Service, notifier notify.Notifier, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		store:    store,
		otp:      otpService,
		notifier: notifier,
		logger:   logger,
	}
}

// InviteAdmin creates an unverified admin account and issues a one-time
// code for the verification step. Super-admin guarded by the router.
func (h *AdminHandler) InviteAdmin(c *fiber.Ctx) error {
	var req models.AdminCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidateStruct(req); err != nil {
		return validationResponse(c, err)
	}

	_, err := h.store.GetAdminByEmail(c.Context(), req.Email)
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An admin with this email already exists",
		})
	}
	if !errors.Is(err, storage.ErrAdminNotFound) {
		h.logger.WithError(err).Error("admin lookup failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("password hashing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create admin",
		})
	}

	admin := &models.Admin{
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		IsSuperAdmin: req.IsSuperAdmin,
	}

	if err := h.store.CreateAdmin(c.Context(), admin); err != nil {
		h.logger.WithError(err).Error("admin creation failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	code, err := h.otp.Issue(c.Context(), admin.Email)
	if err != nil {
		h.logger.WithError(err).Error("otp issuance failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	if err := h.notifier.SendOTP(c.Context(), admin.Email, admin.Phone, code); err != nil {
		// The account exists and the code is stored; delivery failure
		// should not roll that back.
		h.logger.WithError(err).Warn("otp delivery failed")
	}

	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.store.ListAdmins(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("admin listing failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"admins": admins,
		"count":  len(admins),
	})
}
