package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/cleankili/backend/internal/models"
	"github.com/cleankili/backend/internal/storage"
	"github.com/cleankili/backend/internal/validation"
)

type ReportHandler struct {
	store  storage.Storage
	logger *logrus.Logger
}

func NewReportHandler(store storage.Storage, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{store: store, logger: logger}
}

// CreateReport accepts a citizen submission. No authentication; the
// payload is fully validated before it touches the store.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	var req models.ReportCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidateStruct(req); err != nil {
		return validationResponse(c, err)
	}

	report := &models.Report{
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Status:      models.StatusPending,
	}

	if err := h.store.CreateReport(c.Context(), report); err != nil {
		h.logger.WithError(err).Error("report creation failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	status := models.ReportStatus(c.Query("status"))
	if status != "" {
		switch status {
		case models.StatusPending, models.StatusInProgress, models.StatusResolved:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status filter",
			})
		}
	}

	reports, err := h.store.ListReports(c.Context(), status)
	if err != nil {
		h.logger.WithError(err).Error("report listing failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"count":   len(reports),
	})
}

func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.store.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Report not found",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}
	return c.JSON(report)
}

// UpdateReportStatus changes a report's status. Admin-guarded by the
// router.
func (h *ReportHandler) UpdateReportStatus(c *fiber.Ctx) error {
	var req models.ReportStatusUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.ValidateStruct(req); err != nil {
		return validationResponse(c, err)
	}

	report, err := h.store.UpdateReportStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, storage.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Report not found",
			})
		}
		h.logger.WithError(err).Error("report status update failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "storage unavailable",
		})
	}

	return c.JSON(report)
}
