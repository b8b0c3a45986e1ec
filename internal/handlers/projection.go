package handlers

import (
	"context"
	"errors"
	"time"

	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
	"hfp-go-api/internal/report"
	"hfp-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProjectionHandler struct {
	orchestrator *services.ProjectionOrchestrator
}

func NewProjectionHandler(orchestrator *services.ProjectionOrchestrator) *ProjectionHandler {
	return &ProjectionHandler{
		orchestrator: orchestrator,
	}
}

// GetProjection handles POST /v1/projection
func (h *ProjectionHandler) GetProjection(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	var cfg models.ProjectionConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    400,
		})
	}

	projection, err := h.orchestrator.GenerateProjection(ctx, cfg)
	if err != nil {
		return projectionError(c, err)
	}

	return c.JSON(projection)
}

// GetProjectionReport handles POST /v1/projection/report
func (h *ProjectionHandler) GetProjectionReport(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	var cfg models.ProjectionConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    400,
		})
	}

	projection, err := h.orchestrator.GenerateProjection(ctx, cfg)
	if err != nil {
		return projectionError(c, err)
	}

	pdf, err := report.ProjectionPDF(cfg, projection.Snapshots)
	if err != nil {
		return c.Status(500).JSON(models.ErrorResponse{
			Error:   "Failed to render report",
			Message: err.Error(),
			Code:    500,
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="projection.pdf"`)
	return c.Send(pdf)
}

// projectionError maps engine validation failures to 400 and everything else
// to 500.
func projectionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, engine.ErrInvalidConfig) || errors.Is(err, engine.ErrMalformedEntry) {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid projection config",
			Message: err.Error(),
			Code:    400,
		})
	}
	return c.Status(500).JSON(models.ErrorResponse{
		Error:   "Failed to generate projection",
		Message: err.Error(),
		Code:    500,
	})
}

// CustomErrorHandler handles Fiber errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
