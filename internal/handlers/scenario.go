package handlers

import (
	"context"
	"errors"
	"time"

	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
	"hfp-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ScenarioHandler struct {
	store        *services.ScenarioStore
	orchestrator *services.ProjectionOrchestrator
}

func NewScenarioHandler(store *services.ScenarioStore, orchestrator *services.ProjectionOrchestrator) *ScenarioHandler {
	return &ScenarioHandler{
		store:        store,
		orchestrator: orchestrator,
	}
}

type createScenarioRequest struct {
	Name   string                  `json:"name"`
	Config models.ProjectionConfig `json:"config"`
}

// CreateScenario handles POST /v1/scenarios
func (h *ScenarioHandler) CreateScenario(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req createScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	scenario, err := h.store.Create(ctx, req.Name, req.Config)
	if err != nil {
		return scenarioError(c, err)
	}

	return c.Status(201).JSON(scenario)
}

// ListScenarios handles GET /v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	return c.JSON(h.store.List(ctx))
}

// GetScenario handles GET /v1/scenarios/:id
func (h *ScenarioHandler) GetScenario(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	scenario, err := h.store.Get(ctx, c.Params("id"))
	if err != nil {
		return scenarioError(c, err)
	}
	return c.JSON(scenario)
}

// DeleteScenario handles DELETE /v1/scenarios/:id
func (h *ScenarioHandler) DeleteScenario(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.store.Delete(ctx, c.Params("id")); err != nil {
		return scenarioError(c, err)
	}
	return c.SendStatus(204)
}

// AddEntry handles POST /v1/scenarios/:id/entries
func (h *ScenarioHandler) AddEntry(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var entry models.CashFlowEntry
	if err := c.BodyParser(&entry); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	created, err := h.store.AddEntry(ctx, c.Params("id"), entry)
	if err != nil {
		return scenarioError(c, err)
	}
	return c.Status(201).JSON(created)
}

// UpdateEntry handles PUT /v1/scenarios/:id/entries/:entryId
func (h *ScenarioHandler) UpdateEntry(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	var entry models.CashFlowEntry
	if err := c.BodyParser(&entry); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	updated, err := h.store.UpdateEntry(ctx, c.Params("id"), c.Params("entryId"), entry)
	if err != nil {
		return scenarioError(c, err)
	}
	return c.JSON(updated)
}

// RemoveEntry handles DELETE /v1/scenarios/:id/entries/:entryId
func (h *ScenarioHandler) RemoveEntry(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.store.RemoveEntry(ctx, c.Params("id"), c.Params("entryId")); err != nil {
		return scenarioError(c, err)
	}
	return c.SendStatus(204)
}

// GetScenarioProjection handles GET /v1/scenarios/:id/projection
func (h *ScenarioHandler) GetScenarioProjection(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	scenario, err := h.store.Get(ctx, c.Params("id"))
	if err != nil {
		return scenarioError(c, err)
	}

	projection, err := h.orchestrator.GenerateProjection(ctx, scenario.Config)
	if err != nil {
		return projectionError(c, err)
	}
	return c.JSON(projection)
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 10*time.Second)
}

func badRequest(c *fiber.Ctx, msg string, err error) error {
	return c.Status(400).JSON(models.ErrorResponse{
		Error:   msg,
		Message: err.Error(),
		Code:    400,
	})
}

func scenarioError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrScenarioNotFound), errors.Is(err, services.ErrEntryNotFound):
		return c.Status(404).JSON(models.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
			Code:    404,
		})
	case errors.Is(err, engine.ErrInvalidConfig), errors.Is(err, engine.ErrMalformedEntry):
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid scenario",
			Message: err.Error(),
			Code:    400,
		})
	default:
		return c.Status(500).JSON(models.ErrorResponse{
			Error:   "Scenario operation failed",
			Message: err.Error(),
			Code:    500,
		})
	}
}
