package handlers

import (
	"context"
	"time"

	"hfp-go-api/internal/models"
	"hfp-go-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

type RatesHandler struct {
	rates *services.RatesService
}

func NewRatesHandler(rates *services.RatesService) *RatesHandler {
	return &RatesHandler{
		rates: rates,
	}
}

// GetRate handles GET /v1/rates/:symbol
func (h *RatesHandler) GetRate(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	symbol := c.Params("symbol")
	if symbol == "" {
		return c.Status(400).JSON(models.ErrorResponse{
			Error: "Symbol is required",
			Code:  400,
		})
	}

	rate, err := h.rates.TrailingReturn(ctx, symbol)
	if err != nil {
		return c.Status(404).JSON(models.ErrorResponse{
			Error:   "Rate not available",
			Message: err.Error(),
			Code:    404,
		})
	}

	return c.JSON(rate)
}
