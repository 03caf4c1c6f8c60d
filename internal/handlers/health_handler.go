package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ocrProvider string
}

func NewHealthHandler(ocrProvider string) *HealthHandler {
	return &HealthHandler{ocrProvider: ocrProvider}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"service":      "prescription-scan",
		"ocr_provider": h.ocrProvider,
	})
}
