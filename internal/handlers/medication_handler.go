package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/catalog"
	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

// Catalog is the subset of the catalogue client the HTTP surface proxies.
type Catalog interface {
	Search(ctx context.Context, query string) (medication.SearchResult, error)
	Suggestions(ctx context.Context, query string) ([]medication.Medication, error)
	Alternatives(ctx context.Context, medicationID string) (medication.AlternativesResult, error)
}

type MedicationHandler struct {
	catalog Catalog
}

func NewMedicationHandler(c Catalog) *MedicationHandler {
	return &MedicationHandler{catalog: c}
}

// Search godoc
// @Summary Search medications
// @Tags Medications
// @Produce json
// @Param q query string true "Name or active ingredient"
// @Success 200 {object} medication.SearchResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /medications/search [get]
func (h *MedicationHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	result, err := h.catalog.Search(c.UserContext(), q)
	if err != nil {
		return catalogError(c, err)
	}
	if result.Medications == nil {
		result.Medications = []medication.Medication{}
	}
	return c.JSON(result)
}

// Suggestions godoc
// @Summary Autocomplete medication names
// @Tags Medications
// @Produce json
// @Param q query string true "Partial name"
// @Success 200 {object} map[string]interface{}
// @Router /medications/suggestions [get]
func (h *MedicationHandler) Suggestions(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.JSON(fiber.Map{"suggestions": []medication.Medication{}})
	}

	suggestions, err := h.catalog.Suggestions(c.UserContext(), q)
	if err != nil {
		return catalogError(c, err)
	}
	if suggestions == nil {
		suggestions = []medication.Medication{}
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

// Alternatives godoc
// @Summary Substitutes for a medication
// @Tags Medications
// @Produce json
// @Param id path string true "Medication ID"
// @Success 200 {object} medication.AlternativesResult
// @Router /medications/{id}/alternatives [get]
func (h *MedicationHandler) Alternatives(c *fiber.Ctx) error {
	result, err := h.catalog.Alternatives(c.UserContext(), c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(result)
}

// catalogError maps upstream failures: API errors keep their status,
// transport failures become 502.
func catalogError(c *fiber.Ctx, err error) error {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{
			"error": apiErr.Message,
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("❌ Catalogue request failed")
	if errors.Is(err, catalog.ErrNetwork) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "catalogue unreachable",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "catalogue request failed",
	})
}
