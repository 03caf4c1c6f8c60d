package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/ocr"
	"github.com/alertemedicaments/prescription-scan/internal/core/scan"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ClientIDHeader identifies the caller's scan session. Requests without it
// are grouped by remote IP.
const ClientIDHeader = "X-Client-ID"

// ScanHandler exposes the prescription scanner. Each client has its own
// scanner: a new upload only cancels that client's scan in flight.
type ScanHandler struct {
	scanners *scan.Registry
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanners *scan.Registry) *ScanHandler {
	return &ScanHandler{scanners: scanners}
}

func clientID(c *fiber.Ctx) string {
	if id := c.Get(ClientIDHeader); id != "" {
		return id
	}
	return c.IP()
}

// ScanPrescription godoc
// @Summary Scan a prescription photo
// @Description Upload a photo, recognise its text and match the medications it names against the catalogue
// @Tags OCR
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Prescription photo (JPEG, PNG or WebP)"
// @Param X-Client-ID header string false "Scan session, defaults to the caller IP"
// @Success 200 {object} scan.State
// @Failure 400 {object} map[string]string
// @Failure 409 {object} scan.State
// @Failure 422 {object} scan.State
// @Failure 502 {object} scan.State
// @Router /ocr/scan [post]
func (h *ScanHandler) ScanPrescription(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "image file is required",
		})
	}

	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "only JPEG, PNG and WebP images are supported",
		})
	}

	if file.Size > MaxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file size must be less than 10MB",
		})
	}

	fileHandle, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to open uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read image file",
		})
	}
	defer fileHandle.Close()

	imageData, err := io.ReadAll(fileHandle)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to read uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read image file",
		})
	}

	log.Info().Str("filename", file.Filename).Float64("size_kb", float64(file.Size)/1024).Msg("📸 Scanning prescription")

	state := h.scanners.Scanner(clientID(c)).Run(c.UserContext(), imageData)
	return c.Status(statusFor(state)).JSON(state)
}

// GetState godoc
// @Summary Current scan state
// @Description Latest snapshot of the most recent scan
// @Tags OCR
// @Produce json
// @Param X-Client-ID header string false "Scan session, defaults to the caller IP"
// @Success 200 {object} scan.State
// @Router /ocr/state [get]
func (h *ScanHandler) GetState(c *fiber.Ctx) error {
	return c.JSON(h.scanners.State(clientID(c)))
}

func statusFor(state scan.State) int {
	if state.Phase != scan.PhaseError {
		return fiber.StatusOK
	}
	switch {
	// Superseded by a newer upload of the same client.
	case errors.Is(state.Err, context.Canceled):
		return fiber.StatusConflict
	case errors.Is(state.Err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(state.Err, ocr.ErrImageDecode), errors.Is(state.Err, ocr.ErrNoTextDetected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(state.Err, ocr.ErrRecognition), errors.Is(state.Err, ocr.ErrProviderUnavailable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
