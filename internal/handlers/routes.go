package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"

	_ "github.com/alertemedicaments/prescription-scan/docs"
)

// NewApp builds the fiber app with every route mounted.
func NewApp(health *HealthHandler, scans *ScanHandler, meds *MedicationHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Prescription Scan API",
		// Room for a 10MB photo plus multipart overhead.
		BodyLimit: MaxImageSize + 1024*1024,
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", health.GetHealth)

	// OCR
	app.Post("/ocr/scan", scans.ScanPrescription)
	app.Get("/ocr/state", scans.GetState)

	// Medications
	app.Get("/medications/search", meds.Search)
	app.Get("/medications/suggestions", meds.Suggestions)
	app.Get("/medications/:id/alternatives", meds.Alternatives)

	return app
}
