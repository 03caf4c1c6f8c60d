package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/catalog"
	"github.com/alertemedicaments/prescription-scan/internal/core/ocr"
	"github.com/alertemedicaments/prescription-scan/internal/core/scan"
	"github.com/alertemedicaments/prescription-scan/internal/handlers"
	"github.com/alertemedicaments/prescription-scan/internal/shared/config"
	"github.com/alertemedicaments/prescription-scan/internal/shared/utils"
)

// @title Prescription Scan API
// @version 1.0
// @description Reads medication names off French prescription photos and matches them against the Alerte Médicaments catalogue
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("🚀 Starting prescription-scan API")

	// Init OCR service
	provider, err := ocr.NewProvider(ocr.Options{
		Provider:           cfg.OCRProvider,
		OCRSpaceAPIKey:     cfg.OCRSpaceAPIKey,
		GoogleVisionAPIKey: cfg.GoogleVisionAPIKey,
		TesseractLanguage:  cfg.TesseractLanguage,
	})
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.OCRProvider).Msg("Failed to init OCR provider")
	}
	if tp, ok := provider.(*ocr.TesseractProvider); ok && !tp.Available() {
		utils.LogWarn("⚠️ tesseract binary not found in PATH, scans will fail", map[string]interface{}{
			"language": cfg.TesseractLanguage,
		})
	}
	ocrService := ocr.NewService(provider, cfg.OCRMaxDimension)
	utils.LogInfo("🔍 OCR provider ready", map[string]interface{}{
		"provider":      ocrService.GetProviderName(),
		"max_dimension": cfg.OCRMaxDimension,
	})

	// Init catalogue client and per-client scanners
	catalogClient := catalog.NewClient(cfg.APIBaseURL)
	scanners := scan.NewRegistry(ocrService, catalogClient, scan.DefaultIdleTTL)

	app := handlers.NewApp(
		handlers.NewHealthHandler(ocrService.GetProviderName()),
		handlers.NewScanHandler(scanners),
		handlers.NewMedicationHandler(catalogClient),
	)

	go func() {
		log.Info().Msgf("✅ API running at :%s", cfg.Port)
		log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("🛑 Shutting down...")
	scanners.Reset()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("👋 Goodbye!")
}
