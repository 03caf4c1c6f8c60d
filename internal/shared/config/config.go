package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Remote catalogue (search, alerts, pharmacies)
	APIBaseURL string

	// OCR
	OCRProvider        string
	OCRSpaceAPIKey     string
	GoogleVisionAPIKey string
	TesseractLanguage  string
	OCRMaxDimension    uint

	SessionDBPath string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		APIBaseURL:         os.Getenv("API_BASE_URL"),
		OCRProvider:        os.Getenv("OCR_PROVIDER"),
		OCRSpaceAPIKey:     os.Getenv("OCR_SPACE_API_KEY"),
		GoogleVisionAPIKey: os.Getenv("GOOGLE_VISION_API_KEY"),
		TesseractLanguage:  os.Getenv("TESSERACT_LANGUAGE"),
		SessionDBPath:      os.Getenv("SESSION_DB_PATH"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://alertemedicaments.fr/api"
	}
	if cfg.OCRProvider == "" {
		cfg.OCRProvider = "tesseract"
	}
	if cfg.TesseractLanguage == "" {
		cfg.TesseractLanguage = "fra"
	}
	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath = "session.db"
	}

	cfg.OCRMaxDimension = 2000
	if v := os.Getenv("OCR_MAX_DIMENSION"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			log.Warn().Str("value", v).Msg("⚠️ invalid OCR_MAX_DIMENSION, keeping default")
		} else {
			cfg.OCRMaxDimension = uint(n)
		}
	}

	return cfg
}
