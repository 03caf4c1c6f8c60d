package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrProviderUnavailable is returned when the configured engine cannot run here.
var ErrProviderUnavailable = errors.New("ocr provider unavailable")

// Provider interface for OCR services
type Provider interface {
	// ExtractText extracts text from image
	ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// OCRResult contains the extracted text and metadata
type OCRResult struct {
	Text       string  `json:"text"`       // Raw extracted text
	Confidence float64 `json:"confidence"` // OCR confidence score (0-1)
}

// Service wraps the OCR provider
type Service struct {
	provider     Provider
	maxDimension uint
}

// NewService creates a new OCR service with the given provider.
// Images larger than maxDimension on either side are downscaled first;
// zero keeps the original size.
func NewService(provider Provider, maxDimension uint) *Service {
	return &Service{provider: provider, maxDimension: maxDimension}
}

// Recognize decodes the image, prepares it for the engine and returns the
// recognized text. Decode failures wrap ErrImageDecode.
func (s *Service) Recognize(ctx context.Context, imageData []byte) (*OCRResult, error) {
	img, err := DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	prepared, err := PrepareImage(img, s.maxDimension)
	if err != nil {
		return nil, err
	}

	return s.provider.ExtractText(ctx, prepared)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}

// Options selects and configures a provider.
type Options struct {
	Provider           string
	OCRSpaceAPIKey     string
	GoogleVisionAPIKey string
	TesseractLanguage  string
}

// NewProvider builds the provider named by opts.Provider.
func NewProvider(opts Options) (Provider, error) {
	switch strings.ToLower(opts.Provider) {
	case "ocrspace":
		if opts.OCRSpaceAPIKey == "" {
			return nil, fmt.Errorf("%w: OCR_SPACE_API_KEY is empty", ErrProviderUnavailable)
		}
		return NewOCRSpaceProvider(opts.OCRSpaceAPIKey), nil
	case "google", "google_vision":
		if opts.GoogleVisionAPIKey == "" {
			return nil, fmt.Errorf("%w: GOOGLE_VISION_API_KEY is empty", ErrProviderUnavailable)
		}
		return NewGoogleVisionProvider(opts.GoogleVisionAPIKey), nil
	case "gosseract":
		return newGosseractProvider(opts.TesseractLanguage)
	case "", "tesseract":
		return NewTesseractProvider(opts.TesseractLanguage), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrProviderUnavailable, opts.Provider)
	}
}
