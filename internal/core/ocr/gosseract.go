//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// GosseractProvider runs Tesseract in process through its C API.
// Building it requires the tesseract and leptonica headers:
//
//	go build -tags gosseract ./...
type GosseractProvider struct {
	mu     sync.Mutex
	client *gosseract.Client
}

func newGosseractProvider(language string) (Provider, error) {
	if language == "" {
		language = "fra"
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: gosseract language %q: %v", ErrProviderUnavailable, language, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_COLUMN); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: gosseract page mode: %v", ErrProviderUnavailable, err)
	}
	return &GosseractProvider{client: client}, nil
}

// ExtractText recognizes the image. The underlying client is not safe for
// concurrent use, so calls are serialized.
func (p *GosseractProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("%w: failed to set image: %v", ErrRecognition, err)
	}
	text, err := p.client.Text()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	return &OCRResult{Text: text, Confidence: 0.90}, nil
}

func (p *GosseractProvider) GetProviderName() string {
	return "Tesseract (gosseract)"
}

// Close releases the Tesseract handle.
func (p *GosseractProvider) Close() error {
	return p.client.Close()
}
