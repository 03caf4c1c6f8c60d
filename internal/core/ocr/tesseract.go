package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// TesseractProvider implements OCR by running the tesseract CLI.
// The image goes through stdin and the text comes back on stdout, so no
// temporary files are involved.
type TesseractProvider struct {
	tesseractPath string
	language      string
}

// NewTesseractProvider creates a new Tesseract OCR provider.
// language is a tesseract code such as "fra" or "fra+eng".
func NewTesseractProvider(language string) *TesseractProvider {
	if language == "" {
		language = "fra"
	}

	return &TesseractProvider{
		tesseractPath: "tesseract", // Assumes tesseract is in PATH
		language:      language,
	}
}

// Available reports whether the tesseract binary can be found.
func (p *TesseractProvider) Available() bool {
	_, err := exec.LookPath(p.tesseractPath)
	return err == nil
}

// ExtractText extracts text from an image using Tesseract
func (p *TesseractProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	if !p.Available() {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrProviderUnavailable, p.tesseractPath)
	}

	// --psm 4: a single column of text of variable sizes, the usual prescription layout.
	cmd := exec.CommandContext(ctx, p.tesseractPath, "stdin", "stdout", "-l", p.language, "--psm", "4")
	cmd.Stdin = bytes.NewReader(imageData)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: tesseract failed: %v (stderr: %s)", ErrRecognition, err, stderr.String())
	}

	// Tesseract doesn't report a page confidence on stdout.
	return &OCRResult{
		Text:       stdout.String(),
		Confidence: 0.90,
	}, nil
}

// GetProviderName returns the name of the provider
func (p *TesseractProvider) GetProviderName() string {
	return "Tesseract OCR"
}
