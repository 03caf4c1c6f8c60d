package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const ocrSpaceEndpoint = "https://api.ocr.space/parse/image"

// OCRSpaceProvider implements OCR using OCR.space API
type OCRSpaceProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewOCRSpaceProvider creates a new OCR.space provider
func NewOCRSpaceProvider(apiKey string) *OCRSpaceProvider {
	return &OCRSpaceProvider{
		apiKey:   apiKey,
		endpoint: ocrSpaceEndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetProviderName returns the provider name
func (p *OCRSpaceProvider) GetProviderName() string {
	return "OCR.space"
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
	} `json:"ParsedResults"`
	OCRExitCode           int      `json:"OCRExitCode"`
	IsErroredOnProcessing bool     `json:"IsErroredOnProcessing"`
	ErrorMessage          []string `json:"ErrorMessage,omitempty"`
}

// ExtractText extracts text from image using OCR.space API.
// The image is uploaded as PNG, which is what Service.Recognize produces.
func (p *OCRSpaceProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "prescription.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}

	fields := map[string]string{
		"apikey":    p.apiKey,
		"language":  "fre",
		"scale":     "true",
		"OCREngine": "2",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ocrspace request failed: %v", ErrRecognition, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrRecognition, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ocrspace error (status: %d): %s", ErrRecognition, resp.StatusCode, string(body))
	}

	return parseOCRSpaceResponse(body)
}

func parseOCRSpaceResponse(body []byte) (*OCRResult, error) {
	var ocrResp ocrSpaceResponse
	if err := json.Unmarshal(body, &ocrResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrRecognition, err)
	}

	if ocrResp.IsErroredOnProcessing {
		errMsg := "unknown error"
		if len(ocrResp.ErrorMessage) > 0 {
			errMsg = strings.Join(ocrResp.ErrorMessage, "; ")
		}
		return nil, fmt.Errorf("%w: ocrspace processing error: %s", ErrRecognition, errMsg)
	}

	// 1 = all pages parsed, 2 = partially parsed. Anything else is a failure.
	if ocrResp.OCRExitCode != 1 && ocrResp.OCRExitCode != 2 {
		return nil, fmt.Errorf("%w: ocrspace exit code: %d", ErrRecognition, ocrResp.OCRExitCode)
	}

	var pages []string
	for _, r := range ocrResp.ParsedResults {
		if r.ParsedText != "" {
			pages = append(pages, r.ParsedText)
		}
	}
	if len(pages) == 0 {
		return &OCRResult{}, nil
	}

	// OCR.space doesn't provide confidence score, use default
	return &OCRResult{Text: strings.Join(pages, "\n"), Confidence: 0.85}, nil
}
