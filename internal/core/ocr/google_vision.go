package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const googleVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// GoogleVisionProvider implements OCR using Google Cloud Vision API.
// Prescriptions are dense documents, so it asks for DOCUMENT_TEXT_DETECTION
// with a French language hint.
type GoogleVisionProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGoogleVisionProvider creates a new Google Vision OCR provider
func NewGoogleVisionProvider(apiKey string) *GoogleVisionProvider {
	return &GoogleVisionProvider{
		apiKey:   apiKey,
		endpoint: googleVisionEndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetProviderName returns the provider name
func (p *GoogleVisionProvider) GetProviderName() string {
	return "Google Cloud Vision"
}

type visionRequest struct {
	Requests []visionRequestItem `json:"requests"`
}

type visionRequestItem struct {
	Image        visionImage        `json:"image"`
	Features     []visionFeature    `json:"features"`
	ImageContext visionImageContext `json:"imageContext"`
}

type visionImage struct {
	Content string `json:"content"` // base64 encoded image
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionImageContext struct {
	LanguageHints []string `json:"languageHints,omitempty"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text  string `json:"text"`
			Pages []struct {
				Confidence float64 `json:"confidence"`
			} `json:"pages"`
		} `json:"fullTextAnnotation,omitempty"`
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"responses"`
}

// ExtractText extracts text from image using Google Cloud Vision API
func (p *GoogleVisionProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	reqBody := visionRequest{
		Requests: []visionRequestItem{{
			Image:        visionImage{Content: base64.StdEncoding.EncodeToString(imageData)},
			Features:     []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
			ImageContext: visionImageContext{LanguageHints: []string{"fr"}},
		}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", p.endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: google vision request failed: %v", ErrRecognition, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrRecognition, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: google vision error (status: %d): %s", ErrRecognition, resp.StatusCode, string(body))
	}

	return parseVisionResponse(body)
}

func parseVisionResponse(body []byte) (*OCRResult, error) {
	var visionResp visionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrRecognition, err)
	}
	if len(visionResp.Responses) == 0 {
		return nil, fmt.Errorf("%w: no response from Google Vision", ErrRecognition)
	}

	r := visionResp.Responses[0]
	if r.Error != nil {
		return nil, fmt.Errorf("%w: google vision API error %d: %s", ErrRecognition, r.Error.Code, r.Error.Message)
	}

	// Document detection fills fullTextAnnotation; plain text detection only
	// the first textAnnotation.
	if r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "" {
		confidence := 0.95
		if len(r.FullTextAnnotation.Pages) > 0 && r.FullTextAnnotation.Pages[0].Confidence > 0 {
			confidence = r.FullTextAnnotation.Pages[0].Confidence
		}
		return &OCRResult{Text: r.FullTextAnnotation.Text, Confidence: confidence}, nil
	}
	if len(r.TextAnnotations) > 0 {
		return &OCRResult{Text: r.TextAnnotations[0].Description, Confidence: 0.95}, nil
	}

	return &OCRResult{}, nil
}
