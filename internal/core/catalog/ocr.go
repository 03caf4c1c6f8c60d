package catalog

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

// ScannedMedication is one line the server read off a prescription photo.
// Matched is nil when the catalogue has no entry for it.
type ScannedMedication struct {
	Name     string                 `json:"name"`
	Dosage   string                 `json:"dosage,omitempty"`
	Quantity string                 `json:"quantity,omitempty"`
	Matched  *medication.Medication `json:"matchedMedication,omitempty"`
}

// ScanPrescription uploads a photo to the server-side scanner. Unlike the
// local pipeline it needs a session.
func (c *Client) ScanPrescription(ctx context.Context, filename string, imageData []byte) ([]ScannedMedication, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("ocr", nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var resp struct {
		Medications []ScannedMedication `json:"medications"`
	}
	if err := c.send(ctx, req, true, &resp); err != nil {
		return nil, err
	}
	return resp.Medications, nil
}
