package catalog

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

// CreateAlertRequest subscribes the user to a medication. The server
// defaults every Notify flag to true; NewAlertRequest does the same.
type CreateAlertRequest struct {
	MedicationID      string `json:"medicationId"`
	NotifyOnAvailable bool   `json:"notifyOnAvailable"`
	NotifyOnTension   bool   `json:"notifyOnTension"`
	NotifyOnRupture   bool   `json:"notifyOnRupture"`
}

// NewAlertRequest subscribes to every status change of medicationID.
func NewAlertRequest(medicationID string) CreateAlertRequest {
	return CreateAlertRequest{
		MedicationID:      medicationID,
		NotifyOnAvailable: true,
		NotifyOnTension:   true,
		NotifyOnRupture:   true,
	}
}

// Alerts lists the logged-in user's alerts.
func (c *Client) Alerts(ctx context.Context) ([]medication.Alert, error) {
	var resp struct {
		Alerts []medication.Alert `json:"alerts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "alerts/mobile", nil, true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// CreateAlert registers a new alert and returns it as stored.
func (c *Client) CreateAlert(ctx context.Context, req CreateAlertRequest) (*medication.Alert, error) {
	var resp struct {
		Alert medication.Alert `json:"alert"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "alerts/mobile", nil, true, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Alert, nil
}

// DeleteAlert removes an alert. It reports whether the server deleted it.
func (c *Client) DeleteAlert(ctx context.Context, alertID string) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, "alerts/mobile", url.Values{"id": {alertID}}, true, nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}
