package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

// DefaultRadiusKm is the pharmacy search radius used when none is given.
const DefaultRadiusKm = 20.0

// Search looks medications up by free text.
func (c *Client) Search(ctx context.Context, query string) (medication.SearchResult, error) {
	var result medication.SearchResult
	err := c.doJSON(ctx, http.MethodGet, "search", url.Values{"q": {query}}, false, nil, &result)
	if err != nil {
		return medication.SearchResult{}, err
	}
	return result, nil
}

// Suggestions returns autocomplete entries for a partial name.
func (c *Client) Suggestions(ctx context.Context, query string) ([]medication.Medication, error) {
	var resp struct {
		Suggestions []medication.Medication `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "suggestions", url.Values{"q": {query}}, false, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Alternatives lists substitutes for the given medication.
func (c *Client) Alternatives(ctx context.Context, medicationID string) (medication.AlternativesResult, error) {
	var result medication.AlternativesResult
	path := "medications/" + url.PathEscape(medicationID) + "/alternatives"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, false, nil, &result); err != nil {
		return medication.AlternativesResult{}, err
	}
	return result, nil
}

// Location is an optional search origin.
type Location struct {
	Latitude  float64
	Longitude float64
}

// NearbyPharmacies lists pharmacies reporting on medicationID, closest first
// when loc is given. A zero radius means DefaultRadiusKm.
func (c *Client) NearbyPharmacies(ctx context.Context, medicationID string, loc *Location, radiusKm float64) (medication.PharmaciesResult, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}
	q := url.Values{
		"medicationId": {medicationID},
		"radius":       {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
	}
	if loc != nil {
		q.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	}

	var result medication.PharmaciesResult
	if err := c.doJSON(ctx, http.MethodGet, "pharmacies/nearby", q, false, nil, &result); err != nil {
		return medication.PharmaciesResult{}, err
	}
	return result, nil
}

type reportRequest struct {
	PharmacyID   string            `json:"pharmacyId"`
	MedicationID string            `json:"medicationId"`
	Status       medication.Status `json:"status"`
}

// ReportAvailability tells the catalogue what a pharmacy has in stock.
func (c *Client) ReportAvailability(ctx context.Context, pharmacyID, medicationID string, status medication.Status) error {
	req := reportRequest{PharmacyID: pharmacyID, MedicationID: medicationID, Status: status}
	return c.doJSON(ctx, http.MethodPost, "pharmacies/report", nil, false, req, nil)
}
