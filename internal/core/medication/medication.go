package medication

// Medication is a catalogue entry. ID is its identity.
type Medication struct {
	ID               string `json:"id"`
	CISCode          string `json:"cisCode,omitempty"`
	Name             string `json:"name"`
	Laboratory       string `json:"laboratory,omitempty"`
	ActiveIngredient string `json:"activeIngredient,omitempty"`
	Dosage           string `json:"dosage,omitempty"`
	Form             string `json:"form,omitempty"`
	Status           Status `json:"status"`
	LastChecked      string `json:"lastChecked,omitempty"`
	ExpectedReturn   string `json:"expectedReturn,omitempty"`
}

// SearchResult is the response of the catalogue search endpoint.
type SearchResult struct {
	Medications []Medication `json:"medications"`
	Total       *int         `json:"total,omitempty"`
}

// Alternative is a substitutable medication (generic, same active ingredient...).
type Alternative struct {
	ID               string `json:"id"`
	CISCode          string `json:"cisCode"`
	Name             string `json:"name"`
	Laboratory       string `json:"laboratory,omitempty"`
	ActiveIngredient string `json:"activeIngredient,omitempty"`
	Status           Status `json:"status"`
	MatchType        string `json:"matchType"`
}

type Basic struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ActiveIngredient string `json:"activeIngredient,omitempty"`
	Status           Status `json:"status"`
}

type AlternativesResult struct {
	Medication   Basic         `json:"medication"`
	Alternatives []Alternative `json:"alternatives"`
	Total        int           `json:"total"`
}

type Pharmacy struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Address      string                `json:"address"`
	City         string                `json:"city"`
	PostalCode   string                `json:"postalCode"`
	Phone        string                `json:"phone,omitempty"`
	Latitude     *float64              `json:"latitude,omitempty"`
	Longitude    *float64              `json:"longitude,omitempty"`
	IsOnDuty     bool                  `json:"isOnDuty"`
	Distance     *float64              `json:"distance,omitempty"`
	Availability *PharmacyAvailability `json:"availability,omitempty"`
}

// FullAddress formats the postal address on one line.
func (p Pharmacy) FullAddress() string {
	return p.Address + ", " + p.PostalCode + " " + p.City
}

type PharmacyAvailability struct {
	Status     Status   `json:"status"`
	Quantity   *int     `json:"quantity,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	ReportedAt string   `json:"reportedAt"`
	VerifiedBy int      `json:"verifiedBy"`
}

type PharmaciesResult struct {
	Pharmacies []Pharmacy `json:"pharmacies"`
	Total      int        `json:"total"`
}

// Alert is a user subscription to status changes of one medication.
type Alert struct {
	ID                string      `json:"id"`
	UserID            string      `json:"userId"`
	MedicationID      string      `json:"medicationId"`
	Medication        *Medication `json:"medication,omitempty"`
	NotifyOnAvailable bool        `json:"notifyOnAvailable"`
	NotifyOnTension   bool        `json:"notifyOnTension"`
	NotifyOnRupture   bool        `json:"notifyOnRupture"`
	CreatedAt         string      `json:"createdAt,omitempty"`
}

// Wants reports whether the alert subscribes to the given status.
func (a Alert) Wants(s Status) bool {
	switch s {
	case StatusAvailable:
		return a.NotifyOnAvailable
	case StatusTension:
		return a.NotifyOnTension
	case StatusRupture:
		return a.NotifyOnRupture
	default:
		return false
	}
}
