package medication

import (
	"encoding/json"
	"strings"
)

// Status is the supply state of a medication as reported by the catalogue.
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusTension
	StatusRupture
)

// ParseStatus converts the wire value into a Status.
// Anything the catalogue sends that we do not recognise is StatusUnknown.
func ParseStatus(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AVAILABLE":
		return StatusAvailable
	case "TENSION":
		return StatusTension
	case "RUPTURE":
		return StatusRupture
	default:
		return StatusUnknown
	}
}

// String returns the wire value.
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "AVAILABLE"
	case StatusTension:
		return "TENSION"
	case StatusRupture:
		return "RUPTURE"
	default:
		return "UNKNOWN"
	}
}

// DisplayName returns the French label shown to users.
func (s Status) DisplayName() string {
	switch s {
	case StatusAvailable:
		return "Disponible"
	case StatusTension:
		return "Tension"
	case StatusRupture:
		return "Rupture"
	default:
		return "Inconnu"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StatusUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Non-string payloads are as unparseable as unknown strings.
		*s = StatusUnknown
		return nil
	}
	*s = ParseStatus(raw)
	return nil
}
