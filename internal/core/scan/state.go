package scan

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

// Phase is where a scan invocation stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProcessing
	PhaseDone
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseProcessing:
		return "processing"
	case PhaseDone:
		return "done"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Outcome qualifies a finished scan.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeMatched
	OutcomeNoMatches
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNoMatches:
		return "no_matches"
	default:
		return "none"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// User-facing messages.
const (
	MessageDecodeFailed = "Impossible de charger l'image"
	MessageNoText       = "Aucun texte détecté dans l'image"
	MessageOCRFailed    = "Erreur lors de l'analyse: "
	MessageCancelled    = "Analyse annulée"
	MessageNoMatches    = "Aucun médicament reconnu, essayez une photo plus nette"
)

// State is an immutable snapshot of a scan. A new value is published on
// every transition; published values are never modified.
type State struct {
	InvocationID  uuid.UUID               `json:"invocationId"`
	Phase         Phase                   `json:"phase"`
	ExtractedText string                  `json:"extractedText,omitempty"`
	Candidates    []string                `json:"candidates"`
	Matches       []medication.Medication `json:"matches"`
	Searched      int                     `json:"searched"`
	Outcome       Outcome                 `json:"outcome"`
	Message       string                  `json:"message,omitempty"`
	Error         string                  `json:"error,omitempty"`
	StartedAt     *time.Time              `json:"startedAt,omitempty"`
	FinishedAt    *time.Time              `json:"finishedAt,omitempty"`

	// Err is the fatal error behind Error, for errors.Is checks.
	Err error `json:"-"`
}

func idleState() *State {
	return &State{Phase: PhaseIdle, Candidates: []string{}, Matches: []medication.Medication{}}
}

// Finished reports whether the invocation reached a terminal phase.
func (s State) Finished() bool {
	return s.Phase == PhaseDone || s.Phase == PhaseError
}
