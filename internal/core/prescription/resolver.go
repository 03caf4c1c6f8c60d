package prescription

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

// DefaultMaxMatches caps the number of medications returned for one scan.
const DefaultMaxMatches = 10

// Searcher looks medications up in the remote catalogue.
type Searcher interface {
	Search(ctx context.Context, query string) (medication.SearchResult, error)
}

// Progress is reported after every lookup.
type Progress struct {
	Query    string
	Searched int
	Matches  []medication.Medication
	Err      error
}

// Resolver turns candidates into catalogue matches, one lookup at a time.
type Resolver struct {
	searcher   Searcher
	maxMatches int
	onProgress func(Progress)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxMatches overrides DefaultMaxMatches.
func WithMaxMatches(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxMatches = n
		}
	}
}

// WithProgress registers a callback invoked after each lookup.
func WithProgress(fn func(Progress)) Option {
	return func(r *Resolver) {
		r.onProgress = fn
	}
}

// NewResolver creates a resolver backed by searcher.
func NewResolver(searcher Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		searcher:   searcher,
		maxMatches: DefaultMaxMatches,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up each candidate in order and returns the first catalogue hit
// of each query, unique by medication ID, capped at the configured maximum.
//
// Lookup failures are logged and skipped. A cancelled ctx stops the loop and
// returns what was resolved so far.
func (r *Resolver) Resolve(ctx context.Context, candidates []string) []medication.Medication {
	matches := []medication.Medication{}
	searched := make(map[string]struct{})
	seenIDs := make(map[string]struct{})

	for _, candidate := range candidates {
		if len(matches) >= r.maxMatches {
			break
		}
		if ctx.Err() != nil {
			log.Debug().Int("matches", len(matches)).Msg("resolution cancelled")
			break
		}

		query := Normalize(candidate)
		if !Searchable(query) {
			continue
		}
		if _, ok := searched[query]; ok {
			continue
		}
		searched[query] = struct{}{}

		result, err := r.searcher.Search(ctx, query)
		if err != nil {
			lookupErr := &SearchLookupError{Query: query, Err: err}
			log.Warn().Err(lookupErr).Str("query", query).Msg("⚠️ medication lookup failed, skipping")
			r.report(Progress{Query: query, Searched: len(searched), Matches: matches, Err: lookupErr})
			continue
		}

		if len(result.Medications) > 0 {
			first := result.Medications[0]
			if _, dup := seenIDs[first.ID]; !dup {
				seenIDs[first.ID] = struct{}{}
				matches = append(matches, first)
			}
		}
		r.report(Progress{Query: query, Searched: len(searched), Matches: matches})
	}

	return matches
}

func (r *Resolver) report(p Progress) {
	if r.onProgress == nil {
		return
	}
	p.Matches = append([]medication.Medication(nil), p.Matches...)
	r.onProgress(p)
}
