package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
)

var errNetwork = errors.New("network unreachable")

// mockSearcher returns one medication per query, identified by the query
// unless ids maps it elsewhere.
type mockSearcher struct {
	calls []string
	fail  map[string]bool
	ids   map[string]string
	empty map[string]bool
}

func (m *mockSearcher) Search(_ context.Context, query string) (medication.SearchResult, error) {
	m.calls = append(m.calls, query)
	if m.fail[query] {
		return medication.SearchResult{}, errNetwork
	}
	if m.empty[query] {
		return medication.SearchResult{}, nil
	}
	id := "id-" + strings.ToLower(query)
	if mapped, ok := m.ids[query]; ok {
		id = mapped
	}
	return medication.SearchResult{Medications: []medication.Medication{
		{ID: id, Name: query, Status: medication.StatusAvailable},
		{ID: id + "-other", Name: query + " générique"},
	}}, nil
}

func ids(meds []medication.Medication) []string {
	out := make([]string, 0, len(meds))
	for _, m := range meds {
		out = append(out, m.ID)
	}
	return out
}

func TestResolve_TwoMedications(t *testing.T) {
	searcher := &mockSearcher{}
	r := NewResolver(searcher)

	got := r.Resolve(context.Background(), Extract("DOLIPRANE 1000 mg\nAMOXICILLINE 500 mg\n"))

	assert.Equal(t, []string{"id-doliprane", "id-amoxicilline"}, ids(got))
	assert.Equal(t, []string{"DOLIPRANE", "AMOXICILLINE"}, searcher.calls)
}

func TestResolve_EmptyText(t *testing.T) {
	searcher := &mockSearcher{}
	got := NewResolver(searcher).Resolve(context.Background(), Extract(""))

	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Empty(t, searcher.calls)
}

func TestResolve_CapAtTen(t *testing.T) {
	names := []string{
		"ABILIFY", "BETADINE", "CELESTENE", "DAFALGAN", "EFFEXOR",
		"FORLAX", "GAVISCON", "HEXAQUINE", "IMODIUM", "JOSACINE",
		"KARDEGIC", "LASILIX", "MOPRAL", "NUROFEN", "OROCAL",
	}
	var lines []string
	for i, n := range names {
		lines = append(lines, fmt.Sprintf("%s %d mg", n, (i+1)*10))
	}
	searcher := &mockSearcher{}

	got := NewResolver(searcher).Resolve(context.Background(), Extract(strings.Join(lines, "\n")))

	require.Len(t, got, DefaultMaxMatches)
	assert.Len(t, searcher.calls, DefaultMaxMatches)
	assert.Equal(t, "id-abilify", got[0].ID)
	assert.Equal(t, "id-josacine", got[9].ID)
}

func TestResolve_NoDuplicateSearch(t *testing.T) {
	searcher := &mockSearcher{}
	candidates := []string{"DOLIPRANE 1000 mg", "DOLIPRANE", "Doliprane 500 mg", "DOLIPRANE  500mg", "doliprane"}

	NewResolver(searcher).Resolve(context.Background(), candidates)

	counts := map[string]int{}
	for _, q := range searcher.calls {
		counts[q]++
	}
	for q, n := range counts {
		assert.Equal(t, 1, n, "query %q searched %d times", q, n)
	}
	assert.Equal(t, []string{"DOLIPRANE", "Doliprane", "doliprane"}, searcher.calls)
}

func TestResolve_DedupByIdentity(t *testing.T) {
	searcher := &mockSearcher{ids: map[string]string{
		"DOLIPRANE":  "paracetamol",
		"DAFALGAN":   "paracetamol",
		"EFFERALGAN": "paracetamol",
		"SPASFON":    "phloroglucinol",
	}}

	got := NewResolver(searcher).Resolve(context.Background(), []string{"DOLIPRANE", "DAFALGAN", "SPASFON", "EFFERALGAN"})

	assert.Equal(t, []string{"paracetamol", "phloroglucinol"}, ids(got))
	assert.Len(t, searcher.calls, 4)
	seen := map[string]bool{}
	for _, m := range got {
		assert.False(t, seen[m.ID], "duplicate identity %s", m.ID)
		seen[m.ID] = true
	}
}

func TestResolve_PartialFailure(t *testing.T) {
	candidates := []string{"DOLIPRANE 1000 mg", "AMOXICILLINE 500 mg", "SPASFON 80 mg"}
	searcher := &mockSearcher{fail: map[string]bool{"AMOXICILLINE": true}}

	got := NewResolver(searcher).Resolve(context.Background(), candidates)

	assert.Equal(t, []string{"id-doliprane", "id-spasfon"}, ids(got))
	assert.Len(t, searcher.calls, 3)

	// Same as skipping the failing candidate altogether.
	without := NewResolver(&mockSearcher{}).Resolve(context.Background(), []string{candidates[0], candidates[2]})
	assert.Equal(t, ids(without), ids(got))
}

func TestResolve_SkipsShortCandidates(t *testing.T) {
	searcher := &mockSearcher{}
	got := NewResolver(searcher).Resolve(context.Background(), []string{"A 5 mg", "Ab", "12 cp", "%%", "Xyz"})

	assert.Equal(t, []string{"Xyz"}, searcher.calls)
	assert.Len(t, got, 1)
	for _, q := range searcher.calls {
		assert.GreaterOrEqual(t, len([]rune(q)), MinQueryLength)
	}
}

func TestResolve_EmptyResultsIgnored(t *testing.T) {
	searcher := &mockSearcher{empty: map[string]bool{"INCONNU": true}}
	got := NewResolver(searcher).Resolve(context.Background(), []string{"INCONNU", "SMECTA"})

	assert.Equal(t, []string{"id-smecta"}, ids(got))
}

func TestResolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	searcher := &mockSearcher{}

	got := NewResolver(searcher).Resolve(ctx, []string{"DOLIPRANE", "SPASFON"})

	assert.Empty(t, got)
	assert.Empty(t, searcher.calls)
}

func TestResolve_Progress(t *testing.T) {
	var events []Progress
	searcher := &mockSearcher{fail: map[string]bool{"SPASFON": true}}
	r := NewResolver(searcher, WithMaxMatches(5), WithProgress(func(p Progress) {
		events = append(events, p)
	}))

	r.Resolve(context.Background(), []string{"DOLIPRANE", "SPASFON", "SMECTA"})

	require.Len(t, events, 3)
	assert.Equal(t, "DOLIPRANE", events[0].Query)
	assert.Len(t, events[0].Matches, 1)
	var lookupErr *SearchLookupError
	require.ErrorAs(t, events[1].Err, &lookupErr)
	assert.Equal(t, "SPASFON", lookupErr.Query)
	assert.ErrorIs(t, events[1].Err, errNetwork)
	assert.Equal(t, 3, events[2].Searched)
	assert.Len(t, events[2].Matches, 2)
}

func TestWithMaxMatches(t *testing.T) {
	searcher := &mockSearcher{}
	got := NewResolver(searcher, WithMaxMatches(2)).Resolve(context.Background(), []string{"ALPHA", "BETA", "GAMMA"})
	assert.Len(t, got, 2)
	assert.Len(t, searcher.calls, 2)

	// Non-positive values keep the default.
	r := NewResolver(searcher, WithMaxMatches(0))
	assert.Equal(t, DefaultMaxMatches, r.maxMatches)
}
