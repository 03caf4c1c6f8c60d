package scan

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/prescription"
)

// DefaultIdleTTL is how long an unused client scanner is kept.
const DefaultIdleTTL = 30 * time.Minute

// Registry keeps one Scanner per client, so a new scan only supersedes
// scans of the same client.
type Registry struct {
	recognizer Recognizer
	searcher   prescription.Searcher
	opts       []Option
	idleTTL    time.Duration
	now        func() time.Time

	mu       sync.Mutex
	scanners map[string]*clientScanner
}

type clientScanner struct {
	scanner  *Scanner
	lastUsed time.Time
}

// NewRegistry creates an empty registry. Scanners it creates get opts.
// idleTTL <= 0 selects DefaultIdleTTL.
func NewRegistry(recognizer Recognizer, searcher prescription.Searcher, idleTTL time.Duration, opts ...Option) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		recognizer: recognizer,
		searcher:   searcher,
		opts:       opts,
		idleTTL:    idleTTL,
		now:        time.Now,
		scanners:   make(map[string]*clientScanner),
	}
}

// Scanner returns the client's scanner, creating it on first use.
func (r *Registry) Scanner(clientID string) *Scanner {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	cs, ok := r.scanners[clientID]
	if !ok {
		cs = &clientScanner{scanner: NewScanner(r.recognizer, r.searcher, r.opts...)}
		r.scanners[clientID] = cs
	}
	cs.lastUsed = now
	return cs.scanner
}

// State returns the client's latest snapshot, idle for unknown clients.
func (r *Registry) State(clientID string) State {
	r.mu.Lock()
	cs, ok := r.scanners[clientID]
	r.mu.Unlock()
	if !ok {
		return *idleState()
	}
	return cs.scanner.State()
}

// Len returns the number of tracked clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scanners)
}

// Reset cancels every scan in flight and forgets all clients.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cs := range r.scanners {
		cs.scanner.Reset()
		delete(r.scanners, id)
	}
}

// evictIdle drops scanners unused for idleTTL. A scan still processing keeps
// its scanner. Callers hold r.mu.
func (r *Registry) evictIdle(now time.Time) {
	for id, cs := range r.scanners {
		if now.Sub(cs.lastUsed) < r.idleTTL {
			continue
		}
		if cs.scanner.State().Phase == PhaseProcessing {
			continue
		}
		delete(r.scanners, id)
		log.Debug().Str("client", id).Msg("dropping idle scanner")
	}
}
