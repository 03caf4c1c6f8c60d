// Package scan runs the prescription pipeline (OCR, extraction, resolution)
// and exposes its progress as immutable State snapshots.
//
// Only the latest invocation may publish: starting a scan cancels the one in
// flight, and a superseded invocation's results are dropped.
package scan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alertemedicaments/prescription-scan/internal/core/medication"
	"github.com/alertemedicaments/prescription-scan/internal/core/ocr"
	"github.com/alertemedicaments/prescription-scan/internal/core/prescription"
)

// Recognizer turns image bytes into text. *ocr.Service implements it.
type Recognizer interface {
	Recognize(ctx context.Context, imageData []byte) (*ocr.OCRResult, error)
}

// Scanner owns the current scan.
type Scanner struct {
	recognizer Recognizer
	searcher   prescription.Searcher
	maxMatches int

	state atomic.Pointer[State]

	mu      sync.Mutex // serializes Start/Run/Reset handover
	current *Invocation
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxMatches overrides prescription.DefaultMaxMatches.
func WithMaxMatches(n int) Option {
	return func(s *Scanner) { s.maxMatches = n }
}

// NewScanner creates an idle scanner.
func NewScanner(recognizer Recognizer, searcher prescription.Searcher, opts ...Option) *Scanner {
	s := &Scanner{
		recognizer: recognizer,
		searcher:   searcher,
		maxMatches: prescription.DefaultMaxMatches,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(idleState())
	return s
}

// State returns the latest published snapshot.
func (s *Scanner) State() State {
	return *s.state.Load()
}

// Invocation is one scan run.
type Invocation struct {
	ID uuid.UUID

	ctx     context.Context
	cancel  context.CancelFunc
	started time.Time
	done    chan struct{}
	result  State
}

// Done is closed once the invocation has finished, published or not.
func (inv *Invocation) Done() <-chan struct{} {
	return inv.done
}

// Cancel stops the invocation. Its final state is not published once a newer
// invocation has started.
func (inv *Invocation) Cancel() {
	inv.cancel()
}

// Wait blocks until the invocation finishes and returns its final state. The
// state is returned even when a newer invocation superseded it.
func (inv *Invocation) Wait(ctx context.Context) (State, error) {
	select {
	case <-inv.done:
		return inv.result, nil
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Start launches a scan in the background, cancelling the previous one.
func (s *Scanner) Start(ctx context.Context, imageData []byte) *Invocation {
	inv := s.begin(ctx)
	go s.run(inv, imageData)
	return inv
}

// Run scans synchronously and returns the invocation's final state.
func (s *Scanner) Run(ctx context.Context, imageData []byte) State {
	inv := s.begin(ctx)
	s.run(inv, imageData)
	return inv.result
}

// Reset cancels any scan in flight and returns to the idle state.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
	s.state.Store(idleState())
}

func (s *Scanner) begin(parent context.Context) *Invocation {
	ctx, cancel := context.WithCancel(parent)
	inv := &Invocation{
		ID:      uuid.New(),
		ctx:     ctx,
		cancel:  cancel,
		started: time.Now(),
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		log.Debug().Str("invocation", s.current.ID.String()).Msg("cancelling superseded scan")
		s.current.cancel()
	}
	s.current = inv
	s.state.Store(inv.processing())
	return inv
}

func (inv *Invocation) processing() *State {
	started := inv.started
	return &State{
		InvocationID: inv.ID,
		Phase:        PhaseProcessing,
		Candidates:   []string{},
		Matches:      []medication.Medication{},
		StartedAt:    &started,
	}
}

// publish stores next if inv is still the current invocation.
func (s *Scanner) publish(inv *Invocation, next State) bool {
	for {
		cur := s.state.Load()
		if cur.InvocationID != inv.ID {
			return false
		}
		snapshot := next
		if s.state.CompareAndSwap(cur, &snapshot) {
			return true
		}
	}
}

func (s *Scanner) run(inv *Invocation, imageData []byte) {
	defer close(inv.done)
	defer inv.cancel()

	st := *inv.processing()
	logger := log.With().Str("invocation", inv.ID.String()).Logger()

	finish := func(next State) {
		finished := time.Now()
		next.FinishedAt = &finished
		inv.result = next
		if !s.publish(inv, next) {
			logger.Debug().Msg("scan superseded, result dropped")
		}
	}
	fail := func(message string, err error) {
		next := st
		next.Phase = PhaseError
		next.Error = message
		next.Err = err
		finish(next)
	}

	res, err := s.recognizer.Recognize(inv.ctx, imageData)
	switch {
	case inv.ctx.Err() != nil:
		fail(MessageCancelled, inv.ctx.Err())
		return
	case errors.Is(err, ocr.ErrImageDecode):
		logger.Error().Err(err).Msg("❌ failed to decode prescription image")
		fail(MessageDecodeFailed, err)
		return
	case err != nil:
		logger.Error().Err(err).Msg("❌ OCR failed")
		fail(MessageOCRFailed+err.Error(), err)
		return
	case res == nil || strings.TrimSpace(res.Text) == "":
		logger.Info().Msg("no text detected")
		fail(MessageNoText, ocr.ErrNoTextDetected)
		return
	}

	st.ExtractedText = res.Text
	st.Candidates = prescription.Extract(res.Text)
	s.publish(inv, st)
	logger.Info().Int("candidates", len(st.Candidates)).Float64("confidence", res.Confidence).Msg("📄 text extracted")

	resolver := prescription.NewResolver(s.searcher,
		prescription.WithMaxMatches(s.maxMatches),
		prescription.WithProgress(func(p prescription.Progress) {
			st.Matches = p.Matches
			st.Searched = p.Searched
			s.publish(inv, st)
		}),
	)
	matches := resolver.Resolve(inv.ctx, st.Candidates)

	if err := inv.ctx.Err(); err != nil {
		st.Matches = matches
		fail(MessageCancelled, err)
		return
	}

	st.Matches = matches
	st.Phase = PhaseDone
	if len(matches) == 0 {
		st.Outcome = OutcomeNoMatches
		st.Message = MessageNoMatches
	} else {
		st.Outcome = OutcomeMatched
	}
	logger.Info().Int("matches", len(matches)).Str("outcome", st.Outcome.String()).Msg("✅ scan finished")
	finish(st)
}
