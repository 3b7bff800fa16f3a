package analyzer

import (
	"context"
	"errors"
	"sync"

	"github.com/blackwell-systems/codegauge/internal/estimate"
)

// ErrSuperseded is delivered to a submission that was replaced by a newer
// one or abandoned before it finished.
var ErrSuperseded = errors.New("analysis superseded")

// Session runs analyses for a single caller with last-call-wins
// semantics: submitting a new descriptor cancels the one in flight.
type Session struct {
	analyzer *Analyzer

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	latest *Bundle
}

// NewSession returns a Session backed by a.
func NewSession(a *Analyzer) *Session {
	return &Session{analyzer: a}
}

// Submit starts an analysis of d and returns a channel that receives
// exactly one Result. Invalid descriptors are rejected synchronously and
// leave any in-flight analysis untouched.
func (s *Session) Submit(ctx context.Context, d estimate.Descriptor) (<-chan Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	seed := s.analyzer.Seed(d)
	ch := make(chan Result, 1)
	go func() {
		defer cancel()
		b, err := s.analyzer.AnalyzeSeed(ctx, d, seed)

		s.mu.Lock()
		current := gen == s.gen
		if current {
			s.cancel = nil
			if err == nil {
				s.latest = b
			}
		}
		s.mu.Unlock()

		if !current {
			ch <- Result{Descriptor: d, Err: ErrSuperseded}
			return
		}
		ch <- Result{Descriptor: d, Seed: seed, Bundle: b, Err: err}
	}()
	return ch, nil
}

// Abandon discards the in-flight analysis, if any.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// Latest returns the most recent bundle delivered by this session, or nil.
func (s *Session) Latest() *Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	return s.latest.clone()
}
