package analytics

import (
	"context"
	"sync"

	"github.com/gnomegl/gitvouch/internal/models"
)

// State is what a consumer of a Session observes: idle/loading, then a
// settled profile+timeline or an error.
type State struct {
	Profile  *models.Profile
	Timeline models.Timeline
	Loading  bool
	Err      error
}

// Session runs the analyzer asynchronously and keeps the latest settled
// state. Starting a new run supersedes any in-flight one: results from a
// superseded run are discarded, never merged into newer state.
type Session struct {
	analyzer *Analyzer

	mu         sync.Mutex
	generation uint64
	state      State
}

func NewSession(a *Analyzer) *Session {
	return &Session{analyzer: a}
}

// Start kicks off a run for username and returns a channel that closes once
// that particular run has settled, whether or not its result was applied.
func (s *Session) Start(ctx context.Context, username string) <-chan struct{} {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = State{Loading: true}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := s.analyzer.Run(ctx, username)
		s.apply(gen, result, err)
	}()
	return done
}

// apply installs a run's outcome unless a newer run has started since.
func (s *Session) apply(gen uint64, result *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.state = State{Err: err}
		return
	}
	s.state = State{Profile: result.Profile, Timeline: result.Timeline}
}

// State returns a snapshot of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
