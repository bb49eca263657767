package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/interview"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

// Status of the session's single generation slot.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusInFlight  Status = "in_flight"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

var (
	ErrNotFound           = errors.New("session: not found")
	ErrGenerationInFlight = errors.New("session: profile generation already in progress")
	ErrNoResult           = errors.New("session: no generated profile yet")
)

// Generator turns a completed interview into a profile.
type Generator interface {
	Generate(ctx context.Context, input models.InterviewInput) (*models.GeneratedProfile, error)
}

// Session is one user's interview plus at most one outstanding generation.
type Session struct {
	ID        string
	CreatedAt time.Time

	wizard  *interview.Wizard
	gen     Generator
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	status Status
	result *models.GeneratedProfile
	err    error
	epoch  uint64
	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(id string, gen Generator, timeout time.Duration, wizard *interview.Wizard, logger *zap.Logger) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		wizard:    wizard,
		gen:       gen,
		timeout:   timeout,
		logger:    logger.With(zap.String("session_id", id)),
		status:    StatusIdle,
	}
}

func (s *Session) Wizard() *interview.Wizard {
	return s.wizard
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the last generation failure, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Result returns the generated profile once the generation succeeded.
func (s *Session) Result() (*models.GeneratedProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case StatusSucceeded:
		return s.result, nil
	case StatusFailed:
		return nil, s.err
	default:
		return nil, ErrNoResult
	}
}

func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status != StatusInFlight && s.wizard.CanAdvance()
}

// Advance forwards to the wizard. When the wizard submits, one generation
// starts in the background and submitted is true.
func (s *Session) Advance() (submitted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusInFlight {
		return false, ErrGenerationInFlight
	}

	input, submitted, err := s.wizard.Advance()
	if err != nil || !submitted {
		return false, err
	}

	s.startLocked(input)
	return true, nil
}

func (s *Session) Retreat() bool {
	return s.wizard.Retreat()
}

func (s *Session) startLocked(input models.InterviewInput) {
	s.epoch++
	epoch := s.epoch

	ctx, cancel := context.WithCancel(context.Background())
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	}
	done := make(chan struct{})

	s.status = StatusInFlight
	s.result = nil
	s.err = nil
	s.cancel = cancel
	s.done = done

	s.logger.Info("profile generation started",
		zap.Uint64("epoch", epoch),
		zap.Int("images", len(input.Images)),
	)

	go func() {
		defer close(done)
		defer cancel()

		profile, err := s.gen.Generate(ctx, input)
		s.finish(epoch, profile, err)
	}()
}

func (s *Session) finish(epoch uint64, profile *models.GeneratedProfile, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		s.logger.Debug("ignoring abandoned generation", zap.Uint64("epoch", epoch))
		return
	}

	s.cancel = nil
	if err != nil {
		s.status = StatusFailed
		s.err = err
		return
	}
	s.status = StatusSucceeded
	s.result = profile
}

// Wait blocks until the current generation, if any, has returned.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Restart abandons any in-flight generation and clears the interview and
// its result. A response arriving afterwards is ignored.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.abandonLocked()
	s.status = StatusIdle
	s.result = nil
	s.err = nil
	s.wizard.Reset()
}

func (s *Session) abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
}

func (s *Session) abandonLocked() {
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.logger.Info("in-flight generation abandoned")
	}
}
