package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/interview"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

// stubGenerator records calls and optionally blocks until released.
type stubGenerator struct {
	mu      sync.Mutex
	calls   []models.InterviewInput
	profile *models.GeneratedProfile
	err     error
	release chan struct{}
	started chan struct{}
}

func (g *stubGenerator) Generate(ctx context.Context, input models.InterviewInput) (*models.GeneratedProfile, error) {
	g.mu.Lock()
	g.calls = append(g.calls, input)
	g.mu.Unlock()

	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.profile, g.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func testProfile() *models.GeneratedProfile {
	return &models.GeneratedProfile{BrandIdentity: models.BrandIdentity{Archetype: "The Explorer"}}
}

func newTestStore(gen Generator) *Store {
	return NewStore(gen, Options{TTL: time.Minute, CleanupInterval: time.Minute, GenerationTimeout: time.Second}, zap.NewNop())
}

// readyToSubmit walks a session to the photos step with a tone set.
func readyToSubmit(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.Wizard().SetField(interview.FieldName, "Alex"))
	require.NoError(t, s.Wizard().SetField(interview.FieldTone, "bold"))
	for range 3 {
		submitted, err := s.Advance()
		require.NoError(t, err)
		require.False(t, submitted)
	}
}

func wait(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestSession_SubmitSucceeds(t *testing.T) {
	gen := &stubGenerator{profile: testProfile()}
	s := newTestStore(gen).Create()
	readyToSubmit(t, s)

	_, err := s.Result()
	assert.ErrorIs(t, err, ErrNoResult)

	submitted, err := s.Advance()
	require.NoError(t, err)
	assert.True(t, submitted)

	wait(t, s)
	assert.Equal(t, StatusSucceeded, s.Status())
	profile, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, "The Explorer", profile.BrandIdentity.Archetype)

	require.Equal(t, 1, gen.callCount())
	assert.Equal(t, "Alex", gen.calls[0].Name)
}

func TestSession_SubmitFails(t *testing.T) {
	cause := errors.New("generation failed")
	gen := &stubGenerator{err: cause}
	s := newTestStore(gen).Create()
	readyToSubmit(t, s)

	_, err := s.Advance()
	require.NoError(t, err)
	wait(t, s)

	assert.Equal(t, StatusFailed, s.Status())
	assert.ErrorIs(t, s.Err(), cause)
	_, err = s.Result()
	assert.ErrorIs(t, err, cause)

	// The answers survive so the user can retry from the interview.
	assert.Equal(t, "Alex", s.Wizard().Snapshot().Name)
	assert.Equal(t, interview.StepPhotos, s.Wizard().Step())

	gen.err = nil
	gen.profile = testProfile()
	_, err = s.Advance()
	require.NoError(t, err)
	wait(t, s)
	assert.Equal(t, StatusSucceeded, s.Status())
}

func TestSession_SingleInFlight(t *testing.T) {
	gen := &stubGenerator{profile: testProfile(), release: make(chan struct{}), started: make(chan struct{}, 1)}
	s := newTestStore(gen).Create()
	readyToSubmit(t, s)

	_, err := s.Advance()
	require.NoError(t, err)
	<-gen.started

	assert.Equal(t, StatusInFlight, s.Status())
	assert.False(t, s.CanAdvance())
	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrGenerationInFlight)

	close(gen.release)
	wait(t, s)
	assert.Equal(t, 1, gen.callCount())
	assert.True(t, s.CanAdvance())
}

func TestSession_RestartAbandonsInFlight(t *testing.T) {
	gen := &stubGenerator{profile: testProfile(), release: make(chan struct{}), started: make(chan struct{}, 1)}
	s := newTestStore(gen).Create()
	readyToSubmit(t, s)

	_, err := s.Advance()
	require.NoError(t, err)
	<-gen.started

	s.Restart()
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, interview.StepBasics, s.Wizard().Step())
	assert.Empty(t, s.Wizard().Snapshot().Name)

	close(gen.release)
	wait(t, s)

	assert.Equal(t, StatusIdle, s.Status(), "late response is ignored")
	_, err = s.Result()
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestSession_Timeout(t *testing.T) {
	gen := &stubGenerator{release: make(chan struct{})}
	st := NewStore(gen, Options{GenerationTimeout: 20 * time.Millisecond}, zap.NewNop())
	s := st.Create()
	readyToSubmit(t, s)

	_, err := s.Advance()
	require.NoError(t, err)
	wait(t, s)

	assert.Equal(t, StatusFailed, s.Status())
	assert.ErrorIs(t, s.Err(), context.DeadlineExceeded)
}

func TestSession_AdvanceBlockedByWizard(t *testing.T) {
	gen := &stubGenerator{}
	s := newTestStore(gen).Create()

	for range 2 {
		_, err := s.Advance()
		require.NoError(t, err)
	}
	_, err := s.Advance()
	assert.ErrorIs(t, err, interview.ErrToneRequired)
	assert.True(t, s.Retreat())
	assert.Equal(t, 0, gen.callCount())
}

func TestSession_WaitWithoutGeneration(t *testing.T) {
	s := newTestStore(&stubGenerator{}).Create()
	assert.NoError(t, s.Wait(context.Background()))
}
