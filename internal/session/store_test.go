package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_CreateAndGet(t *testing.T) {
	st := newTestStore(&stubGenerator{})

	s := st.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, StatusIdle, s.Status())

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Count())

	other := st.Create()
	assert.NotEqual(t, s.ID, other.ID)
	assert.NotSame(t, s.Wizard(), other.Wizard(), "sessions share no state")
}

func TestStore_GetUnknown(t *testing.T) {
	st := newTestStore(&stubGenerator{})

	_, err := st.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteAbandonsGeneration(t *testing.T) {
	gen := &stubGenerator{profile: testProfile(), release: make(chan struct{}), started: make(chan struct{}, 1)}
	st := newTestStore(gen)
	s := st.Create()
	readyToSubmit(t, s)

	_, err := s.Advance()
	require.NoError(t, err)
	<-gen.started

	st.Delete(s.ID)
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The generator sees its context canceled.
	wait(t, s)
	assert.Equal(t, StatusInFlight, s.Status(), "abandoned result is never recorded")
}

func TestStore_Expiry(t *testing.T) {
	st := NewStore(&stubGenerator{}, Options{TTL: 20 * time.Millisecond, CleanupInterval: time.Hour}, zap.NewNop())
	s := st.Create()

	time.Sleep(50 * time.Millisecond)
	_, err := st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
