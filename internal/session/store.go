package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/interview"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/metrics"
)

type Options struct {
	TTL               time.Duration
	CleanupInterval   time.Duration
	GenerationTimeout time.Duration
	MaxImageBytes     int64
}

// Store keeps sessions in memory. Each access extends a session's TTL;
// expired or deleted sessions have their in-flight work abandoned.
type Store struct {
	cache  *cache.Cache
	gen    Generator
	opts   Options
	logger *zap.Logger
}

func NewStore(gen Generator, opts Options, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 5 * time.Minute
	}

	c := cache.New(opts.TTL, opts.CleanupInterval)
	c.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.abandon()
		}
		metrics.ActiveSessions.Dec()
		logger.Debug("session evicted", zap.String("session_id", id))
	})

	return &Store{cache: c, gen: gen, opts: opts, logger: logger.Named("session")}
}

// Create starts a new interview.
func (st *Store) Create() *Session {
	id := uuid.NewString()
	wizard := interview.New(
		interview.WithMaxImageBytes(st.opts.MaxImageBytes),
		interview.WithLogger(st.logger.With(zap.String("session_id", id))),
	)
	s := newSession(id, st.gen, st.opts.GenerationTimeout, wizard, st.logger)

	st.cache.SetDefault(id, s)
	metrics.ActiveSessions.Inc()
	st.logger.Info("session started", zap.String("session_id", id))
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, ErrNotFound
	}
	st.cache.SetDefault(id, s)
	return s, nil
}

func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

func (st *Store) Count() int {
	return st.cache.ItemCount()
}
