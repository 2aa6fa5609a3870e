package services

import (
	"sync"

	"go.uber.org/zap"
)

// Registry hands out one independent Session per key (chat id). Sessions are
// created on first use and never share state.
type Registry struct {
	menu   MenuLookup
	opts   []SessionOption
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewRegistry(menu MenuLookup, logger *zap.Logger, opts ...SessionOption) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		menu:     menu,
		opts:     append([]SessionOption{WithLogger(logger)}, opts...),
		logger:   logger,
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for key, creating it if needed.
func (r *Registry) Get(key int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = NewSession(r.menu, r.opts...)
		r.sessions[key] = s
		r.logger.Debug("session started", zap.Int64("key", key), zap.String("session_id", s.ID()))
	}
	return s
}

// Drop ends the session for key. The next Get starts a fresh one.
func (r *Registry) Drop(key int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		delete(r.sessions, key)
		r.logger.Debug("session ended", zap.Int64("key", key), zap.String("session_id", s.ID()))
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
