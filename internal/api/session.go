package api

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/inamate/drawkit/internal/engine"
)

// Session serializes access to one engine. The HTTP handlers and the
// websocket hub both go through it.
type Session struct {
	mu     sync.Mutex
	engine *engine.Engine
}

func NewSession(e *engine.Engine) *Session {
	return &Session{engine: e}
}

// Apply decodes and applies one operation and returns the drawing version
// afterwards. It has the shape of notify.OpHandler.
func (s *Session) Apply(_ context.Context, raw json.RawMessage) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.engine.ApplyJSON(raw)
	return s.engine.Drawing().Version(), err
}

// Read runs fn with exclusive access to the engine.
func (s *Session) Read(fn func(e *engine.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}
