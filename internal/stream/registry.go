// Package stream pushes live driver updates to connected map clients over
// websockets.
package stream

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/ride-client/internal/models"
)

type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) send(ping models.DriverPing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(ping)
}

// Registry holds connected client sessions and fans driver updates out to
// all of them. Sessions whose writes fail are dropped.
type Registry struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger, sessions: make(map[string]*session)}
}

func (r *Registry) Add(clientID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[clientID] = &session{conn: conn}
}

func (r *Registry) Remove(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, clientID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Broadcast sends the ping to every connected client.
func (r *Registry) Broadcast(ping models.DriverPing) {
	r.mu.RLock()
	targets := make(map[string]*session, len(r.sessions))
	for id, s := range r.sessions {
		targets[id] = s
	}
	r.mu.RUnlock()

	for id, s := range targets {
		if err := s.send(ping); err != nil {
			if r.logger != nil {
				r.logger.Warn("ws send failed, dropping session", "client", id, "error", err)
			}
			_ = s.conn.Close()
			r.Remove(id)
		}
	}
}
