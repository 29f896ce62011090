// Package state holds the client-side stores shared between map and ride
// screens. Stores are plain injectable values, not package globals, so the
// cross-store rules stay testable in isolation. Mutation goes through
// setters only; reads are snapshots; subscribers are notified outside the
// store lock.
package state

import (
	"sync"

	"github.com/example/ride-client/internal/models"
)

// DriverSnapshot is a point-in-time view of the driver store.
type DriverSnapshot struct {
	Drivers        []models.MarkerData
	SelectedDriver *int
}

// DriverStore tracks the available drivers and the current selection.
// It never touches location state; the coupling runs the other way.
type DriverStore struct {
	mu       sync.RWMutex
	drivers  []models.MarkerData
	selected *int
	subs     map[int]func(DriverSnapshot)
	nextSub  int
}

func NewDriverStore() *DriverStore {
	return &DriverStore{subs: make(map[int]func(DriverSnapshot))}
}

// SetDrivers replaces the whole list; there is no merge.
func (s *DriverStore) SetDrivers(drivers []models.MarkerData) {
	s.mu.Lock()
	s.drivers = append([]models.MarkerData(nil), drivers...)
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notifyDrivers(subs, snap)
}

// SetSelectedDriver records a selection by driver id. The id is expected to
// reference an entry previously placed via SetDrivers; the store does not
// verify that.
func (s *DriverStore) SetSelectedDriver(id int) {
	s.mu.Lock()
	s.selected = &id
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notifyDrivers(subs, snap)
}

func (s *DriverStore) ClearSelectedDriver() {
	s.mu.Lock()
	s.selected = nil
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()
	notifyDrivers(subs, snap)
}

func (s *DriverStore) Snapshot() DriverSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// Subscribe registers fn for changes and returns a cancel func.
func (s *DriverStore) Subscribe(fn func(DriverSnapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *DriverStore) snapshotLocked() (DriverSnapshot, []func(DriverSnapshot)) {
	snap := DriverSnapshot{
		Drivers: append([]models.MarkerData(nil), s.drivers...),
	}
	if s.selected != nil {
		id := *s.selected
		snap.SelectedDriver = &id
	}
	subs := make([]func(DriverSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notifyDrivers(subs []func(DriverSnapshot), snap DriverSnapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
