package state

import (
	"sync"

	"github.com/example/ride-client/internal/models"
)

// Place is a resolved position with its display address. Set distinguishes
// "never chosen" from a genuine (0, 0) coordinate.
type Place struct {
	Coord   models.LatLng
	Address string
	Set     bool
}

// LocationSnapshot is a point-in-time view of the location store.
type LocationSnapshot struct {
	User        Place
	Destination Place
}

// LocationStore tracks the user's position and chosen destination.
// Changing either one invalidates any selected driver: a selection is only
// meaningful for the origin/destination pair it was made against.
type LocationStore struct {
	mu      sync.RWMutex
	user    Place
	dest    Place
	drivers *DriverStore
	subs    map[int]func(LocationSnapshot)
	nextSub int
}

// NewLocationStore wires the store to the driver store whose selection it
// must clear on location changes.
func NewLocationStore(drivers *DriverStore) *LocationStore {
	return &LocationStore{
		drivers: drivers,
		subs:    make(map[int]func(LocationSnapshot)),
	}
}

func (s *LocationStore) SetUserLocation(lat, lng float64, address string) {
	s.mu.Lock()
	s.user = Place{Coord: models.LatLng{Latitude: lat, Longitude: lng}, Address: address, Set: true}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.clearStaleSelection()
	notifyLocations(subs, snap)
}

func (s *LocationStore) SetDestinationLocation(lat, lng float64, address string) {
	s.mu.Lock()
	s.dest = Place{Coord: models.LatLng{Latitude: lat, Longitude: lng}, Address: address, Set: true}
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	s.clearStaleSelection()
	notifyLocations(subs, snap)
}

func (s *LocationStore) Snapshot() LocationSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// UserCoord returns the user position, nil when not set yet.
func (s *LocationStore) UserCoord() *models.LatLng {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.user.Set {
		return nil
	}
	c := s.user.Coord
	return &c
}

// DestinationCoord returns the destination, nil when not set yet.
func (s *LocationStore) DestinationCoord() *models.LatLng {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.dest.Set {
		return nil
	}
	c := s.dest.Coord
	return &c
}

// Subscribe registers fn for changes and returns a cancel func.
func (s *LocationStore) Subscribe(fn func(LocationSnapshot)) func() {
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

func (s *LocationStore) clearStaleSelection() {
	if s.drivers == nil {
		return
	}
	if s.drivers.Snapshot().SelectedDriver != nil {
		s.drivers.ClearSelectedDriver()
	}
}

func (s *LocationStore) snapshotLocked() (LocationSnapshot, []func(LocationSnapshot)) {
	snap := LocationSnapshot{User: s.user, Destination: s.dest}
	subs := make([]func(LocationSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notifyLocations(subs []func(LocationSnapshot), snap LocationSnapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
