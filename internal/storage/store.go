package storage

import (
	"errors"
	"sync"

	"github.com/example/ride-client/internal/models"
)

var ErrDuplicateEmail = errors.New("email already registered")

// UserStore persists application accounts created after sign-up.
type UserStore interface {
	CreateUser(u *models.User) error
	UserByEmail(email string) (*models.User, error) // nil when absent
}

// RideStore persists trip records for the history screen.
type RideStore interface {
	SaveRide(r *models.Ride) error
	RidesByUser(email string) ([]models.Ride, error)
}

// MemoryStore backs both stores for local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by email
	rides map[string][]models.Ride
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
		rides: make(map[string][]models.Ride),
	}
}

func (m *MemoryStore) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return ErrDuplicateEmail
	}
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *MemoryStore) UserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) SaveRide(r *models.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[r.UserEmail] = append(m.rides[r.UserEmail], *r)
	return nil
}

func (m *MemoryStore) RidesByUser(email string) ([]models.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Ride(nil), m.rides[email]...), nil
}
