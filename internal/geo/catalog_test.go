package geo

import (
	"testing"

	"github.com/example/ride-client/internal/models"
)

func TestHaversineZero(t *testing.T) {
	if d := Haversine(0, 0, 0, 0); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestIndexNearbyOrdersByDistance(t *testing.T) {
	idx := NewIndex()
	idx.Upsert(models.DriverPing{Driver: models.Driver{ID: 1}, Location: models.LatLng{Latitude: 0.10, Longitude: 0}, Online: true})
	idx.Upsert(models.DriverPing{Driver: models.Driver{ID: 2}, Location: models.LatLng{Latitude: 0.01, Longitude: 0}, Online: true})
	idx.Upsert(models.DriverPing{Driver: models.Driver{ID: 3}, Location: models.LatLng{Latitude: 0.05, Longitude: 0}, Online: true})
	idx.Upsert(models.DriverPing{Driver: models.Driver{ID: 4}, Location: models.LatLng{Latitude: 0.001, Longitude: 0}, Online: false})

	got := idx.Nearby(0, 0, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("expected nearest-first [2 3], got [%d %d]", got[0].ID, got[1].ID)
	}
}

func TestIndexAllSkipsOffline(t *testing.T) {
	idx := NewIndex()
	idx.Upsert(models.DriverPing{Driver: models.Driver{ID: 1}, Online: true})
	idx.Upsert(models.DriverPing{Driver: models.Driver{ID: 2}, Online: false})

	got := idx.All(0)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only the online driver, got %+v", got)
	}
}
