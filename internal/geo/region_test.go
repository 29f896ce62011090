package geo

import (
	"testing"

	"github.com/example/ride-client/internal/models"
)

func TestCalculateRegionFallback(t *testing.T) {
	got := CalculateRegion(nil, nil)
	want := models.Region{Latitude: 37.78825, Longitude: -122.4324, LatitudeDelta: 0.01, LongitudeDelta: 0.01}
	if got != want {
		t.Fatalf("expected fallback region %+v, got %+v", want, got)
	}

	// a destination without a user position still falls back
	dest := &models.LatLng{Latitude: 35.0, Longitude: 139.0}
	if got := CalculateRegion(nil, dest); got != want {
		t.Fatalf("expected fallback region, got %+v", got)
	}
}

func TestCalculateRegionUserOnly(t *testing.T) {
	user := &models.LatLng{Latitude: 35.6586, Longitude: 139.7454}
	got := CalculateRegion(user, nil)
	if got.Latitude != user.Latitude || got.Longitude != user.Longitude {
		t.Fatalf("expected region centered on user, got %+v", got)
	}
	if got.LatitudeDelta != 0.01 || got.LongitudeDelta != 0.01 {
		t.Fatalf("expected default deltas, got %+v", got)
	}
}

func TestCalculateRegionZeroIsAValidCoordinate(t *testing.T) {
	user := &models.LatLng{Latitude: 0, Longitude: 0}
	got := CalculateRegion(user, nil)
	if got.Latitude != 0 || got.Longitude != 0 {
		t.Fatalf("(0,0) must not trigger the fallback, got %+v", got)
	}
}

func TestCalculateRegionContainsBothPoints(t *testing.T) {
	cases := []struct {
		name       string
		user, dest models.LatLng
	}{
		{"tokyo to yokohama", models.LatLng{Latitude: 35.6586, Longitude: 139.7454}, models.LatLng{Latitude: 35.4437, Longitude: 139.6380}},
		{"sf northeast", models.LatLng{Latitude: 37.78825, Longitude: -122.4324}, models.LatLng{Latitude: 37.8044, Longitude: -122.2712}},
		{"across equator", models.LatLng{Latitude: -0.2, Longitude: 36.8}, models.LatLng{Latitude: 0.3, Longitude: 36.9}},
		{"same point", models.LatLng{Latitude: 10, Longitude: 10}, models.LatLng{Latitude: 10, Longitude: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := CalculateRegion(&tc.user, &tc.dest)
			for _, p := range []models.LatLng{tc.user, tc.dest} {
				if p.Latitude < r.Latitude-r.LatitudeDelta/2 || p.Latitude > r.Latitude+r.LatitudeDelta/2 {
					t.Fatalf("latitude %f outside viewport %+v", p.Latitude, r)
				}
				if p.Longitude < r.Longitude-r.LongitudeDelta/2 || p.Longitude > r.Longitude+r.LongitudeDelta/2 {
					t.Fatalf("longitude %f outside viewport %+v", p.Longitude, r)
				}
			}
		})
	}
}
