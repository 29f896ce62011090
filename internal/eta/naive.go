package eta

import (
	"context"

	"github.com/example/ride-client/internal/geo"
	"github.com/example/ride-client/internal/models"
)

// NaiveClient estimates a leg as straight-line distance over a fixed speed.
// Used when no directions API key is configured; good enough for local runs.
type NaiveClient struct {
	SpeedMps float64
}

func (n *NaiveClient) LegSeconds(_ context.Context, from, to models.LatLng) (float64, error) {
	speed := n.SpeedMps
	if speed <= 0 {
		speed = 8.0 // ~28.8 km/h default city speed
	}
	d := geo.Haversine(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	return d / speed, nil
}
