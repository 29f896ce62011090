package geo

import (
	"math"

	"github.com/example/ride-client/internal/models"
)

// Default viewport shown before the user's position is known
// (downtown San Francisco).
var fallbackRegion = models.Region{
	Latitude:       37.78825,
	Longitude:      -122.4324,
	LatitudeDelta:  0.01,
	LongitudeDelta: 0.01,
}

const (
	defaultDelta = 0.01
	// span multiplier so both endpoints sit inside the viewport with margin
	regionPadding = 1.3
)

// CalculateRegion derives the map viewport from the user and destination
// positions. Absence is a nil pointer; latitude/longitude 0 is a valid
// coordinate. With no user position the fallback region is returned; with
// only a user position the viewport centers on the user; with both, the
// viewport centers on the midpoint and spans both points plus 30% margin.
func CalculateRegion(user, destination *models.LatLng) models.Region {
	if user == nil {
		return fallbackRegion
	}

	if destination == nil {
		return models.Region{
			Latitude:       user.Latitude,
			Longitude:      user.Longitude,
			LatitudeDelta:  defaultDelta,
			LongitudeDelta: defaultDelta,
		}
	}

	minLat := math.Min(user.Latitude, destination.Latitude)
	maxLat := math.Max(user.Latitude, destination.Latitude)
	minLng := math.Min(user.Longitude, destination.Longitude)
	maxLng := math.Max(user.Longitude, destination.Longitude)

	return models.Region{
		Latitude:       (user.Latitude + destination.Latitude) / 2,
		Longitude:      (user.Longitude + destination.Longitude) / 2,
		LatitudeDelta:  (maxLat - minLat) * regionPadding,
		LongitudeDelta: (maxLng - minLng) * regionPadding,
	}
}
