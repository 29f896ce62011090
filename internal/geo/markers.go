package geo

import (
	"math/rand"

	"github.com/example/ride-client/internal/models"
)

// maximum jitter applied to a synthetic marker, degrees per axis
const markerJitter = 0.01

// GenerateMarkersFromData places one marker per driver near the user by
// applying an independent uniform offset in (-0.005, 0.005) on each axis.
// Output order matches input order. The random source is injected so
// placement is reproducible under test.
func GenerateMarkersFromData(drivers []models.Driver, user models.LatLng, rnd *rand.Rand) []models.MarkerData {
	markers := make([]models.MarkerData, 0, len(drivers))
	for _, d := range drivers {
		latOffset := (rnd.Float64() - 0.5) * markerJitter
		lngOffset := (rnd.Float64() - 0.5) * markerJitter

		markers = append(markers, models.MarkerData{
			Driver:    d,
			Latitude:  user.Latitude + latOffset,
			Longitude: user.Longitude + lngOffset,
			Title:     d.FirstName + " " + d.LastName,
		})
	}
	return markers
}
