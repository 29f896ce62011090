package geo

import (
	"math"
	"sync"
	"time"

	"github.com/example/ride-client/internal/models"
)

// Catalog is the driver-position index consulted by the drivers endpoint.
type Catalog interface {
	Upsert(p models.DriverPing)
	All(limit int) []models.DriverPing
	Nearby(lat, lng float64, limit int) []models.DriverPing
}

type Index struct {
	mu      sync.RWMutex
	drivers map[int]models.DriverPing
}

func NewIndex() *Index {
	return &Index{drivers: make(map[int]models.DriverPing)}
}

func (g *Index) Upsert(p models.DriverPing) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p.Updated = time.Now()
	g.drivers[p.ID] = p
}

// All returns up to limit online drivers in no particular order.
func (g *Index) All(limit int) []models.DriverPing {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.DriverPing, 0, len(g.drivers))
	for _, p := range g.drivers {
		if !p.Online {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// naive scan; in prod use geo-hash or H3
func (g *Index) Nearby(lat, lng float64, limit int) []models.DriverPing {
	g.mu.RLock()
	defer g.mu.RUnlock()
	type pair struct {
		p    models.DriverPing
		dist float64
	}
	arr := make([]pair, 0, len(g.drivers))
	for _, p := range g.drivers {
		if !p.Online {
			continue
		}
		dist := Haversine(lat, lng, p.Location.Latitude, p.Location.Longitude)
		arr = append(arr, pair{p, dist})
	}
	// partial selection sort for top-N
	n := limit
	if n > len(arr) {
		n = len(arr)
	}
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < len(arr); j++ {
			if arr[j].dist < arr[minIdx].dist {
				minIdx = j
			}
		}
		arr[i], arr[minIdx] = arr[minIdx], arr[i]
	}
	out := make([]models.DriverPing, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, arr[i].p)
	}
	return out
}

// Haversine distance in meters
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371000.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180.0 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
