package geo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ride-client/internal/models"
)

// RedisGeo implements Catalog on top of Redis GEO commands, with driver
// metadata kept in a companion hash per driver.
type RedisGeo struct {
	client *redis.Client
	key    string
	ctx    context.Context
}

func NewRedisGeo(addr, password, key string) *RedisGeo {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisGeo{client: c, key: key, ctx: context.Background()}
}

func (r *RedisGeo) Upsert(p models.DriverPing) {
	_, _ = r.client.GeoAdd(r.ctx, r.key, &redis.GeoLocation{
		Longitude: p.Location.Longitude,
		Latitude:  p.Location.Latitude,
		Name:      strconv.Itoa(p.ID),
	}).Result()
	_ = r.client.HSet(r.ctx, metaKey(p.ID), map[string]interface{}{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"car_seats":  strconv.Itoa(p.CarSeats),
		"rating":     fmt.Sprintf("%f", p.Rating),
		"online":     strconv.FormatBool(p.Online),
		"updated":    time.Now().Format(time.RFC3339),
	}).Err()
}

func (r *RedisGeo) All(limit int) []models.DriverPing {
	// GEO sets have no cheap full scan with coordinates; search a wide
	// radius around the origin instead.
	return r.search(0, 0, 30000e3, limit)
}

func (r *RedisGeo) Nearby(lat, lng float64, limit int) []models.DriverPing {
	return r.search(lat, lng, 5000, limit)
}

func (r *RedisGeo) search(lat, lng, radiusMeters float64, limit int) []models.DriverPing {
	res, err := r.client.GeoRadius(r.ctx, r.key, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusMeters,
		Unit:      "m",
		WithCoord: true,
		WithDist:  true,
		Count:     limit,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil
	}
	out := make([]models.DriverPing, 0, len(res))
	for _, g := range res {
		id, err := strconv.Atoi(g.Name)
		if err != nil {
			continue
		}
		p := models.DriverPing{
			Driver:   models.Driver{ID: id},
			Location: models.LatLng{Latitude: g.Latitude, Longitude: g.Longitude},
		}
		if m, err := r.client.HGetAll(r.ctx, metaKey(id)).Result(); err == nil {
			p.FirstName = m["first_name"]
			p.LastName = m["last_name"]
			if v, ok := m["car_seats"]; ok {
				if n, err := strconv.Atoi(v); err == nil {
					p.CarSeats = n
				}
			}
			if v, ok := m["rating"]; ok {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					p.Rating = f
				}
			}
			if v, ok := m["online"]; ok {
				p.Online = v == "true"
			}
		}
		out = append(out, p)
	}
	return out
}

func metaKey(id int) string { return "driver:meta:" + strconv.Itoa(id) }
