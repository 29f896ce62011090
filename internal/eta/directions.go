package eta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/example/ride-client/internal/models"
)

// Client resolves the travel time of a single route leg.
type Client interface {
	LegSeconds(ctx context.Context, from, to models.LatLng) (float64, error)
}

// DirectionsClient queries a Google-Directions-shaped routing API.
type DirectionsClient struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func NewDirectionsClient(endpoint, apiKey string) *DirectionsClient {
	return &DirectionsClient{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// LegSeconds fetches the first route's first leg duration in seconds.
func (d *DirectionsClient) LegSeconds(ctx context.Context, from, to models.LatLng) (float64, error) {
	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", from.Latitude, from.Longitude))
	q.Set("destination", fmt.Sprintf("%f,%f", to.Latitude, to.Longitude))
	q.Set("key", d.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out struct {
		Routes []struct {
			Legs []struct {
				Duration struct {
					Value float64 `json:"value"` // seconds
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	if len(out.Routes) == 0 || len(out.Routes[0].Legs) == 0 {
		return 0, fmt.Errorf("directions: no route (status %q)", out.Status)
	}
	return out.Routes[0].Legs[0].Duration.Value, nil
}
