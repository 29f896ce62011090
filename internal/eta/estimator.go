package eta

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/example/ride-client/internal/models"
)

// EstimationError reports a failed fare/time batch. Any single leg failure
// aborts the whole batch; no partial marker list is produced.
type EstimationError struct {
	cause error
}

func (e *EstimationError) Error() string { return "driver time estimation: " + e.cause.Error() }
func (e *EstimationError) Unwrap() error { return e.cause }

// Estimator computes per-driver travel time and fare against a routing API.
type Estimator struct {
	Client        Client
	Logger        *slog.Logger
	FarePerMinute float64 // price per estimated minute; 0 means the default
}

const defaultFarePerMinute = 0.5

// DriverTimes attaches Time (minutes) and Price to a copy of every marker.
// Returns (nil, nil) when user or destination is absent. Each marker needs
// two legs, marker→user and user→destination; markers are estimated
// concurrently and joined all-or-nothing: one failing leg fails the batch.
func (e *Estimator) DriverTimes(ctx context.Context, markers []models.MarkerData, user, destination *models.LatLng) ([]models.MarkerData, error) {
	if user == nil || destination == nil {
		return nil, nil
	}

	rate := e.FarePerMinute
	if rate <= 0 {
		rate = defaultFarePerMinute
	}

	out := make([]models.MarkerData, len(markers))
	errs := make([]error, len(markers))

	var wg sync.WaitGroup
	for i, m := range markers {
		wg.Add(1)
		go func(i int, m models.MarkerData) {
			defer wg.Done()

			toUser, err := e.Client.LegSeconds(ctx, models.LatLng{Latitude: m.Latitude, Longitude: m.Longitude}, *user)
			if err != nil {
				errs[i] = err
				return
			}
			toDestination, err := e.Client.LegSeconds(ctx, *user, *destination)
			if err != nil {
				errs[i] = err
				return
			}

			totalMinutes := (toUser + toDestination) / 60
			m.Time = totalMinutes
			m.Price = strconv.FormatFloat(totalMinutes*rate, 'f', 2, 64)
			out[i] = m
		}(i, m)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		if e.Logger != nil {
			e.Logger.Error("driver time estimation failed", "error", err)
		}
		return nil, &EstimationError{cause: err}
	}
	return out, nil
}
