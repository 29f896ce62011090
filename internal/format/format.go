// Package format holds display helpers for ride history screens.
package format

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/example/ride-client/internal/models"
)

// SortRides orders rides ascending by combined date+time (earliest first).
// Kept as a descending sort followed by a reversal to mirror the original
// history-screen behavior, including its stability characteristics.
func SortRides(rides []models.Ride) []models.Ride {
	sorted := append([]models.Ride(nil), rides...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rideTimestamp(sorted[i]).After(rideTimestamp(sorted[j]))
	})
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}

func rideTimestamp(r models.Ride) time.Time {
	combined := r.CreatedAt + "T" + r.RideTime
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, combined); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTime renders an estimated duration in minutes for display.
// Under an hour the raw minutes value is shown; from an hour up it is
// rounded and split into hours and minutes, omitting a zero minutes part.
func FormatTime(minutes float64) string {
	rounded := math.Round(minutes)
	if math.IsNaN(rounded) {
		rounded = 0
	}

	if rounded < 60 {
		return strconv.FormatFloat(minutes, 'f', -1, 64) + "分"
	}

	hours := int(rounded) / 60
	remaining := int(rounded) % 60
	if remaining > 0 {
		return fmt.Sprintf("%d時間 %d分", hours, remaining)
	}
	return fmt.Sprintf("%d時間", hours)
}

// FormatDate renders a date as YYYY/MM/DD with zero-padded month and day.
// Unparseable input is returned unchanged.
func FormatDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
	}
	if err != nil {
		return value
	}
	return fmt.Sprintf("%d/%02d/%02d", t.Year(), int(t.Month()), t.Day())
}
