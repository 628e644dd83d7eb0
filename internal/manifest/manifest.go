// Package manifest builds the dashboard's date-range report: parcel counts
// aggregated by origin town.
package manifest

import (
	"errors"

	"github.com/kettno/courier-portal/pkg/models"
)

// UnknownTown is the bucket for parcels whose origin town is not in the
// directory. They are counted, never dropped.
const UnknownTown = "Unknown"

// ErrMissingDates blocks a manifest fetch when either bound is absent.
var ErrMissingDates = errors.New("both a from date and a to date are required")

// ValidateRange checks the date bounds before any network call is issued.
func ValidateRange(fromDate, toDate string) error {
	if fromDate == "" || toDate == "" {
		return ErrMissingDates
	}
	return nil
}

// Aggregate counts parcels per origin-town display name in a single pass.
// resolve maps a town id to its name; ids it cannot resolve land in the
// UnknownTown bucket.
func Aggregate(parcels []models.Parcel, resolve func(id int) (string, bool)) map[string]int {
	counts := make(map[string]int)
	for _, p := range parcels {
		name, ok := resolve(p.OriginTownID)
		if !ok {
			name = UnknownTown
		}
		counts[name]++
	}
	return counts
}
