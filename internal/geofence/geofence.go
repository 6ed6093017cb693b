// Package geofence decides whether a reported coordinate counts as
// being at the office.
package geofence

import (
	"math"

	"github.com/muhtegaralfikri/intern-log-system/internal/models"
)

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000

// Distance returns the great-circle distance in meters between two
// latitude/longitude points, computed with the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// WithinAnyOffice reports whether the point lies inside at least one
// active office's radius. Distance exactly equal to the radius counts
// as inside. Inactive offices are skipped even if the caller forgot to
// filter them out.
func WithinAnyOffice(lat, lng float64, offices []models.OfficeLocation) bool {
	for _, office := range offices {
		if !office.IsActive {
			continue
		}
		if Distance(lat, lng, office.Latitude, office.Longitude) <= office.Radius {
			return true
		}
	}
	return false
}
