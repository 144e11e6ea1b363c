// Package query implements the discovery filter over listing snapshots.
// All functions are pure: they take a snapshot and return a filtered copy,
// preserving creation order.
package query

import (
	"math"
	"strings"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
)

const earthRadiusKm = 6371

// GeoFilter restricts results to a great-circle radius around a point.
type GeoFilter struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// Filters is a set of independently optional predicates composed with AND.
// A zero-value field disables that predicate; Geo in particular is only
// applied when the whole block is present (nil pointer means no geo
// filtering, never a zero-radius match).
type Filters struct {
	Category string
	Text     string
	Geo      *GeoFilter
}

// Discover returns the listings that pass every supplied predicate, in
// snapshot (creation) order.
func Discover(snapshot []models.Listing, f Filters) []models.Listing {
	results := make([]models.Listing, 0, len(snapshot))
	text := strings.ToLower(f.Text)
	for _, l := range snapshot {
		if f.Category != "" && l.Category != f.Category {
			continue
		}
		if text != "" && !matchesText(l, text) {
			continue
		}
		if f.Geo != nil {
			d := HaversineKm(f.Geo.Lat, f.Geo.Lng, l.Lat, l.Lng)
			if d > f.Geo.RadiusKm {
				continue
			}
		}
		results = append(results, l)
	}
	return results
}

// matchesText reports whether the lowercased needle occurs in the title
// or the description.
func matchesText(l models.Listing, lowered string) bool {
	return strings.Contains(strings.ToLower(l.Title), lowered) ||
		strings.Contains(strings.ToLower(l.Description), lowered)
}

// HaversineKm computes the great-circle distance in kilometers between
// two points given in degrees, on a sphere of radius 6371 km.
func HaversineKm(lat0, lng0, lat1, lng1 float64) float64 {
	dLat := toRadians(lat1 - lat0)
	dLng := toRadians(lng1 - lng0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat0))*math.Cos(toRadians(lat1))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
