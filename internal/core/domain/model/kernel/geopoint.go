package kernel

import (
	"errors"
	"fmt"
	"math"

	"brewride/internal/pkg/errs"
	"brewride/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is Earth's mean radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value GeoPoint.
// GeoPoints must be created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a validated geographic coordinate pair.
// It is an immutable value object: latitude is bounded to [-90, 90] degrees
// and longitude to [-180, 180] degrees. The zero value is invalid and must
// not bypass the constructor.
//
// GeoPoint is used for delivery destinations, the cafe origin, and live
// rider positions; DistanceKm provides the great-circle distance that feeds
// both the delivery fee and the tracking display.
//
// Example:
//
//	cafe, err := kernel.NewGeoPoint(33.6539, 72.9975)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Returns a validation error if either coordinate is out of range; both
// violations are reported together via errors.Join.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual reports whether two points hold exactly the same coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// DistanceKm returns the great-circle distance to another point in
// kilometers, computed with the haversine formula on a sphere of Earth's
// mean radius (6371 km).
//
// The calculation is symmetric (a.DistanceKm(b) == b.DistanceKm(a)) and
// returns 0 for identical points.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	const degToRad = math.Pi / 180

	dLat := (other.lat - p.lat) * degToRad
	dLng := (other.lng - p.lng) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p.lat*degToRad)*math.Cos(other.lat*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%f is not within [%f, %f]", lat, LatitudeMin, LatitudeMax))
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%f is not within [%f, %f]", lng, LongitudeMin, LongitudeMax))
	}
	p.lng = lng
	return nil
}
