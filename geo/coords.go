package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
)

// Point3D is a Cartesian point in scene space.
type Point3D = r3.Vector

// GeoPoint is a geographic coordinate in degrees.
//
// Values outside the canonical ranges are not rejected; they wrap visually.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// Cartesian returns the point at the given radius. See ToCartesian.
func (g GeoPoint) Cartesian(radius float64) Point3D {
	return ToCartesian(g.Lon, g.Lat, radius)
}

func (g GeoPoint) String() string {
	return strconv.FormatFloat(g.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(g.Lat, 'f', -1, 64)
}

// ParseGeoPoint parses "lon,lat" in degrees.
func ParseGeoPoint(s string) (GeoPoint, error) {
	lonStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return GeoPoint{}, fmt.Errorf("geo: parse %q: want lon,lat", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("geo: parse longitude %q: %w", lonStr, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("geo: parse latitude %q: %w", latStr, err)
	}
	return GeoPoint{Lon: lon, Lat: lat}, nil
}

// ToCartesian converts a longitude/latitude pair to a point on a sphere of
// the given radius centred at the origin.
//
//	theta = (90 + lon) deg   azimuth, measured from +Z towards +X
//	phi   = (90 - lat) deg   polar angle, measured from +Y
func ToCartesian(lonDeg, latDeg, radius float64) Point3D {
	theta := (90 + lonDeg) * (math.Pi / 180)
	phi := (90 - latDeg) * (math.Pi / 180)
	return sphericalToCartesian(radius, phi, theta)
}

func sphericalToCartesian(radius, phi, theta float64) Point3D {
	sinPhi := math.Sin(phi) * radius
	return Point3D{
		X: sinPhi * math.Sin(theta),
		Y: math.Cos(phi) * radius,
		Z: sinPhi * math.Cos(theta),
	}
}
