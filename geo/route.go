package geo

// Default route endpoints and globe radius.
var (
	Beijing = GeoPoint{Lon: 116.20, Lat: 39.56}
	NewYork = GeoPoint{Lon: -74.70, Lat: 40.43}
)

// DefaultRadius is the globe radius in scene units.
const DefaultRadius = 130

// Route is a flight line between two geographic points on a globe.
type Route struct {
	From   GeoPoint
	To     GeoPoint
	Radius float64
}

// DefaultRoute returns the Beijing to New York route on the default globe.
func DefaultRoute() Route {
	return Route{From: Beijing, To: NewYork, Radius: DefaultRadius}
}

// Endpoints returns the Cartesian endpoints of the route.
func (r Route) Endpoints() (Point3D, Point3D) {
	return r.From.Cartesian(r.Radius), r.To.Cartesian(r.Radius)
}

// Arc builds the route's flight line.
func (r Route) Arc(opts ...ArcOption) (ArcCurve, error) {
	p0, p3 := r.Endpoints()
	return BuildArcChecked(p0, p3, opts...)
}

// EarthRadiusKm is the mean Earth radius used for distances.
const EarthRadiusKm = 6371.0

// GreatCircleKm returns the surface distance between the endpoints on a
// spherical Earth, independent of the globe's scene radius.
func (r Route) GreatCircleKm() float64 {
	a := r.From.Cartesian(1)
	b := r.To.Cartesian(1)
	return a.Angle(b).Radians() * EarthRadiusKm
}
