package geo

import (
	"errors"
	"math"
)

// DefaultSegments is the number of polyline segments an arc is sampled into.
const DefaultSegments = 60

// Display tuning for the arc shape. They were chosen against the raw
// midpoint formula used by BuildArc; keep them together.
const (
	angleScale  = 1.8
	angleDivide = 0.1
	lengthScale = 12
)

// antipodalEpsilon is the relative chord-midpoint length below which the
// apex direction is considered undefined.
const antipodalEpsilon = 1e-9

// ErrAntipodal reports that the arc endpoints are (numerically) opposite each
// other, so no outward direction exists. The returned arc is a straight line.
var ErrAntipodal = errors.New("geo: antipodal arc endpoints")

// ArcCurve is a cubic Bezier flight line plus its sampled polyline.
type ArcCurve struct {
	// Control holds start, control1, control2, end.
	Control [4]Point3D
	// Points is the sampled polyline; len(Points) == segments+1.
	Points []Point3D
	// Apex is the point the control handles lean towards.
	Apex Point3D
	// Fallback is set when the endpoints were antipodal and the arc was
	// replaced by a straight chord.
	Fallback bool
}

// ArcOption configures BuildArc.
type ArcOption func(*arcOptions)

type arcOptions struct {
	segments int
}

// WithSegments sets the sampling resolution. Values below 1 are clamped to 1.
func WithSegments(n int) ArcOption {
	return func(o *arcOptions) {
		if n < 1 {
			n = 1
		}
		o.segments = n
	}
}

// BuildArc builds the flight line between two points on a sphere centred at
// the origin. Antipodal endpoints produce a straight-line fallback; use
// BuildArcChecked to observe that case as an error.
func BuildArc(p0, p3 Point3D, opts ...ArcOption) ArcCurve {
	c, _ := BuildArcChecked(p0, p3, opts...)
	return c
}

// BuildArcChecked is BuildArc but returns ErrAntipodal alongside the
// fallback curve when the apex direction is undefined.
func BuildArcChecked(p0, p3 Point3D, opts ...ArcOption) (ArcCurve, error) {
	o := arcOptions{segments: DefaultSegments}
	for _, opt := range opts {
		opt(&o)
	}

	mid := midpoint(p0, p3)
	scale := math.Max(math.Max(p0.Norm(), p3.Norm()), 1)
	if mid.Norm() <= antipodalEpsilon*scale && p0 != p3 {
		c := ArcCurve{
			Control:  [4]Point3D{p0, lerp(p0, p3, 1.0/3), lerp(p0, p3, 2.0/3), p3},
			Apex:     mid,
			Fallback: true,
		}
		c.Points = c.sample(o.segments)
		return c, ErrAntipodal
	}

	angle := p0.Angle(p3).Radians() * angleScale / math.Pi / angleDivide
	arcLen := angle * lengthScale
	heightLen := angle * angle * lengthScale

	// Ray from the origin through the midpoint; the apex sits heightLen out.
	var top Point3D
	if n := mid.Norm(); n > 0 {
		top = mid.Mul(heightLen / n)
	}

	v1 := towards(p0, top, arcLen)
	v2 := towards(p3, top, arcLen)

	c := ArcCurve{
		Control: [4]Point3D{p0, v1, v2, p3},
		Apex:    top,
	}
	c.Points = c.sample(o.segments)
	return c, nil
}

// Eval evaluates the Bezier at t in [0, 1].
func (c ArcCurve) Eval(t float64) Point3D {
	mt := 1 - t
	mt2 := mt * mt
	t2 := t * t
	p := c.Control
	return p[0].Mul(mt2 * mt).
		Add(p[1].Mul(3 * mt2 * t)).
		Add(p[2].Mul(3 * mt * t2)).
		Add(p[3].Mul(t2 * t))
}

// Segments returns the sampling resolution of Points.
func (c ArcCurve) Segments() int {
	if len(c.Points) == 0 {
		return 0
	}
	return len(c.Points) - 1
}

// Length returns the total length of the sampled polyline.
func (c ArcCurve) Length() float64 {
	var l float64
	for i := 1; i < len(c.Points); i++ {
		l += c.Points[i].Distance(c.Points[i-1])
	}
	return l
}

// ApexHeight is the distance of the apex from the sphere centre.
func (c ArcCurve) ApexHeight() float64 { return c.Apex.Norm() }

// Start returns the first endpoint.
func (c ArcCurve) Start() Point3D { return c.Control[0] }

// End returns the last endpoint.
func (c ArcCurve) End() Point3D { return c.Control[3] }

func (c ArcCurve) sample(segments int) []Point3D {
	pts := make([]Point3D, segments+1)
	p := c.Control
	if p[0] == p[1] && p[1] == p[2] && p[2] == p[3] {
		for i := range pts {
			pts[i] = p[0]
		}
		return pts
	}
	for i := 1; i < segments; i++ {
		pts[i] = c.Eval(float64(i) / float64(segments))
	}
	// Endpoints are assigned so they match the inputs bit for bit.
	pts[0] = c.Control[0]
	pts[segments] = c.Control[3]
	return pts
}

func midpoint(a, b Point3D) Point3D {
	return a.Add(b).Mul(0.5)
}

func lerp(a, b Point3D, t float64) Point3D {
	return a.Add(b.Sub(a).Mul(t))
}

// towards returns the point at distance length from a on the segment a->b
// (extended past b when length exceeds the segment).
func towards(a, b Point3D, length float64) Point3D {
	d := a.Distance(b)
	if d == 0 {
		return a
	}
	return lerp(a, b, length/d)
}
