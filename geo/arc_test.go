package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildArcIdenticalEndpoints(t *testing.T) {
	p := ToCartesian(10, 20, 130)
	c := BuildArc(p, p)

	require.False(t, c.Fallback)
	require.Len(t, c.Points, DefaultSegments+1)
	require.Zero(t, c.Length())
	for i, q := range c.Points {
		require.InDeltaf(t, 0, q.Distance(p), 1e-9, "point %d", i)
	}
}

func TestBuildArcShape(t *testing.T) {
	p0, p3 := DefaultRoute().Endpoints()
	c := BuildArc(p0, p3)

	require.Len(t, c.Control, 4)
	require.Len(t, c.Points, 61)
	require.Equal(t, 60, c.Segments())
	require.Equal(t, p0, c.Points[0])
	require.Equal(t, p3, c.Points[len(c.Points)-1])
	require.Equal(t, p0, c.Start())
	require.Equal(t, p3, c.End())
	require.Greater(t, c.Length(), p0.Distance(p3))
}

func TestBuildArcSegmentsOption(t *testing.T) {
	p0 := ToCartesian(0, 0, 1)
	p3 := ToCartesian(40, 10, 1)

	require.Len(t, BuildArc(p0, p3, WithSegments(8)).Points, 9)
	require.Len(t, BuildArc(p0, p3, WithSegments(0)).Points, 2)
}

func TestBuildArcControlPoints(t *testing.T) {
	p0 := ToCartesian(0, 0, 130)
	p3 := ToCartesian(60, 0, 130)
	c := BuildArc(p0, p3)

	angle := (math.Pi / 3) * 1.8 / math.Pi / 0.1
	arcLen := angle * 12
	heightLen := angle * angle * 12

	require.InDelta(t, heightLen, c.ApexHeight(), 1e-6)
	require.InDelta(t, arcLen, c.Control[1].Distance(p0), 1e-6)
	require.InDelta(t, arcLen, c.Control[2].Distance(p3), 1e-6)

	// The apex lies on the ray through the raw midpoint.
	mid := p0.Add(p3).Mul(0.5)
	require.InDelta(t, 0, c.Apex.Normalize().Sub(mid.Normalize()).Norm(), 1e-9)
}

func TestBuildArcSymmetric(t *testing.T) {
	p0 := ToCartesian(-30, 10, 130)
	p3 := ToCartesian(50, 10, 130)
	a := BuildArc(p0, p3)
	b := BuildArc(p3, p0)

	n := len(a.Points)
	for i := range a.Points {
		require.InDelta(t, 0, a.Points[i].Distance(b.Points[n-1-i]), 1e-9)
	}
}

func TestBuildArcApexGrowsWithSeparation(t *testing.T) {
	prev := -1.0
	for sep := 5.0; sep < 180; sep += 5 {
		c := BuildArc(ToCartesian(0, 0, 130), ToCartesian(sep, 0, 130))
		h := c.ApexHeight()
		if h <= prev {
			t.Fatalf("apex height at %v deg = %v, not above %v", sep, h, prev)
		}
		prev = h
	}
}

func TestBuildArcBulgesOutward(t *testing.T) {
	c := BuildArc(DefaultRoute().Endpoints())
	mid := c.Points[len(c.Points)/2]
	require.Greater(t, mid.Norm(), float64(DefaultRadius))
}

func TestBuildArcAntipodalFallsBackToChord(t *testing.T) {
	p0 := ToCartesian(0, 0, 130)
	p3 := p0.Mul(-1)

	c, err := BuildArcChecked(p0, p3)
	require.True(t, errors.Is(err, ErrAntipodal))
	require.True(t, c.Fallback)
	require.Len(t, c.Points, DefaultSegments+1)
	require.Equal(t, p0, c.Points[0])
	require.Equal(t, p3, c.Points[DefaultSegments])
	for _, q := range c.Points {
		require.False(t, math.IsNaN(q.X) || math.IsNaN(q.Y) || math.IsNaN(q.Z))
	}
	require.InDelta(t, p0.Distance(p3), c.Length(), 1e-9)

	// BuildArc swallows the error but keeps the fallback.
	require.True(t, BuildArc(p0, p3).Fallback)
}

func TestRouteArc(t *testing.T) {
	c, err := DefaultRoute().Arc(WithSegments(30))
	require.NoError(t, err)
	require.Equal(t, 30, c.Segments())
	require.InDelta(t, DefaultRadius, c.Start().Norm(), 1e-9)
	require.InDelta(t, DefaultRadius, c.End().Norm(), 1e-9)
}

func TestRouteGreatCircleKm(t *testing.T) {
	km := DefaultRoute().GreatCircleKm()
	require.InDelta(t, 11052, km, 5)

	r := Route{From: GeoPoint{Lon: 0, Lat: 0}, To: GeoPoint{Lon: 90, Lat: 0}, Radius: 1}
	require.InDelta(t, EarthRadiusKm*math.Pi/2, r.GreatCircleKm(), 1e-6)

	same := Route{From: Beijing, To: Beijing, Radius: DefaultRadius}
	require.InDelta(t, 0, same.GreatCircleKm(), 1e-6)
}
