package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestToCartesianOrigin(t *testing.T) {
	p := ToCartesian(0, 0, 130)
	require.InDelta(t, 130, p.X, tol)
	require.InDelta(t, 0, p.Y, tol)
	require.InDelta(t, 0, p.Z, tol)
}

func TestToCartesianAxes(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		want     Point3D
	}{
		{"north pole", 0, 90, Point3D{Y: 1}},
		{"south pole", 45, -90, Point3D{Y: -1}},
		{"lon 90", 90, 0, Point3D{Z: -1}},
		{"lon -90", -90, 0, Point3D{Z: 1}},
		{"lon 180", 180, 0, Point3D{X: -1}},
		{"lon -180", -180, 0, Point3D{X: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToCartesian(tc.lon, tc.lat, 1)
			require.InDelta(t, tc.want.X, got.X, tol)
			require.InDelta(t, tc.want.Y, got.Y, tol)
			require.InDelta(t, tc.want.Z, got.Z, tol)
		})
	}
}

func TestToCartesianKeepsRadius(t *testing.T) {
	for lon := -180.0; lon <= 180; lon += 15 {
		for lat := -90.0; lat <= 90; lat += 15 {
			for _, r := range []float64{0.5, 1, 130, 6371} {
				got := ToCartesian(lon, lat, r).Norm()
				if math.Abs(got-r) > 1e-9*r {
					t.Fatalf("|ToCartesian(%v, %v, %v)| = %v", lon, lat, r, got)
				}
			}
		}
	}
}

func TestToCartesianOutOfRangeStillOnSphere(t *testing.T) {
	p := ToCartesian(540, 100, 10)
	require.InDelta(t, 10, p.Norm(), 1e-9)
}

func TestParseGeoPoint(t *testing.T) {
	g, err := ParseGeoPoint("116.20, 39.56")
	require.NoError(t, err)
	require.Equal(t, Beijing, g)
	require.Equal(t, "116.2,39.56", g.String())

	_, err = ParseGeoPoint("116.20")
	require.Error(t, err)
	_, err = ParseGeoPoint("x,1")
	require.Error(t, err)
	_, err = ParseGeoPoint("1,y")
	require.Error(t, err)
}
