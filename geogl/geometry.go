package geogl

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewSphere builds a UV sphere centred at the origin.
//
// Vertex (u, v) sits at azimuth u*2pi and polar angle v*pi from +Y, laid out
// so an equirectangular texture lines up with geo.ToCartesian: u=0.5 is
// longitude 0 on +X, v=0 is the north pole.
func NewSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	verts := make([]Vertex, 0, (widthSegments+1)*(heightSegments+1))
	indices := make([]uint32, 0, widthSegments*heightSegments*6)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := float64(v) * math.Pi
		st, ct := float32(math.Sin(theta)), float32(math.Cos(theta))
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi
			sp, cp := float32(math.Sin(phi)), float32(math.Cos(phi))
			verts = append(verts, Vertex{
				Pos: V3(-radius*cp*st, radius*ct, radius*sp*st),
				UV:  mgl32.Vec2{u, v},
			})
		}
	}

	row := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return &Mesh{Vertices: verts, Indices: indices}
}
