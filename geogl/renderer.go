package geogl

import "math"

// RenderMode selects the rasterization mode for meshes.
type RenderMode uint8

const (
	RenderSolid RenderMode = iota
	RenderWireframe
)

// lineDepthBias lets polylines lying on a surface win against it.
const lineDepthBias = 1e-4

// Stats counts what the last frame drew.
type Stats struct {
	Triangles    int
	LineSegments int
	Points       int
}

// Renderer is a fixed-pipeline software renderer.
//
// It owns an RGBA output buffer and a depth buffer of the same size. Create it
// once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	out      *RGBATarget
	depthBuf []float32
	stats    Stats
}

// NewRenderer creates a renderer with a w x h output buffer.
func NewRenderer(w, h int) *Renderer {
	r := &Renderer{
		Mode:       RenderSolid,
		Depth:      true,
		ClearColor: RGB(0, 0, 0),
		out:        NewRGBATarget(0, 0),
	}
	r.SetSize(w, h)
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// SetSize resizes the output and depth buffers. It is a no-op when the size
// is unchanged.
func (r *Renderer) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r.out.Resize(w, h)
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

// Size returns the output buffer size.
func (r *Renderer) Size() (w, h int) { return r.out.Size() }

// Output returns the renderer's own target.
func (r *Renderer) Output() *RGBATarget { return r.out }

// LastStats returns the statistics of the previous frame.
func (r *Renderer) LastStats() Stats { return r.stats }

// Render renders the scene as seen by cam into the output buffer.
func (r *Renderer) Render(s *Scene, cam *Camera) Stats {
	return r.RenderTo(r.out, s, cam)
}

// RenderTo renders into an arbitrary target. The depth buffer is grown to the
// target size if needed.
func (r *Renderer) RenderTo(t Target, s *Scene, cam *Camera) Stats {
	if r == nil {
		return Stats{}
	}
	r.stats = Stats{}
	if t == nil || s == nil || cam == nil {
		return Stats{}
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return Stats{}
	}
	t.Clear(r.ClearColor)

	if len(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	}
	r.clearDepth(w * h)

	vp := cam.Projection().Mul4(cam.View())
	f := frame{t: t, w: w, h: h, vp: vp, light: s.Light}

	// Opaque first, then blended sprites.
	s.eachObject(func(o *Object) {
		switch g := o.Geometry.(type) {
		case *Mesh:
			r.renderMesh(&f, o.Transform, g)
		case *Line:
			r.renderLine(&f, o.Transform, g)
		case *Points:
			if !g.Material.Transparent {
				r.renderPoints(&f, o.Transform, g)
			}
		}
	})
	s.eachObject(func(o *Object) {
		if g, ok := o.Geometry.(*Points); ok && g.Material.Transparent {
			r.renderPoints(&f, o.Transform, g)
		}
	})
	return r.stats
}

type frame struct {
	t     Target
	w, h  int
	vp    Mat4
	light Light
}

type screenVert struct {
	x, y, z float32
	u, v    float32
}

// project maps a world-space clip position to screen space. ok is false for
// points behind the camera or outside the depth range.
func project(clip Vec4, w, h int) (screenVert, bool) {
	cw := clip.W()
	if cw <= 0 {
		return screenVert{}, false
	}
	inv := 1 / cw
	nx, ny, nz := clip.X()*inv, clip.Y()*inv, clip.Z()*inv
	if nz < -1 || nz > 1 {
		return screenVert{}, false
	}
	return screenVert{
		x: (nx*0.5 + 0.5) * float32(w),
		y: (1 - (ny*0.5 + 0.5)) * float32(h),
		z: nz,
	}, true
}

// Project maps a world point to pixel coordinates for a w x h viewport.
func (c *Camera) Project(p Vec3, w, h int) (x, y float32, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	sv, ok := project(clip, w, h)
	return sv.x, sv.y, ok
}

// Facing reports whether a surface at point with the given normal faces the
// camera.
func (c *Camera) Facing(point, normal Vec3) bool {
	view := c.Position.Sub(point)
	if c.Type == CameraOrtho {
		view = c.Position.Sub(c.Target)
	}
	return normal.Dot(view) > 0
}

func (r *Renderer) renderMesh(f *frame, model Mat4, m *Mesh) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	mvp := f.vp.Mul4(model)
	origin := transformPoint(model, Vec3{}).Vec3()
	base := m.Material.BaseColor
	if base == (Color{}) {
		base = White
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		s0, ok0 := project(transformPoint(mvp, v0.Pos), f.w, f.h)
		s1, ok1 := project(transformPoint(mvp, v1.Pos), f.w, f.h)
		s2, ok2 := project(transformPoint(mvp, v2.Pos), f.w, f.h)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		s0.u, s0.v = v0.UV[0], v0.UV[1]
		s1.u, s1.v = v1.UV[0], v1.UV[1]
		s2.u, s2.v = v2.UV[0], v2.UV[1]

		lit := White
		if f.light.Mode != LightOff {
			w0 := transformPoint(model, v0.Pos).Vec3()
			w1 := transformPoint(model, v1.Pos).Vec3()
			w2 := transformPoint(model, v2.Pos).Vec3()
			lit = lightColor(f.light, outwardNormal(w0, w1, w2, origin))
		}
		tint := base.Modulate(lit)

		r.stats.Triangles++
		if r.Mode == RenderWireframe {
			r.drawLine(f, s0, s1, tint)
			r.drawLine(f, s1, s2, tint)
			r.drawLine(f, s2, s0, tint)
			continue
		}

		tex := m.Material.Map
		r.fillTriangle(f, s0, s1, s2, func(u, v float32) Color {
			if tex == nil {
				return tint
			}
			return tex.Sample(u, v).Modulate(tint)
		})
	}
}

// outwardNormal returns the triangle normal oriented away from the object
// origin, so shading does not depend on winding.
func outwardNormal(a, b, c, origin Vec3) Vec3 {
	n := Normalize(b.Sub(a).Cross(c.Sub(a)))
	centroid := a.Add(b).Add(c).Mul(1.0 / 3)
	if n.Dot(centroid.Sub(origin)) < 0 {
		n = n.Mul(-1)
	}
	return n
}

func lightColor(l Light, n Vec3) Color {
	c := l.Color
	if c == (Color{}) {
		c = White
	}
	amb := Clamp01(l.Ambient)
	if l.Mode != LightAmbientDirectional {
		return c.MulScalar(amb)
	}
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return c.MulScalar(amb)
	}
	d := n.Dot(ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return c.MulScalar(Clamp01(amb + d*Clamp01(l.DirAmount)))
}

func (r *Renderer) renderLine(f *frame, model Mat4, l *Line) {
	if len(l.Positions) < 2 {
		return
	}
	mvp := f.vp.Mul4(model)
	c := l.Material.Color
	if c == (Color{}) {
		c = White
	}
	prev, prevOK := project(transformPoint(mvp, l.Positions[0]), f.w, f.h)
	for i := 1; i < len(l.Positions); i++ {
		cur, ok := project(transformPoint(mvp, l.Positions[i]), f.w, f.h)
		if ok && prevOK {
			r.drawLine(f, prev, cur, c)
			r.stats.LineSegments++
		}
		prev, prevOK = cur, ok
	}
}

func (r *Renderer) renderPoints(f *frame, model Mat4, p *Points) {
	mvp := f.vp.Mul4(model)
	mat := p.Material
	size := mat.Size
	if size <= 0 {
		size = 1
	}
	c := mat.Color
	if c == (Color{}) {
		c = White
	}
	half := size / 2

	for _, pos := range p.Positions {
		sv, ok := project(transformPoint(mvp, pos), f.w, f.h)
		if !ok {
			continue
		}
		r.stats.Points++
		x0 := sv.x - half
		y0 := sv.y - half
		minX := max(int(math.Floor(float64(x0))), 0)
		minY := max(int(math.Floor(float64(y0))), 0)
		maxX := min(int(math.Ceil(float64(x0+size))), f.w)
		maxY := min(int(math.Ceil(float64(y0+size))), f.h)

		for y := minY; y < maxY; y++ {
			for x := minX; x < maxX; x++ {
				u := (float32(x) + 0.5 - x0) / size
				v := (float32(y) + 0.5 - y0) / size
				var src Color
				if mat.Map != nil {
					src = mat.Map.Sample(u, v).Modulate(c)
				} else {
					du, dv := u-0.5, v-0.5
					if du*du+dv*dv > 0.25 {
						continue
					}
					src = c
				}
				if src.A == 0 {
					continue
				}
				if !r.depthTest(f.w, x, y, sv.z, 0, mat.DepthWrite) {
					continue
				}
				if mat.Transparent {
					f.t.SetPixel(x, y, blend(f.t.Pixel(x, y), src, 1))
				} else {
					f.t.SetPixel(x, y, src)
				}
			}
		}
	}
}

func (r *Renderer) clearDepth(n int) {
	buf := r.depthBuf[:n]
	for i := range buf {
		buf[i] = math.MaxFloat32
	}
}

// depthTest compares NDC z (mapped to [0,1]) against the depth buffer and
// optionally records it.
func (r *Renderer) depthTest(w int, x, y int, z, bias float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if x < 0 || y < 0 || x >= w || idx >= len(r.depthBuf) {
		return false
	}
	d := Clamp01(z*0.5 + 0.5)
	if d-bias > r.depthBuf[idx] {
		return false
	}
	if write && d < r.depthBuf[idx] {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) drawLine(f *frame, a, b screenVert, c Color) {
	dx := b.x - a.x
	dy := b.y - a.y
	steps := int(math.Ceil(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy)))))
	if steps == 0 {
		steps = 1
	}
	inv := 1 / float32(steps)
	for i := 0; i <= steps; i++ {
		t := float32(i) * inv
		x := int(math.Floor(float64(a.x + dx*t)))
		y := int(math.Floor(float64(a.y + dy*t)))
		if x < 0 || y < 0 || x >= f.w || y >= f.h {
			continue
		}
		z := a.z + (b.z-a.z)*t
		if !r.depthTest(f.w, x, y, z, lineDepthBias, true) {
			continue
		}
		f.t.SetPixel(x, y, c)
	}
}

func (r *Renderer) fillTriangle(f *frame, v0, v1, v2 screenVert, shade func(u, v float32) Color) {
	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := max(int(math.Floor(float64(min(v0.x, v1.x, v2.x)))), 0)
	minY := max(int(math.Floor(float64(min(v0.y, v1.y, v2.y)))), 0)
	maxX := min(int(math.Ceil(float64(max(v0.x, v1.x, v2.x)))), f.w-1)
	maxY := min(int(math.Ceil(float64(max(v0.y, v1.y, v2.y)))), f.h-1)
	if minX > maxX || minY > maxY {
		return
	}
	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			a0, a1, a2 := w0*invArea, w1*invArea, w2*invArea
			z := a0*v0.z + a1*v1.z + a2*v2.z
			if !r.depthTest(f.w, x, y, z, 0, true) {
				continue
			}
			f.t.SetPixel(x, y, shade(a0*v0.u+a1*v1.u+a2*v2.u, a0*v0.v+a1*v1.v+a2*v2.v))
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y float32) float32 {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}
