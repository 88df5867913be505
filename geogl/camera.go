package geogl

import "github.com/go-gl/mathgl/mgl32"

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
//
// Projection parameters are cached: changing them through the setters marks
// the projection dirty and the next Projection call recomputes it.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	fovY       float32 // perspective, radians
	halfExtent float32 // orthographic half height before zoom
	aspect     float32
	zoom       float32
	near       float32
	far        float32

	proj  Mat4
	dirty bool
}

// NewOrthographicCamera returns a camera whose frustum spans
// [-s*aspect, s*aspect] x [-s, s].
func NewOrthographicCamera(s, aspect, near, far float32) *Camera {
	c := &Camera{
		Type:       CameraOrtho,
		Up:         V3(0, 1, 0),
		halfExtent: s,
		zoom:       1,
		near:       near,
		far:        far,
		dirty:      true,
	}
	c.aspect = sanitizeAspect(aspect)
	return c
}

// NewPerspectiveCamera returns a perspective camera; fovY is in radians.
func NewPerspectiveCamera(fovY, aspect, near, far float32) *Camera {
	c := &Camera{
		Type:  CameraPerspective,
		Up:    V3(0, 1, 0),
		fovY:  fovY,
		zoom:  1,
		near:  near,
		far:   far,
		dirty: true,
	}
	c.aspect = sanitizeAspect(aspect)
	return c
}

func sanitizeAspect(a float32) float32 {
	if a <= 0 {
		return 1
	}
	return a
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) { c.Target = target }

func (c *Camera) Aspect() float32     { return c.aspect }
func (c *Camera) Zoom() float32       { return c.zoom }
func (c *Camera) HalfExtent() float32 { return c.halfExtent }

// SetAspect updates the width/height ratio. Non-positive values are ignored.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 || aspect == c.aspect {
		return
	}
	c.aspect = aspect
	c.dirty = true
}

// SetZoom sets the zoom factor. Non-positive values are ignored.
func (c *Camera) SetZoom(z float32) {
	if z <= 0 || z == c.zoom {
		return
	}
	c.zoom = z
	c.dirty = true
}

// ProjectionDirty reports whether the cached projection is stale.
func (c *Camera) ProjectionDirty() bool { return c.dirty }

// MarkProjectionDirty forces a recompute on the next Projection call.
func (c *Camera) MarkProjectionDirty() { c.dirty = true }

// UpdateProjectionMatrix recomputes the projection now.
func (c *Camera) UpdateProjectionMatrix() {
	c.proj = c.computeProjection()
	c.dirty = false
}

// Projection returns the projection matrix, recomputing it if dirty.
func (c *Camera) Projection() Mat4 {
	if c.dirty {
		c.UpdateProjectionMatrix()
	}
	return c.proj
}

// Frustum returns the orthographic bounds after aspect and zoom.
func (c *Camera) Frustum() (left, right, bottom, top float32) {
	s := c.halfExtent
	if s == 0 {
		s = 1
	}
	s /= c.zoomOrOne()
	a := sanitizeAspect(c.aspect)
	return -s * a, s * a, -s, s
}

func (c *Camera) computeProjection() Mat4 {
	switch c.Type {
	case CameraOrtho:
		left, right, bottom, top := c.Frustum()
		return mgl32.Ortho(left, right, bottom, top, c.near, c.far)
	default:
		fov := c.fovY
		if fov == 0 {
			fov = 1
		}
		return mgl32.Perspective(fov/c.zoomOrOne(), sanitizeAspect(c.aspect), c.near, c.far)
	}
}

func (c *Camera) zoomOrOne() float32 {
	if c.zoom <= 0 {
		return 1
	}
	return c.zoom
}

// View returns the camera view matrix.
func (c *Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}
