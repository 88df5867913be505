package geogl

import "math"

const maxPitch = math.Pi/2 - 0.01

// OrbitController provides orbit and zoom interactions for a camera.
//
// It does not depend on any input system; hosts translate their events into
// Rotate and Zoom calls.
type OrbitController struct {
	Target Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinZoom float32
	MaxZoom float32

	zoom    float32
	initial orbitState
}

type orbitState struct {
	yaw, pitch, radius, zoom float32
}

// NewOrbitController derives the orbit from the camera's current position
// and target.
func NewOrbitController(cam *Camera) *OrbitController {
	c := &OrbitController{MinZoom: 0.25, MaxZoom: 8, zoom: 1}
	if cam == nil {
		c.Radius = 3
		c.initial = orbitState{radius: c.Radius, zoom: 1}
		return c
	}
	c.Target = cam.Target
	rel := cam.Position.Sub(cam.Target)
	r := rel.Len()
	if r == 0 {
		r = 1
	}
	c.Radius = r
	c.Pitch = float32(math.Asin(float64(Clamp(rel.Y()/r, -1, 1))))
	c.Yaw = float32(math.Atan2(float64(rel.X()), float64(rel.Z())))
	c.zoom = cam.Zoom()
	c.initial = orbitState{yaw: c.Yaw, pitch: c.Pitch, radius: c.Radius, zoom: c.zoom}
	return c
}

// Apply positions the camera on the orbit.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	cp := cos32(c.Pitch)
	offset := V3(r*cp*sin32(c.Yaw), r*sin32(c.Pitch), r*cp*cos32(c.Yaw))

	cam.Position = c.Target.Add(offset)
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
	cam.SetZoom(c.zoom)
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch = Clamp(c.Pitch+deltaPitch, -maxPitch, maxPitch)
}

// Zoom scales the zoom factor by 1+delta, clamped to [MinZoom, MaxZoom].
func (c *OrbitController) Zoom(delta float32) {
	z := c.zoom * (1 + delta)
	if c.MinZoom != 0 && z < c.MinZoom {
		z = c.MinZoom
	}
	if c.MaxZoom != 0 && z > c.MaxZoom {
		z = c.MaxZoom
	}
	if z > 0 {
		c.zoom = z
	}
}

func (c *OrbitController) ZoomFactor() float32 { return c.zoom }

// Reset restores the orbit captured at construction.
func (c *OrbitController) Reset() {
	c.Yaw = c.initial.yaw
	c.Pitch = c.initial.pitch
	c.Radius = c.initial.radius
	c.zoom = c.initial.zoom
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
