package geogl

import "github.com/go-gl/mathgl/mgl32"

// Material is a Lambert surface: base color, optionally modulated by a map.
type Material struct {
	BaseColor Color
	Map       *Texture
}

// PointsMaterial draws each point as a screen-aligned square sprite.
type PointsMaterial struct {
	Color       Color
	Map         *Texture
	Size        float32 // pixels
	Transparent bool
	DepthWrite  bool
}

// LineMaterial draws a one pixel polyline.
type LineMaterial struct {
	Color Color
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbient
	LightAmbientDirectional
)

// Light is the scene's light setup: an ambient term plus an optional
// directional term.
type Light struct {
	Mode      LightMode
	Color     Color
	Ambient   float32 // 0..1
	Dir       Vec3    // direction *towards* the scene
	DirAmount float32 // 0..1
}

// AmbientLight returns a pure ambient light.
func AmbientLight(c Color, intensity float32) Light {
	return Light{Mode: LightAmbient, Color: c, Ambient: intensity}
}

// Vertex is a mesh vertex. UV v=0 is the top row of the texture.
type Vertex struct {
	Pos Vec3
	UV  mgl32.Vec2
}

// Geometry is implemented by the drawable kinds: *Mesh, *Points and *Line.
type Geometry interface {
	geometry()
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// Points is a point cloud drawn as sprites.
type Points struct {
	Positions []Vec3
	Material  PointsMaterial
}

// Line is a polyline through Positions.
type Line struct {
	Positions []Vec3
	Material  LineMaterial
}

func (*Mesh) geometry()   {}
func (*Points) geometry() {}
func (*Line) geometry()   {}

// Object is a scene node: geometry plus an object transform.
type Object struct {
	Name string
	// Enabled is set by Add and SetEnabled.
	Enabled   bool
	Geometry  Geometry
	Transform Mat4
}

// ObjectID identifies an object in a Scene. Invalid IDs are negative.
type ObjectID int

// InvalidObject is returned when a scene cannot take more objects.
const InvalidObject ObjectID = -1

// Scene owns a fixed number of object slots.
//
// Objects belong to the scene from Add until Remove; Remove drops the
// scene's reference so the geometry can be collected.
type Scene struct {
	Light Light

	objects []Object
	alive   []bool
}

// CreateScene allocates a scene with a fixed object capacity.
func CreateScene(maxObjects int) *Scene {
	if maxObjects < 0 {
		maxObjects = 0
	}
	return &Scene{
		objects: make([]Object, maxObjects),
		alive:   make([]bool, maxObjects),
	}
}

// Add adds an object and returns its id, or InvalidObject if the scene is
// full or the object has no geometry. Added objects are always enabled;
// use SetEnabled to hide one.
func (s *Scene) Add(o Object) ObjectID {
	if s == nil || o.Geometry == nil {
		return InvalidObject
	}
	for i := range s.objects {
		if s.alive[i] {
			continue
		}
		if o.Transform == (Mat4{}) {
			o.Transform = mgl32.Ident4()
		}
		o.Enabled = true
		s.objects[i] = o
		s.alive[i] = true
		return ObjectID(i)
	}
	return InvalidObject
}

// Remove removes an object by id.
func (s *Scene) Remove(id ObjectID) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.objects[id] = Object{}
}

// Object returns a copy of the object with the given id.
func (s *Scene) Object(id ObjectID) (Object, bool) {
	if !s.valid(id) {
		return Object{}, false
	}
	return s.objects[id], true
}

// Len returns the number of live objects.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, a := range s.alive {
		if a {
			n++
		}
	}
	return n
}

// Clear removes every object.
func (s *Scene) Clear() {
	if s == nil {
		return
	}
	for i := range s.objects {
		s.objects[i] = Object{}
		s.alive[i] = false
	}
}

// SetEnabled enables/disables an object by id.
func (s *Scene) SetEnabled(id ObjectID, enabled bool) {
	if !s.valid(id) {
		return
	}
	s.objects[id].Enabled = enabled
}

// SetTransform replaces an object transform by id.
func (s *Scene) SetTransform(id ObjectID, m Mat4) {
	if !s.valid(id) {
		return
	}
	s.objects[id].Transform = m
}

// RotateY rotates an object about its local vertical axis.
func (s *Scene) RotateY(id ObjectID, rad float32) {
	if !s.valid(id) {
		return
	}
	o := &s.objects[id]
	o.Transform = o.Transform.Mul4(mgl32.HomogRotate3DY(rad))
}

// SetMeshMap sets the texture of a mesh object.
func (s *Scene) SetMeshMap(id ObjectID, t *Texture) bool {
	if !s.valid(id) {
		return false
	}
	m, ok := s.objects[id].Geometry.(*Mesh)
	if !ok {
		return false
	}
	m.Material.Map = t
	return true
}

func (s *Scene) valid(id ObjectID) bool {
	return s != nil && id >= 0 && int(id) < len(s.objects) && s.alive[id]
}

func (s *Scene) eachObject(fn func(o *Object)) {
	for i := range s.objects {
		if !s.alive[i] || !s.objects[i].Enabled {
			continue
		}
		fn(&s.objects[i])
	}
}
