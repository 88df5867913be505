package geogl

import (
	"math"
	"testing"
)

func TestSceneAddRemove(t *testing.T) {
	s := CreateScene(2)
	a := s.Add(Object{Name: "a", Geometry: &Line{}})
	b := s.Add(Object{Name: "b", Geometry: &Points{}})
	if a == InvalidObject || b == InvalidObject || a == b {
		t.Fatalf("ids: %v %v", a, b)
	}
	if id := s.Add(Object{Geometry: &Line{}}); id != InvalidObject {
		t.Fatalf("full scene accepted object: %v", id)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d", s.Len())
	}

	s.Remove(a)
	if _, ok := s.Object(a); ok {
		t.Fatal("removed object still present")
	}
	if s.Len() != 1 {
		t.Fatalf("Len after remove = %d", s.Len())
	}
	c := s.Add(Object{Name: "c", Geometry: &Mesh{}})
	if c != a {
		t.Fatalf("slot not reused: %v", c)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len after clear = %d", s.Len())
	}
}

func TestSceneAddEnables(t *testing.T) {
	s := CreateScene(1)
	id := s.Add(Object{Name: "hidden", Enabled: false, Geometry: &Line{}})
	if o, _ := s.Object(id); !o.Enabled {
		t.Fatal("Add should enable the object")
	}
	s.SetEnabled(id, false)
	if o, _ := s.Object(id); o.Enabled {
		t.Fatal("SetEnabled(false) did not hide the object")
	}
}

func TestSceneRejectsEmptyGeometry(t *testing.T) {
	s := CreateScene(1)
	if id := s.Add(Object{Name: "nothing"}); id != InvalidObject {
		t.Fatalf("got id %v", id)
	}
}

func TestSceneRotateY(t *testing.T) {
	s := CreateScene(1)
	id := s.Add(Object{Geometry: &Points{Positions: []Vec3{V3(200, 0, 0)}}})
	for i := 0; i < 100; i++ {
		s.RotateY(id, 0.01)
	}
	o, _ := s.Object(id)
	p := transformPoint(o.Transform, V3(200, 0, 0)).Vec3()

	want := V3(200*float32(math.Cos(1)), 0, -200*float32(math.Sin(1)))
	if d := p.Sub(want).Len(); d > 1e-2 {
		t.Fatalf("rotated point %v, want %v", p, want)
	}
}

func TestSceneSetMeshMap(t *testing.T) {
	s := CreateScene(2)
	mesh := s.Add(Object{Geometry: NewSphere(1, 8, 6)})
	line := s.Add(Object{Geometry: &Line{}})

	tex := SolidTexture(Violet)
	if !s.SetMeshMap(mesh, tex) {
		t.Fatal("SetMeshMap on mesh failed")
	}
	if s.SetMeshMap(line, tex) {
		t.Fatal("SetMeshMap on line succeeded")
	}
	o, _ := s.Object(mesh)
	if o.Geometry.(*Mesh).Material.Map != tex {
		t.Fatal("map not set")
	}
}

func TestNewSphereLayout(t *testing.T) {
	m := NewSphere(130, 40, 40)
	if len(m.Vertices) != 41*41 {
		t.Fatalf("vertices = %d", len(m.Vertices))
	}
	// Poles contribute one triangle per quad, every other row two.
	if want := (40*38*2 + 40*2) * 3; len(m.Indices) != want {
		t.Fatalf("indices = %d, want %d", len(m.Indices), want)
	}
	for i, v := range m.Vertices {
		if r := v.Pos.Len(); math.Abs(float64(r-130)) > 1e-3 {
			t.Fatalf("vertex %d radius %v", i, r)
		}
	}

	// u=0.5 on the equator is longitude 0 (+X).
	eq := m.Vertices[20*41+20]
	if eq.UV[0] != 0.5 || eq.UV[1] != 0.5 {
		t.Fatalf("uv = %v", eq.UV)
	}
	if d := eq.Pos.Sub(V3(130, 0, 0)).Len(); d > 1e-3 {
		t.Fatalf("equator/lon0 vertex at %v", eq.Pos)
	}
	if top := m.Vertices[0].Pos; math.Abs(float64(top.Y()-130)) > 1e-3 {
		t.Fatalf("v=0 should be the north pole, got %v", top)
	}
}
