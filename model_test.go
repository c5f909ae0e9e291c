package cadview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopology_ParseRoundTrip(t *testing.T) {
	for topo := TopologyPoints; topo <= TopologyTriangleStrip; topo++ {
		got, err := ParseTopology(topo.String())
		require.NoError(t, err)
		assert.Equal(t, topo, got)
	}
	_, err := ParseTopology("quads")
	assert.Error(t, err)
}

func TestMeshData_Validate(t *testing.T) {
	tri := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tests := []struct {
		name string
		mesh *MeshData
		ok   bool
	}{
		{"nil", nil, false},
		{"no positions", &MeshData{Topology: TopologyTriangles}, false},
		{"plain", &MeshData{Positions: tri}, true},
		{"normals", &MeshData{Positions: tri, Normals: tri}, true},
		{"normal count", &MeshData{Positions: tri, Normals: tri[:2]}, false},
		{"bad topology", &MeshData{Positions: tri, Topology: Topology(99)}, false},
		{"empty indices", &MeshData{Positions: tri, Indices: []uint32{}}, false},
		{"indices", &MeshData{Positions: tri, Indices: []uint32{2, 1, 0}}, true},
		{"index out of range", &MeshData{Positions: tri, Indices: []uint32{0, 1, 3}}, false},
	}
	for _, tt := range tests {
		err := tt.mesh.Validate()
		if tt.ok {
			assert.NoError(t, err, tt.name)
		} else {
			assert.Error(t, err, tt.name)
		}
	}
}

func TestMeshData_NumElements(t *testing.T) {
	m := triangle(false)
	assert.Equal(t, 3, m.NumElements())
	m.Indices = []uint32{0, 1, 2, 2, 1, 0}
	assert.Equal(t, 6, m.NumElements())
	assert.False(t, m.HasNormals())
}

func TestDiffuseOf(t *testing.T) {
	assert.Equal(t, ColorBlack, DiffuseOf(nil))
	red := Color{R: 1, A: 1}
	assert.Equal(t, red, DiffuseOf(&Material{Diffuse: red}))
}

func TestNewShape_UniqueIDs(t *testing.T) {
	a := NewShape("a")
	b := NewShape("a")
	assert.NotEqual(t, a.ID(), b.ID())

	a.AddPart(triangle(false), nil)
	require.Len(t, a.Parts(), 1)
	assert.Nil(t, a.Parts()[0].Material)
}

func TestNode_Transform(t *testing.T) {
	n := NewNode("n")
	_, ok := n.Transform()
	assert.False(t, ok)

	m := mgl64.Translate3D(1, 2, 3)
	n.SetTransform(m)
	got, ok := n.Transform()
	assert.True(t, ok)
	assert.Equal(t, m, got)

	n.ClearTransform()
	_, ok = n.Transform()
	assert.False(t, ok)
}

func TestNode_AddChildReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(c)
	b.AddChild(c)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent)

	b.RemoveChild(c)
	assert.Nil(t, c.Parent)
	assert.Equal(t, 0, b.NumChildren())
}

func TestNode_AddChildPanics(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	a.AddChild(b)
	assert.Panics(t, func() { b.AddChild(a) })
	assert.Panics(t, func() { a.AddChild(a) })
	assert.Panics(t, func() { a.AddChild(nil) })
	assert.Panics(t, func() { a.AddShape(nil) })
	assert.Panics(t, func() { b.RemoveChild(a) })
}

func TestModel_Bounds(t *testing.T) {
	s := NewShape("tri", Part{Mesh: triangle(false)})
	root := NewNode("root")
	child := NewNode("child")
	child.SetTransform(mgl64.Translate3D(10, 0, 0))
	child.AddShape(s)
	root.AddShape(s)
	root.AddChild(child)

	b := (&Model{Root: root}).Bounds()
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, b.Min)
	assert.Equal(t, mgl64.Vec3{11, 1, 0}, b.Max)
}
