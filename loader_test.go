package cadview

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bracketYAML = `
name: bracket
materials:
  steel: {diffuse: [0.5, 0.5, 0.6]}
shapes:
  plate:
    parts:
      - material: steel
        box: [4, 0.5, 2]
  bolt:
    parts:
      - material: steel
        cylinder: {radius: 0.1, height: 1, segments: 8}
  wedge:
    parts:
      - topology: triangle_strip
        positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0], [1, 1, 0]]
        indices: [0, 1, 2, 3]
root:
  name: root
  shapes: [plate]
  children:
    - name: b1
      translate: [1, 0, 0]
      shapes: [bolt]
    - name: b2
      translate: [-1, 0, 0]
      shapes: [bolt, wedge]
`

func TestParseModel(t *testing.T) {
	m, err := ParseModel([]byte(bracketYAML))
	require.NoError(t, err)
	assert.Equal(t, "bracket", m.Name)
	require.Equal(t, 2, m.Root.NumChildren())

	b1, b2 := m.Root.Children()[0], m.Root.Children()[1]
	assert.Same(t, b1.Shapes()[0], b2.Shapes()[0], "named shapes are shared")
	assert.Len(t, b1.Shapes()[0].Parts(), 3, "cylinder expands to side and caps")
	assert.Equal(t, "steel", b1.Shapes()[0].Parts()[0].Material.Name)
	assert.Nil(t, b2.Shapes()[1].Parts()[0].Material)

	tr, ok := b1.Transform()
	require.True(t, ok)
	assert.Equal(t, mgl64.Translate3D(1, 0, 0), tr)
	_, ok = m.Root.Transform()
	assert.False(t, ok)

	scene, err := Compile(newRecordingDevice(), m.Root)
	require.NoError(t, err)
	assert.Equal(t, CompileStats{Shapes: 3, Parts: 5, Instances: 4}, scene.Stats())
}

func TestParseModel_TransformForms(t *testing.T) {
	doc := `
root:
  name: root
  children:
    - name: matrix
      transform: [1,0,0,0, 0,1,0,0, 0,0,1,0, 5,6,7,1]
    - name: trs
      translate: [1, 2, 3]
      rotate: {axis: [0, 0, 2], angle: 90}
      scale: [2, 2, 2]
`
	m, err := ParseModel([]byte(doc))
	require.NoError(t, err)

	mat, ok := m.Root.Children()[0].Transform()
	require.True(t, ok)
	assert.Equal(t, mgl64.Translate3D(5, 6, 7), mat)

	trs, ok := m.Root.Children()[1].Transform()
	require.True(t, ok)
	want := mgl64.Translate3D(1, 2, 3).
		Mul4(mgl64.HomogRotate3D(math.Pi/2, mgl64.Vec3{0, 0, 1})).
		Mul4(mgl64.Scale3D(2, 2, 2))
	assert.True(t, matNear(want, trs, 1e-12))
	p := transformPoint(trs, mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 0, p.Sub(mgl64.Vec3{1, 4, 3}).Len(), 1e-12)
}

func TestParseModel_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":             "",
		"no root":           "name: x\n",
		"unknown key":       "root: {name: r}\ncolour: red\n",
		"unknown shape":     "root: {name: r, shapes: [ghost]}\n",
		"unknown material":  "shapes: {s: {parts: [{material: gold, box: [1, 1, 1]}]}}\nroot: {name: r, shapes: [s]}\n",
		"no geometry":       "shapes: {s: {parts: [{material: ''}]}}\nroot: {name: r, shapes: [s]}\n",
		"two geometries":    "shapes: {s: {parts: [{box: [1, 1, 1], axes: 1}]}}\nroot: {name: r, shapes: [s]}\n",
		"bad box":           "shapes: {s: {parts: [{box: [1, 1]}]}}\nroot: {name: r, shapes: [s]}\n",
		"bad topology":      "shapes: {s: {parts: [{topology: quads, positions: [[0, 0, 0]]}]}}\nroot: {name: r, shapes: [s]}\n",
		"bad index":         "shapes: {s: {parts: [{positions: [[0, 0, 0]], indices: [1]}]}}\nroot: {name: r, shapes: [s]}\n",
		"bad normals":       "shapes: {s: {parts: [{positions: [[0, 0, 0]], normals: [[0, 0, 1], [0, 0, 1]]}]}}\nroot: {name: r, shapes: [s]}\n",
		"bad material":      "materials: {m: {diffuse: [1]}}\nroot: {name: r}\n",
		"short matrix":      "root: {name: r, transform: [1, 0, 0]}\n",
		"matrix and trs":    "root: {name: r, transform: [1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,1], translate: [1, 0, 0]}\n",
		"zero axis":         "root: {name: r, rotate: {axis: [0, 0, 0], angle: 10}}\n",
		"bad child":         "root: {name: r, children: [{name: c, scale: [1]}]}\n",
		"null child":        "root: {name: r, children: [~]}\n",
	}
	for name, doc := range tests {
		_, err := ParseModel([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root:\n  name: r\n  shapes: [s]\nshapes:\n  s:\n    parts:\n      - axes: 1\n"), 0o644))

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "widget", m.Name, "named after the file")
	assert.False(t, m.Bounds().IsEmpty())

	_, err = LoadModel(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadModel_Example(t *testing.T) {
	m, err := LoadModel(filepath.Join("examples", "models", "bracket.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "bracket", m.Name)

	scene, err := Compile(newRecordingDevice(), m.Root)
	require.NoError(t, err)
	st := scene.Stats()
	assert.Equal(t, 4, st.Shapes)
	assert.Equal(t, 7, st.Instances)
}
