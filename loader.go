package cadview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Model files are YAML documents:
//
//	name: bracket
//	materials:
//	  steel: {diffuse: [0.6, 0.6, 0.7]}
//	shapes:
//	  bolt:
//	    parts:
//	      - material: steel
//	        cylinder: {radius: 0.1, height: 1, segments: 16}
//	root:
//	  name: assembly
//	  children:
//	    - {name: bolt1, translate: [1, 0, 0], shapes: [bolt]}
//	    - {name: bolt2, translate: [-1, 0, 0], shapes: [bolt]}
//
// Nodes that name the same shape share one Shape, so it is uploaded once
// and drawn once per placement.

type modelFile struct {
	Name      string                  `yaml:"name"`
	Materials map[string]materialFile `yaml:"materials"`
	Shapes    map[string]shapeFile    `yaml:"shapes"`
	Root      *nodeFile               `yaml:"root"`
}

type materialFile struct {
	Diffuse []float64 `yaml:"diffuse"`
}

type shapeFile struct {
	Parts []partFile `yaml:"parts"`
}

type partFile struct {
	Material string `yaml:"material"`

	// Explicit geometry.
	Topology  string      `yaml:"topology"`
	Positions [][]float64 `yaml:"positions"`
	Normals   [][]float64 `yaml:"normals"`
	Indices   []uint32    `yaml:"indices"`

	// Procedural geometry. At most one may be set.
	Box      []float64     `yaml:"box"`
	Plane    *planeFile    `yaml:"plane"`
	Cylinder *cylinderFile `yaml:"cylinder"`
	Polyline *polylineFile `yaml:"polyline"`
	Axes     float64       `yaml:"axes"`
}

type planeFile struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
	Cols  int     `yaml:"cols"`
	Rows  int     `yaml:"rows"`
}

type cylinderFile struct {
	Radius   float64 `yaml:"radius"`
	Height   float64 `yaml:"height"`
	Segments int     `yaml:"segments"`
}

type polylineFile struct {
	Points [][]float64 `yaml:"points"`
	Closed bool        `yaml:"closed"`
}

type nodeFile struct {
	Name      string      `yaml:"name"`
	Transform []float64   `yaml:"transform"`
	Translate []float64   `yaml:"translate"`
	Rotate    *rotateFile `yaml:"rotate"`
	Scale     []float64   `yaml:"scale"`
	Shapes    []string    `yaml:"shapes"`
	Children  []*nodeFile `yaml:"children"`
}

type rotateFile struct {
	Axis []float64 `yaml:"axis"`
	// Angle is in degrees.
	Angle float64 `yaml:"angle"`
}

// LoadModel reads a YAML model file. The model is named after the file
// when the document has no name.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// ParseModel decodes a YAML model document. Unknown keys, unknown shape or
// material references, and malformed geometry are errors.
func ParseModel(data []byte) (*Model, error) {
	var f modelFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty model document")
		}
		return nil, err
	}
	if f.Root == nil {
		return nil, fmt.Errorf("model has no root node")
	}

	b := modelBuilder{
		file:      &f,
		materials: make(map[string]*Material, len(f.Materials)),
		shapes:    make(map[string]*Shape, len(f.Shapes)),
	}
	for name, mf := range f.Materials {
		c, err := colorFromSlice(mf.Diffuse)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		b.materials[name] = &Material{Name: name, Diffuse: c}
	}
	root, err := b.node(f.Root, "")
	if err != nil {
		return nil, err
	}
	return &Model{Name: f.Name, Root: root}, nil
}

type modelBuilder struct {
	file      *modelFile
	materials map[string]*Material
	shapes    map[string]*Shape
}

func (b *modelBuilder) node(nf *nodeFile, parentPath string) (*Node, error) {
	if nf == nil {
		return nil, fmt.Errorf("%s: null node", parentPath)
	}
	path := parentPath + "/" + nf.Name
	n := NewNode(nf.Name)

	t, ok, err := nf.transform()
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", path, err)
	}
	if ok {
		n.SetTransform(t)
	}
	for _, name := range nf.Shapes {
		s, err := b.shape(name)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", path, err)
		}
		n.AddShape(s)
	}
	for _, cf := range nf.Children {
		c, err := b.node(cf, path)
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}
	return n, nil
}

// shape returns the shared Shape for name, building it on first use.
func (b *modelBuilder) shape(name string) (*Shape, error) {
	if s, ok := b.shapes[name]; ok {
		return s, nil
	}
	sf, ok := b.file.Shapes[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", name)
	}
	s := NewShape(name)
	for i := range sf.Parts {
		pf := &sf.Parts[i]
		var mat *Material
		if pf.Material != "" {
			if mat, ok = b.materials[pf.Material]; !ok {
				return nil, fmt.Errorf("shape %q part %d: unknown material %q", name, i, pf.Material)
			}
		}
		meshes, err := pf.meshes()
		if err != nil {
			return nil, fmt.Errorf("shape %q part %d: %w", name, i, err)
		}
		for _, m := range meshes {
			s.AddPart(m, mat)
		}
	}
	b.shapes[name] = s
	return s, nil
}

// meshes builds the part geometry. A cylinder yields three meshes.
func (pf *partFile) meshes() ([]*MeshData, error) {
	set := 0
	for _, b := range []bool{pf.Positions != nil, pf.Box != nil, pf.Plane != nil,
		pf.Cylinder != nil, pf.Polyline != nil, pf.Axes != 0} {
		if b {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("part needs exactly one geometry, has %d", set)
	}

	switch {
	case pf.Box != nil:
		size, err := vec3FromSlice(pf.Box)
		if err != nil {
			return nil, fmt.Errorf("box: %w", err)
		}
		return []*MeshData{BoxMesh(size)}, nil
	case pf.Plane != nil:
		p := pf.Plane
		return []*MeshData{PlaneMesh(p.Width, p.Depth, p.Cols, p.Rows)}, nil
	case pf.Cylinder != nil:
		c := pf.Cylinder
		side, top, bottom := CylinderMeshes(c.Radius, c.Height, c.Segments)
		return []*MeshData{side, top, bottom}, nil
	case pf.Polyline != nil:
		pts, err := vec3List(pf.Polyline.Points)
		if err != nil {
			return nil, fmt.Errorf("polyline: %w", err)
		}
		return []*MeshData{PolylineMesh(pts, pf.Polyline.Closed)}, nil
	case pf.Axes != 0:
		return []*MeshData{AxesMesh(pf.Axes)}, nil
	}

	topo := TopologyTriangles
	if pf.Topology != "" {
		var err error
		if topo, err = ParseTopology(pf.Topology); err != nil {
			return nil, err
		}
	}
	pos, err := vec3List(pf.Positions)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	m := &MeshData{Positions: pos, Topology: topo, Indices: pf.Indices}
	if pf.Normals != nil {
		if m.Normals, err = vec3List(pf.Normals); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return []*MeshData{m}, nil
}

// transform returns the node's local transform. An explicit 16-element
// column-major matrix excludes translate/rotate/scale, which compose as
// T*R*S.
func (nf *nodeFile) transform() (mgl64.Mat4, bool, error) {
	if nf.Transform != nil {
		if nf.Translate != nil || nf.Rotate != nil || nf.Scale != nil {
			return mgl64.Mat4{}, false, fmt.Errorf("transform excludes translate, rotate and scale")
		}
		if len(nf.Transform) != 16 {
			return mgl64.Mat4{}, false, fmt.Errorf("transform has %d elements, want 16", len(nf.Transform))
		}
		var m mgl64.Mat4
		copy(m[:], nf.Transform)
		return m, true, nil
	}
	if nf.Translate == nil && nf.Rotate == nil && nf.Scale == nil {
		return mgl64.Mat4{}, false, nil
	}

	m := mgl64.Ident4()
	if nf.Translate != nil {
		t, err := vec3FromSlice(nf.Translate)
		if err != nil {
			return mgl64.Mat4{}, false, fmt.Errorf("translate: %w", err)
		}
		m = m.Mul4(mgl64.Translate3D(t[0], t[1], t[2]))
	}
	if nf.Rotate != nil {
		axis, err := vec3FromSlice(nf.Rotate.Axis)
		if err != nil {
			return mgl64.Mat4{}, false, fmt.Errorf("rotate axis: %w", err)
		}
		if axis.Len() == 0 {
			return mgl64.Mat4{}, false, fmt.Errorf("rotate axis is zero")
		}
		m = m.Mul4(mgl64.HomogRotate3D(mgl64.DegToRad(nf.Rotate.Angle), axis.Normalize()))
	}
	if nf.Scale != nil {
		s, err := vec3FromSlice(nf.Scale)
		if err != nil {
			return mgl64.Mat4{}, false, fmt.Errorf("scale: %w", err)
		}
		m = m.Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	}
	return m, true, nil
}

func vec3FromSlice(v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("vector has %d components, want 3", len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func vec3List(vs [][]float64) ([]mgl64.Vec3, error) {
	out := make([]mgl64.Vec3, len(vs))
	for i, v := range vs {
		p, err := vec3FromSlice(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func colorFromSlice(v []float64) (Color, error) {
	switch len(v) {
	case 0:
		return ColorBlack, nil
	case 3:
		return Color{R: v[0], G: v[1], B: v[2], A: 1}, nil
	case 4:
		return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
	default:
		return Color{}, fmt.Errorf("color has %d components, want 3 or 4", len(v))
	}
}
