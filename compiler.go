package cadview

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// CompiledPart is one GPU-resident mesh of a compiled shape together with
// its (shared) material.
type CompiledPart struct {
	Material *Material
	Mesh     MeshHandle
}

// CompiledShape holds the realized parts of one distinct shape identity.
type CompiledShape struct {
	ID    ShapeID
	Name  string
	Parts []CompiledPart
}

// Instance is one placement of a compiled shape: a world transform and an
// index into CompiledScene.Shapes.
type Instance struct {
	Transform  mgl64.Mat4
	ShapeIndex int
}

// CompiledScene is the render-ready output of Compile. Shapes is an
// append-only arena; Instances reference it by index in traversal order.
type CompiledScene struct {
	Shapes    []CompiledShape
	Instances []Instance
}

// CompileStats summarizes a compiled scene.
type CompileStats struct {
	Shapes    int
	Parts     int
	Instances int
}

// Stats returns shape, part and instance counts.
func (cs *CompiledScene) Stats() CompileStats {
	st := CompileStats{Shapes: len(cs.Shapes), Instances: len(cs.Instances)}
	for i := range cs.Shapes {
		st.Parts += len(cs.Shapes[i].Parts)
	}
	return st
}

// Dispose destroys every mesh handle. The scene must not be drawn afterwards.
func (cs *CompiledScene) Dispose(dev Device) {
	for i := range cs.Shapes {
		for _, p := range cs.Shapes[i].Parts {
			dev.DestroyMesh(p.Mesh)
		}
	}
	cs.Shapes = nil
	cs.Instances = nil
}

// compiler carries the traversal-wide state: the output arena and the
// identity -> index lookup table.
type compiler struct {
	dev      Device
	out      *CompiledScene
	shapeMap map[ShapeID]int
}

// Compile flattens the hierarchy under root into deduplicated compiled
// shapes and instances. Every distinct shape identity is realized through
// dev exactly once. On failure every handle created so far is destroyed and
// no partial scene is returned.
func Compile(dev Device, root *Node) (*CompiledScene, error) {
	start := time.Now()
	c := &compiler{
		dev:      dev,
		out:      &CompiledScene{},
		shapeMap: make(map[ShapeID]int),
	}
	if root != nil {
		if err := c.traverse(root, rootTransform(root)); err != nil {
			c.out.Dispose(dev)
			logger.Error("compile failed", "err", err)
			return nil, err
		}
	}
	st := c.out.Stats()
	logger.Info("compiled scene",
		"shapes", st.Shapes, "parts", st.Parts, "instances", st.Instances,
		"elapsed", time.Since(start))
	return c.out, nil
}

// traverse visits n with accumulated transform t, depth-first.
func (c *compiler) traverse(n *Node, t mgl64.Mat4) error {
	for _, s := range n.Shapes() {
		idx, err := c.shapeIndex(s)
		if err != nil {
			return err
		}
		c.out.Instances = append(c.out.Instances, Instance{Transform: t, ShapeIndex: idx})
	}
	for _, child := range n.Children() {
		if err := c.traverse(child, childTransform(t, child)); err != nil {
			return err
		}
	}
	return nil
}

// shapeIndex resolves s to its arena index, realizing it on first use. The
// new index is recorded before returning so later references hit the map.
func (c *compiler) shapeIndex(s *Shape) (int, error) {
	if idx, ok := c.shapeMap[s.ID()]; ok {
		return idx, nil
	}
	cs, err := c.realize(s)
	if err != nil {
		return 0, err
	}
	idx := len(c.out.Shapes)
	c.out.Shapes = append(c.out.Shapes, cs)
	c.shapeMap[s.ID()] = idx
	return idx, nil
}

// realize creates one mesh handle per part. Handles created for a shape
// that then fails are destroyed here since they never reach the arena.
func (c *compiler) realize(s *Shape) (CompiledShape, error) {
	cs := CompiledShape{ID: s.ID(), Name: s.Name, Parts: make([]CompiledPart, 0, len(s.Parts()))}
	for i, part := range s.Parts() {
		h, err := c.dev.CreateMesh(part.Mesh)
		if err != nil {
			for _, p := range cs.Parts {
				c.dev.DestroyMesh(p.Mesh)
			}
			return CompiledShape{}, &ShapeError{ShapeID: s.ID(), ShapeName: s.Name, Part: i, Err: err}
		}
		cs.Parts = append(cs.Parts, CompiledPart{Material: part.Material, Mesh: h})
	}
	return cs, nil
}

// ComputeBounds accumulates every vertex position under root, transformed
// to world space with the same composition rule as Compile.
func ComputeBounds(root *Node) BBox {
	b := EmptyBBox()
	if root != nil {
		accumulateBounds(root, rootTransform(root), &b)
	}
	return b
}

func accumulateBounds(n *Node, t mgl64.Mat4, b *BBox) {
	for _, s := range n.Shapes() {
		for _, part := range s.Parts() {
			if part.Mesh == nil {
				continue
			}
			for _, p := range part.Mesh.Positions {
				b.ExtendPoint(transformPoint(t, p))
			}
		}
	}
	for _, child := range n.Children() {
		accumulateBounds(child, childTransform(t, child), b)
	}
}
