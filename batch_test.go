package cadview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortBackToFront(t *testing.T) {
	prims := []primitive{
		{depth: 0.1, kind: primPoints},
		{depth: 0.9, kind: primLines},
		{depth: 0.5, kind: primTriangles},
		{depth: 0.9, kind: primTriangles},
	}
	sortBackToFront(prims)
	var depths []float64
	for _, p := range prims {
		depths = append(depths, p.depth)
	}
	assert.Equal(t, []float64{0.9, 0.9, 0.5, 0.1}, depths)
	assert.Equal(t, primLines, prims[0].kind, "equal depths keep draw order")
	assert.Equal(t, primTriangles, prims[1].kind)
}

func TestTriangleBatch_AppendPrimitive(t *testing.T) {
	var b triangleBatch
	red := Color{R: 1, A: 1}

	tri := primitive{kind: primTriangles, v: [3]screenVertex{{x: 0, y: 0, c: red}, {x: 10, y: 0, c: red}, {x: 0, y: 10, c: red}}}
	b.appendPrimitive(&tri, 2, 4)
	assert.Len(t, b.verts, 3)
	assert.Equal(t, []uint32{0, 1, 2}, b.inds)

	line := primitive{kind: primLines, v: [3]screenVertex{{x: 0, y: 0, c: red}, {x: 10, y: 0, c: red}}}
	b.appendPrimitive(&line, 2, 4)
	assert.Len(t, b.verts, 7)
	assert.Equal(t, []uint32{3, 4, 5, 3, 5, 6}, b.inds[3:])
	// a horizontal line of width 2 spans y in [-1, 1]
	assert.Equal(t, float32(1), b.verts[3].DstY)
	assert.Equal(t, float32(-1), b.verts[5].DstY)
	assert.Equal(t, float32(10), b.verts[4].DstX)

	pt := primitive{kind: primPoints, v: [3]screenVertex{{x: 5, y: 5, c: red}}}
	b.appendPrimitive(&pt, 2, 4)
	assert.Len(t, b.verts, 11)
	assert.Equal(t, float32(3), b.verts[7].DstX)
	assert.Equal(t, float32(7), b.verts[9].DstY)
	assert.Equal(t, float32(1), b.verts[9].ColorR)
	assert.Equal(t, float32(0), b.verts[9].ColorG)

	degenerate := primitive{kind: primLines, v: [3]screenVertex{{x: 5, y: 5}, {x: 5, y: 5}}}
	b.appendPrimitive(&degenerate, 2, 4)
	assert.Len(t, b.verts, 11, "zero-length lines are skipped")

	b.reset()
	assert.Empty(t, b.verts)
	assert.Empty(t, b.inds)
}
