package cadview

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenVertex is a projected vertex: window pixels, NDC depth and lit color.
type screenVertex struct {
	x, y float32
	z    float64
	c    Color
}

// primitive is one projected point, line segment or triangle of a frame.
type primitive struct {
	kind  primKind
	v     [3]screenVertex
	depth float64
}

// sortBackToFront orders primitives by decreasing depth. The sort is stable
// so coplanar primitives keep draw order.
func sortBackToFront(prims []primitive) {
	slices.SortStableFunc(prims, func(a, b primitive) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// triangleBatch accumulates vertices and indices for a single
// DrawTriangles32 call. Buffers are reused across frames (high-water mark).
type triangleBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

func (b *triangleBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

func (b *triangleBatch) vertex(x, y float32, c Color) {
	b.verts = append(b.verts, ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clamp01(c.R)),
		ColorG: float32(clamp01(c.G)),
		ColorB: float32(clamp01(c.B)),
		ColorA: float32(clamp01(c.A)),
	})
}

// quad appends two triangles for the corners a, b, c, d in order.
func (b *triangleBatch) quad(ax, ay, bx, by, cx, cy, dx, dy float32, ca, cb Color) {
	base := uint32(len(b.verts))
	b.vertex(ax, ay, ca)
	b.vertex(bx, by, cb)
	b.vertex(cx, cy, cb)
	b.vertex(dx, dy, ca)
	b.inds = append(b.inds, base, base+1, base+2, base, base+2, base+3)
}

// appendPrimitive converts a primitive to triangles: lines become quads of
// lineWidth pixels, points become squares of pointSize pixels.
func (b *triangleBatch) appendPrimitive(p *primitive, lineWidth, pointSize float32) {
	switch p.kind {
	case primTriangles:
		base := uint32(len(b.verts))
		for i := 0; i < 3; i++ {
			b.vertex(p.v[i].x, p.v[i].y, p.v[i].c)
		}
		b.inds = append(b.inds, base, base+1, base+2)
	case primLines:
		a, e := p.v[0], p.v[1]
		dx, dy := e.x-a.x, e.y-a.y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			return
		}
		nx, ny := -dy/l*lineWidth/2, dx/l*lineWidth/2
		b.quad(a.x+nx, a.y+ny, e.x+nx, e.y+ny, e.x-nx, e.y-ny, a.x-nx, a.y-ny, a.c, e.c)
	case primPoints:
		v := p.v[0]
		h := pointSize / 2
		b.quad(v.x-h, v.y-h, v.x+h, v.y-h, v.x+h, v.y+h, v.x-h, v.y+h, v.c, v.c)
	}
}

// flush submits the accumulated triangles to target.
func (b *triangleBatch) flush(target *ebiten.Image) {
	if len(b.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	target.DrawTriangles32(b.verts, b.inds, ensureWhitePixel(), &op)
}

// whitePixelImage is the 1x1 source for untextured triangles
// (no sync.Once, the viewer is single-threaded).
var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
