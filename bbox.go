package cadview

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BBox is an axis-aligned bounding volume. The zero value is NOT empty;
// use EmptyBBox to start an accumulation.
type BBox struct {
	Min, Max mgl64.Vec3
}

// EmptyBBox returns a volume with Min=+Inf and Max=-Inf on every axis, so
// that any real point extends it.
func EmptyBBox() BBox {
	inf := math.Inf(1)
	return BBox{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether Min > Max on any axis.
func (b BBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// ExtendPoint grows the volume to contain p.
func (b *BBox) ExtendPoint(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// ExtendBox grows the volume to contain other. Extending by an empty
// volume is a no-op.
func (b *BBox) ExtendBox(other BBox) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], other.Min[i])
		b.Max[i] = math.Max(b.Max[i], other.Max[i])
	}
}

// Center returns (Min+Max)/2.
func (b BBox) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns Max-Min.
func (b BBox) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// String formats the volume as "(x, y, z)-(x, y, z)".
func (b BBox) String() string {
	return fmt.Sprintf("(%g, %g, %g)-(%g, %g, %g)",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}
