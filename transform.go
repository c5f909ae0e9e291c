package cadview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateDet is the determinant magnitude below which a normal matrix is
// returned unchanged instead of inverted.
const degenerateDet = 1e-9

// rootTransform returns the transform a traversal starts with: the root's
// own local transform if present, else identity.
func rootTransform(root *Node) mgl64.Mat4 {
	if t, ok := root.Transform(); ok {
		return t
	}
	return mgl64.Ident4()
}

// childTransform composes a parent's accumulated transform with a child's
// local transform. A child without a transform inherits parent unchanged.
func childTransform(parent mgl64.Mat4, child *Node) mgl64.Mat4 {
	if t, ok := child.Transform(); ok {
		return parent.Mul4(t)
	}
	return parent
}

// transformPoint applies m to p with w=1 and returns the affine result.
func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// NormalMatrix returns the inverse-transpose of the upper-left 3x3 of m.
// If that block is (near) singular it is returned unchanged.
func NormalMatrix(m mgl64.Mat4) mgl64.Mat3 {
	upper := m.Mat3()
	if math.Abs(upper.Det()) <= degenerateDet {
		return upper
	}
	return upper.Inv().Transpose()
}

// orthonormalize rotates every column of axis by rot and re-orthonormalizes
// the result with Gram-Schmidt: right is normalized, up is made orthogonal to
// right, view is made orthogonal to both.
func orthonormalize(axis, rot mgl64.Mat3) mgl64.Mat3 {
	c0 := rot.Mul3x1(axis.Col(0)).Normalize()

	c1 := rot.Mul3x1(axis.Col(1))
	c1 = c1.Sub(c0.Mul(c1.Dot(c0))).Normalize()

	c2 := rot.Mul3x1(axis.Col(2))
	c2 = c2.Sub(c0.Mul(c2.Dot(c0)))
	c2 = c2.Sub(c1.Mul(c2.Dot(c1))).Normalize()

	return mgl64.Mat3FromCols(c0, c1, c2)
}
