package math3d

import "math"

// Mat4 is a 4x4 matrix stored column by column: element (row, col) lives at
// index col*4+row, and indices 12..14 hold the translation.
//
//	| 0  4  8  12 |
//	| 1  5  9  13 |
//	| 2  6  10 14 |
//	| 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Scale(V3(1, 1, 1))
}

// Affine builds a transform whose columns are the images of the X, Y and Z
// axes followed by the translation t. 3MF and most mesh formats store
// transforms in this form.
func Affine(x, y, z, t Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	return Affine(V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), v)
}

// Scale returns a per-axis scale.
func Scale(v Vec3) Mat4 {
	return Affine(V3(v.X, 0, 0), V3(0, v.Y, 0), V3(0, 0, v.Z), Zero3())
}

// ScaleUniform returns a scale by s on every axis.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX returns a counter-clockwise rotation about +X (right-handed).
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine(V3(1, 0, 0), V3(0, c, s), V3(0, -s, c), Zero3())
}

// RotateY returns a counter-clockwise rotation about +Y.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine(V3(c, 0, -s), V3(0, 1, 0), V3(s, 0, c), Zero3())
}

// RotateZ returns a counter-clockwise rotation about +Z.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine(V3(c, s, 0), V3(-s, c, 0), V3(0, 0, 1), Zero3())
}

// Perspective returns an OpenGL-style projection mapping the view frustum
// onto the [-1, 1] cube. fovy is the vertical field of view in radians and
// aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	depth := 1 / (near - far)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * depth
	m[11] = -1
	m[14] = 2 * far * near * depth
	return m
}

// At returns the element in the given row and column.
func (m Mat4) At(row, col int) float64 {
	return m[col*4+row]
}

// Mul returns the product a*b, which applies b first.
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			out[col*4+row] = a[row]*b[col*4] +
				a[4+row]*b[col*4+1] +
				a[8+row]*b[col*4+2] +
				a[12+row]*b[col*4+3]
		}
	}
	return out
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a point, dividing by w when the matrix is projective.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	p := m.MulVec4(V4FromV3(v, 1))
	if p.W == 0 {
		return p.Vec3()
	}
	return p.PerspectiveDivide()
}

// MulVec3Dir transforms a direction: translation is ignored.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return V3(m[12], m[13], m[14])
}

// Det3 returns the determinant of the upper-left 3x3 block. A negative
// value means the transform mirrors geometry and flips triangle winding.
func (m Mat4) Det3() float64 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// NormalMatrix returns the matrix that carries surface normals through the
// affine transform m: the inverse transpose of its 3x3 block. ok is false
// when the block is singular.
func (m Mat4) NormalMatrix() (n Mat4, ok bool) {
	det := m.Det3()
	if det == 0 || math.IsNaN(det) {
		return Identity(), false
	}
	inv := 1 / det
	// Cofactors of the 3x3 block, which are the inverse transpose times det.
	n = Mat4{
		(m[5]*m[10] - m[9]*m[6]) * inv,
		(m[8]*m[6] - m[4]*m[10]) * inv,
		(m[4]*m[9] - m[8]*m[5]) * inv,
		0,
		(m[9]*m[2] - m[1]*m[10]) * inv,
		(m[0]*m[10] - m[8]*m[2]) * inv,
		(m[8]*m[1] - m[0]*m[9]) * inv,
		0,
		(m[1]*m[6] - m[5]*m[2]) * inv,
		(m[4]*m[2] - m[0]*m[6]) * inv,
		(m[0]*m[5] - m[4]*m[1]) * inv,
		0,
		0, 0, 0, 1,
	}
	return n, true
}
