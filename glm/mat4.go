package glm

import (
	math "github.com/chewxy/math32"
)

// Mat4 is a 4x4 column-major matrix, matching OpenGL's native layout so
// Array can be handed to glUniformMatrix4fv without transposition.
type Mat4 struct {
	// Stored column-major; field names are x<row><col>.
	x00, x10, x20, x30 float32
	x01, x11, x21, x31 float32
	x02, x12, x22, x32 float32
	x03, x13, x23, x33 float32
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		x00: 1, x11: 1, x22: 1, x33: 1,
	}
}

// Translate4 returns a translation matrix by v.
func Translate4(v Vec) Mat4 {
	m := Identity4()
	m.x03, m.x13, m.x23 = v.X, v.Y, v.Z
	return m
}

// Scale4 returns a non-uniform scaling matrix.
func Scale4(v Vec) Mat4 {
	m := Identity4()
	m.x00, m.x11, m.x22 = v.X, v.Y, v.Z
	return m
}

// RotateZ4 returns a rotation matrix of angleRadians about the Z axis,
// the only rotation axis the chart renderer needs: heading/orientation in
// a 2D plan view.
func RotateZ4(angleRadians float32) Mat4 {
	s, c := math.Sincos(angleRadians)
	m := Identity4()
	m.x00, m.x01 = c, -s
	m.x10, m.x11 = s, c
	return m
}

// Ortho4 returns the standard OpenGL orthographic projection matrix.
func Ortho4(l, r, b, t, n, f float32) Mat4 {
	var m Mat4
	m.x00 = 2 / (r - l)
	m.x11 = 2 / (t - b)
	m.x22 = -2 / (f - n)
	m.x03 = -(r + l) / (r - l)
	m.x13 = -(t + b) / (t - b)
	m.x23 = -(f + n) / (f - n)
	m.x33 = 1
	return m
}

// Mul4 returns a*b (a applied after b).
func Mul4(a, b Mat4) Mat4 {
	var m Mat4
	cols := [4][4]float32{
		{b.x00, b.x10, b.x20, b.x30},
		{b.x01, b.x11, b.x21, b.x31},
		{b.x02, b.x12, b.x22, b.x32},
		{b.x03, b.x13, b.x23, b.x33},
	}
	arows := [4][4]float32{
		{a.x00, a.x01, a.x02, a.x03},
		{a.x10, a.x11, a.x12, a.x13},
		{a.x20, a.x21, a.x22, a.x23},
		{a.x30, a.x31, a.x32, a.x33},
	}
	out := [4][4]float32{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += arows[row][k] * cols[col][k]
			}
			out[col][row] = sum
		}
	}
	m.x00, m.x10, m.x20, m.x30 = out[0][0], out[0][1], out[0][2], out[0][3]
	m.x01, m.x11, m.x21, m.x31 = out[1][0], out[1][1], out[1][2], out[1][3]
	m.x02, m.x12, m.x22, m.x32 = out[2][0], out[2][1], out[2][2], out[2][3]
	m.x03, m.x13, m.x23, m.x33 = out[3][0], out[3][1], out[3][2], out[3][3]
	return m
}

// MulVec4 transforms a point (w=1) by m.
func (m Mat4) MulVec4(v Vec) Vec {
	return Vec{
		X: m.x00*v.X + m.x01*v.Y + m.x02*v.Z + m.x03,
		Y: m.x10*v.X + m.x11*v.Y + m.x12*v.Z + m.x13,
		Z: m.x20*v.X + m.x21*v.Y + m.x22*v.Z + m.x23,
	}
}

// Array returns m in column-major order, ready for glUniformMatrix4fv(..., false, &arr[0]).
func (m Mat4) Array() [16]float32 {
	return [16]float32{
		m.x00, m.x10, m.x20, m.x30,
		m.x01, m.x11, m.x21, m.x31,
		m.x02, m.x12, m.x22, m.x32,
		m.x03, m.x13, m.x23, m.x33,
	}
}

// Determinant returns the determinant of m.
func (m Mat4) Determinant() float32 {
	a, b, c, d := m.x00, m.x01, m.x02, m.x03
	e, f, g, h := m.x10, m.x11, m.x12, m.x13
	i, j, k, l := m.x20, m.x21, m.x22, m.x23
	mm, n, o, p := m.x30, m.x31, m.x32, m.x33
	return a*(f*(k*p-l*o)-g*(j*p-l*n)+h*(j*o-k*n)) -
		b*(e*(k*p-l*o)-g*(i*p-l*mm)+h*(i*o-k*mm)) +
		c*(e*(j*p-l*n)-f*(i*p-l*mm)+h*(i*n-j*mm)) -
		d*(e*(j*o-k*n)-f*(i*o-k*mm)+g*(i*n-j*mm))
}

// Inverse returns the inverse of m. If m is singular the zero matrix is returned.
func (m Mat4) Inverse() Mat4 {
	det := m.Determinant()
	if det == 0 {
		return Mat4{}
	}
	// Adapted cofactor expansion, same structure as soypat/glgl's ms3.Mat4.Inverse
	// but re-derived for this package's column-major field layout.
	a := m.Array()
	inv := [16]float32{}
	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return Mat4{
		x00: inv[0], x10: inv[1], x20: inv[2], x30: inv[3],
		x01: inv[4], x11: inv[5], x21: inv[6], x31: inv[7],
		x02: inv[8], x12: inv[9], x22: inv[10], x32: inv[11],
		x03: inv[12], x13: inv[13], x23: inv[14], x33: inv[15],
	}
}

// EqualMat4 reports whether a and b are equal within tolerance, component-wise.
func EqualMat4(a, b Mat4, tolerance float32) bool {
	aa, ba := a.Array(), b.Array()
	for i := range aa {
		if math.Abs(aa[i]-ba[i]) > tolerance {
			return false
		}
	}
	return true
}
