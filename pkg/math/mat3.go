package math

// Mat3 is a 3x3 rotation matrix in column-major order, matching Mat4.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at row, col.
func (m Mat3) At(row, col int) float32 {
	return m[col*3+row]
}

// Col returns the given column as a vector.
func (m Mat3) Col(col int) Vec3 {
	return Vec3{m[col*3], m[col*3+1], m[col*3+2]}
}

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mat4 embeds the rotation into a 4x4 matrix with translation pos.
func (m Mat3) Mat4(pos Vec3) Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}
