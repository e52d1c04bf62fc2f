package math

import "math"

// Mat4 is a 4x4 matrix in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// gimbalEpsilon is how close |sin(pitch)| may get to 1 before the
// decomposition treats the rotation as gimbal locked.
const gimbalEpsilon = 1e-9

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ returns a rotation matrix around the Z axis.
// angle is in radians.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// EulerXYZ returns the rotation for XYZ Euler angles in degrees,
// applied X first, then Y, then Z (Rz * Ry * Rx).
func EulerXYZ(deg Vec3) Mat4 {
	return RotateZ(Radians(deg.Z)).Mul(RotateY(Radians(deg.Y))).Mul(RotateX(Radians(deg.X)))
}

// Compose builds Translate * EulerXYZ * Scale.
func Compose(loc, rotDeg, scl Vec3) Mat4 {
	return Translate(loc.X, loc.Y, loc.Z).Mul(EulerXYZ(rotDeg)).Mul(Scale(scl.X, scl.Y, scl.Z))
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Translation returns the translation part of the matrix.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// ScalePart returns the length of each basis column.
func (m Mat4) ScalePart() Vec3 {
	return Vec3{
		Vec3{m[0], m[1], m[2]}.Length(),
		Vec3{m[4], m[5], m[6]}.Length(),
		Vec3{m[8], m[9], m[10]}.Length(),
	}
}

// Decompose splits an affine matrix into translation, XYZ Euler angles in
// degrees and per-axis scale. Shear is discarded and scale is assumed
// positive.
func (m Mat4) Decompose() (loc, rotDeg, scl Vec3) {
	loc = m.Translation()
	scl = m.ScalePart()

	// normalised rotation basis
	r := m
	for col, s := range [3]float64{scl.X, scl.Y, scl.Z} {
		if s == 0 {
			continue
		}
		for row := 0; row < 3; row++ {
			r[col*4+row] /= s
		}
	}

	sy := -r[2]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	var x, y, z float64
	y = math.Asin(sy)
	if math.Abs(sy) < 1-gimbalEpsilon {
		x = math.Atan2(r[6], r[10])
		z = math.Atan2(r[1], r[0])
	} else {
		x = math.Atan2(-r[9], r[5])
		z = 0
	}
	rotDeg = Vec3{Degrees(x), Degrees(y), Degrees(z)}
	return loc, rotDeg, scl
}
