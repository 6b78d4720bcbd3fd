package tgx

import "math"

// Mat4 is a row-major 4x4 matrix: M[row*4+col]. Grounded on the teacher's
// Matrix4x4 (matrix.go), generalized with the mult0/mult1/setOrtho/
// setFrustum/setPerspective/setLookAt/invertYAxis operations the spec names.
type Mat4 struct {
	M [16]float64
}

func Identity() Mat4 {
	return Mat4{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Mul returns a*b, i.e. (a.Mul(b)).Mult1(v) == a.Mult1(b.Mult1(v)).
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.M[i*4+k] * b.M[k*4+j]
			}
			r.M[i*4+j] = sum
		}
	}
	return r
}

// Mult1 treats v as a point: xyz*M plus the translation column.
func (m Mat4) Mult1(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0]*v.X + m.M[1]*v.Y + m.M[2]*v.Z + m.M[3],
		Y: m.M[4]*v.X + m.M[5]*v.Y + m.M[6]*v.Z + m.M[7],
		Z: m.M[8]*v.X + m.M[9]*v.Y + m.M[10]*v.Z + m.M[11],
	}
}

// Mult0 treats v as a direction: xyz*M with w=0, translation ignored.
func (m Mat4) Mult0(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0]*v.X + m.M[1]*v.Y + m.M[2]*v.Z,
		Y: m.M[4]*v.X + m.M[5]*v.Y + m.M[6]*v.Z,
		Z: m.M[8]*v.X + m.M[9]*v.Y + m.M[10]*v.Z,
	}
}

// MulVec4 applies the full 4x4 transform, needed for projection matrices
// whose bottom row is not (0,0,0,1).
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m.M[0]*v.X + m.M[1]*v.Y + m.M[2]*v.Z + m.M[3]*v.W,
		Y: m.M[4]*v.X + m.M[5]*v.Y + m.M[6]*v.Z + m.M[7]*v.W,
		Z: m.M[8]*v.X + m.M[9]*v.Y + m.M[10]*v.Z + m.M[11]*v.W,
		W: m.M[12]*v.X + m.M[13]*v.Y + m.M[14]*v.Z + m.M[15]*v.W,
	}
}

// InvertYAxis returns a copy of the matrix with its Y row negated (the
// receiver is left unchanged), the one-time flip applied
// when a projection matrix is stored (see §4.1): NDC Y grows upward, the
// raster target's Y grows downward.
func (m Mat4) InvertYAxis() Mat4 {
	m.M[4] = -m.M[4]
	m.M[5] = -m.M[5]
	m.M[6] = -m.M[6]
	m.M[7] = -m.M[7]
	return m
}

// SetOrtho builds an orthographic projection matrix over the given box.
func SetOrtho(left, right, bottom, top, near, far float64) Mat4 {
	m := Mat4{}
	m.M[0] = 2.0 / (right - left)
	m.M[3] = -(right + left) / (right - left)
	m.M[5] = 2.0 / (top - bottom)
	m.M[7] = -(top + bottom) / (top - bottom)
	m.M[10] = -2.0 / (far - near)
	m.M[11] = -(far + near) / (far - near)
	m.M[15] = 1.0
	return m
}

// SetFrustum builds a perspective projection matrix from the six frustum
// planes (the general form; SetPerspective is the common FOV-based case).
func SetFrustum(left, right, bottom, top, near, far float64) Mat4 {
	m := Mat4{}
	m.M[0] = 2.0 * near / (right - left)
	m.M[2] = (right + left) / (right - left)
	m.M[5] = 2.0 * near / (top - bottom)
	m.M[6] = (top + bottom) / (top - bottom)
	m.M[10] = -(far + near) / (far - near)
	m.M[11] = -2.0 * far * near / (far - near)
	m.M[14] = -1.0
	m.M[15] = 0.0
	return m
}

// SetPerspective builds a perspective projection matrix from a vertical
// field of view (radians), aspect ratio (width/height), near and far planes.
func SetPerspective(fovY, aspect, near, far float64) Mat4 {
	top := near * math.Tan(fovY/2.0)
	right := top * aspect
	return SetFrustum(-right, right, -top, top, near, far)
}

// SetLookAt builds a view matrix placing the camera at eye, looking toward
// center, with the given world-space up vector.
func SetLookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Identity()
	m.M[0], m.M[1], m.M[2] = s.X, s.Y, s.Z
	m.M[4], m.M[5], m.M[6] = u.X, u.Y, u.Z
	m.M[8], m.M[9], m.M[10] = -f.X, -f.Y, -f.Z

	m.M[3] = -s.Dot(eye)
	m.M[7] = -u.Dot(eye)
	m.M[11] = f.Dot(eye)
	return m
}
