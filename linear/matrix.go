// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(v *V3) {
	m.I()
	m[3] = V4{v[0], v[1], v[2], 1}
}

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(v *V3) {
	*m = M4{{v[0]}, {0, v[1]}, {0, 0, v[2]}, {0, 0, 0, 1}}
}

// Rotate sets m to contain the rotation matrix of q.
// q must be normalized.
func (m *M4) Rotate(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// Array returns the elements of m in column-major order.
func (m *M4) Array() (a [16]float32) {
	for i := range m {
		copy(a[i*4:], m[i][:])
	}
	return
}

// FromArray sets m from elements in column-major order.
func (m *M4) FromArray(a *[16]float32) {
	for i := range m {
		copy(m[i][:], a[i*4:i*4+4])
	}
}
