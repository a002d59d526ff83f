// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func TestV(t *testing.T) {
	var u V3
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	if u.Add(&v, &w); u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	if u.Sub(&v, &w); u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	if u.Scale(-1, &v); u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6\n", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}
	v = V3{0, 0, -2}
	if u.Norm(&v); u != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", u)
	}
	if u.Cross(&V3{1, 0, 0}, &V3{0, 1, 0}); u != (V3{0, 0, 1}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [0 0 1]", u)
	}

	var x V4
	y := V4{1, 2, 2, 4}
	if x.Scale(0.5, &y); x != (V4{0.5, 1, 1, 2}) {
		t.Fatalf("V4.Scale\nhave %v\nwant [0.5 1 1 2]", x)
	}
	if l := y.Len(); l != 5 {
		t.Fatalf("V4.Len\nhave %v\nwant 5", l)
	}
}

func TestM4(t *testing.T) {
	var i, m, n M4
	i.I()
	m.Translate(&V3{1, 2, 3})
	if n.Mul(&i, &m); n != m {
		t.Fatalf("M4.Mul\nhave %v\nwant %v", n, m)
	}
	var s M4
	s.Scale(&V3{2, 2, 2})
	n.Mul(&m, &s)
	if n[0][0] != 2 || n[3] != (V4{1, 2, 3, 1}) {
		t.Fatalf("M4.Mul: translate ⋅ scale\nhave %v", n)
	}
	n.Transpose(&m)
	if n[0][3] != 1 || n[1][3] != 2 || n[2][3] != 3 {
		t.Fatalf("M4.Transpose\nhave %v", n)
	}
	a := m.Array()
	if a[12] != 1 || a[13] != 2 || a[14] != 3 || a[15] != 1 {
		t.Fatalf("M4.Array\nhave %v", a)
	}
	var b M4
	if b.FromArray(&a); b != m {
		t.Fatalf("M4.FromArray\nhave %v\nwant %v", b, m)
	}
}

func TestQ(t *testing.T) {
	var q, p, r Q
	q.I()
	p.Rotate(math.Pi/2, &V3{0, 0, 1})
	if r.Mul(&q, &p); r != p {
		t.Fatalf("Q.Mul\nhave %v\nwant %v", r, p)
	}
	if l := p.Len(); math.Abs(float64(l-1)) > 1e-6 {
		t.Fatalf("Q.Len\nhave %v\nwant 1", l)
	}
	var m M4
	m.Rotate(&p)
	// +x rotated by 90 degrees around +z is +y.
	if math.Abs(float64(m[0][1]-1)) > 1e-6 || math.Abs(float64(m[0][0])) > 1e-6 {
		t.Fatalf("M4.Rotate\nhave %v", m)
	}
	var u Q
	u.Norm(&Q{V: V3{0, 0, 2}})
	if u != (Q{V: V3{0, 0, 1}}) {
		t.Fatalf("Q.Norm\nhave %v\nwant {[0 0 1] 0}", u)
	}
}
