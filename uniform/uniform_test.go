// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package uniform

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gviegas/neo3/doc"
	"github.com/gviegas/neo3/driver/record"
	"github.com/gviegas/neo3/internal/log"
	"github.com/gviegas/neo3/linear"
	"github.com/gviegas/neo3/typeid"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(log.Replace(zap.New(core)))
	return logs
}

func TestKindTable(t *testing.T) {
	names := []string{
		"Uniform1f", "Uniform2f", "Uniform3f", "Uniform4f", "UniformMatrix4fv",
		"Uniform1i", "Uniform2i", "Uniform3i", "Uniform4i",
		"Uniform1ui", "Uniform2ui", "Uniform3ui", "Uniform4ui",
	}
	ks := Kinds()
	require.Len(t, ks, len(names))

	seenName := make(map[string]bool)
	seenTag := make(map[typeid.Tag]bool)
	for i, k := range ks {
		assert.Equal(t, names[i], k.String())
		assert.False(t, seenName[k.String()])
		assert.False(t, seenTag[k.Tag()])
		seenName[k.String()] = true
		seenTag[k.Tag()] = true

		byName, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, byName)
		byPair, ok := KindOf(k.Elem(), k.Arity())
		require.True(t, ok)
		assert.Equal(t, k, byPair)

		name, ok := typeid.Name(k.Tag())
		assert.True(t, ok)
		assert.Equal(t, k.String(), name)
	}

	_, ok := ParseKind("Uniform5f")
	assert.False(t, ok)
	_, ok = KindOf(Int32, 16)
	assert.False(t, ok)
	assert.False(t, Invalid.Valid())
	assert.Equal(t, 0, Invalid.Arity())
	assert.Equal(t, typeid.Nil, Kind(99).Tag())
}

func TestTypeTag(t *testing.T) {
	a, b := New3f(1, 2, 3), New3f(4, 5, 6)
	assert.Equal(t, a.TypeTag(), b.TypeTag())
	assert.Equal(t, a.ContainerTag(), b.ContainerTag())

	// Same element type, different arity.
	c := New1f(1)
	assert.Equal(t, a.TypeTag(), c.TypeTag())
	assert.NotEqual(t, a.ContainerTag(), c.ContainerTag())

	// Different element type.
	d := New3i(1, 2, 3)
	assert.NotEqual(t, a.TypeTag(), d.TypeTag())
	assert.NotEqual(t, a.ContainerTag(), d.ContainerTag())

	// Every kind has a distinct container tag.
	tags := make(map[typeid.Tag]Kind)
	for _, k := range Kinds() {
		u := New(k)
		require.NotNil(t, u)
		kk, ok := u.Kind()
		require.True(t, ok)
		assert.Equal(t, k, kk)
		_, dup := tags[u.ContainerTag()]
		assert.False(t, dup, "%v", k)
		tags[u.ContainerTag()] = k
	}
	assert.Nil(t, New(Invalid))

	// Unregistered pairs get a distinct tag too.
	e := Create[int32](16)
	assert.NotContains(t, tags, e.ContainerTag())
}

func TestAs(t *testing.T) {
	var u Interface = New2ui(1, 2)
	v, ok := As[uint32](u)
	require.True(t, ok)
	assert.Equal(t, uint32(2), v.DataAt(1))
	_, ok = As[float32](u)
	assert.False(t, ok)
	_, ok = As[float32](nil)
	assert.False(t, ok)
}

func TestCreate(t *testing.T) {
	v := Create[float32](3, 1, 2, 3)
	assert.Equal(t, []float32{1, 2, 3}, v.Data())
	assert.Equal(t, 3, v.Size())

	// Wrong count leaves the default state.
	v = Create[float32](3, 1, 2)
	assert.Equal(t, []float32{0, 0, 0}, v.Data())

	v = Create[float32](-1)
	assert.Equal(t, 0, v.Size())

	var m linear.M4
	m.Translate(&linear.V3{1, 2, 3})
	v = NewMatrix4(&m)
	k, _ := v.Kind()
	assert.Equal(t, UniformMatrix4fv, k)
	assert.Equal(t, float32(3), v.DataAt(14))
}

func TestDataAt(t *testing.T) {
	v := New4i(-1, -2, -3, -4)
	assert.Equal(t, int32(-4), v.DataAt(3))
	assert.Equal(t, int32(0), v.DataAt(4))
	assert.Equal(t, int32(0), v.DataAt(-1))
}

func TestSetData(t *testing.T) {
	v := New2i(5, 7)
	v.SetData(1, 2, 3)
	assert.Equal(t, []int32{5, 7}, v.Data())
	v.SetData(1)
	assert.Equal(t, []int32{5, 7}, v.Data())
	v.SetData(8, 9)
	assert.Equal(t, []int32{8, 9}, v.Data())

	// Data returns a copy.
	d := v.Data()
	d[0] = 100
	assert.Equal(t, int32(8), v.DataAt(0))
}

func TestClone(t *testing.T) {
	v := New3ui(1, 2, 3)
	c := v.Clone().(*Value[uint32])
	c.SetData(4, 5, 6)
	assert.Equal(t, []uint32{1, 2, 3}, v.Data())
	assert.Equal(t, v.TypeTag(), c.TypeTag())
}

func TestSave(t *testing.T) {
	v := doc.Marshal(New3f(1, 2, 3))
	assert.Equal(t, `{"type":"Uniform3f","data":[1,2,3]}`, doc.JSONString(v))

	v = doc.Marshal(New2f(0.25, -1.5))
	assert.Equal(t, `{"type":"Uniform2f","data":[0.25,-1.5]}`, doc.JSONString(v))

	v = doc.Marshal(New1ui(4000000000))
	assert.Equal(t, `{"type":"Uniform1ui","data":[4000000000]}`, doc.JSONString(v))
}

func TestSaveUnregistered(t *testing.T) {
	logs := observe(t)
	v := doc.Marshal(Create[uint32](16))
	assert.Equal(t, `{}`, doc.JSONString(v))
	assert.Equal(t, 1, logs.FilterMessage("unregistered uniform type not saved").Len())

	// Without a root object, nothing is written at all.
	w := doc.NewWriter()
	w.StartObject()
	w.SaveMember("key", "k")
	Create[int32](7).Save(w, false)
	w.EndObject()
	assert.Equal(t, `{"key":"k"}`, doc.JSONString(w.Value()))
}

func TestRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		src := New(k)
		switch v := src.(type) {
		case *Value[float32]:
			data := make([]float32, v.Size())
			for i := range data {
				data[i] = float32(i)*1.25 - 3.1
			}
			v.SetData(data...)
		case *Value[int32]:
			data := make([]int32, v.Size())
			for i := range data {
				data[i] = int32(i*7 - 11)
			}
			v.SetData(data...)
		case *Value[uint32]:
			data := make([]uint32, v.Size())
			for i := range data {
				data[i] = uint32(i*13 + 1)
			}
			v.SetData(data...)
		}

		s := doc.JSONString(doc.Marshal(src))
		d, err := doc.DecodeJSONString(s)
		require.NoError(t, err)
		dst := New(k)
		require.True(t, dst.Load(d, true), "%v: %s", k, s)
		assert.Equal(t, src, dst, "%v", k)
	}
}

func TestRoundTripNonFinite(t *testing.T) {
	nan, inf := float32(math.NaN()), float32(math.Inf(1))
	src := New3f(nan, inf, -inf)
	for _, enc := range []struct {
		encode func(*doc.Value) (string, error)
		decode func(string) (*doc.Value, error)
	}{
		{func(v *doc.Value) (string, error) { return doc.JSONString(v), nil }, doc.DecodeJSONString},
		{func(v *doc.Value) (string, error) {
			var sb strings.Builder
			err := doc.EncodeYAML(&sb, v)
			return sb.String(), err
		}, doc.DecodeYAMLString},
	} {
		s, err := enc.encode(doc.Marshal(src))
		require.NoError(t, err)
		d, err := enc.decode(s)
		require.NoError(t, err, s)
		dst := Create[float32](3)
		require.True(t, dst.Load(d, true), s)
		assert.True(t, math.IsNaN(float64(dst.DataAt(0))), s)
		assert.Equal(t, inf, dst.DataAt(1), s)
		assert.Equal(t, -inf, dst.DataAt(2), s)
	}
}

func TestLoad(t *testing.T) {
	load := func(u Interface, s string) bool {
		d, err := doc.DecodeJSONString(s)
		require.NoError(t, err)
		return u.Load(d, true)
	}

	v := New3f(9, 9, 9)
	require.True(t, load(v, `{"type":"Uniform3f","data":[1.0,2.0,3.0]}`))
	assert.Equal(t, float32(1), v.DataAt(0))
	assert.Equal(t, float32(2), v.DataAt(1))
	assert.Equal(t, float32(3), v.DataAt(2))

	// "type" is optional.
	assert.True(t, load(v, `{"data":[4,5,6]}`))

	for _, s := range []string{
		`[1,2,3]`,
		`{}`,
		`{"data":1}`,
		`{"data":[1,2]}`,
		`{"data":[1,2,3,4]}`,
		`{"data":[1,"2",3]}`,
		`{"type":"Uniform3i","data":[1,2,3]}`,
	} {
		assert.False(t, load(v, s), s)
	}
	// Failed loads do not modify the value.
	assert.Equal(t, []float32{4, 5, 6}, v.Data())

	i := New1i(0)
	assert.False(t, load(i, `{"data":[1.5]}`))
	assert.False(t, load(i, `{"data":[3000000000]}`))
	assert.True(t, load(i, `{"data":[-3]}`))
	assert.Equal(t, int32(-3), i.DataAt(0))

	u := New1ui(0)
	assert.False(t, load(u, `{"data":[-1]}`))

	// Non-root loads read fields from the enclosing object.
	d, err := doc.DecodeJSONString(`{"key":"k","type":"Uniform1i","data":[42]}`)
	require.NoError(t, err)
	assert.True(t, i.Load(d, false))
	assert.Equal(t, int32(42), i.DataAt(0))
}

func TestBind(t *testing.T) {
	p := record.NewProgram("test",
		"f1", "f2", "f3", "f4", "mvp", "i1", "i2", "i3", "i4", "u1", "u2", "u3", "u4")

	New1f(1).Bind(p, "f1")
	New2f(1, 2).Bind(p, "f2")
	New3f(1, 2, 3).Bind(p, "f3")
	New4f(1, 2, 3, 4).Bind(p, "f4")
	var m linear.M4
	m.I()
	NewMatrix4(&m).Bind(p, "mvp")
	New1i(-1).Bind(p, "i1")
	New2i(-1, -2).Bind(p, "i2")
	New3i(-1, -2, -3).Bind(p, "i3")
	New4i(-1, -2, -3, -4).Bind(p, "i4")
	New1ui(1).Bind(p, "u1")
	New2ui(1, 2).Bind(p, "u2")
	New3ui(1, 2, 3).Bind(p, "u3")
	New4ui(1, 2, 3, 4).Bind(p, "u4")

	calls := p.Calls()
	require.Len(t, calls, 13)
	want := []string{
		"Uniform1f(f1)[1]",
		"Uniform2f(f2)[1 2]",
		"Uniform3f(f3)[1 2 3]",
		"Uniform4f(f4)[1 2 3 4]",
		"UniformMatrix4fv(mvp)[false 1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1]",
		"Uniform1i(i1)[-1]",
		"Uniform2i(i2)[-1 -2]",
		"Uniform3i(i3)[-1 -2 -3]",
		"Uniform4i(i4)[-1 -2 -3 -4]",
		"Uniform1ui(u1)[1]",
		"Uniform2ui(u2)[1 2]",
		"Uniform3ui(u3)[1 2 3]",
		"Uniform4ui(u4)[1 2 3 4]",
	}
	for i := range want {
		assert.Equal(t, want[i], calls[i].String())
	}
}

func TestBindSkipped(t *testing.T) {
	logs := observe(t)
	p := record.NewProgram("test", "x")

	// Not active: skipped silently.
	New1f(1).Bind(p, "missing")
	assert.Empty(t, p.Calls())
	assert.Equal(t, 1, logs.FilterMessage("uniform not active in program").Len())

	// Unsupported arity: warned and skipped.
	Create[float32](5).Bind(p, "x")
	Create[int32](16).Bind(p, "x")
	assert.Empty(t, p.Calls())
	warn := logs.FilterMessage("unsupported uniform arity not bound")
	assert.Equal(t, 2, warn.Len())
	assert.Equal(t, zapcore.WarnLevel, warn.All()[0].Level)
}
