// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/neo3/doc"
)

func TestEntity(t *testing.T) {
	e := New("a")
	assert.Equal(t, "a", e.Name())
	assert.False(t, e.Dirty())

	e.SetName("a")
	assert.False(t, e.Dirty())
	e.SetName("b")
	assert.True(t, e.Dirty())
	e.ClearDirty()
	assert.False(t, e.Dirty())
	e.MarkDirty()
	assert.True(t, e.Dirty())
}

func TestDoc(t *testing.T) {
	e := New("stone")
	v := doc.Marshal(&e)
	assert.Equal(t, `{"name":"stone"}`, doc.JSONString(v))

	var f Entity
	f.MarkDirty()
	require.True(t, f.Load(v, true))
	assert.Equal(t, "stone", f.Name())
	assert.False(t, f.Dirty())

	for _, s := range []string{`[]`, `{}`, `{"name":1}`} {
		d, err := doc.DecodeJSONString(s)
		require.NoError(t, err)
		assert.False(t, f.Load(d, true), s)
	}
	assert.Equal(t, "stone", f.Name())
}
