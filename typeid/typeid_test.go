// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package typeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type foo struct{}

func (*foo) TypeTag() Tag { return Of[*foo]() }

type bar struct{}

func (*bar) TypeTag() Tag { return Of[*bar]() }

func TestOf(t *testing.T) {
	assert.Equal(t, Of[foo](), Of[foo]())
	assert.NotEqual(t, Of[foo](), Of[bar]())
	assert.NotEqual(t, Of[foo](), Of[*foo]())
	assert.NotEqual(t, Of[float32](), Of[int32]())
	assert.NotEqual(t, Nil, Of[uint32]())
	assert.Equal(t, Nil, OfType(nil))

	var a, b foo
	assert.Equal(t, (&a).TypeTag(), (&b).TypeTag())
}

func TestFromName(t *testing.T) {
	assert.Equal(t, FromName("x"), FromName("x"))
	assert.NotEqual(t, FromName("x"), FromName("y"))
	assert.NotEqual(t, Nil, FromName(""))
}

func TestRegister(t *testing.T) {
	tag := Register[foo]("typeid.foo")
	require.Equal(t, Of[foo](), tag)

	name, ok := Name(tag)
	require.True(t, ok)
	assert.Equal(t, "typeid.foo", name)
	assert.Equal(t, "typeid.foo", tag.String())

	got, ok := Lookup("typeid.foo")
	require.True(t, ok)
	assert.Equal(t, tag, got)

	// Same pair again is fine.
	assert.NotPanics(t, func() { Register[foo]("typeid.foo") })
	assert.Panics(t, func() { Register[foo]("typeid.other") })
	assert.Panics(t, func() { Register[bar]("typeid.foo") })

	_, ok = Lookup("typeid.missing")
	assert.False(t, ok)
	assert.Contains(t, Of[bar]().String(), "typeid(")
}

func TestAs(t *testing.T) {
	var x Identifier = &foo{}
	f, ok := As[*foo](x)
	assert.True(t, ok)
	assert.NotNil(t, f)

	_, ok = As[*bar](x)
	assert.False(t, ok)

	_, ok = As[*foo](nil)
	assert.False(t, ok)
}
