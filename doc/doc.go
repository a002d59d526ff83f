// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package doc implements the hierarchical document used to
// persist engine objects.
//
// A document is a tree of Values: objects (with ordered,
// string-keyed members), arrays and scalars. Objects
// load themselves from a Value and save themselves through
// a Writer, which builds a new tree. Codecs for JSON and
// YAML convert between byte streams and Values.
package doc

import (
	"errors"
	"math"
	"strconv"
)

// ErrSyntax means that a byte stream could not be decoded
// into a document.
var ErrSyntax = errors.New("doc: syntax error")

// Serializable is the interface of values that can be
// loaded from and saved into a document.
//
// When isRootObject is true, the callee owns the object
// boundary: Load must check that v is an object and Save
// must open and close one. When it is false, the caller
// has already opened the object and the callee reads or
// writes its fields directly into it. This lets a type
// inline the fields of an embedded type in the same object.
type Serializable interface {
	// Load loads the receiver from v.
	// It returns false if a required field is missing or
	// has the wrong type. The receiver may be left partially
	// loaded in that case.
	Load(v *Value, isRootObject bool) bool

	// Save saves the receiver into w.
	Save(w *Writer, isRootObject bool)
}

// Marshal saves s as a root object and returns the
// resulting document.
func Marshal(s Serializable) *Value {
	w := NewWriter()
	s.Save(w, true)
	return w.Value()
}

// Kind is the kind of a Value.
type Kind int

// Value kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

type member struct {
	key string
	val *Value
}

// Value is a node in a document.
// The zero value is a null node.
type Value struct {
	kind Kind
	// Text of Number and String values,
	// "true" or "false" for Bool values.
	text    string
	elems   []*Value
	members []member
}

// NewObject creates an empty object.
func NewObject() *Value { return &Value{kind: Object} }

// NewArray creates an array holding elems.
func NewArray(elems ...*Value) *Value { return &Value{kind: Array, elems: elems} }

// NewString creates a string value.
func NewString(s string) *Value { return &Value{kind: String, text: s} }

// NewBool creates a boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, text: strconv.FormatBool(b)} }

// NewNumber creates a number value from its textual
// representation. The text is not validated.
func NewNumber(text string) *Value { return &Value{kind: Number, text: text} }

// Kind returns the kind of v.
// A nil Value is Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// IsObject returns whether v is an object.
func (v *Value) IsObject() bool { return v.Kind() == Object }

// IsArray returns whether v is an array.
func (v *Value) IsArray() bool { return v.Kind() == Array }

// IsNull returns whether v is null.
func (v *Value) IsNull() bool { return v.Kind() == Null }

// Len returns the number of elements of an array or the
// number of members of an object. It returns 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	}
	return 0
}

// Index returns the i-th element of an array, or nil.
func (v *Value) Index(i int) *Value {
	if !v.IsArray() || i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Elems returns the elements of an array.
// The slice must not be modified.
func (v *Value) Elems() []*Value {
	if !v.IsArray() {
		return nil
	}
	return v.elems
}

// Keys returns the member keys of an object, in order.
func (v *Value) Keys() []string {
	if !v.IsObject() {
		return nil
	}
	keys := make([]string, len(v.members))
	for i := range v.members {
		keys[i] = v.members[i].key
	}
	return keys
}

// Member returns the member of an object named key.
func (v *Value) Member(key string) (*Value, bool) {
	if !v.IsObject() {
		return nil, false
	}
	for i := range v.members {
		if v.members[i].key == key {
			return v.members[i].val, true
		}
	}
	return nil, false
}

// Set sets the member named key of an object,
// replacing any existing member with the same key.
// It does nothing if v is not an object.
func (v *Value) Set(key string, val *Value) {
	if !v.IsObject() {
		return
	}
	for i := range v.members {
		if v.members[i].key == key {
			v.members[i].val = val
			return
		}
	}
	v.members = append(v.members, member{key, val})
}

// Append appends elements to an array.
// It does nothing if v is not an array.
func (v *Value) Append(elems ...*Value) {
	if v.IsArray() {
		v.elems = append(v.elems, elems...)
	}
}

// Text returns the textual representation of a scalar.
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	return v.text
}

// Str returns the string held by v.
func (v *Value) Str() (string, bool) {
	if v.Kind() != String {
		return "", false
	}
	return v.text, true
}

// Bool returns the boolean held by v.
func (v *Value) Bool() (bool, bool) {
	if v.Kind() != Bool {
		return false, false
	}
	return v.text == "true", true
}

// nonFinite returns the value of text if it spells NaN
// or an infinity.
func nonFinite(text string) (float64, bool) {
	f, err := strconv.ParseFloat(text, 64)
	return f, err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

// Float64 returns the number held by v as a float64.
// JSON has no literal for NaN and infinities, so they are
// also accepted as strings ("NaN", "+Inf", "-Inf").
func (v *Value) Float64() (float64, bool) {
	switch v.Kind() {
	case Number:
		f, err := strconv.ParseFloat(v.text, 64)
		return f, err == nil
	case String:
		return nonFinite(v.text)
	}
	return 0, false
}

// Float32 returns the number held by v as a float32.
// Like Float64, it accepts non-finite strings.
func (v *Value) Float32() (float32, bool) {
	switch v.Kind() {
	case Number:
		f, err := strconv.ParseFloat(v.text, 32)
		return float32(f), err == nil
	case String:
		f, ok := nonFinite(v.text)
		return float32(f), ok
	}
	return 0, false
}

// Int64 returns the number held by v as an int64.
// It fails if the number is not integral.
func (v *Value) Int64() (int64, bool) {
	if v.Kind() != Number {
		return 0, false
	}
	i, err := strconv.ParseInt(v.text, 10, 64)
	return i, err == nil
}

// Int32 returns the number held by v as an int32.
// It fails if the number is not integral or overflows.
func (v *Value) Int32() (int32, bool) {
	if v.Kind() != Number {
		return 0, false
	}
	i, err := strconv.ParseInt(v.text, 10, 32)
	return int32(i), err == nil
}

// Uint64 returns the number held by v as a uint64.
// It fails if the number is not a non-negative integer.
func (v *Value) Uint64() (uint64, bool) {
	if v.Kind() != Number {
		return 0, false
	}
	u, err := strconv.ParseUint(v.text, 10, 64)
	return u, err == nil
}

// Uint32 returns the number held by v as a uint32.
// It fails if the number is not a non-negative integer
// or overflows.
func (v *Value) Uint32() (uint32, bool) {
	if v.Kind() != Number {
		return 0, false
	}
	u, err := strconv.ParseUint(v.text, 10, 32)
	return uint32(u), err == nil
}

// LoadMemberValue loads the scalar member named key of an
// object into dst. dst must be one of *bool, *string,
// *int, *int32, *int64, *uint32, *uint64, *float32 or
// *float64. It returns false if the member is missing,
// has an incompatible kind, or dst is not supported.
// dst is not modified on failure.
func (v *Value) LoadMemberValue(key string, dst any) bool {
	m, ok := v.Member(key)
	if !ok {
		return false
	}
	return m.load(dst)
}

func (v *Value) load(dst any) (ok bool) {
	switch dst := dst.(type) {
	case *bool:
		var b bool
		if b, ok = v.Bool(); ok {
			*dst = b
		}
	case *string:
		var s string
		if s, ok = v.Str(); ok {
			*dst = s
		}
	case *int:
		var i int64
		if i, ok = v.Int64(); ok {
			*dst = int(i)
		}
	case *int32:
		var i int32
		if i, ok = v.Int32(); ok {
			*dst = i
		}
	case *int64:
		var i int64
		if i, ok = v.Int64(); ok {
			*dst = i
		}
	case *uint32:
		var u uint32
		if u, ok = v.Uint32(); ok {
			*dst = u
		}
	case *uint64:
		var u uint64
		if u, ok = v.Uint64(); ok {
			*dst = u
		}
	case *float32:
		var f float32
		if f, ok = v.Float32(); ok {
			*dst = f
		}
	case *float64:
		var f float64
		if f, ok = v.Float64(); ok {
			*dst = f
		}
	}
	return
}

// LoadArray returns the elements of the array member
// named key of an object.
// It returns false if the member is missing or is not
// an array.
func (v *Value) LoadArray(key string) ([]*Value, bool) {
	m, ok := v.Member(key)
	if !ok || !m.IsArray() {
		return nil, false
	}
	return m.elems, true
}

// Equal reports whether v and w are structurally equal.
// Numbers are compared by their text.
func (v *Value) Equal(w *Value) bool {
	if v.Kind() != w.Kind() {
		return false
	}
	switch v.Kind() {
	case Null:
		return true
	case Bool, Number, String:
		return v.text == w.text
	case Array:
		if len(v.elems) != len(w.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(w.elems[i]) {
				return false
			}
		}
	case Object:
		if len(v.members) != len(w.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].key != w.members[i].key || !v.members[i].val.Equal(w.members[i].val) {
				return false
			}
		}
	}
	return true
}
