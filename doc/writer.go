// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package doc

import (
	"errors"
	"fmt"
	"strconv"
)

const writerPrefix = "doc: writer: "

func newWriterErr(reason string) error { return errors.New(writerPrefix + reason) }

// Writer builds a document.
//
// Containers are opened with StartObject/StartArray and
// closed with EndObject/EndArray. Inside an object, every
// value must be preceded by SaveKey. Misuse does not panic;
// the offending value is dropped and Err reports the first
// error.
type Writer struct {
	root    *Value
	stack   []*Value
	key     string
	haveKey bool
	err     error
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer { return new(Writer) }

// Value returns the root of the document built so far.
func (w *Writer) Value() *Value { return w.root }

// Err returns the first structural error, if any.
// Unclosed containers are reported as well.
func (w *Writer) Err() error {
	if w.err == nil && len(w.stack) > 0 {
		return newWriterErr(fmt.Sprintf("%d unclosed container(s)", len(w.stack)))
	}
	return w.err
}

// Depth returns the number of open containers.
func (w *Writer) Depth() int { return len(w.stack) }

func (w *Writer) fail(reason string) {
	if w.err == nil {
		w.err = newWriterErr(reason)
	}
}

func (w *Writer) add(v *Value) bool {
	if len(w.stack) == 0 {
		if w.root != nil {
			w.fail("multiple root values")
			return false
		}
		w.root = v
		return true
	}
	top := w.stack[len(w.stack)-1]
	switch top.kind {
	case Object:
		if !w.haveKey {
			w.fail("object member without key")
			return false
		}
		top.Set(w.key, v)
		w.key, w.haveKey = "", false
	case Array:
		if w.haveKey {
			w.fail("key " + strconv.Quote(w.key) + " inside array")
			w.key, w.haveKey = "", false
			return false
		}
		top.elems = append(top.elems, v)
	}
	return true
}

func (w *Writer) start(v *Value) {
	if w.add(v) {
		w.stack = append(w.stack, v)
	} else {
		// Keep the nesting balanced so that the
		// matching End call does not pop a parent.
		w.stack = append(w.stack, &Value{kind: v.kind})
	}
}

func (w *Writer) end(k Kind) {
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != k {
		w.fail("unbalanced end of " + k.String())
		return
	}
	if w.haveKey {
		w.fail("dangling key " + strconv.Quote(w.key))
		w.key, w.haveKey = "", false
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// StartObject opens an object.
func (w *Writer) StartObject() { w.start(NewObject()) }

// EndObject closes the innermost object.
func (w *Writer) EndObject() { w.end(Object) }

// StartArray opens an array.
func (w *Writer) StartArray() { w.start(NewArray()) }

// EndArray closes the innermost array.
func (w *Writer) EndArray() { w.end(Array) }

// SaveKey sets the key of the next object member.
func (w *Writer) SaveKey(key string) {
	if w.haveKey {
		w.fail("key " + strconv.Quote(w.key) + " without value")
	}
	w.key, w.haveKey = key, true
}

// SaveValue writes a scalar or a *Value.
// Supported scalars are nil, bool, string, the sized and
// unsized integer types, float32 and float64.
func (w *Writer) SaveValue(x any) {
	var v *Value
	switch x := x.(type) {
	case nil:
		v = &Value{}
	case *Value:
		v = x
	case bool:
		v = NewBool(x)
	case string:
		v = NewString(x)
	case int:
		v = NewNumber(strconv.FormatInt(int64(x), 10))
	case int32:
		v = NewNumber(strconv.FormatInt(int64(x), 10))
	case int64:
		v = NewNumber(strconv.FormatInt(x, 10))
	case uint:
		v = NewNumber(strconv.FormatUint(uint64(x), 10))
	case uint32:
		v = NewNumber(strconv.FormatUint(uint64(x), 10))
	case uint64:
		v = NewNumber(strconv.FormatUint(x, 10))
	case float32:
		v = NewNumber(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		v = NewNumber(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		w.fail(fmt.Sprintf("unsupported value type %T", x))
		w.key, w.haveKey = "", false
		return
	}
	w.add(v)
}

// SaveMember writes a key followed by a value.
func (w *Writer) SaveMember(key string, x any) {
	w.SaveKey(key)
	w.SaveValue(x)
}

// SaveArray writes an array member named key whose
// elements are produced by f.
func (w *Writer) SaveArray(key string, f func(w *Writer)) {
	w.SaveKey(key)
	w.StartArray()
	f(w)
	w.EndArray()
}
