// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package doc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON decodes a single JSON value from r.
// Member order is preserved and numbers keep their
// original text.
func DecodeJSON(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrSyntax)
	}
	return v, nil
}

// DecodeJSONString is like DecodeJSON but decodes s.
func DecodeJSONString(s string) (*Value, error) { return DecodeJSON(strings.NewReader(s)) }

func decodeJSON(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of JSON input", ErrSyntax)
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	switch tok := tok.(type) {
	case nil:
		return &Value{}, nil
	case bool:
		return NewBool(tok), nil
	case json.Number:
		return NewNumber(tok.String()), nil
	case string:
		return NewString(tok), nil
	case json.Delim:
		switch tok {
		case '{':
			obj := NewObject()
			for dec.More() {
				ktok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
				}
				key, ok := ktok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: non-string object key", ErrSyntax)
				}
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				val, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				arr.elems = append(arr.elems, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
			}
			return arr, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrSyntax, tok)
}

// EncodeJSON writes v to w as JSON.
// If indent is true, the output is indented with tabs.
// NaN and infinities are written as strings.
func EncodeJSON(w io.Writer, v *Value, indent bool) error {
	bw := bufio.NewWriter(w)
	enc := jsonEncoder{w: bw, indent: indent}
	if err := enc.encode(v, 0); err != nil {
		return err
	}
	if indent {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// JSONString returns v encoded as compact JSON.
func JSONString(v *Value) string {
	var sb strings.Builder
	if err := EncodeJSON(&sb, v, false); err != nil {
		return ""
	}
	return sb.String()
}

type jsonEncoder struct {
	w      *bufio.Writer
	indent bool
}

func (e *jsonEncoder) newline(depth int) {
	if !e.indent {
		return
	}
	e.w.WriteByte('\n')
	for range depth {
		e.w.WriteByte('\t')
	}
}

func (e *jsonEncoder) str(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}

func (e *jsonEncoder) encode(v *Value, depth int) error {
	switch v.Kind() {
	case Null:
		e.w.WriteString("null")
	case Bool:
		e.w.WriteString(v.text)
	case Number:
		if _, ok := nonFinite(v.text); ok {
			return e.str(v.text)
		}
		e.w.WriteString(v.text)
	case String:
		return e.str(v.text)
	case Array:
		e.w.WriteByte('[')
		for i, x := range v.elems {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.encode(x, depth+1); err != nil {
				return err
			}
		}
		if len(v.elems) > 0 {
			e.newline(depth)
		}
		e.w.WriteByte(']')
	case Object:
		e.w.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.str(m.key); err != nil {
				return err
			}
			e.w.WriteByte(':')
			if e.indent {
				e.w.WriteByte(' ')
			}
			if err := e.encode(m.val, depth+1); err != nil {
				return err
			}
		}
		if len(v.members) > 0 {
			e.newline(depth)
		}
		e.w.WriteByte('}')
	}
	return nil
}
