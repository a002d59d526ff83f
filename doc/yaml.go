// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package doc

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes the first YAML document from r.
// Mappings become objects (keys must be scalars),
// sequences become arrays and scalars are typed by their
// resolved tag.
func DecodeYAML(r io.Reader) (*Value, error) {
	var n yaml.Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty YAML document", ErrSyntax)
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return fromYAML(&n)
}

// DecodeYAMLString is like DecodeYAML but decodes s.
func DecodeYAMLString(s string) (*Value, error) { return DecodeYAML(strings.NewReader(s)) }

func fromYAML(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Value{}, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: non-scalar mapping key", ErrSyntax, k.Line)
			}
			val, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, c := range n.Content {
			val, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			arr.elems = append(arr.elems, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return nil, fmt.Errorf("%w: line %d: unexpected YAML node", ErrSyntax, n.Line)
}

func fromYAMLScalar(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return &Value{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, n.Line, err)
		}
		return NewBool(b), nil
	case "!!int":
		// Normalize to decimal so that the JSON codec
		// can write the text as is.
		s := strings.ReplaceAll(n.Value, "_", "")
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return NewNumber(strconv.FormatInt(i, 10)), nil
		}
		if u, err := strconv.ParseUint(s, 0, 64); err == nil {
			return NewNumber(strconv.FormatUint(u, 10)), nil
		}
		return nil, fmt.Errorf("%w: line %d: invalid integer %q", ErrSyntax, n.Line, n.Value)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, n.Line, err)
		}
		return NewNumber(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return NewString(n.Value), nil
	}
}

// EncodeYAML writes v to w as a YAML document.
// Arrays of scalars are written in flow style.
func EncodeYAML(w io.Writer, v *Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(v)); err != nil {
		return err
	}
	return enc.Close()
}

func toYAML(v *Value) *yaml.Node {
	switch v.Kind() {
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.text}
	case Number:
		if f, ok := nonFinite(v.text); ok {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlNonFinite(f)}
		}
		tag := "!!int"
		if strings.ContainsAny(v.text, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.text}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.text}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		flow := true
		for _, x := range v.elems {
			if x.IsArray() || x.IsObject() {
				flow = false
			}
			n.Content = append(n.Content, toYAML(x))
		}
		if flow && len(v.elems) > 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.members {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.key},
				toYAML(m.val))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlNonFinite(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case f > 0:
		return ".inf"
	}
	return "-.inf"
}
