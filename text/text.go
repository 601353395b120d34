// Package text turns a structured-text blob into an order-preserving value
// tree, the shape the glyph loader needs to detect duplicate and
// out-of-order fields the way the original jsmn-based ingest did. A plain
// map[string]any loses both the original key order and any duplicate key
// (encoding/json's default decoder silently keeps the last one), so this
// package decodes with a token-level Decoder instead.
package text

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Kind identifies the shape of a Node.
type Kind int

const (
	Primitive Kind = iota
	Array
	Object
)

// KeyValue is one member of an Object node, in the order it appeared in
// the source text.
type KeyValue struct {
	Key   string
	Value Node
}

// Node is one value in the parsed tree. Which fields are meaningful is
// selected by Kind: for Primitive, Raw holds a number, or IsStr is set and
// RawStr holds a string (booleans and null are stored this way too, as
// "true", "false" and "null"); Array for Array; Fields for Object.
type Node struct {
	Kind   Kind
	Raw    json.Number
	RawStr string
	IsStr  bool
	Array  []Node
	Fields []KeyValue
}

// Int reports n's value as an int64. It only succeeds for a numeric
// Primitive node.
func (n Node) Int() (int64, error) {
	if n.Kind != Primitive || n.IsStr {
		return 0, fmt.Errorf("text: node is not a number")
	}
	return n.Raw.Int64()
}

// Float reports n's value as a float64. It only succeeds for a numeric
// Primitive node.
func (n Node) Float() (float64, error) {
	if n.Kind != Primitive || n.IsStr {
		return 0, fmt.Errorf("text: node is not a number")
	}
	return n.Raw.Float64()
}

// String reports n's value as a string. It only succeeds for a string
// Primitive node.
func (n Node) String() (string, error) {
	if n.Kind != Primitive || !n.IsStr {
		return "", fmt.Errorf("text: node is not a string")
	}
	return n.RawStr, nil
}

// Parser turns a structured-text blob into a Node tree.
type Parser interface {
	Parse(blob []byte) (Node, error)
}

// JSONParser is a Parser backed by encoding/json's token-level Decoder,
// preserving object key order and surfacing duplicate keys instead of
// silently keeping the last value the way json.Unmarshal into a map does.
type JSONParser struct{}

// Parse decodes blob into a Node tree.
func (JSONParser) Parse(blob []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, fmt.Errorf("text: trailing data after top-level value")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return Node{}, fmt.Errorf("text: unexpected delimiter %q", t)
		}
	case json.Number:
		return Node{Kind: Primitive, Raw: t}, nil
	case string:
		return Node{Kind: Primitive, RawStr: t, IsStr: true}, nil
	case bool:
		if t {
			return Node{Kind: Primitive, RawStr: "true", IsStr: true}, nil
		}
		return Node{Kind: Primitive, RawStr: "false", IsStr: true}, nil
	case nil:
		return Node{Kind: Primitive, RawStr: "null", IsStr: true}, nil
	default:
		return Node{}, fmt.Errorf("text: unrecognized token %T", tok)
	}
}

func decodeArray(dec *json.Decoder) (Node, error) {
	n := Node{Kind: Array}
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		n.Array = append(n.Array, elem)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Node{}, err
	}
	return n, nil
}

func decodeObject(dec *json.Decoder) (Node, error) {
	n := Node{Kind: Object}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Node{}, fmt.Errorf("text: object key is not a string")
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		n.Fields = append(n.Fields, KeyValue{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Node{}, err
	}
	return n, nil
}
