package listing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Node.
type Kind int

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
	default:
		return "null"
	}
}

// Node is a decoded JSON value. Objects keep their keys in document order,
// which plain map decoding would lose.
type Node struct {
	kind   Kind
	b      bool
	num    float64
	str    string
	items  []Node
	fields []Field
}

// Field is one key/value pair of an object node.
type Field struct {
	Key   string
	Value Node
}

// ErrTrailingData is returned when a document holds more than one JSON value.
var ErrTrailingData = errors.New("listing: trailing data after document")

// Parse decodes a single JSON value.
func Parse(data []byte) (Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON value from r.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return Node{}, fmt.Errorf("listing: decode: %w", err)
	}
	n, err := decodeValue(dec, tok)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Node{}, fmt.Errorf("listing: decode: %w", err)
		}
		return Node{}, ErrTrailingData
	}
	return n, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (Node, error) {
	switch v := tok.(type) {
	case nil:
		return Node{}, nil
	case bool:
		return Node{kind: Bool, b: v}, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Node{}, fmt.Errorf("listing: number %q: %w", v.String(), err)
		}
		return Node{kind: Number, num: f}, nil
	case string:
		return Node{kind: String, str: v}, nil
	case json.Delim:
		switch v {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
	}
	return Node{}, fmt.Errorf("listing: unexpected token %v", tok)
}

func decodeArray(dec *json.Decoder) (Node, error) {
	n := Node{kind: Array, items: []Node{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, fmt.Errorf("listing: decode: %w", err)
		}
		item, err := decodeValue(dec, tok)
		if err != nil {
			return Node{}, err
		}
		n.items = append(n.items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, fmt.Errorf("listing: decode: %w", err)
	}
	return n, nil
}

func decodeObject(dec *json.Decoder) (Node, error) {
	n := Node{kind: Object, fields: []Field{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, fmt.Errorf("listing: decode: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Node{}, fmt.Errorf("listing: unexpected object key %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return Node{}, fmt.Errorf("listing: decode: %w", err)
		}
		val, err := decodeValue(dec, tok)
		if err != nil {
			return Node{}, err
		}
		n.set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, fmt.Errorf("listing: decode: %w", err)
	}
	return n, nil
}

// set keeps the first position of a repeated key and the last value.
func (n *Node) set(key string, val Node) {
	for i := range n.fields {
		if n.fields[i].Key == key {
			n.fields[i].Value = val
			return
		}
	}
	n.fields = append(n.fields, Field{Key: key, Value: val})
}

// Constructors used when building documents in code.

func NullNode() Node { return Node{} }
func BoolNode(b bool) Node { return Node{kind: Bool, b: b} }
func NumberNode(f float64) Node { return Node{kind: Number, num: f} }
func StringNode(s string) Node { return Node{kind: String, str: s} }
func ArrayNode(items ...Node) Node {
	return Node{kind: Array, items: append([]Node{}, items...)}
}

// ObjectNode builds an object from fields in the given order.
func ObjectNode(fields ...Field) Node {
	n := Node{kind: Object, fields: []Field{}}
	for _, f := range fields {
		n.set(f.Key, f.Value)
	}
	return n
}

func (n Node) Kind() Kind { return n.kind }
func (n Node) IsNull() bool { return n.kind == Null }

// Get returns the value under key, or the null node when n is not an object
// or has no such key.
func (n Node) Get(key string) Node {
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value
		}
	}
	return Node{}
}

// Fields returns the object's pairs in document order; nil for non-objects.
func (n Node) Fields() []Field {
	if n.kind != Object {
		return nil
	}
	return n.fields
}

// Items returns the array elements; nil for non-arrays.
func (n Node) Items() []Node {
	if n.kind != Array {
		return nil
	}
	return n.items
}

// Len is the element count of an array or the key count of an object.
func (n Node) Len() int {
	switch n.kind {
	case Array:
		return len(n.items)
	case Object:
		return len(n.fields)
	}
	return 0
}

// Truthy reports whether the value counts as present for display purposes:
// null, false, 0 and the empty string do not.
func (n Node) Truthy() bool {
	switch n.kind {
	case Bool:
		return n.b
	case Number:
		return n.num != 0 && !math.IsNaN(n.num)
	case String:
		return n.str != ""
	case Array, Object:
		return true
	}
	return false
}

// Float returns the numeric value of a number node or a numeric string.
func (n Node) Float() (float64, bool) {
	switch n.kind {
	case Number:
		return n.num, true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(n.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Str returns the raw string of a string node and "" otherwise.
func (n Node) Str() string {
	if n.kind != String {
		return ""
	}
	return n.str
}

// String converts the value to display text the way a template literal
// would: numbers in shortest form, arrays comma-joined, objects opaque.
func (n Node) String() string {
	switch n.kind {
	case Bool:
		return strconv.FormatBool(n.b)
	case Number:
		return formatNumber(n.num)
	case String:
		return n.str
	case Array:
		parts := make([]string, len(n.items))
		for i, item := range n.items {
			if item.kind != Null {
				parts[i] = item.String()
			}
		}
		return strings.Join(parts, ",")
	case Object:
		return "[object Object]"
	}
	return "null"
}

// Text returns String() for truthy values and "" for absent ones.
func (n Node) Text() string {
	if !n.Truthy() {
		return ""
	}
	return n.String()
}

// Interface converts the node to plain Go values for encoding. Numbers become
// json.Number so their literal form survives re-encoding.
func (n Node) Interface() any {
	switch n.kind {
	case Bool:
		return n.b
	case Number:
		return json.Number(formatNumber(n.num))
	case String:
		return n.str
	case Array:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}
		return out
	case Object:
		return n
	}
	return nil
}

// MarshalJSON encodes the node, keeping object key order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n Node) encode(buf *bytes.Buffer) error {
	switch n.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(n.b))
	case Number:
		if math.IsInf(n.num, 0) || math.IsNaN(n.num) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(formatNumber(n.num))
	case String:
		return encodeString(buf, n.str)
	case Array:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, f := range n.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Indent returns the two-space indented JSON serialisation of the node.
func (n Node) Indent() string {
	raw, err := n.MarshalJSON()
	if err != nil {
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

// formatNumber renders f in the shortest round-tripping form, switching to
// exponent notation outside [1e-6, 1e21).
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
