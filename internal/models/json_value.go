package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Value is a parsed JSON document. Exactly six concrete types implement
// it: Null, Bool, Number, String, Array, and Object. The closed set lets
// canonicalization and diffing switch exhaustively over every shape a
// structured-data block can contain.
type Value interface {
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, held as an IEEE-754 double to match the
// precision browsers apply to structured data.
type Number float64

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []Value

// Object is a JSON object kept as an ordered member list, so canonical
// key order is representable in the value itself.
type Object []Member

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// ParseValue decodes one JSON document into a Value. Object member order
// follows the source text; a duplicated key keeps its first position and
// its last value. Trailing content after the document is an error.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON value: %w", err)
	}

	v, err := valueFromToken(dec, tok)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after JSON value")
	}

	return v, nil
}

func valueFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("failed to parse number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Array{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode array element: %w", err)
		}
		el, err := valueFromToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, el)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated array: %w", err)
	}
	return arr, nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Object{}
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode value of key %q: %w", key, err)
		}
		val, err := valueFromToken(dec, valTok)
		if err != nil {
			return nil, err
		}

		if idx, dup := seen[key]; dup {
			obj[idx].Value = val
		} else {
			seen[key] = len(obj)
			obj = append(obj, Member{Key: key, Value: val})
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("unterminated object: %w", err)
	}
	return obj, nil
}

// EncodeValue renders v as compact JSON. Members keep their order, so
// encoding a canonicalized value yields its canonical serialization.
func EncodeValue(v Value) string {
	var sb strings.Builder
	appendValue(&sb, v)
	return sb.String()
}

func appendValue(sb *strings.Builder, v Value) {
	switch t := v.(type) {
	case Null:
		sb.WriteString("null")
	case Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(formatNumber(float64(t)))
	case String:
		appendQuoted(sb, string(t))
	case Array:
		sb.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			appendValue(sb, el)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, m := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			appendQuoted(sb, m.Key)
			sb.WriteByte(':')
			appendValue(sb, m.Value)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
}

// formatNumber renders f the way ECMAScript's JSON.stringify does:
// no fraction on integral doubles, exponent notation outside
// [1e-6, 1e21), "0" for negative zero, and null for non-finite values.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return normalizeExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// normalizeExponent rewrites Go's zero-padded exponent ("1e-07") into
// the ECMAScript form ("1e-7").
func normalizeExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s
	}
	mantissa, exp := s[:i], s[i+1:]
	sign := ""
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		sign = string(exp[0])
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

func appendQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}

// EqualValues reports deep structural equality of two values. Member and
// element order is significant; canonicalize both sides first when order
// should not matter.
func EqualValues(a, b Value) bool {
	switch ta := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		tb, ok := b.(Bool)
		return ok && ta == tb
	case Number:
		tb, ok := b.(Number)
		return ok && ta == tb
	case String:
		tb, ok := b.(String)
		return ok && ta == tb
	case Array:
		tb, ok := b.(Array)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !EqualValues(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case Object:
		tb, ok := b.(Object)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if ta[i].Key != tb[i].Key || !EqualValues(ta[i].Value, tb[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON implementations route through the compact encoder so reports
// embed schema values in their exact serialized form.

func (v Null) MarshalJSON() ([]byte, error)   { return []byte("null"), nil }
func (v Bool) MarshalJSON() ([]byte, error)   { return []byte(EncodeValue(v)), nil }
func (v Number) MarshalJSON() ([]byte, error) { return []byte(EncodeValue(v)), nil }
func (v String) MarshalJSON() ([]byte, error) { return []byte(EncodeValue(v)), nil }
func (v Array) MarshalJSON() ([]byte, error)  { return []byte(EncodeValue(v)), nil }
func (v Object) MarshalJSON() ([]byte, error) { return []byte(EncodeValue(v)), nil }
