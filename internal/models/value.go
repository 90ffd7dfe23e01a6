package models

import (
	"math"
	"strconv"
)

// Kind identifies which variant of the JSON union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
	// KindError is never held by a Value. It tags synthetic search results
	// that carry a lookup failure message.
	KindError
)

// String returns the runtime type name shown to users.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Member is a single key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value. The zero Value is JSON null.
//
// Objects keep their members in insertion order and keys are unique within
// one object. Numbers keep the literal they were parsed from so that large
// integers survive a round trip; comparisons use the float64 value.
type Value struct {
	kind    Kind
	boolean bool
	number  string
	str     string
	elems   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a JSON number. Non-finite floats have no JSON form and
// become null.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, number: formatFloat(f)}
}

// NumberLiteral returns a JSON number from its textual form. The literal is
// assumed to be valid JSON number syntax.
func NumberLiteral(lit string) Value { return Value{kind: KindNumber, number: lit} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns a JSON array that takes ownership of elems.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, elems: elems}
}

// Object returns a JSON object that takes ownership of members. When a key
// repeats, the later value replaces the earlier one in its original position.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: dedupe(members)}
}

func dedupe(members []Member) []Member {
	if members == nil {
		return []Member{}
	}
	seen := make(map[string]int, len(members))
	out := members[:0:0]
	for _, m := range members {
		if i, ok := seen[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		seen[m.Key] = len(out)
		out = append(out, m)
	}
	return out
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an Object or an Array.
func (v Value) IsContainer() bool { return v.kind == KindObject || v.kind == KindArray }

// AsBool returns the boolean payload, false for other kinds.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the numeric payload, 0 for other kinds. Literals beyond
// float64 range yield ±Inf, or ±0 when they underflow.
func (v Value) AsNumber() float64 {
	f, _ := v.float()
	return f
}

// float parses the number literal and reports whether it fits a float64
// exactly in range.
func (v Value) float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.number, 64)
	return f, err == nil
}

// NumberLiteral returns the textual form of a number, "" for other kinds.
func (v Value) NumberLiteral() string { return v.number }

// AsString returns the string payload, "" for other kinds.
func (v Value) AsString() string { return v.str }

// Elements returns the array elements. The slice must not be modified.
func (v Value) Elements() []Value { return v.elems }

// Members returns the object members in stored order. The slice must not be
// modified.
func (v Value) Members() []Member { return v.members }

// Len returns the number of children of a container, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get looks up key in an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.elems) {
		return Value{}, false
	}
	return v.elems[i], true
}

// Child returns the i-th child of a container along with the label used to
// address it: the member key for objects and "" for arrays.
func (v Value) Child(i int) (string, Value) {
	if v.kind == KindObject {
		m := v.members[i]
		return m.Key, m.Value
	}
	return "", v.elems[i]
}

// Equal reports structural equality. Object member order is significant and
// numbers compare by value. The walk uses an explicit stack so deeply nested
// values cannot exhaust the goroutine stack.
func (v Value) Equal(other Value) bool {
	type pair struct{ a, b Value }
	stack := []pair{{v, other}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a.kind != p.b.kind {
			return false
		}
		switch p.a.kind {
		case KindBool:
			if p.a.boolean != p.b.boolean {
				return false
			}
		case KindNumber:
			if p.a.number == p.b.number {
				continue
			}
			fa, okA := p.a.float()
			fb, okB := p.b.float()
			if !okA || !okB || fa != fb {
				return false
			}
		case KindString:
			if p.a.str != p.b.str {
				return false
			}
		case KindArray:
			if len(p.a.elems) != len(p.b.elems) {
				return false
			}
			for i := range p.a.elems {
				stack = append(stack, pair{p.a.elems[i], p.b.elems[i]})
			}
		case KindObject:
			if len(p.a.members) != len(p.b.members) {
				return false
			}
			for i := range p.a.members {
				if p.a.members[i].Key != p.b.members[i].Key {
					return false
				}
				stack = append(stack, pair{p.a.members[i].Value, p.b.members[i].Value})
			}
		}
	}
	return true
}

// formatFloat renders f the way JSON encoders conventionally do: plain
// decimal notation, switching to exponent form for very large or very small
// magnitudes.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.FormatFloat(f, format, -1, 64)
}
