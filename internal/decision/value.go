// Package decision records model decisions for later review. Payloads are
// held as Values, a closed set of JSON-like types with one canonical byte
// form, so that equal payloads always display and hash the same way.
package decision

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
)

// Value is one of Null, Bool, Int, Number, String, List or Map.
type Value interface {
	appendCanonical(b []byte) []byte
	isValue()
}

type (
	Null   struct{}
	Bool   bool
	// Number is a non-integer (or float-typed) JSON number.
	Number float64
	String string
	List   []Value
	Map    map[string]Value
)

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Number) isValue() {}
func (String) isValue() {}
func (List) isValue()   {}
func (Map) isValue()    {}

func (Null) appendCanonical(b []byte) []byte { return append(b, "null"...) }

func (v Bool) appendCanonical(b []byte) []byte {
	if v {
		return append(b, "true"...)
	}
	return append(b, "false"...)
}

// Int is an integer of any size, kept exact so that distinct large IDs never
// share a canonical form.
type Int struct {
	n *big.Int
}

// IntOf returns the Int for v.
func IntOf(v int64) Int { return Int{n: big.NewInt(v)} }

// BigInt returns a copy of the integer.
func (v Int) BigInt() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.n)
}

func (v Int) appendCanonical(b []byte) []byte {
	if v.n == nil {
		return append(b, '0')
	}
	return v.n.Append(b, 10)
}

func (v Number) appendCanonical(b []byte) []byte {
	out, _ := json.Marshal(float64(v))
	return append(b, out...)
}

func (v String) appendCanonical(b []byte) []byte {
	out, _ := json.Marshal(string(v))
	return append(b, out...)
}

func (v List) appendCanonical(b []byte) []byte {
	b = append(b, '[')
	for i, item := range v {
		if i > 0 {
			b = append(b, ',')
		}
		b = canonicalOf(item, b)
	}
	return append(b, ']')
}

func (v Map) appendCanonical(b []byte) []byte {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b = append(b, '{')
	for i, k := range keys {
		if i > 0 {
			b = append(b, ',')
		}
		b = String(k).appendCanonical(b)
		b = append(b, ':')
		b = canonicalOf(v[k], b)
	}
	return append(b, '}')
}

// a nil Value inside a List or Map is treated as Null
func canonicalOf(v Value, b []byte) []byte {
	if v == nil {
		return Null{}.appendCanonical(b)
	}
	return v.appendCanonical(b)
}

// Canonical returns the compact JSON form of v with map keys sorted.
func Canonical(v Value) []byte { return canonicalOf(v, nil) }

// Hash returns the first 16 hex characters of the SHA-256 of v's canonical form.
func Hash(v Value) string {
	sum := sha256.Sum256(Canonical(v))
	return hex.EncodeToString(sum[:])[:16]
}

func (v Null) MarshalJSON() ([]byte, error)   { return Canonical(v), nil }
func (v Bool) MarshalJSON() ([]byte, error)   { return Canonical(v), nil }
func (v Int) MarshalJSON() ([]byte, error)    { return Canonical(v), nil }
func (v Number) MarshalJSON() ([]byte, error) { return Canonical(v), nil }
func (v String) MarshalJSON() ([]byte, error) { return Canonical(v), nil }
func (v List) MarshalJSON() ([]byte, error)   { return Canonical(v), nil }
func (v Map) MarshalJSON() ([]byte, error)    { return Canonical(v), nil }

// Parse decodes a JSON document into a Value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse payload: trailing data")
	}
	return From(raw)
}

// From converts plain Go data (as produced by encoding/json, plus ints and
// string maps) into a Value.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if !strings.ContainsAny(string(t), ".eE") {
			n, ok := new(big.Int).SetString(string(t), 10)
			if !ok {
				return nil, fmt.Errorf("number %q is not an integer", t)
			}
			return Int{n: n}, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", t, err)
		}
		return number(f)
	case float64:
		return number(t)
	case float32:
		return number(float64(t))
	case int:
		return IntOf(int64(t)), nil
	case int64:
		return IntOf(t), nil
	case uint64:
		return Int{n: new(big.Int).SetUint64(t)}, nil
	case *big.Int:
		if t == nil {
			return Null{}, nil
		}
		return Int{n: new(big.Int).Set(t)}, nil
	case []any:
		out := make(List, 0, len(t))
		for _, item := range t {
			v, err := From(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case []string:
		out := make(List, 0, len(t))
		for _, s := range t {
			out = append(out, String(s))
		}
		return out, nil
	case map[string]any:
		out := make(Map, len(t))
		for k, item := range t {
			v, err := From(item)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case map[string]string:
		out := make(Map, len(t))
		for k, s := range t {
			out[k] = String(s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported payload type %T", x)
	}
}

func number(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("number %v has no JSON form", f)
	}
	return Number(f), nil
}
