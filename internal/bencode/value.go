package bencode

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindInteger Kind = iota + 1
	KindString
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "invalid"
	}
}

// Value is a decoded bencode value. Only the field matching Kind is set.
type Value struct {
	Kind  Kind
	Int   int64
	Bytes []byte
	List  []Value
	Dict  *Dict
}

// Int returns an integer value
func Int(n int64) Value {
	return Value{Kind: KindInteger, Int: n}
}

// String returns a byte string value
func String(b []byte) Value {
	return Value{Kind: KindString, Bytes: b}
}

// List returns a list value holding items in order
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindList, List: items}
}

// DictOf returns a dict value built from alternating key/value arguments.
// It is mostly useful for building expected trees in tests.
func DictOf(pairs ...interface{}) Value {
	d := NewDict()
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Set([]byte(pairs[i].(string)), toValue(pairs[i+1]))
	}
	return Value{Kind: KindDict, Dict: d}
}

func toValue(v interface{}) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return String([]byte(x))
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	default:
		panic(fmt.Sprintf("bencode: cannot convert %T to Value", v))
	}
}

// AsInt returns the integer payload if v is an integer
func (v Value) AsInt() (int64, bool) {
	return v.Int, v.Kind == KindInteger
}

// AsBytes returns the byte string payload if v is a byte string
func (v Value) AsBytes() ([]byte, bool) {
	return v.Bytes, v.Kind == KindString
}

// AsList returns the items if v is a list
func (v Value) AsList() ([]Value, bool) {
	return v.List, v.Kind == KindList
}

// AsDict returns the dictionary if v is a dict
func (v Value) AsDict() (*Dict, bool) {
	if v.Kind != KindDict || v.Dict == nil {
		return nil, false
	}
	return v.Dict, true
}

// Equal reports whether v and o are structurally identical, including the
// key order of dictionaries.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInteger:
		return v.Int == o.Int
	case KindString:
		return bytes.Equal(v.Bytes, o.Bytes)
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindDict:
		return v.Dict.equal(o.Dict)
	}
	return true
}

// String renders v in a compact debugging form, e.g. {"cow": "moo", "n": 3}
func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.Kind {
	case KindInteger:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case KindString:
		sb.WriteString(strconv.Quote(string(v.Bytes)))
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.format(sb)
		}
		sb.WriteByte(']')
	case KindDict:
		sb.WriteByte('{')
		if v.Dict != nil {
			for i, k := range v.Dict.keys {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(strconv.Quote(k))
				sb.WriteString(": ")
				v.Dict.entries[k].format(sb)
			}
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}

// Dict maps byte string keys to values and remembers the order in which keys
// were first seen.
type Dict struct {
	keys    []string
	entries map[string]Value
}

// NewDict creates an empty dictionary
func NewDict() *Dict {
	return &Dict{entries: make(map[string]Value)}
}

// Set stores v under key. A key that is already present keeps its position
// and takes the new value.
func (d *Dict) Set(key []byte, v Value) {
	k := string(key)
	if _, ok := d.entries[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.entries[k] = v
}

// Get looks up key
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	v, ok := d.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Len returns the number of distinct keys
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

func (d *Dict) equal(o *Dict) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i, k := range d.Keys() {
		if o.keys[i] != k {
			return false
		}
		if !d.entries[k].Equal(o.entries[k]) {
			return false
		}
	}
	return true
}
