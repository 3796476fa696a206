package bencode

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	zeebo "github.com/zeebo/bencode"
)

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"positive integer", "i42e", Int(42)},
		{"negative integer", "i-3e", Int(-3)},
		{"zero", "i0e", Int(0)},
		{"int64 max", "i9223372036854775807e", Int(9223372036854775807)},
		{"int64 min", "i-9223372036854775808e", Int(-9223372036854775808)},
		{"string", "4:spam", String([]byte("spam"))},
		{"binary string", "3:\x00\xff\x10", String([]byte{0x00, 0xff, 0x10})},
		{"string containing delimiters", "5:ie:le", String([]byte("ie:le"))},
		{"list", "l4:spam4:eggse", List(String([]byte("spam")), String([]byte("eggs")))},
		{"empty list", "le", List()},
		{"empty dict", "de", DictOf()},
		{"dict", "d3:cow3:moo4:spam4:eggse", DictOf("cow", "moo", "spam", "eggs")},
		{"nested list then sibling", "ll4:spame4:eggse", List(List(String([]byte("spam"))), String([]byte("eggs")))},
		{"list holding zero", "li0ei1ee", List(Int(0), Int(1))},
		{"dict of containers", "d1:ali1ei2ee1:dd1:xi0eee", DictOf(
			"a", List(Int(1), Int(2)),
			"d", DictOf("x", 0),
		)},
		{"deep nesting", "llleee", List(List(List()))},
		{"trailing bytes ignored", "i1eXYZ", Int(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Decode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   ErrorKind
		offset int
	}{
		{"", UnexpectedEOF, 0},
		{"i03e", MalformedInteger, 2},
		{"ie", MalformedInteger, 1},
		{"i-e", MalformedInteger, 2},
		{"i-0e", MalformedInteger, 2},
		{"i1x2e", MalformedInteger, 2},
		{"i--1e", MalformedInteger, 2},
		{"i99999999999999999999e", MalformedInteger, 1},
		{"i42", UnexpectedEOF, 3},
		{"0:", MalformedString, 0},
		{"03:abc", MalformedString, 0},
		{"3x:abc", MalformedString, 1},
		{"12", UnexpectedEOF, 2},
		{"5:abc", TruncatedString, 2},
		{"l4:spam", TruncatedList, 7},
		{"l", TruncatedList, 1},
		{"d3:cow3:moo", TruncatedDict, 11},
		{"d3:cow", TruncatedDict, 6},
		{"di1e3:mooe", MalformedDictKey, 1},
		{"dl1:ae1:be", MalformedDictKey, 1},
		{"d3:cowe", UnrecognizedToken, 6},
		{"e", UnrecognizedToken, 0},
		{"x", UnrecognizedToken, 0},
		{"l4:spamxe", UnrecognizedToken, 7},
		{"ld1:ai-0eee", MalformedInteger, 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			if err == nil {
				t.Fatalf("Decode(%q) = %s, want %s error", tt.input, v, tt.kind)
			}
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("Decode(%q) error %T is not a *DecodeError", tt.input, err)
			}
			if derr.Kind != tt.kind {
				t.Errorf("Decode(%q) kind = %s, want %s (%v)", tt.input, derr.Kind, tt.kind, err)
			}
			if derr.Offset != tt.offset {
				t.Errorf("Decode(%q) offset = %d, want %d (%v)", tt.input, derr.Offset, tt.offset, err)
			}
		})
	}
}

func TestDecodeErrorSentinels(t *testing.T) {
	_, err := Decode([]byte("5:abc"))
	if !errors.Is(err, ErrTruncatedString) {
		t.Errorf("errors.Is(%v, ErrTruncatedString) = false", err)
	}
	if errors.Is(err, ErrMalformedString) {
		t.Errorf("errors.Is(%v, ErrMalformedString) = true", err)
	}
}

func TestDecodeDictOrder(t *testing.T) {
	v, err := Decode([]byte("d4:spam4:eggs3:cow3:moo1:ai1ee"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	d, ok := v.AsDict()
	if !ok {
		t.Fatalf("Decode returned %s, want a dict", v.Kind)
	}
	want := []string{"spam", "cow", "a"}
	if got := d.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %q, want %q", got, want)
	}
}

func TestDecodeDuplicateKeys(t *testing.T) {
	v, err := Decode([]byte("d1:ai1e1:bi2e1:ai3ee"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	d, _ := v.AsDict()
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	if got := d.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys = %q, want [a b]", got)
	}
	a, _ := d.Get("a")
	if n, _ := a.AsInt(); n != 3 {
		t.Errorf("a = %d, want last written value 3", n)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	data := []byte("4:spam")
	v, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	data[2] = 'S'
	if b, _ := v.AsBytes(); string(b) != "spam" {
		t.Errorf("decoded string changed with the input: %q", b)
	}
}

func TestDecoderOffset(t *testing.T) {
	d := NewDecoder([]byte("i1e4:spamle"))
	var offsets []int
	for i := 0; i < 3; i++ {
		if _, err := d.Decode(); err != nil {
			t.Fatalf("Decode #%d: %v", i, err)
		}
		offsets = append(offsets, d.Offset())
	}
	if want := []int{3, 9, 11}; !reflect.DeepEqual(offsets, want) {
		t.Errorf("offsets = %v, want %v", offsets, want)
	}
	if _, err := d.Decode(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Decode at end = %v, want unexpected EOF", err)
	}
}

func TestRawValue(t *testing.T) {
	data := []byte("d8:announce3:url4:infod4:name1:x6:lengthi5ee1:zli1eee")

	raw, ok, err := RawValue(data, "info")
	if err != nil || !ok {
		t.Fatalf("RawValue(info) = %q, %v, %v", raw, ok, err)
	}
	if string(raw) != "d4:name1:x6:lengthi5ee" {
		t.Errorf("raw info = %q", raw)
	}

	raw, ok, _ = RawValue(data, "z")
	if !ok || string(raw) != "li1ee" {
		t.Errorf("raw z = %q, %v", raw, ok)
	}

	// Only top-level keys are recorded
	if _, ok, _ := RawValue(data, "name"); ok {
		t.Error("RawValue found a nested key")
	}
	if _, ok, err := RawValue([]byte("li1ee"), "info"); ok || err != nil {
		t.Errorf("RawValue on a list = %v, %v", ok, err)
	}
	if _, _, err := RawValue([]byte("d4:info"), "info"); !errors.Is(err, ErrTruncatedDict) {
		t.Errorf("RawValue on truncated input = %v", err)
	}
}

func TestDecodeDeterministic(t *testing.T) {
	input := []byte("d4:infod5:filesld6:lengthi10eed6:lengthi20eee4:name4:rootee")
	first, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]Value, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Decode(input)
		}(i)
	}
	wg.Wait()

	for i, v := range results {
		if !v.Equal(first) {
			t.Errorf("decode #%d = %s, want %s", i, v, first)
		}
	}
}

// TestDecodeMatchesReference checks the decoded tree against an independent
// bencode implementation.
func TestDecodeMatchesReference(t *testing.T) {
	inputs := []string{
		"i42e",
		"i-7e",
		"4:spam",
		"l4:spami3ee",
		"d3:cow3:moo4:spam4:eggse",
		"d8:announce31:http://tracker.example/announce7:comment5:hello4:infod6:lengthi1024e4:name8:file.bin12:piece lengthi16384eee",
		"ld1:ali1ei2eee4:taile",
	}

	for _, in := range inputs {
		ours, err := Decode([]byte(in))
		if err != nil {
			t.Fatalf("Decode(%q): %v", in, err)
		}
		var theirs interface{}
		if err := zeebo.DecodeString(in, &theirs); err != nil {
			t.Fatalf("reference decode of %q: %v", in, err)
		}
		if got, want := toInterface(ours), normalize(theirs); !reflect.DeepEqual(got, want) {
			t.Errorf("%q: decoded %#v, reference %#v", in, got, want)
		}
	}
}

func toInterface(v Value) interface{} {
	switch v.Kind {
	case KindInteger:
		return v.Int
	case KindString:
		return string(v.Bytes)
	case KindList:
		out := make([]interface{}, len(v.List))
		for i, item := range v.List {
			out[i] = toInterface(item)
		}
		return out
	case KindDict:
		out := make(map[string]interface{}, v.Dict.Len())
		for _, k := range v.Dict.Keys() {
			item, _ := v.Dict.Get(k)
			out[k] = toInterface(item)
		}
		return out
	}
	return nil
}

// normalize maps the reference decoder's integer types onto int64
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	case []byte:
		return string(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	}
	return v
}
