package bencode

import (
	"bytes"
	"math"
	"strconv"
)

// token says what decodeNext found at a position where a value may start
type token int

const (
	tokValue token = iota
	tokEnd         // the container terminator 'e'
	tokEOF         // no bytes left
)

type span struct {
	start, end int
}

// Decoder decodes bencoded values from a byte buffer. A Decoder is not safe
// for concurrent use; decode independent buffers with independent decoders.
type Decoder struct {
	cur   *Cursor
	depth int

	// spans records where each top-level dictionary value lies in the
	// input. It is nil unless the caller asked for raw values.
	spans map[string]span
}

// NewDecoder creates a decoder reading from data
func NewDecoder(data []byte) *Decoder {
	return &Decoder{cur: NewCursor(data)}
}

// Offset returns how many bytes have been consumed so far
func (d *Decoder) Offset() int {
	return d.cur.Position()
}

// Decode decodes the next complete value. Bytes after it are left unread.
func (d *Decoder) Decode() (Value, error) {
	start := d.cur.Position()
	v, tok, err := d.decodeNext()
	if err != nil {
		return Value{}, err
	}
	switch tok {
	case tokEnd:
		return Value{}, newError(UnrecognizedToken, start, "terminator 'e' outside of a list or dictionary")
	case tokEOF:
		return Value{}, newError(UnexpectedEOF, start, "expected a value")
	}
	return v, nil
}

// decodeNext reads one lead byte and dispatches on it. A lead byte of 'e' is
// reported as tokEnd so containers can tell their terminator apart from any
// decoded value.
func (d *Decoder) decodeNext() (Value, token, error) {
	start := d.cur.Position()
	b, ok := d.cur.Next()
	if !ok {
		return Value{}, tokEOF, nil
	}

	var (
		v   Value
		err error
	)
	switch {
	case b == 'e':
		return Value{}, tokEnd, nil
	case b == 'i':
		v, err = d.decodeInt()
	case b == 'l':
		v, err = d.decodeList(start)
	case b == 'd':
		v, err = d.decodeDict(start)
	case isDigit(b):
		// The length prefix starts with this byte
		if err = d.cur.Rewind(1); err == nil {
			v, err = d.decodeString()
		}
	default:
		err = newError(UnrecognizedToken, start, "unexpected byte %q", b)
	}
	if err != nil {
		return Value{}, tokValue, err
	}
	return v, tokValue, nil
}

// decodeInt decodes the body of i<integer>e; the 'i' is already consumed
func (d *Decoder) decodeInt() (Value, error) {
	var (
		buf    [24]byte
		num    = buf[:0]
		digits int
	)
	for {
		at := d.cur.Position()
		b, ok := d.cur.Next()
		if !ok {
			return Value{}, newError(UnexpectedEOF, at, "unterminated integer")
		}
		if b == 'e' {
			if digits == 0 {
				return Value{}, newError(MalformedInteger, at, "no digits")
			}
			break
		}
		switch {
		case b == '-' && len(num) == 0:
		case isDigit(b):
			if digits == 1 && num[len(num)-1] == '0' {
				return Value{}, newError(MalformedInteger, at, "leading zero")
			}
			if b == '0' && digits == 0 && len(num) == 1 {
				return Value{}, newError(MalformedInteger, at, "negative zero")
			}
			digits++
		default:
			return Value{}, newError(MalformedInteger, at, "unexpected byte %q", b)
		}
		num = append(num, b)
	}

	n, err := strconv.ParseInt(string(num), 10, 64)
	if err != nil {
		return Value{}, newError(MalformedInteger, d.cur.Position()-1-len(num), "%s out of range", num)
	}
	return Int(n), nil
}

// decodeString decodes <length>:<bytes> with the cursor on the first digit
func (d *Decoder) decodeString() (Value, error) {
	start := d.cur.Position()
	var length, digits int
	for {
		at := d.cur.Position()
		b, ok := d.cur.Next()
		if !ok {
			return Value{}, newError(UnexpectedEOF, at, "unterminated string length")
		}
		if b == ':' {
			break
		}
		if !isDigit(b) {
			return Value{}, newError(MalformedString, at, "unexpected byte %q in length", b)
		}
		if digits == 1 && length == 0 {
			return Value{}, newError(MalformedString, start, "leading zero in length")
		}
		if length > (math.MaxInt-9)/10 {
			return Value{}, newError(MalformedString, start, "length out of range")
		}
		length = length*10 + int(b-'0')
		digits++
	}
	if digits == 0 {
		return Value{}, newError(MalformedString, start, "missing length")
	}
	if length == 0 {
		return Value{}, newError(MalformedString, start, "zero length")
	}

	at := d.cur.Position()
	raw, ok := d.cur.Read(length)
	if !ok {
		return Value{}, newError(TruncatedString, at, "declared %d bytes, %d remaining", length, d.cur.Remaining())
	}
	return String(bytes.Clone(raw)), nil
}

// decodeList decodes l<values>e; the 'l' at start is already consumed
func (d *Decoder) decodeList(start int) (Value, error) {
	d.depth++
	defer func() { d.depth-- }()

	items := []Value{}
	for {
		v, tok, err := d.decodeNext()
		if err != nil {
			return Value{}, err
		}
		switch tok {
		case tokEnd:
			return List(items...), nil
		case tokEOF:
			return Value{}, newError(TruncatedList, d.cur.Position(), "list at offset %d is not terminated", start)
		}
		items = append(items, v)
	}
}

// decodeDict decodes d<key><value>...e; the 'd' at start is already consumed
func (d *Decoder) decodeDict(start int) (Value, error) {
	d.depth++
	defer func() { d.depth-- }()

	dict := NewDict()
	for {
		keyAt := d.cur.Position()
		key, tok, err := d.decodeNext()
		if err != nil {
			return Value{}, err
		}
		switch tok {
		case tokEnd:
			return Value{Kind: KindDict, Dict: dict}, nil
		case tokEOF:
			return Value{}, newError(TruncatedDict, d.cur.Position(), "dictionary at offset %d is not terminated", start)
		}
		k, ok := key.AsBytes()
		if !ok {
			return Value{}, newError(MalformedDictKey, keyAt, "key is a %s", key.Kind)
		}

		valueAt := d.cur.Position()
		value, tok, err := d.decodeNext()
		if err != nil {
			return Value{}, err
		}
		switch tok {
		case tokEnd:
			return Value{}, newError(UnrecognizedToken, valueAt, "key %q has no value", k)
		case tokEOF:
			return Value{}, newError(TruncatedDict, d.cur.Position(), "dictionary at offset %d is not terminated", start)
		}

		if d.spans != nil && d.depth == 1 {
			d.spans[string(k)] = span{start: valueAt, end: d.cur.Position()}
		}
		dict.Set(k, value)
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Decode decodes the first bencoded value in data
func Decode(data []byte) (Value, error) {
	return NewDecoder(data).Decode()
}

// CaptureRaw makes the decoder remember where each value of a top-level
// dictionary lies in the input, for retrieval with Raw after Decode.
func (d *Decoder) CaptureRaw() {
	d.spans = make(map[string]span)
}

// Raw returns the exact encoded bytes of the top-level dictionary value
// stored under key. The slice aliases the input buffer.
func (d *Decoder) Raw(key string) ([]byte, bool) {
	s, ok := d.spans[key]
	if !ok {
		return nil, false
	}
	return d.cur.data[s.start:s.end:s.end], true
}

// RawValue decodes data, which should hold a dictionary, and returns the
// exact encoded bytes of the value stored under key. It reports false if data
// is not a dictionary or has no such key.
func RawValue(data []byte, key string) ([]byte, bool, error) {
	d := NewDecoder(data)
	d.CaptureRaw()
	if _, err := d.Decode(); err != nil {
		return nil, false, err
	}
	raw, ok := d.Raw(key)
	return raw, ok, nil
}
