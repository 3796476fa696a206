package bencode

import "fmt"

// ErrorKind classifies a decode failure
type ErrorKind int

const (
	CursorUnderflow ErrorKind = iota + 1
	MalformedInteger
	TruncatedString
	MalformedString
	TruncatedList
	TruncatedDict
	MalformedDictKey
	UnexpectedEOF
	UnrecognizedToken
)

var kindNames = map[ErrorKind]string{
	CursorUnderflow:   "cursor underflow",
	MalformedInteger:  "malformed integer",
	TruncatedString:   "truncated string",
	MalformedString:   "malformed string",
	TruncatedList:     "truncated list",
	TruncatedDict:     "truncated dictionary",
	MalformedDictKey:  "malformed dictionary key",
	UnexpectedEOF:     "unexpected end of data",
	UnrecognizedToken: "unrecognized token",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError reports the first grammar violation found in the input and the
// byte offset where it was detected.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Detail string
}

func newError(kind ErrorKind, offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("bencode: %s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("bencode: %s at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Is matches any *DecodeError of the same kind, so the sentinels below can be
// used with errors.Is regardless of offset.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

var (
	ErrCursorUnderflow   = &DecodeError{Kind: CursorUnderflow}
	ErrMalformedInteger  = &DecodeError{Kind: MalformedInteger}
	ErrTruncatedString   = &DecodeError{Kind: TruncatedString}
	ErrMalformedString   = &DecodeError{Kind: MalformedString}
	ErrTruncatedList     = &DecodeError{Kind: TruncatedList}
	ErrTruncatedDict     = &DecodeError{Kind: TruncatedDict}
	ErrMalformedDictKey  = &DecodeError{Kind: MalformedDictKey}
	ErrUnexpectedEOF     = &DecodeError{Kind: UnexpectedEOF}
	ErrUnrecognizedToken = &DecodeError{Kind: UnrecognizedToken}
)
