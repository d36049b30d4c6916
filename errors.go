package srx

import (
	"fmt"
)

// DecodeError reports a malformed wire blob. It carries the bytes being
// decoded (Data) and the offset within them where the problem was
// detected (Off). Data is the whole archive, except for an error in the
// root blob's own framing, where it is the bytes after the magic. Error()
// renders a hex preview of Data, cut to its first 64 and last 32 bytes
// when longer, so the message stays readable for large archives.
type DecodeError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func decodeErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DecodeError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("srx: decode: %s: %v: (off %d, len %d) %s", e.Msg, e.Err, e.Off, n, hexstr(e.Data))
		}
		return fmt.Sprintf("srx: decode: %s: (off %d, len %d) %s", e.Msg, e.Off, n, hexstr(e.Data))
	}
	p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
	if e.Err != nil {
		return fmt.Sprintf("srx: decode: %s: %v: (off %d, len %d) %s...%s", e.Msg, e.Err, e.Off, n, hexstr(p), hexstr(s))
	}
	return fmt.Sprintf("srx: decode: %s: (off %d, len %d) %s...%s", e.Msg, e.Off, n, hexstr(p), hexstr(s))
}

// SchemaError reports a version or structural mismatch discovered while
// synchronizing a decoded source graph into a live destination graph.
type SchemaError struct {
	DstType DataType
	SrcType DataType
	Member  string
	Msg     string
}

func schemaErrf(dst, src DataType, member string, format string, args ...any) error {
	return &SchemaError{dst, src, member, fmt.Sprintf(format, args...)}
}

func (e *SchemaError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("srx: sync: member %q: %s (dst=%v src=%v)", e.Member, e.Msg, e.DstType, e.SrcType)
	}
	return fmt.Sprintf("srx: sync: %s (dst=%v src=%v)", e.Msg, e.DstType, e.SrcType)
}

// ErrorKind classifies the semantic (non-wire, non-schema) errors the
// archive's own API can return, e.g. misuse of a value accessor.
type ErrorKind string

const (
	ErrSemantic ErrorKind = "semantic"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func errf(kind ErrorKind, err error, format string, args ...any) error {
	return &Error{kind, fmt.Sprintf(format, args...), err}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("srx: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("srx: %s: %s", e.Kind, e.Message)
}
