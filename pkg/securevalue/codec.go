package securevalue

import (
	"encoding/binary"
	"errors"
)

// Value enumerates the native integer kinds a Numeric can wrap. The
// encoding below covers exactly these; a new width means a new case in
// each of the three functions.
type Value interface {
	int32 | int64 | uint32 | uint64
}

var errWidth = errors.New("encoded length does not match the value width")

// width returns the fixed byte width of T's encoding.
func width[T Value]() int {
	var zero T
	switch any(zero).(type) {
	case int32, uint32:
		return 4
	default:
		return 8
	}
}

// kindName names T for error messages.
func kindName[T Value]() string {
	var zero T
	switch any(zero).(type) {
	case int32:
		return "int32"
	case int64:
		return "int64"
	case uint32:
		return "uint32"
	default:
		return "uint64"
	}
}

// encode writes v in its fixed-width big-endian form. The returned
// slice carries plaintext; the caller wipes it.
func encode[T Value](v T) []byte {
	switch n := any(v).(type) {
	case int32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(n))
		return b
	case int64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(n))
		return b
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, n)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, n)
		return b
	}
	panic("securevalue: unhandled value kind")
}

// decode is the inverse of encode: decode(encode(v)) == v for every
// representable v.
func decode[T Value](b []byte) (T, error) {
	var zero T
	if len(b) != width[T]() {
		return zero, &FormatError{Kind: kindName[T](), Err: errWidth}
	}
	switch any(zero).(type) {
	case int32:
		return T(int32(binary.BigEndian.Uint32(b))), nil
	case int64:
		return T(int64(binary.BigEndian.Uint64(b))), nil
	case uint32:
		return T(binary.BigEndian.Uint32(b)), nil
	default:
		return T(binary.BigEndian.Uint64(b)), nil
	}
}
