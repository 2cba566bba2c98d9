package securevalue

// Int is the 32-bit signed instantiation of Numeric (4-byte big-endian
// encoding).
type Int = Numeric[int32]

// Long is the 64-bit signed instantiation of Numeric (8-byte big-endian
// encoding).
type Long = Numeric[int64]

// NewInt wraps a native int32.
func NewInt(v int32) *Int {
	return NewNumeric(v)
}

// ParseInt wraps the int32 named by its decimal text.
func ParseInt(text string) (*Int, error) {
	return ParseNumeric[int32](text)
}

// NewLong wraps a native int64.
func NewLong(v int64) *Long {
	return NewNumeric(v)
}

// ParseLong wraps the int64 named by its decimal text.
func ParseLong(text string) (*Long, error) {
	return ParseNumeric[int64](text)
}
