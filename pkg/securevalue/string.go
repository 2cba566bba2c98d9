package securevalue

import (
	"crypto/subtle"

	"github.com/awnumar/memguard"
	"github.com/zeebo/blake3"

	"github.com/systmms/securevalue/internal/logging"
	"github.com/systmms/securevalue/pkg/secure"
)

// String wraps sensitive text (a password, a token) as UTF-8 bytes in a
// SecureData. Like Numeric it is immutable; Concat builds new
// instances.
type String struct {
	data *secure.SecureData
}

// NewString wraps a copy of s.
func NewString(s string) *String {
	b := []byte(s)
	defer memguard.WipeBytes(b)
	return &String{data: secure.NewSecureDataFrom(b)}
}

// UnsealString reconstructs a String from its sealed form.
func UnsealString(s *secure.Sealed) (*String, error) {
	data, err := s.Unseal()
	if err != nil {
		return nil, err
	}
	return &String{data: data}, nil
}

// Reveal decodes the wrapped text under this instance's lock. The
// returned string carries the secret; Go strings cannot be wiped, so
// keep its lifetime short.
func (s *String) Reveal() (string, error) {
	var out string
	err := secure.With(func() error {
		raw, err := s.data.Bytes()
		if err != nil {
			return err
		}
		out = string(raw)
		memguard.WipeBytes(raw)
		return nil
	}, s.data)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Len returns the wrapped text's byte length.
func (s *String) Len() (int, error) {
	if s.data.Disposed() {
		return 0, &secure.UseAfterFreeError{What: "secure string"}
	}
	return s.data.Len(), nil
}

// Concat returns a new String holding s followed by o. The result keeps
// the two runs as separate buffers; insertion order defines the value.
func (s *String) Concat(o *String) (*String, error) {
	if o == nil {
		return nil, &secure.ArgumentError{Name: "o", Message: "operand is nil"}
	}
	var out *String
	err := secure.With(func() error {
		x, err := s.data.Bytes()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(x)
		y, err := o.data.Bytes()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(y)
		joined := secure.NewSecureData()
		joined.AddBuffer(x)
		joined.AddBuffer(y)
		joined.Freeze()
		out = &String{data: joined}
		return nil
	}, s.data, o.data)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Equal compares both values in constant time under one scope over both
// operands.
func (s *String) Equal(o *String) (bool, error) {
	if o == nil {
		return false, &secure.ArgumentError{Name: "o", Message: "operand is nil"}
	}
	var out bool
	err := secure.With(func() error {
		x, err := s.data.Bytes()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(x)
		y, err := o.data.Bytes()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(y)
		out = len(x) == len(y) && subtle.ConstantTimeCompare(x, y) == 1
		return nil
	}, s.data, o.data)
	if err != nil {
		return false, err
	}
	return out, nil
}

// Fingerprint returns the BLAKE3 digest of the wrapped bytes. The
// digest can key a map or be compared across processes without keeping
// plaintext around.
func (s *String) Fingerprint() ([32]byte, error) {
	var sum [32]byte
	err := secure.With(func() error {
		raw, err := s.data.Bytes()
		if err != nil {
			return err
		}
		defer memguard.WipeBytes(raw)
		sum = blake3.Sum256(raw)
		return nil
	}, s.data)
	if err != nil {
		return [32]byte{}, err
	}
	return sum, nil
}

// String implements fmt.Stringer and always redacts.
func (s *String) String() string {
	return logging.Redacted
}

// Seal converts to the at-rest form.
func (s *String) Seal() (*secure.Sealed, error) {
	return secure.Seal(s.data)
}

// Dispose erases the backing buffers.
func (s *String) Dispose() {
	s.data.Dispose()
}
