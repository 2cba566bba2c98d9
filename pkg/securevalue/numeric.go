package securevalue

import (
	"strconv"

	"github.com/awnumar/memguard"

	"github.com/systmms/securevalue/internal/logging"
	"github.com/systmms/securevalue/pkg/secure"
)

// Numeric wraps one native integer value in a SecureData. Instances are
// immutable: every operation decodes its operands under a single lock
// scope, computes with native semantics, and returns a brand-new
// Numeric. The plaintext encoding only exists inside that scope and is
// wiped before it closes.
//
// One generic implementation replaces the per-width wrapper types;
// Int and Long are its 32- and 64-bit instantiations.
type Numeric[T Value] struct {
	data *secure.SecureData
}

// NewNumeric wraps a native value.
func NewNumeric[T Value](v T) *Numeric[T] {
	enc := encode(v)
	defer memguard.WipeBytes(enc)
	return &Numeric[T]{data: secure.NewSecureDataFrom(enc)}
}

// ParseNumeric wraps the value named by its canonical decimal text.
// Input that does not parse as T fails with FormatError.
func ParseNumeric[T Value](text string) (*Numeric[T], error) {
	var zero T
	var v T
	switch any(zero).(type) {
	case int32:
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, newFormatError(kindName[T](), err)
		}
		v = T(i)
	case int64:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, newFormatError(kindName[T](), err)
		}
		v = T(i)
	case uint32:
		u, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, newFormatError(kindName[T](), err)
		}
		v = T(u)
	default:
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, newFormatError(kindName[T](), err)
		}
		v = T(u)
	}
	return NewNumeric(v), nil
}

// UnsealNumeric reconstructs a Numeric from its sealed form. The sealed
// bytes must carry T's exact width.
func UnsealNumeric[T Value](s *secure.Sealed) (*Numeric[T], error) {
	data, err := s.Unseal()
	if err != nil {
		return nil, err
	}
	if data.Len() != width[T]() {
		data.Dispose()
		return nil, &FormatError{Kind: kindName[T](), Err: errWidth}
	}
	return &Numeric[T]{data: data}, nil
}

// Value decodes the wrapped native value under this instance's lock.
// Conversion to the native form is always this explicit call; there is
// no silent coercion, and the lock-and-decode cost stays visible.
func (n *Numeric[T]) Value() (T, error) {
	var out T
	err := secure.With(func() error {
		v, err := n.decode()
		if err != nil {
			return err
		}
		out = v
		return nil
	}, n.data)
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Add returns a new Numeric holding n + o.
func (n *Numeric[T]) Add(o *Numeric[T]) (*Numeric[T], error) {
	return n.binOp(o, "Add", func(x, y T) (T, error) { return x + y, nil })
}

// Sub returns a new Numeric holding n - o.
func (n *Numeric[T]) Sub(o *Numeric[T]) (*Numeric[T], error) {
	return n.binOp(o, "Sub", func(x, y T) (T, error) { return x - y, nil })
}

// Mul returns a new Numeric holding n * o. Overflow wraps, as the
// native type does.
func (n *Numeric[T]) Mul(o *Numeric[T]) (*Numeric[T], error) {
	return n.binOp(o, "Mul", func(x, y T) (T, error) { return x * y, nil })
}

// Div returns a new Numeric holding n / o. Division by zero fails with
// ArithmeticError.
func (n *Numeric[T]) Div(o *Numeric[T]) (*Numeric[T], error) {
	return n.binOp(o, "Div", func(x, y T) (T, error) {
		if y == 0 {
			return 0, &ArithmeticError{Op: "Div"}
		}
		return x / y, nil
	})
}

// Mod returns a new Numeric holding n % o. Modulus by zero fails with
// ArithmeticError.
func (n *Numeric[T]) Mod(o *Numeric[T]) (*Numeric[T], error) {
	return n.binOp(o, "Mod", func(x, y T) (T, error) {
		if y == 0 {
			return 0, &ArithmeticError{Op: "Mod"}
		}
		return x % y, nil
	})
}

// Neg returns a new Numeric holding -n. For unsigned kinds the result
// wraps, as native negation does.
func (n *Numeric[T]) Neg() (*Numeric[T], error) {
	return n.deriveOp(func(x T) (T, error) { return -x, nil })
}

// AddValue returns a new Numeric holding n + v for a native operand.
// NewNumeric(v).Add(n) computes the same result; this form skips the
// second wrapper.
func (n *Numeric[T]) AddValue(v T) (*Numeric[T], error) {
	return n.deriveOp(func(x T) (T, error) { return x + v, nil })
}

// SubValue returns a new Numeric holding n - v.
func (n *Numeric[T]) SubValue(v T) (*Numeric[T], error) {
	return n.deriveOp(func(x T) (T, error) { return x - v, nil })
}

// MulValue returns a new Numeric holding n * v.
func (n *Numeric[T]) MulValue(v T) (*Numeric[T], error) {
	return n.deriveOp(func(x T) (T, error) { return x * v, nil })
}

// DivValue returns a new Numeric holding n / v.
func (n *Numeric[T]) DivValue(v T) (*Numeric[T], error) {
	return n.deriveOp(func(x T) (T, error) {
		if v == 0 {
			return 0, &ArithmeticError{Op: "Div"}
		}
		return x / v, nil
	})
}

// Cmp compares the wrapped values under one scope over both operands,
// returning -1, 0 or +1.
func (n *Numeric[T]) Cmp(o *Numeric[T]) (int, error) {
	if o == nil {
		return 0, &secure.ArgumentError{Name: "o", Message: "operand is nil"}
	}
	var out int
	err := secure.With(func() error {
		x, err := n.decode()
		if err != nil {
			return err
		}
		y, err := o.decode()
		if err != nil {
			return err
		}
		switch {
		case x < y:
			out = -1
		case x > y:
			out = 1
		}
		return nil
	}, n.data, o.data)
	if err != nil {
		return 0, err
	}
	return out, nil
}

// Equal reports whether both wrap the same native value.
func (n *Numeric[T]) Equal(o *Numeric[T]) (bool, error) {
	c, err := n.Cmp(o)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Format decodes under lock and renders the canonical decimal text.
// The result carries the secret; use String for display.
func (n *Numeric[T]) Format() (string, error) {
	v, err := n.Value()
	if err != nil {
		return "", err
	}
	switch x := any(v).(type) {
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	}
	panic("securevalue: unhandled value kind")
}

// String implements fmt.Stringer and always redacts, so a Numeric can
// pass through log statements and %v formatting without leaking.
func (n *Numeric[T]) String() string {
	return logging.Redacted
}

// Seal converts to the at-rest form. The Numeric itself stays usable;
// Dispose it if the plaintext copies should go away now.
func (n *Numeric[T]) Seal() (*secure.Sealed, error) {
	return secure.Seal(n.data)
}

// Dispose erases the backing buffers at a deterministic point. Further
// operations on this instance fail with UseAfterFreeError.
func (n *Numeric[T]) Dispose() {
	n.data.Dispose()
}

// decode reads the encoded bytes and wipes the transient copy. Callers
// must hold this instance's lock.
func (n *Numeric[T]) decode() (T, error) {
	raw, err := n.data.Bytes()
	if err != nil {
		var zero T
		return zero, err
	}
	defer memguard.WipeBytes(raw)
	return decode[T](raw)
}

// binOp is the shared acquire/decode/compute path for two-operand
// operations: one scope over both operands, deduplicated and ordered by
// lock token, so `a op b` and `b op a` racing on shared operands cannot
// deadlock and a self-operation locks its target once.
func (n *Numeric[T]) binOp(o *Numeric[T], name string, f func(x, y T) (T, error)) (*Numeric[T], error) {
	if o == nil {
		return nil, &secure.ArgumentError{Name: "o", Message: name + " operand is nil"}
	}
	var out *Numeric[T]
	err := secure.With(func() error {
		x, err := n.decode()
		if err != nil {
			return err
		}
		y, err := o.decode()
		if err != nil {
			return err
		}
		r, err := f(x, y)
		if err != nil {
			return err
		}
		out = NewNumeric(r)
		return nil
	}, n.data, o.data)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// deriveOp is binOp's single-operand counterpart.
func (n *Numeric[T]) deriveOp(f func(x T) (T, error)) (*Numeric[T], error) {
	var out *Numeric[T]
	err := secure.With(func() error {
		x, err := n.decode()
		if err != nil {
			return err
		}
		r, err := f(x)
		if err != nil {
			return err
		}
		out = NewNumeric(r)
		return nil
	}, n.data)
	if err != nil {
		return nil, err
	}
	return out, nil
}
