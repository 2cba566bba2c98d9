package securevalue

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/securevalue/internal/logging"
	"github.com/systmms/securevalue/pkg/secure"
)

func mustValue[T Value](t *testing.T, n *Numeric[T]) T {
	t.Helper()
	v, err := n.Value()
	require.NoError(t, err)
	return v
}

func TestNumeric_WrapAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    int32
	}{
		{name: "zero", v: 0},
		{name: "positive", v: 42},
		{name: "negative", v: -42},
		{name: "min", v: math.MinInt32},
		{name: "max", v: math.MaxInt32},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.v, mustValue(t, NewInt(tt.v)))
		})
	}
}

func TestNumeric_ArithmeticMatchesNative(t *testing.T) {
	t.Parallel()

	pairs := []struct{ a, b int32 }{
		{5, 3},
		{-5, 3},
		{0, 7},
		{math.MaxInt32, 1},  // wraps, as the native type does
		{math.MinInt32, -1}, // quotient overflow wraps too
		{100, -7},
	}

	for _, p := range pairs {
		p := p
		t.Run(fmt.Sprintf("%d_%d", p.a, p.b), func(t *testing.T) {
			t.Parallel()

			wa, wb := NewInt(p.a), NewInt(p.b)

			sum, err := wa.Add(wb)
			require.NoError(t, err)
			assert.Equal(t, p.a+p.b, mustValue(t, sum))

			diff, err := wa.Sub(wb)
			require.NoError(t, err)
			assert.Equal(t, p.a-p.b, mustValue(t, diff))

			prod, err := wa.Mul(wb)
			require.NoError(t, err)
			assert.Equal(t, p.a*p.b, mustValue(t, prod))

			if p.b != 0 {
				quot, err := wa.Div(wb)
				require.NoError(t, err)
				assert.Equal(t, p.a/p.b, mustValue(t, quot))

				rem, err := wa.Mod(wb)
				require.NoError(t, err)
				assert.Equal(t, p.a%p.b, mustValue(t, rem))
			}
		})
	}
}

func TestNumeric_AddScenario(t *testing.T) {
	t.Parallel()

	sum, err := NewInt(5).Add(NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, int32(8), mustValue(t, sum))
}

func TestNumeric_DivideByZero(t *testing.T) {
	t.Parallel()

	var arithErr *ArithmeticError
	_, err := NewInt(7).Div(NewInt(0))
	require.ErrorAs(t, err, &arithErr)
	assert.Equal(t, "Div", arithErr.Op)

	_, err = NewInt(7).Mod(NewInt(0))
	assert.ErrorAs(t, err, &arithErr)

	_, err = NewInt(7).DivValue(0)
	assert.ErrorAs(t, err, &arithErr)
}

func TestNumeric_OperandOrderSymmetry(t *testing.T) {
	t.Parallel()

	pairs := []struct{ a, b int64 }{
		{5, 3},
		{-10, 4},
		{math.MaxInt64, 2},
	}

	for _, p := range pairs {
		wa := NewLong(p.a)

		// wrap(a) + b
		left, err := wa.AddValue(p.b)
		require.NoError(t, err)
		// b + wrap(a)
		right, err := NewLong(p.b).Add(wa)
		require.NoError(t, err)

		assert.Equal(t, mustValue(t, left), mustValue(t, right))
	}
}

func TestNumeric_SelfOperation(t *testing.T) {
	t.Parallel()

	// a.Add(a) names the same lock token twice; the scope must coalesce
	// the acquisition rather than self-deadlock
	a := NewInt(21)
	sum, err := a.Add(a)
	require.NoError(t, err)
	assert.Equal(t, int32(42), mustValue(t, sum))
}

func TestNumeric_OperandsSurviveOperation(t *testing.T) {
	t.Parallel()

	a, b := NewInt(5), NewInt(3)
	_, err := a.Add(b)
	require.NoError(t, err)

	// operations build new instances; existing ones are untouched
	assert.Equal(t, int32(5), mustValue(t, a))
	assert.Equal(t, int32(3), mustValue(t, b))
}

func TestNumeric_Neg(t *testing.T) {
	t.Parallel()

	n, err := NewInt(17).Neg()
	require.NoError(t, err)
	assert.Equal(t, int32(-17), mustValue(t, n))

	u, err := NewNumeric(uint32(1)).Neg()
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), mustValue(t, u))
}

func TestNumeric_CmpAndEqual(t *testing.T) {
	t.Parallel()

	a, b, c := NewInt(1), NewInt(2), NewInt(1)

	got, err := a.Cmp(b)
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = b.Cmp(a)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	eq, err := a.Equal(c)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.Equal(b)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestParseNumeric(t *testing.T) {
	t.Parallel()

	t.Run("long_scenario", func(t *testing.T) {
		t.Parallel()
		n, err := ParseLong("123456789012")
		require.NoError(t, err)
		assert.Equal(t, int64(123456789012), mustValue(t, n))
	})

	t.Run("int_negative", func(t *testing.T) {
		t.Parallel()
		n, err := ParseInt("-2147483648")
		require.NoError(t, err)
		assert.Equal(t, int32(math.MinInt32), mustValue(t, n))
	})

	t.Run("uint64_max", func(t *testing.T) {
		t.Parallel()
		n, err := ParseNumeric[uint64]("18446744073709551615")
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), mustValue(t, n))
	})

	t.Run("syntax_error", func(t *testing.T) {
		t.Parallel()
		var fmtErr *FormatError
		_, err := ParseInt("not-a-number")
		require.ErrorAs(t, err, &fmtErr)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("range_error", func(t *testing.T) {
		t.Parallel()
		var fmtErr *FormatError
		_, err := ParseInt("2147483648") // MaxInt32 + 1
		require.ErrorAs(t, err, &fmtErr)
		assert.ErrorIs(t, err, strconv.ErrRange)
	})

	t.Run("error_redacts_input", func(t *testing.T) {
		t.Parallel()
		_, err := ParseInt("hunter2!")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "hunter2")
		assert.Contains(t, err.Error(), logging.Redacted)
	})
}

func TestNumeric_Format(t *testing.T) {
	t.Parallel()

	s, err := NewLong(-99).Format()
	require.NoError(t, err)
	assert.Equal(t, "-99", s)

	s, err = NewNumeric(uint32(7)).Format()
	require.NoError(t, err)
	assert.Equal(t, "7", s)
}

func TestNumeric_StringRedacts(t *testing.T) {
	t.Parallel()

	n := NewInt(12345)
	assert.Equal(t, logging.Redacted, n.String())
	assert.NotContains(t, fmt.Sprintf("value: %v", n), "12345")
}

func TestNumeric_Dispose(t *testing.T) {
	t.Parallel()

	n := NewInt(5)
	n.Dispose()

	_, err := n.Value()
	require.Error(t, err)

	// disposed operands fail fast when used in a binary operation
	var argErr *secure.ArgumentError
	_, err = NewInt(1).Add(n)
	assert.ErrorAs(t, err, &argErr)
}

func TestNumeric_SealRoundTrip(t *testing.T) {
	t.Parallel()

	n := NewLong(123456789012)
	sealed, err := n.Seal()
	require.NoError(t, err)
	defer sealed.Destroy()
	n.Dispose()

	restored, err := UnsealNumeric[int64](sealed)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012), mustValue(t, restored))
}

func TestUnsealNumeric_WidthMismatch(t *testing.T) {
	t.Parallel()

	sealed, err := NewInt(1).Seal()
	require.NoError(t, err)
	defer sealed.Destroy()

	var fmtErr *FormatError
	_, err = UnsealNumeric[int64](sealed)
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "int64", fmtErr.Kind)
}
