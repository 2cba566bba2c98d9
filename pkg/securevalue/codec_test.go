package securevalue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoundTrip[T Value](t *testing.T, values []T) {
	t.Helper()
	for _, v := range values {
		enc := encode(v)
		require.Len(t, enc, width[T]())
		got, err := decode[T](enc)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("int32", func(t *testing.T) {
		t.Parallel()
		testRoundTrip(t, []int32{0, 1, -1, 42, math.MinInt32, math.MaxInt32})
	})
	t.Run("int64", func(t *testing.T) {
		t.Parallel()
		testRoundTrip(t, []int64{0, 1, -1, 123456789012, math.MinInt64, math.MaxInt64})
	})
	t.Run("uint32", func(t *testing.T) {
		t.Parallel()
		testRoundTrip(t, []uint32{0, 1, math.MaxUint32})
	})
	t.Run("uint64", func(t *testing.T) {
		t.Parallel()
		testRoundTrip(t, []uint64{0, 1, math.MaxUint64})
	})
}

func TestCodec_WidthMismatch(t *testing.T) {
	t.Parallel()

	var fmtErr *FormatError
	_, err := decode[int32]([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "int32", fmtErr.Kind)

	_, err = decode[int64]([]byte{1, 2, 3, 4})
	assert.ErrorAs(t, err, &fmtErr)
}

func TestCodec_BigEndianLayout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x02}, encode(int32(258)))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0x01, 0x02}, encode(int64(258)))
}
