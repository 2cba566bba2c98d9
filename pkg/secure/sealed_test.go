package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeal_RoundTrip(t *testing.T) {
	t.Parallel()

	d := NewSecureDataFrom([]byte{0x01, 0x02, 0x03})
	defer d.Dispose()

	sealed, err := Seal(d)
	require.NoError(t, err)
	defer sealed.Destroy()

	restored, err := sealed.Unseal()
	require.NoError(t, err)
	defer restored.Dispose()

	// the restored value carries a fresh lock token
	assert.NotEqual(t, d.LockToken(), restored.LockToken())

	err = With(func() error {
		got, err := restored.Bytes()
		if err != nil {
			return err
		}
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, got)
		return nil
	}, restored)
	require.NoError(t, err)
}

func TestSeal_InvalidTargets(t *testing.T) {
	t.Parallel()

	var argErr *ArgumentError
	_, err := Seal(nil)
	assert.ErrorAs(t, err, &argErr)

	d := NewSecureDataFrom([]byte{1})
	d.Dispose()
	_, err = Seal(d)
	assert.ErrorAs(t, err, &argErr)
}

func TestSealed_Destroy(t *testing.T) {
	t.Parallel()

	d := NewSecureDataFrom([]byte{9})
	defer d.Dispose()

	sealed, err := Seal(d)
	require.NoError(t, err)

	sealed.Destroy()
	sealed.Destroy() // idempotent

	var uafErr *UseAfterFreeError
	_, err = sealed.Unseal()
	assert.ErrorAs(t, err, &uafErr)
}

func TestSealed_UnsealRepeatedly(t *testing.T) {
	t.Parallel()

	d := NewSecureDataFrom([]byte{7, 8})
	defer d.Dispose()

	sealed, err := Seal(d)
	require.NoError(t, err)
	defer sealed.Destroy()

	for i := 0; i < 3; i++ {
		restored, err := sealed.Unseal()
		require.NoError(t, err)
		err = With(func() error {
			got, err := restored.Bytes()
			if err != nil {
				return err
			}
			assert.Equal(t, []byte{7, 8}, got)
			return nil
		}, restored)
		require.NoError(t, err)
		restored.Dispose()
	}
}
