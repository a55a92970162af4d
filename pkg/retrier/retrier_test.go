package retrier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDo(t *testing.T) {
	t.Run("zero retry count still attempts once", func(t *testing.T) {
		calls := 0
		err := Do(0, 0, func() error {
			calls++
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on first success", func(t *testing.T) {
		calls := 0
		err := Do(3, 0, func() error {
			calls++
			if calls < 2 {
				return errors.New("boom")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("returns last error when all attempts fail", func(t *testing.T) {
		calls := 0
		err := Do(3, 0, func() error {
			calls++
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})
}

func TestConnect(t *testing.T) {
	t.Run("zero retry count still attempts once", func(t *testing.T) {
		calls := 0
		out, err := Connect(0, 0, func() (string, error) {
			calls++
			return "conn", nil
		})

		assert.NoError(t, err)
		assert.Equal(t, "conn", out)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns first successful connection", func(t *testing.T) {
		calls := 0
		out, err := Connect(3, 0, func() (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("refused")
			}
			return "conn", nil
		})

		assert.NoError(t, err)
		assert.Equal(t, "conn", out)
		assert.Equal(t, 3, calls)
	})
}

func TestMultiConnects(t *testing.T) {
	t.Run("establishes the requested number of connections", func(t *testing.T) {
		calls := 0
		conns, err := MultiConnects(3, func() (int, error) {
			calls++
			return calls, nil
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, conns)
	})

	t.Run("fails fast on the first broken connection", func(t *testing.T) {
		conns, err := MultiConnects(3, func() (int, error) {
			return 0, errors.New("refused")
		}, &RetrierOpts{Count: 2, Interval: 0})

		assert.Error(t, err)
		assert.Nil(t, conns)
	})
}
