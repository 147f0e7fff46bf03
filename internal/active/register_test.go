package active

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_EmptyByDefault(t *testing.T) {
	r := NewRegister()

	id, ok := r.Get()
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestRegister_LastWriteWins(t *testing.T) {
	r := NewRegister()

	r.Set(1)
	r.Set(2)

	id, ok := r.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestRegister_ClearIf(t *testing.T) {
	t.Run("clears matching id", func(t *testing.T) {
		r := NewRegister()
		r.Set(7)

		r.ClearIf(7)

		_, ok := r.Get()
		assert.False(t, ok)
	})

	t.Run("leaves a newer pointer untouched", func(t *testing.T) {
		r := NewRegister()
		r.Set(7)
		r.Set(8) // newer upload wins the race

		r.ClearIf(7) // delete of the old document arrives late

		id, ok := r.Get()
		assert.True(t, ok)
		assert.Equal(t, int64(8), id)
	})

	t.Run("no-op on empty register", func(t *testing.T) {
		r := NewRegister()
		r.ClearIf(1)

		_, ok := r.Get()
		assert.False(t, ok)
	})
}

func TestRegister_ConcurrentAccess(t *testing.T) {
	r := NewRegister()

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			r.Set(id)
		}(i)
		go func(id int64) {
			defer wg.Done()
			r.ClearIf(id)
			r.Get()
		}(i)
	}
	wg.Wait()

	// Whatever survived, the register must be internally consistent.
	if id, ok := r.Get(); ok {
		assert.Greater(t, id, int64(0))
	}
}
