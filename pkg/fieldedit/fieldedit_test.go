package fieldedit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBadValue = errors.New("bad value")

func TestField_CommitSuccess(t *testing.T) {
	f := New("10:00")
	assert.Equal(t, StateClean, f.State())
	assert.Equal(t, "10:00", f.Value())

	require.NoError(t, f.Begin("11:00"))
	assert.Equal(t, StateDirty, f.State())

	pending, ok := f.Pending()
	require.True(t, ok)
	assert.Equal(t, "11:00", pending)
	// Сохраненное значение не меняется, пока правка не закоммичена
	assert.Equal(t, "10:00", f.Value())

	require.NoError(t, f.Commit(func(string) error { return nil }))
	assert.Equal(t, StateClean, f.State())
	assert.Equal(t, "11:00", f.Value())
}

func TestField_CommitRevertsOnValidationError(t *testing.T) {
	f := New(42)

	require.NoError(t, f.Begin(-1))
	err := f.Commit(func(v int) error {
		if v < 0 {
			return errBadValue
		}
		return nil
	})

	assert.ErrorIs(t, err, errBadValue)
	assert.Equal(t, StateReverted, f.State())
	// Последнее известное значение восстановлено
	assert.Equal(t, 42, f.Value())

	_, ok := f.Pending()
	assert.False(t, ok)
}

func TestField_BeginAfterRevert(t *testing.T) {
	f := New("a")
	require.NoError(t, f.Begin("b"))
	require.Error(t, f.Commit(func(string) error { return errBadValue }))
	require.Equal(t, StateReverted, f.State())

	// После отката можно начать новую правку
	require.NoError(t, f.Begin("c"))
	require.NoError(t, f.Commit(nil))
	assert.Equal(t, "c", f.Value())
}

func TestField_ReEditOverwritesPending(t *testing.T) {
	f := New(1)
	require.NoError(t, f.Begin(2))
	require.NoError(t, f.Begin(3))

	pending, ok := f.Pending()
	require.True(t, ok)
	assert.Equal(t, 3, pending)
}

func TestField_InvalidTransitions(t *testing.T) {
	f := New("x")

	// Commit без начатой правки
	assert.ErrorIs(t, f.Commit(nil), ErrInvalidTransition)

	// Повторный Commit после успешного
	require.NoError(t, f.Begin("y"))
	require.NoError(t, f.Commit(nil))
	assert.ErrorIs(t, f.Commit(nil), ErrInvalidTransition)

	// Commit из Reverted
	require.NoError(t, f.Begin("z"))
	require.Error(t, f.Commit(func(string) error { return errBadValue }))
	assert.ErrorIs(t, f.Commit(nil), ErrInvalidTransition)
}

func TestField_Reset(t *testing.T) {
	f := New(10)
	require.NoError(t, f.Begin(20))

	f.Reset()

	assert.Equal(t, StateClean, f.State())
	assert.Equal(t, 10, f.Value())
	_, ok := f.Pending()
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "clean", StateClean.String())
	assert.Equal(t, "dirty", StateDirty.String())
	assert.Equal(t, "committing", StateCommitting.String())
	assert.Equal(t, "reverted", StateReverted.String())
	assert.Equal(t, "unknown", State(99).String())
}
