package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	t.Run("starts active", func(t *testing.T) {
		l := NewLifecycle()
		assert.Equal(t, LifecycleActive, l.State)
		assert.False(t, l.IsArchived())
		assert.Nil(t, l.ArchivedAt)
	})

	t.Run("archive sets state and timestamp", func(t *testing.T) {
		l := NewLifecycle()
		require.NoError(t, l.Archive())
		assert.Equal(t, LifecycleArchived, l.State)
		assert.True(t, l.IsArchived())
		require.NotNil(t, l.ArchivedAt)
	})

	t.Run("archive twice fails", func(t *testing.T) {
		l := NewLifecycle()
		require.NoError(t, l.Archive())
		err := l.Archive()
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("restore returns to active and clears timestamp", func(t *testing.T) {
		l := NewLifecycle()
		require.NoError(t, l.Archive())
		require.NoError(t, l.Restore())
		assert.Equal(t, LifecycleActive, l.State)
		assert.Nil(t, l.ArchivedAt)
	})

	t.Run("restore of active resource fails", func(t *testing.T) {
		l := NewLifecycle()
		err := l.Restore()
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("archive restore archive round trip", func(t *testing.T) {
		l := NewLifecycle()
		require.NoError(t, l.Archive())
		require.NoError(t, l.Restore())
		require.NoError(t, l.Archive())
		assert.True(t, l.IsArchived())
	})
}

func TestLifecycleStateIsValid(t *testing.T) {
	assert.True(t, LifecycleActive.IsValid())
	assert.True(t, LifecycleArchived.IsValid())
	assert.False(t, LifecycleState("deleted").IsValid())
	assert.False(t, LifecycleState("").IsValid())
}
