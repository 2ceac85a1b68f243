package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveChannelID(t *testing.T) {
	t.Run("sorted pair", func(t *testing.T) {
		assert.Equal(t, "user-1_user-2", DeriveChannelID("user-1", "user-2"))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, DeriveChannelID("user-1", "user-2"), DeriveChannelID("user-2", "user-1"))
	})

	t.Run("distinct pairs get distinct ids", func(t *testing.T) {
		assert.NotEqual(t, DeriveChannelID("user-1", "user-2"), DeriveChannelID("user-1", "user-3"))
	})
}

func TestSortMessages(t *testing.T) {
	t.Run("storage order is replaced by timestamp order", func(t *testing.T) {
		msgs := []Message{
			{ID: "c", Timestamp: 300},
			{ID: "a", Timestamp: 100},
			{ID: "b", Timestamp: 200},
		}

		SortMessages(msgs)

		assert.Equal(t, "a", msgs[0].ID)
		assert.Equal(t, "b", msgs[1].ID)
		assert.Equal(t, "c", msgs[2].ID)
	})

	t.Run("equal timestamps keep their relative order", func(t *testing.T) {
		msgs := []Message{
			{ID: "first", Timestamp: 100},
			{ID: "second", Timestamp: 100},
		}

		SortMessages(msgs)

		assert.Equal(t, "first", msgs[0].ID)
		assert.Equal(t, "second", msgs[1].ID)
	})

	t.Run("empty list", func(t *testing.T) {
		msgs := []Message{}
		SortMessages(msgs)
		assert.Empty(t, msgs)
	})
}
