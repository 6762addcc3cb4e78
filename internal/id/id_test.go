package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate(PrefixBook)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "book-"))
	// prefix + hyphen + 21-char nanoid
	assert.Len(t, id, len(PrefixBook)+1+21)
}

func TestEntityConstructors(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewBookID(), "book-"))
	assert.True(t, strings.HasPrefix(NewUserID(), "usr-"))
	assert.True(t, strings.HasPrefix(NewEventID(), "evt-"))
}
