package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, b := range All() {
		got, err := Parse(string(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	_, err := Parse("middle")
	assert.Error(t, err)
}

func TestTakesOverLeftClick(t *testing.T) {
	assert.True(t, LeftOnly.TakesOverLeftClick())
	assert.True(t, LeftAndRight.TakesOverLeftClick())
	assert.False(t, RightOnly.TakesOverLeftClick())
	assert.Equal(t, RightOnly, Default)
}
