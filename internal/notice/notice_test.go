package notice

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterDrainShowsNoticesOnce(t *testing.T) {
	c := NewCenter(10, zerolog.Nop())
	c.Error("Login required.")
	c.Success("Logged in.")

	got := c.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, LevelError, got[0].Level)
	assert.Equal(t, "Login required.", got[0].Message)
	assert.NotEmpty(t, got[0].ID)

	assert.Empty(t, c.Drain())
}

func TestCenterDropsOldestOverLimit(t *testing.T) {
	c := NewCenter(2, zerolog.Nop())
	c.Error("one")
	c.Error("two")
	c.Error("three")

	got := c.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Message)
	assert.Equal(t, "three", got[1].Message)
}
