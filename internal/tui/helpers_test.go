package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateStrKeepsRunesWhole(t *testing.T) {
	got := truncateStr("\u00d1and\u00fa Traders S\u00e3o Paulo", 8)
	assert.Equal(t, "\u00d1and\u00fa...", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "\u00d1an", truncateStr("\u00d1and\u00fa", 3))
	assert.Equal(t, "\u00d1and\u00fa", truncateStr("\u00d1and\u00fa", 5))
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(3, 0))
	assert.Equal(t, 1, clampCursor(5, 2))
	assert.Equal(t, 0, clampCursor(-1, 4))
}
