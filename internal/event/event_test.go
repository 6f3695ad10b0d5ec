package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ScanComplete", ScanComplete.String())
	assert.Equal(t, "FileCopied", FileCopied.String())
	assert.Equal(t, "FileFailed", FileFailed.String())
	assert.Equal(t, "Unknown", Type(0).String())
	assert.Equal(t, "Unknown", Type(99).String())
}

func TestTypeTerminal(t *testing.T) {
	t.Parallel()

	terminal := []Type{FileCopied, FileSkipped, FileFailed}
	for _, tt := range terminal {
		assert.True(t, tt.Terminal(), "%s should be terminal", tt)
	}

	nonTerminal := []Type{ScanStarted, ScanComplete, DirCreated, FileStarted}
	for _, tt := range nonTerminal {
		assert.False(t, tt.Terminal(), "%s should not be terminal", tt)
	}
}
