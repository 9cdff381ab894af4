package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTokenGenerator(t *testing.T) {
	gen := NewFixedTokenGenerator("session-x")
	assert.Equal(t, "session-x", gen.Generate())
	assert.Equal(t, "session-x", gen.Generate())

	assert.Equal(t, "test-session-default", NewFixedTokenGenerator("").Generate())
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger()
	assert.NotPanics(t, func() { logger.Info("dropped", "k", 1) })
}
