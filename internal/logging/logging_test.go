package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", &buf)
	require.NoError(t, err)

	logger.Debug("ran external command", zap.String("program", "kubectl"))
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "kubectl")

	buf.Reset()
	logger, err = New("", &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", nil)
	assert.Error(t, err)
}
