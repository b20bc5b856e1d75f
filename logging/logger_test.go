package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn, uuid.New())

	logger.Debugf("hidden %d", 1)
	logger.Infof("hidden %d", 2)
	logger.Warnf("shown %d", 3)
	logger.Criticalf("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "shown 4")
}

func TestLoggerPrefixesSession(t *testing.T) {
	var buf bytes.Buffer
	session := uuid.New()
	New(&buf, LevelTrace, session).Tracef("frame")

	assert.True(t, strings.HasPrefix(buf.String(), "[venus "+session.String()[:8]+"] "))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	level, err = ParseLevel("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, LevelCritical, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "Level(42)", Level(42).String())
}
