package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTagsServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LoggingConfig{Level: "info", Format: "json"})

	logger.Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "eventhub", line["service"])
	require.Equal(t, "hello", line["message"])
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LoggingConfig{Level: "warn", Format: "json"})

	logger.Info().Msg("dropped")
	require.Empty(t, buf.Bytes())

	logger.Warn().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestNewLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LoggingConfig{Level: "shouty", Format: "json"})

	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewLoggerConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LoggingConfig{Level: "info", Format: "console"})

	logger.Info().Msg("pretty")

	// Console output is not JSON.
	var line map[string]any
	require.Error(t, json.Unmarshal(buf.Bytes(), &line))
	require.Contains(t, buf.String(), "pretty")
}
