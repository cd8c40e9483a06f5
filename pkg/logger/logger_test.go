package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel)
	defer Init("test")

	Info("recommendations generated", "customer_id", "C1", "count", 3, "fresh", true)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "recommendations generated", line["message"])
	assert.Equal(t, "C1", line["customer_id"])
	assert.EqualValues(t, 3, line["count"])
	assert.Equal(t, true, line["fresh"])
}

func TestLoneErrorArgument(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel)
	defer Init("test")

	Error("Invalid request body", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)
	defer Init("test")

	Debug("hidden")
	assert.Zero(t, buf.Len())
}
