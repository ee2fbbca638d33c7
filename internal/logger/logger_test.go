package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "text")

	log.Debug("hidden")
	log.Info("sampler started", "slots", 32)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"sampler started\"")
	assert.Contains(t, out, "slots=32")
}

func TestJSONLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "JSON").With("instance_id", "abc")

	log.Debug("tick", "online", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tick", entry["msg"])
	assert.Equal(t, "abc", entry["instance_id"])
	assert.Equal(t, float64(4), entry["online"])
	assert.Equal(t, "DEBUG", entry["level"])
}

func TestParseLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warning", "text")

	log.Info("skip")
	log.Warn("keep")

	assert.NotContains(t, buf.String(), "skip")
	assert.Contains(t, buf.String(), "keep")
}
