package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Warnw("warn", map[string]any{"field": "capacity_kwh"})
	l.Errorf("error")
}

func TestZerologLoggerStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "lifetime")
	l.Warnw("validation failed", map[string]any{"field": "power_kw", "value": 12.5})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "lifetime", entry["component"])
	assert.Equal(t, "power_kw", entry["field"])
	assert.Equal(t, 12.5, entry["value"])
	assert.Equal(t, "validation failed", entry["message"])
}

func TestZerologLoggerWithOptions(t *testing.T) {
	var console bytes.Buffer
	NewZerologLoggerWith("api", Options{Out: &console, Console: true}).Infof("listening on %s", ":8080")
	out := console.String()
	assert.Contains(t, out, "listening on :8080")
	assert.Contains(t, out, "component=api")
	assert.False(t, strings.HasPrefix(out, "{"))

	var js bytes.Buffer
	NewZerologLoggerWith("api", Options{Out: &js}).Infof("ready")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &entry))
	assert.Equal(t, "ready", entry["message"])
}
