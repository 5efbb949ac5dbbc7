package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Format: "json", Output: &buf, Prefix: "suite"})

	logger.Debug("hidden")
	logger.Info("seeded", "inserted", 4)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "seeded", entry["msg"])
	assert.EqualValues(t, 4, entry["inserted"])
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: "logfmt", Output: &buf})
	Printf(logger)("target %s", "chrome")
	assert.Contains(t, buf.String(), "target chrome")
}
