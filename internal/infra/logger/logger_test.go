package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("prod", &buf).Debug("hidden")
	assert.Zero(t, buf.Len())

	NewWithWriter("dev", &buf).Debug("shown", "ref", "EE-1")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "EE-1", rec["ref"])
	assert.Equal(t, "elegance-bot", rec["service"])
}
