package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.InfoLevel, Format: "json", Out: &buf})

	Component(log, "tray").Info().Msg("ready")
	log.Debug().Msg("hidden")

	out := buf.String()
	require.Contains(t, out, `"component":"tray"`)
	assert.Contains(t, out, `"message":"ready"`)
	assert.NotContains(t, out, "hidden")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.InfoLevel, Format: "json", Out: &buf})

	ctx := WithContext(context.Background(), log)
	FromContext(ctx).Info().Msg("from ctx")

	assert.Contains(t, buf.String(), "from ctx")
}
