package autostart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerDesktopEntry(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	m, err := New("chatbar", "/opt/chatbar/chatbar", zerolog.Nop())
	require.NoError(t, err)

	on, err := m.Enabled()
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, m.Set(true))

	data, err := os.ReadFile(filepath.Join(dir, "autostart", "chatbar.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `Exec="/opt/chatbar/chatbar"`)

	on, err = m.Enabled()
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, m.Set(false))
	on, err = m.Enabled()
	require.NoError(t, err)
	assert.False(t, on)

	assert.NoError(t, m.Disable(), "disabling twice is fine")
}

func TestManagerCurrentExecutable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m, err := New("chatbar", "", zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, m)
}
