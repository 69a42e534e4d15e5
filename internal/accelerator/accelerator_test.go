package accelerator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CommandOrControl+Shift+Space", "CommandOrControl+Shift+Space"},
		{"shift+cmdorctrl+space", "CommandOrControl+Shift+Space"},
		{"Alt+Control+t", "Control+Alt+T"},
		{"Ctrl+Alt+T", "Control+Alt+T"},
		{"CommandOrControl+Q", "CommandOrControl+Q"},
		{"Meta+Enter", "Command+Return"},
		{"Option+f5", "Alt+F5"},
		{"Shift+Shift+A", "Shift+A"},
		{" F12 ", "F12"},
		{"Super+pageup", "Super+PageUp"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"Shift",
		"Control+Alt",
		"A+B",
		"Control++A",
		"Control+Dead",
		"F0",
		"F25",
		"F01",
		"Hyper+A",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Normalize(in)
			assert.ErrorIs(t, err, ErrInvalidAccelerator)
		})
	}
}

func TestParse(t *testing.T) {
	acc, err := Parse("Shift+CommandOrControl+K")
	require.NoError(t, err)

	assert.Equal(t, Key("K"), acc.Key)
	assert.Equal(t, []Modifier{ModCommandOrControl, ModShift}, acc.Modifiers)
	assert.True(t, acc.Has(ModShift))
	assert.False(t, acc.Has(ModAlt))
}

func TestBuild(t *testing.T) {
	got, err := Build([]Modifier{ModAlt, ModControl}, "t")
	require.NoError(t, err)
	assert.Equal(t, "Control+Alt+T", got)

	_, err = Build([]Modifier{ModShift}, "")
	assert.Error(t, err)
}

func TestIsModifier(t *testing.T) {
	assert.True(t, IsModifier("Ctrl"))
	assert.True(t, IsModifier("meta"))
	assert.False(t, IsModifier("Space"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "⌘+⇧+␣", Display("CommandOrControl+Shift+Space", "darwin"))
	assert.Equal(t, "Ctrl+Shift+␣", Display("CommandOrControl+Shift+Space", "linux"))
	assert.Equal(t, "Ctrl+Alt+PageUp", Display("Control+Alt+PageUp", "windows"))
	assert.Equal(t, "not+valid+", Display("not+valid+", "linux"))
}
