package recorder

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbar/internal/appstate"
)

func newRecorder() (*Recorder, *appstate.State, *[]string) {
	state := appstate.New()
	var captured []string
	r := New(state, func(accel string) { captured = append(captured, accel) }, zerolog.Nop())
	return r, state, &captured
}

func TestCaptureControlAltT(t *testing.T) {
	r, state, captured := newRecorder()

	r.Begin()
	require.True(t, state.Recording())

	_, done := r.KeyDown(KeyEvent{Key: "Control", Control: true})
	assert.False(t, done)
	_, done = r.KeyDown(KeyEvent{Key: "Alt", Control: true, Alt: true})
	assert.False(t, done)
	assert.True(t, state.Recording(), "modifier-only sequence keeps recording")

	accel, done := r.KeyDown(KeyEvent{Key: "t", Control: true, Alt: true})
	require.True(t, done)
	assert.Equal(t, "Control+Alt+T", accel)
	assert.False(t, state.Recording())
	assert.Equal(t, []string{"Control+Alt+T"}, *captured)
}

func TestCaptureMetaSpace(t *testing.T) {
	r, _, _ := newRecorder()
	r.Begin()

	accel, done := r.KeyDown(KeyEvent{Key: " ", Meta: true, Shift: true})

	require.True(t, done)
	assert.Equal(t, "Command+Shift+Space", accel)
}

func TestNamedKeys(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Key: "Enter", Control: true}, "Control+Return"},
		{KeyEvent{Key: "ArrowUp", Alt: true}, "Alt+Up"},
		{KeyEvent{Key: "F5"}, "F5"},
		{KeyEvent{Key: "†", Alt: true, Code: "KeyT"}, "Alt+T"},
		{KeyEvent{Key: "5", Shift: true, Code: "Digit5"}, "Shift+5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r, _, _ := newRecorder()
			r.Begin()
			got, done := r.KeyDown(tt.ev)
			require.True(t, done)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnusableKeyKeepsRecording(t *testing.T) {
	r, state, captured := newRecorder()
	r.Begin()

	_, done := r.KeyDown(KeyEvent{Key: "Dead", Alt: true})

	assert.False(t, done)
	assert.True(t, state.Recording())
	assert.Empty(t, *captured)
}

func TestKeyDownIgnoredWhenNotRecording(t *testing.T) {
	r, _, captured := newRecorder()

	_, done := r.KeyDown(KeyEvent{Key: "t", Control: true})

	assert.False(t, done)
	assert.Empty(t, *captured)
}

func TestBlurCancels(t *testing.T) {
	r, state, captured := newRecorder()
	r.Begin()
	r.KeyDown(KeyEvent{Key: "Shift", Shift: true})

	r.Blur()

	assert.False(t, state.Recording())
	assert.False(t, r.Active())
	assert.Empty(t, *captured)

	// Новая запись не наследует модификаторы прошлой.
	r.Begin()
	accel, done := r.KeyDown(KeyEvent{Key: "q", Control: true})
	require.True(t, done)
	assert.Equal(t, "Control+Q", accel)
}

func TestReleasedModifierIsDropped(t *testing.T) {
	r, _, captured := newRecorder()
	r.Begin()

	_, done := r.KeyDown(KeyEvent{Key: "Shift", Shift: true})
	require.False(t, done)

	// Shift отпущен, зажаты Control и Alt.
	accel, done := r.KeyDown(KeyEvent{Key: "t", Control: true, Alt: true})

	require.True(t, done)
	assert.Equal(t, "Control+Alt+T", accel)
	assert.Equal(t, []string{"Control+Alt+T"}, *captured)
}

func TestBeginTwiceKeepsRecording(t *testing.T) {
	r, state, _ := newRecorder()
	r.Begin()
	r.KeyDown(KeyEvent{Key: "Alt", Alt: true})
	r.Begin()
	assert.True(t, state.Recording())

	accel, done := r.KeyDown(KeyEvent{Key: "x", Alt: true})
	require.True(t, done)
	assert.Equal(t, "Alt+X", accel)
}

func TestReset(t *testing.T) {
	r, state, _ := newRecorder()
	r.Begin()

	r.Reset()

	assert.False(t, state.Recording())
}
