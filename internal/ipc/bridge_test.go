package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatbar/internal/loop"
	"chatbar/internal/providers"
	"chatbar/internal/recorder"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) GetSetting(_ context.Context, key string) (any, error) {
	args := m.Called(key)
	return args.Get(0), args.Error(1)
}

func (m *mockBackend) SetSetting(_ context.Context, key string, value any) error {
	return m.Called(key, value).Error(0)
}

func (m *mockBackend) SetAllSettings(_ context.Context, values map[string]any) error {
	return m.Called(values).Error(0)
}

func (m *mockBackend) GetAllSettings(context.Context) (map[string]any, error) {
	args := m.Called()
	v, _ := args.Get(0).(map[string]any)
	return v, args.Error(1)
}

func (m *mockBackend) ResetSettings(context.Context) (map[string]any, error) {
	args := m.Called()
	v, _ := args.Get(0).(map[string]any)
	return v, args.Error(1)
}

func (m *mockBackend) Shortcuts() map[string]string {
	return m.Called().Get(0).(map[string]string)
}

func (m *mockBackend) UpdateShortcut(name, accel string) bool {
	return m.Called(name, accel).Bool(0)
}

func (m *mockBackend) UnregisterShortcuts() { m.Called() }
func (m *mockBackend) Minimize()            { m.Called() }
func (m *mockBackend) Hide()                { m.Called() }
func (m *mockBackend) Close()               { m.Called() }
func (m *mockBackend) Blur()                { m.Called() }

func (m *mockBackend) Platform() string {
	return m.Called().String(0)
}

func (m *mockBackend) SetRecording(active bool, action string) { m.Called(active, action) }

func (m *mockBackend) RecordKey(ev recorder.KeyEvent) (string, bool) {
	args := m.Called(ev)
	return args.String(0), args.Bool(1)
}

func (m *mockBackend) Tabs(context.Context) providers.Tabs {
	return m.Called().Get(0).(providers.Tabs)
}

func (m *mockBackend) ToggleProvider(_ context.Context, index int) error {
	return m.Called(index).Error(0)
}

// direct выполняет функцию сразу.
type direct struct{}

func (direct) Call(_ context.Context, fn func()) error {
	fn()
	return nil
}

func raw(t *testing.T, values ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		out = append(out, data)
	}
	return out
}

func TestBridgeSettings(t *testing.T) {
	b := new(mockBackend)
	b.On("GetSetting", "theme").Return("dark", nil)
	b.On("GetSetting", "nope").Return(nil, errors.New("unknown setting"))
	b.On("SetSetting", "hideOnBlur", true).Return(nil)
	b.On("SetSetting", "theme", "neon").Return(errors.New("unknown theme"))
	b.On("SetAllSettings", map[string]any{"lastTab": float64(2)}).Return(nil)
	b.On("GetAllSettings").Return(map[string]any{"theme": "dark"}, nil)

	bridge := NewBridge(b, direct{}, zerolog.Nop())

	assert.Equal(t, "dark", bridge.Invoke(SettingsGet, raw(t, "theme")))
	assert.Nil(t, bridge.Invoke(SettingsGet, raw(t, "nope")))
	assert.Equal(t, true, bridge.Invoke(SettingsSet, raw(t, "hideOnBlur", true)))
	assert.Equal(t, false, bridge.Invoke(SettingsSet, raw(t, "theme", "neon")))
	assert.Equal(t, true, bridge.Invoke(SettingsSetAll, raw(t, map[string]any{"lastTab": 2})))
	assert.Equal(t, map[string]any{"theme": "dark"}, bridge.Invoke(SettingsGetAll, nil))

	b.AssertExpectations(t)
}

func TestBridgeBadArguments(t *testing.T) {
	b := new(mockBackend)
	bridge := NewBridge(b, direct{}, zerolog.Nop())

	assert.Equal(t, false, bridge.Invoke(SettingsSet, raw(t, "theme")), "missing value")
	assert.Equal(t, false, bridge.Invoke(ShortcutsUpdate, raw(t, 42, "Control+Q")), "wrong type")
	assert.Nil(t, bridge.Invoke("settings:drop", nil))

	b.AssertNotCalled(t, "SetSetting", mock.Anything, mock.Anything)
	b.AssertNotCalled(t, "UpdateShortcut", mock.Anything, mock.Anything)
}

func TestBridgeShortcutsAndApp(t *testing.T) {
	b := new(mockBackend)
	b.On("Shortcuts").Return(map[string]string{"quit": "CommandOrControl+Q"})
	b.On("UpdateShortcut", "quit", "Control+Alt+Q").Return(true)
	b.On("UnregisterShortcuts").Return()
	b.On("Hide").Return()
	b.On("Platform").Return("linux")

	bridge := NewBridge(b, direct{}, zerolog.Nop())

	assert.Equal(t, map[string]string{"quit": "CommandOrControl+Q"}, bridge.Invoke(ShortcutsGet, nil))
	assert.Equal(t, true, bridge.Invoke(ShortcutsUpdate, raw(t, "quit", "Control+Alt+Q")))
	assert.Equal(t, true, bridge.Invoke(ShortcutsUnregister, nil))
	assert.Equal(t, true, bridge.Invoke(AppHide, nil))
	assert.Equal(t, "linux", bridge.Invoke(AppGetPlatform, nil))

	b.AssertExpectations(t)
}

func TestBridgeRecording(t *testing.T) {
	b := new(mockBackend)
	b.On("SetRecording", true, "toggleWindow").Return()
	b.On("SetRecording", false, "").Return()
	b.On("RecordKey", recorder.KeyEvent{Key: "Control", Control: true}).Return("", false)
	b.On("RecordKey", recorder.KeyEvent{Key: "t", Control: true, Alt: true, Code: "KeyT"}).Return("Control+Alt+T", true)

	bridge := NewBridge(b, direct{}, zerolog.Nop())

	assert.Equal(t, true, bridge.Invoke(HotkeyRecording, raw(t, true, "toggleWindow")))
	assert.Equal(t, true, bridge.Invoke(HotkeyRecording, raw(t, false)))

	keydown := func(js string) any {
		return bridge.Invoke(HotkeyKeyDown, []json.RawMessage{json.RawMessage(js)})
	}
	assert.Nil(t, keydown(`{"key":"Control","ctrlKey":true}`))
	assert.Equal(t, "Control+Alt+T", keydown(`{"key":"t","ctrlKey":true,"altKey":true,"code":"KeyT"}`))

	b.AssertExpectations(t)
}

func TestBridgeProviders(t *testing.T) {
	b := new(mockBackend)
	tabs := providers.Tabs{Active: 1}
	b.On("Tabs").Return(tabs)
	b.On("ToggleProvider", 0).Return(providers.ErrLastSelected)

	bridge := NewBridge(b, direct{}, zerolog.Nop())

	assert.Len(t, bridge.Invoke(ProvidersList, nil), len(providers.Registry))
	assert.Equal(t, tabs, bridge.Invoke(ProvidersTabs, nil))
	assert.Equal(t, false, bridge.Invoke(ProvidersToggle, raw(t, 0)))
}

func TestBridgeStoppedLoop(t *testing.T) {
	l := loop.New(zerolog.Nop())
	l.Stop()

	b := new(mockBackend)
	bridge := NewBridge(b, l, zerolog.Nop())

	assert.Equal(t, false, bridge.Invoke(AppMinimize, nil))
	b.AssertNotCalled(t, "Minimize")
}

func TestBridgeRunsInLoop(t *testing.T) {
	l := loop.New(zerolog.Nop())
	go l.Run()
	t.Cleanup(l.Stop)

	b := new(mockBackend)
	b.On("Platform").Return("darwin")

	bridge := NewBridge(b, l, zerolog.Nop())
	assert.Equal(t, "darwin", bridge.Invoke(AppGetPlatform, nil))
	assert.Contains(t, bridge.Channels(), ProvidersToggle)
}
