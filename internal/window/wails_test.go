package window

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"chatbar/internal/config"
)

func stubRuntime(t *testing.T) *[]string {
	t.Helper()
	var calls []string
	record := func(name string) func(context.Context) {
		return func(context.Context) { calls = append(calls, name) }
	}

	prevShow, prevHide := runtimeWindowShowFn, runtimeWindowHideFn
	prevGetSize, prevGetPos, prevSetPos := runtimeWindowGetSizeFn, runtimeWindowGetPositionFn, runtimeWindowSetPositionFn
	prevDark, prevLight, prevSystem := runtimeWindowSetDarkThemeFn, runtimeWindowSetLightThemeFn, runtimeWindowSetSystemThemeFn
	prevAppHide, prevAppShow, prevEmit, prevEnv := runtimeHideFn, runtimeShowFn, runtimeEventsEmitFn, runtimeEnvironmentFn
	t.Cleanup(func() {
		runtimeWindowShowFn, runtimeWindowHideFn = prevShow, prevHide
		runtimeWindowGetSizeFn, runtimeWindowGetPositionFn, runtimeWindowSetPositionFn = prevGetSize, prevGetPos, prevSetPos
		runtimeWindowSetDarkThemeFn, runtimeWindowSetLightThemeFn, runtimeWindowSetSystemThemeFn = prevDark, prevLight, prevSystem
		runtimeHideFn, runtimeShowFn, runtimeEventsEmitFn, runtimeEnvironmentFn = prevAppHide, prevAppShow, prevEmit, prevEnv
	})

	runtimeWindowShowFn = record("WindowShow")
	runtimeWindowHideFn = record("WindowHide")
	runtimeWindowSetDarkThemeFn = record("Dark")
	runtimeWindowSetLightThemeFn = record("Light")
	runtimeWindowSetSystemThemeFn = record("System")
	runtimeHideFn = record("Hide")
	runtimeShowFn = record("Show")
	runtimeWindowGetSizeFn = func(context.Context) (int, int) { return 420, 600 }
	runtimeWindowGetPositionFn = func(context.Context) (int, int) { return 100, 50 }
	runtimeWindowSetPositionFn = func(_ context.Context, x, y int) {
		calls = append(calls, "SetPosition")
	}
	runtimeEventsEmitFn = func(_ context.Context, name string, _ ...interface{}) {
		calls = append(calls, "Emit:"+name)
	}
	runtimeEnvironmentFn = func(context.Context) runtime.EnvironmentInfo {
		return runtime.EnvironmentInfo{Platform: "darwin"}
	}
	return &calls
}

func TestWailsHostBeforeAttach(t *testing.T) {
	calls := stubRuntime(t)
	h := NewWailsHost(zerolog.Nop())

	h.ShowWindow()
	h.HideWindow()
	h.Emit("x")
	_, ok := h.Bounds()

	assert.False(t, ok)
	assert.False(t, h.IsVisible())
	assert.Empty(t, *calls)
}

func TestWailsHostVisibility(t *testing.T) {
	calls := stubRuntime(t)
	h := NewWailsHost(zerolog.Nop())
	h.goos = "linux"
	h.Attach(context.Background(), false)

	h.ShowWindow()
	assert.True(t, h.IsVisible())
	h.HideWindow()
	assert.False(t, h.IsVisible())

	b, ok := h.Bounds()
	assert.True(t, ok)
	assert.Equal(t, Bounds{X: 100, Y: 50, Width: 420, Height: 600}, b)
	assert.Equal(t, []string{"WindowShow", "WindowHide"}, *calls)

	h.Detach()
	assert.False(t, h.IsVisible())
}

func TestWailsHostDarwinShowsApp(t *testing.T) {
	calls := stubRuntime(t)
	h := NewWailsHost(zerolog.Nop())
	h.goos = "darwin"
	h.Attach(context.Background(), false)

	h.ShowWindow()
	h.HideApp()

	assert.Equal(t, []string{"Show", "WindowShow", "Hide"}, *calls)
	assert.Equal(t, "darwin", h.Platform())
}

func TestWailsHostThemeAndPosition(t *testing.T) {
	calls := stubRuntime(t)
	h := NewWailsHost(zerolog.Nop())
	h.Attach(context.Background(), true)

	h.SetTheme(config.ThemeDark)
	h.SetTheme(config.ThemeLight)
	h.SetTheme(config.ThemeSystem)
	h.ApplyPosition(config.Window{Width: 400, Height: 500})
	x, y := 10, 20
	h.ApplyPosition(config.Window{X: &x, Y: &y, Width: 400, Height: 500})
	h.Emit("hotkey:recording", true)

	assert.Equal(t, []string{"Dark", "Light", "System", "SetPosition", "Emit:hotkey:recording"}, *calls)
}
