package window

import (
	"context"
	goruntime "runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"chatbar/internal/config"
)

var (
	runtimeWindowShowFn           = runtime.WindowShow
	runtimeWindowHideFn           = runtime.WindowHide
	runtimeWindowGetSizeFn        = runtime.WindowGetSize
	runtimeWindowGetPositionFn    = runtime.WindowGetPosition
	runtimeWindowSetPositionFn    = runtime.WindowSetPosition
	runtimeWindowReloadFn         = runtime.WindowReload
	runtimeWindowMinimiseFn       = runtime.WindowMinimise
	runtimeWindowSetDarkThemeFn   = runtime.WindowSetDarkTheme
	runtimeWindowSetLightThemeFn  = runtime.WindowSetLightTheme
	runtimeWindowSetSystemThemeFn = runtime.WindowSetSystemDefaultTheme
	runtimeHideFn                 = runtime.Hide
	runtimeShowFn                 = runtime.Show
	runtimeQuitFn                 = runtime.Quit
	runtimeEventsEmitFn           = runtime.EventsEmit
	runtimeEnvironmentFn          = runtime.Environment
)

// WailsHost окно wails. До Attach все операции только логируются.
type WailsHost struct {
	mu      sync.Mutex
	ctx     context.Context
	visible bool
	goos    string
	log     zerolog.Logger
}

// NewWailsHost создаёт хост без окна.
func NewWailsHost(log zerolog.Logger) *WailsHost {
	return &WailsHost{goos: goruntime.GOOS, log: log}
}

// Attach вызывается из OnStartup, когда у wails появился контекст.
func (h *WailsHost) Attach(ctx context.Context, visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctx = ctx
	h.visible = visible
}

// Detach вызывается из OnShutdown.
func (h *WailsHost) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctx = nil
	h.visible = false
}

func (h *WailsHost) runtimeContext() (context.Context, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx == nil {
		h.log.Warn().Msg("Окно ещё не создано")
		return nil, false
	}
	return h.ctx, true
}

func (h *WailsHost) setVisible(v bool) {
	h.mu.Lock()
	h.visible = v
	h.mu.Unlock()
}

// ShowWindow показывает окно.
func (h *WailsHost) ShowWindow() {
	ctx, ok := h.runtimeContext()
	if !ok {
		return
	}
	if h.goos == "darwin" {
		runtimeShowFn(ctx)
	}
	runtimeWindowShowFn(ctx)
	h.setVisible(true)
}

// HideWindow скрывает окно.
func (h *WailsHost) HideWindow() {
	ctx, ok := h.runtimeContext()
	if !ok {
		return
	}
	runtimeWindowHideFn(ctx)
	h.setVisible(false)
}

// IsVisible видимость по последней команде.
func (h *WailsHost) IsVisible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctx != nil && h.visible
}

// Bounds текущие положение и размер.
func (h *WailsHost) Bounds() (Bounds, bool) {
	ctx, ok := h.runtimeContext()
	if !ok {
		return Bounds{}, false
	}
	x, y := runtimeWindowGetPositionFn(ctx)
	w, hh := runtimeWindowGetSizeFn(ctx)
	return Bounds{X: x, Y: y, Width: w, Height: hh}, true
}

// ApplyPosition ставит окно в сохранённое место. Только при создании окна.
func (h *WailsHost) ApplyPosition(w config.Window) {
	if w.X == nil || w.Y == nil {
		return
	}
	ctx, ok := h.runtimeContext()
	if !ok {
		return
	}
	runtimeWindowSetPositionFn(ctx, *w.X, *w.Y)
}

// Reload перезагружает страницу.
func (h *WailsHost) Reload() {
	if ctx, ok := h.runtimeContext(); ok {
		runtimeWindowReloadFn(ctx)
	}
}

// ToggleDevTools в wails v2 инспектор открывается только из контекстного меню окна в debug-сборке.
func (h *WailsHost) ToggleDevTools() {
	h.log.Warn().Msg("Инструменты разработчика доступны только в debug-сборке (правый клик в окне)")
}

// IsDevToolsOpened wails не сообщает о состоянии инспектора.
func (h *WailsHost) IsDevToolsOpened() bool {
	return false
}

// Minimise сворачивает окно.
func (h *WailsHost) Minimise() {
	if ctx, ok := h.runtimeContext(); ok {
		runtimeWindowMinimiseFn(ctx)
	}
}

// HideApp скрывает приложение целиком (macOS: пропадает из переключателя).
func (h *WailsHost) HideApp() {
	if ctx, ok := h.runtimeContext(); ok {
		runtimeHideFn(ctx)
	}
}

// SetVisibleOnAllWorkspaces в wails v2 нет такой настройки окна.
func (h *WailsHost) SetVisibleOnAllWorkspaces(visible bool) {
	h.log.Debug().Bool("visible", visible).Msg("Показ на всех рабочих столах не поддерживается")
}

// SetTheme применяет тему к окну.
func (h *WailsHost) SetTheme(theme config.Theme) {
	ctx, ok := h.runtimeContext()
	if !ok {
		return
	}
	switch theme {
	case config.ThemeDark:
		runtimeWindowSetDarkThemeFn(ctx)
	case config.ThemeLight:
		runtimeWindowSetLightThemeFn(ctx)
	default:
		runtimeWindowSetSystemThemeFn(ctx)
	}
}

// Emit отправляет событие в веб-интерфейс.
func (h *WailsHost) Emit(event string, data ...any) {
	if ctx, ok := h.runtimeContext(); ok {
		runtimeEventsEmitFn(ctx, event, data...)
	}
}

// Quit завершает цикл wails.
func (h *WailsHost) Quit() {
	if ctx, ok := h.runtimeContext(); ok {
		runtimeQuitFn(ctx)
	}
}

// Platform платформа по данным wails (или runtime.GOOS без окна).
func (h *WailsHost) Platform() string {
	h.mu.Lock()
	ctx := h.ctx
	h.mu.Unlock()
	if ctx == nil {
		return h.goos
	}
	if p := runtimeEnvironmentFn(ctx).Platform; p != "" {
		return p
	}
	return h.goos
}
