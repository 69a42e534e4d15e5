// Package window управляет видимостью главного окна.
package window

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"chatbar/internal/appstate"
	"chatbar/internal/config"
)

const saveTimeout = 2 * time.Second

// Bounds положение и размер окна.
type Bounds struct {
	X, Y, Width, Height int
}

// Host окно с веб-содержимым.
type Host interface {
	ShowWindow()
	HideWindow()
	IsVisible() bool
	// Bounds false, если окна ещё нет.
	Bounds() (Bounds, bool)
	Reload()
	ToggleDevTools()
	IsDevToolsOpened() bool
	Minimise()
}

// Platform особенности macOS: скрытие приложения из дока и рабочие столы.
type Platform interface {
	HideApp()
	SetVisibleOnAllWorkspaces(visible bool)
}

// Settings то, что контроллеру нужно от хранилища настроек.
type Settings interface {
	Load(ctx context.Context) config.AppSettings
	SaveWindow(ctx context.Context, w config.Window) error
}

// Controller показывает и скрывает окно. Вызывается только из цикла событий.
type Controller struct {
	host     Host
	platform Platform
	settings Settings
	state    *appstate.State
	goos     string
	log      zerolog.Logger
}

// Option настройка контроллера.
type Option func(*Controller)

// WithGOOS подменяет платформу (для тестов).
func WithGOOS(goos string) Option {
	return func(c *Controller) { c.goos = goos }
}

// WithPlatform задаёт платформенные операции явно.
func WithPlatform(p Platform) Option {
	return func(c *Controller) { c.platform = p }
}

// NewController создаёт контроллер. Если host умеет Platform, он используется по умолчанию.
func NewController(host Host, settings Settings, state *appstate.State, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		host:     host,
		settings: settings,
		state:    state,
		goos:     runtime.GOOS,
		log:      log,
	}
	if p, ok := host.(Platform); ok {
		c.platform = p
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Visible видно ли окно.
func (c *Controller) Visible() bool {
	return c.host.IsVisible()
}

// Toggle скрывает видимое окно и показывает скрытое. Во время записи горячей клавиши ничего не делает.
func (c *Controller) Toggle() {
	if c.state.Recording() {
		c.log.Debug().Msg("Идёт запись горячей клавиши, переключение окна пропущено")
		return
	}
	if c.host.IsVisible() {
		c.Hide()
		return
	}
	c.Show()
}

// Show показывает окно.
func (c *Controller) Show() {
	c.host.ShowWindow()
	if c.goos == "darwin" && c.platform != nil {
		c.platform.SetVisibleOnAllWorkspaces(true)
	}
	c.log.Debug().Msg("Окно показано")
}

// Hide скрывает окно и запоминает его положение.
func (c *Controller) Hide() {
	if !c.host.IsVisible() {
		return
	}
	bounds, ok := c.host.Bounds()
	c.host.HideWindow()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if ok {
		w := config.Window{X: &bounds.X, Y: &bounds.Y, Width: bounds.Width, Height: bounds.Height}
		if err := c.settings.SaveWindow(ctx, w); err != nil {
			c.log.Warn().Err(err).Msg("Не удалось сохранить положение окна")
		}
	}

	if c.goos == "darwin" && c.platform != nil && !c.state.Quitting() {
		if !c.settings.Load(ctx).ShowInDock {
			c.platform.HideApp()
		}
	}
	c.log.Debug().Msg("Окно скрыто")
}

// HandleBlur скрывает окно при потере фокуса, если включено hideOnBlur.
func (c *Controller) HandleBlur() {
	if c.state.Recording() || c.host.IsDevToolsOpened() || !c.host.IsVisible() {
		return
	}
	if !c.settings.Load(context.Background()).HideOnBlur {
		return
	}
	c.Hide()
}

// HandleCloseRequest вызывается перед закрытием окна.
// true: закрытие отменено и окно скрыто; false: приложение завершается.
func (c *Controller) HandleCloseRequest() bool {
	if c.state.Quitting() {
		return false
	}
	c.Hide()
	return true
}

// Reload перезагружает содержимое окна.
func (c *Controller) Reload() {
	c.host.Reload()
}

// ToggleDevTools открывает/закрывает инструменты разработчика.
func (c *Controller) ToggleDevTools() {
	c.host.ToggleDevTools()
}

// Minimise сворачивает окно.
func (c *Controller) Minimise() {
	c.host.Minimise()
}
