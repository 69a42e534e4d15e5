// Package app собирает компоненты приложения и запускает окно и трей.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"chatbar/embedded"
	"chatbar/frontend"
	"chatbar/internal/appstate"
	"chatbar/internal/autostart"
	"chatbar/internal/config"
	"chatbar/internal/hotkey"
	"chatbar/internal/i18n"
	"chatbar/internal/ipc"
	"chatbar/internal/logging"
	"chatbar/internal/loop"
	"chatbar/internal/notify"
	"chatbar/internal/recorder"
	"chatbar/internal/shortcuts"
	"chatbar/internal/tray"
	"chatbar/internal/window"
)

const (
	appID = "com.chatbar.app"

	// settingsTimeout сколько ждём чтения/записи настроек.
	settingsTimeout = 2 * time.Second
)

// Options параметры запуска.
type Options struct {
	SettingsPath string
	Version      string
	Logger       zerolog.Logger
}

// App главное приложение. Все поля, кроме loop и bridge, трогаются только из цикла событий.
type App struct {
	opts Options
	log  zerolog.Logger

	state     *appstate.State
	loop      *loop.Loop
	store     *config.Store
	host      *window.WailsHost
	window    *window.Controller
	facility  *hotkey.Facility
	shortcuts *shortcuts.Registry
	recorder  *recorder.Recorder
	router    *tray.Router
	systray   *tray.SystemTray
	notifier  *notify.Notifier
	autostart *autostart.Manager
	watcher   *config.Watcher
	bridge    *ipc.Bridge

	recordTarget shortcuts.ActionID
	quitOnce     sync.Once
}

// New создаёт приложение. Окно и трей появляются в Run.
func New(opts Options) (*App, error) {
	log := opts.Logger
	if opts.SettingsPath == "" {
		opts.SettingsPath = config.DefaultPath()
	}

	store := config.Open(opts.SettingsPath, logging.Component(log, "config"))

	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	settings := store.Load(ctx)

	// Инициализируем язык интерфейса из настроек
	if !i18n.SetLanguage(i18n.Language(settings.UILanguage)) {
		log.Warn().Str("lang", settings.UILanguage).Msg("Неизвестный язык интерфейса")
	}

	a := &App{
		opts:     opts,
		log:      log,
		state:    appstate.New(),
		loop:     loop.New(logging.Component(log, "loop")),
		store:    store,
		host:     window.NewWailsHost(logging.Component(log, "window")),
		facility: hotkey.NewFacility(logging.Component(log, "hotkey")),
		notifier: notify.New(settings.ShowNotifications),
	}

	a.window = window.NewController(a.host, store, a.state, logging.Component(log, "window"))
	a.shortcuts = shortcuts.New(a.facility, logging.Component(log, "shortcuts"))
	a.recorder = recorder.New(a.state, a.onShortcutCaptured, logging.Component(log, "recorder"))
	a.router = tray.NewRouter(tray.Actions{
		ToggleWindow:   a.window.Toggle,
		Reload:         a.window.Reload,
		ToggleDevTools: a.window.ToggleDevTools,
		Quit:           a.Quit,
	}, a.state, logging.Component(log, "tray"))
	a.systray = tray.NewSystemTray(
		i18n.T("app_name"),
		i18n.T("app_tooltip"),
		embedded.TrayIcon(settings.Theme == config.ThemeDark),
		a.loop.Post,
		logging.Component(log, "tray"),
	)

	am, err := autostart.New("chatbar", "", logging.Component(log, "autostart"))
	if err != nil {
		log.Warn().Err(err).Msg("Автозапуск недоступен")
	} else {
		a.autostart = am
	}

	a.bridge = ipc.NewBridge(a, a.loop, logging.Component(log, "ipc"))
	return a, nil
}

// Run показывает окно и блокируется до выхода.
func (a *App) Run() error {
	settings := a.settings()

	err := wails.Run(&options.App{
		Title:       i18n.T("app_name"),
		Width:       settings.Window.Width,
		Height:      settings.Window.Height,
		StartHidden: true,
		AssetServer: &assetserver.Options{
			Assets: frontend.Assets,
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: appID,
			OnSecondInstanceLaunch: func(options.SecondInstanceData) {
				a.log.Info().Msg("Повторный запуск, показываем окно")
				a.loop.Post(a.window.Show)
			},
		},
		OnStartup:     a.startup,
		OnShutdown:    a.shutdown,
		OnBeforeClose: a.beforeClose,
		Bind: []any{
			a.bridge,
		},
	})
	if err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (a *App) startup(ctx context.Context) {
	a.host.Attach(ctx, false)
	go a.loop.Run()

	a.loop.Post(func() {
		settings := a.settings()
		a.host.ApplyPosition(settings.Window)
		a.host.SetTheme(settings.Theme)
		a.registerShortcuts(settings)
		a.syncAutostart(settings.AutoStart)
	})

	go a.systray.Run(func() {
		a.loop.Post(a.trayReady)
	}, nil)

	watcher, err := a.store.Watch(func(settings config.AppSettings) {
		a.loop.Post(func() { a.reloadSettings(settings) })
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("Не удалось следить за файлом настроек")
	} else {
		a.watcher = watcher
	}

	a.log.Info().Str("version", a.opts.Version).Str("settings", a.store.Path()).Msg("Приложение запущено")
}

// beforeClose true отменяет закрытие окна.
func (a *App) beforeClose(context.Context) bool {
	prevent := false
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	if err := a.loop.Call(ctx, func() {
		prevent = a.window.HandleCloseRequest()
	}); err != nil {
		return false
	}
	return prevent
}

func (a *App) shutdown(context.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	// Закрытие окна без Quit: освобождаем ресурсы тем же путём.
	if err := a.loop.Call(ctx, a.teardown); err != nil {
		a.log.Debug().Err(err).Msg("Освобождение ресурсов через цикл событий не выполнено")
	}
	a.host.Detach()
	a.loop.Stop()
	a.log.Info().Msg("Приложение завершено")
}

// Quit завершает приложение. Вызывается из цикла событий.
func (a *App) Quit() {
	a.teardown()
	a.host.Quit()
}

func (a *App) teardown() {
	a.quitOnce.Do(func() {
		a.state.MarkQuitting()
		a.recorder.Reset()
		a.shortcuts.UnregisterAll()
		a.router.Cleanup()
		if a.watcher != nil {
			if err := a.watcher.Close(); err != nil {
				a.log.Warn().Err(err).Msg("Ошибка остановки наблюдения за настройками")
			}
		}
		a.systray.Quit()
		a.log.Debug().Msg("Ресурсы освобождены")
	})
}

func (a *App) settings() config.AppSettings {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	return a.store.Load(ctx)
}
