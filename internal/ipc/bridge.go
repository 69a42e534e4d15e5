// Package ipc принимает запросы веб-интерфейса и выполняет их в цикле событий.
//
// Каждый канал отвечает значением или признаком успеха. Ошибки не пересекают
// границу: вместо них интерфейс получает false или nil.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"chatbar/internal/providers"
	"chatbar/internal/recorder"
)

// Каналы.
const (
	SettingsGet    = "settings:get"
	SettingsSet    = "settings:set"
	SettingsSetAll = "settings:setAll"
	SettingsGetAll = "settings:getAll"
	SettingsReset  = "settings:reset"

	ShortcutsGet        = "shortcuts:get"
	ShortcutsUpdate     = "shortcuts:update"
	ShortcutsUnregister = "shortcuts:unregister"

	AppMinimize    = "app:minimize"
	AppHide        = "app:hide"
	AppClose       = "app:close"
	AppGetPlatform = "app:getPlatform"
	AppBlur        = "app:blur"

	HotkeyRecording = "hotkey:recording"
	HotkeyKeyDown   = "hotkey:keydown"

	ProvidersList   = "providers:list"
	ProvidersTabs   = "providers:tabs"
	ProvidersToggle = "providers:toggle"
)

// ErrUnknownChannel канал не зарегистрирован.
var ErrUnknownChannel = errors.New("unknown channel")

// DefaultTimeout сколько запрос ждёт цикл событий.
const DefaultTimeout = 5 * time.Second

// Backend операции приложения. Все методы вызываются из цикла событий.
type Backend interface {
	GetSetting(ctx context.Context, key string) (any, error)
	SetSetting(ctx context.Context, key string, value any) error
	SetAllSettings(ctx context.Context, values map[string]any) error
	GetAllSettings(ctx context.Context) (map[string]any, error)
	ResetSettings(ctx context.Context) (map[string]any, error)

	Shortcuts() map[string]string
	UpdateShortcut(name, accel string) bool
	UnregisterShortcuts()

	Minimize()
	Hide()
	Close()
	Blur()
	Platform() string

	SetRecording(active bool, action string)
	RecordKey(ev recorder.KeyEvent) (string, bool)

	Tabs(ctx context.Context) providers.Tabs
	ToggleProvider(ctx context.Context, index int) error
}

// Caller выполняет функцию в цикле событий и ждёт её завершения.
type Caller interface {
	Call(ctx context.Context, fn func()) error
}

type handler func(ctx context.Context, args []json.RawMessage) (any, error)

type route struct {
	fn      handler
	failure any // ответ при ошибке
}

// Bridge привязывается к окну и раздаёт запросы по каналам.
type Bridge struct {
	backend Backend
	loop    Caller
	timeout time.Duration
	routes  map[string]route
	log     zerolog.Logger
}

// NewBridge создаёт мост.
func NewBridge(backend Backend, loop Caller, log zerolog.Logger) *Bridge {
	b := &Bridge{
		backend: backend,
		loop:    loop,
		timeout: DefaultTimeout,
		log:     log,
	}
	b.routes = b.buildRoutes()
	return b
}

// Channels список каналов.
func (b *Bridge) Channels() []string {
	out := make([]string, 0, len(b.routes))
	for name := range b.routes {
		out = append(out, name)
	}
	return out
}

// Invoke выполняет запрос. Доступен из интерфейса как window.go.ipc.Bridge.Invoke.
func (b *Bridge) Invoke(channel string, args []json.RawMessage) any {
	r, ok := b.routes[channel]
	if !ok {
		b.log.Warn().Str("channel", channel).Err(ErrUnknownChannel).Msg("Запрос отклонён")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var (
		result any
		err    error
	)
	callErr := b.loop.Call(ctx, func() {
		result, err = r.fn(ctx, args)
	})
	if callErr != nil {
		err = callErr
	}
	if err != nil {
		b.log.Warn().Str("channel", channel).Err(err).Msg("Запрос не выполнен")
		return r.failure
	}
	return result
}

func (b *Bridge) buildRoutes() map[string]route {
	ok := func(fn func()) handler {
		return func(context.Context, []json.RawMessage) (any, error) {
			fn()
			return true, nil
		}
	}

	return map[string]route{
		SettingsGet: {fn: func(ctx context.Context, args []json.RawMessage) (any, error) {
			key, err := arg[string](args, 0)
			if err != nil {
				return nil, err
			}
			return b.backend.GetSetting(ctx, key)
		}},
		SettingsSet: {failure: false, fn: func(ctx context.Context, args []json.RawMessage) (any, error) {
			key, err := arg[string](args, 0)
			if err != nil {
				return nil, err
			}
			value, err := arg[any](args, 1)
			if err != nil {
				return nil, err
			}
			return true, b.backend.SetSetting(ctx, key, value)
		}},
		SettingsSetAll: {failure: false, fn: func(ctx context.Context, args []json.RawMessage) (any, error) {
			values, err := arg[map[string]any](args, 0)
			if err != nil {
				return nil, err
			}
			return true, b.backend.SetAllSettings(ctx, values)
		}},
		SettingsGetAll: {fn: func(ctx context.Context, _ []json.RawMessage) (any, error) {
			return b.backend.GetAllSettings(ctx)
		}},
		SettingsReset: {fn: func(ctx context.Context, _ []json.RawMessage) (any, error) {
			return b.backend.ResetSettings(ctx)
		}},

		ShortcutsGet: {fn: func(context.Context, []json.RawMessage) (any, error) {
			return b.backend.Shortcuts(), nil
		}},
		ShortcutsUpdate: {failure: false, fn: func(_ context.Context, args []json.RawMessage) (any, error) {
			name, err := arg[string](args, 0)
			if err != nil {
				return nil, err
			}
			accel, err := arg[string](args, 1)
			if err != nil {
				return nil, err
			}
			return b.backend.UpdateShortcut(name, accel), nil
		}},
		ShortcutsUnregister: {failure: false, fn: ok(b.backend.UnregisterShortcuts)},

		AppMinimize: {failure: false, fn: ok(b.backend.Minimize)},
		AppHide:     {failure: false, fn: ok(b.backend.Hide)},
		AppClose:    {failure: false, fn: ok(b.backend.Close)},
		AppBlur:     {failure: false, fn: ok(b.backend.Blur)},
		AppGetPlatform: {fn: func(context.Context, []json.RawMessage) (any, error) {
			return b.backend.Platform(), nil
		}},

		HotkeyRecording: {failure: false, fn: func(_ context.Context, args []json.RawMessage) (any, error) {
			active, err := arg[bool](args, 0)
			if err != nil {
				return nil, err
			}
			// Второй аргумент: действие, для которого записывается комбинация.
			var action string
			if len(args) > 1 {
				if action, err = arg[string](args, 1); err != nil {
					return nil, err
				}
			}
			b.backend.SetRecording(active, action)
			return true, nil
		}},
		HotkeyKeyDown: {fn: func(_ context.Context, args []json.RawMessage) (any, error) {
			ev, err := arg[recorder.KeyEvent](args, 0)
			if err != nil {
				return nil, err
			}
			if accel, done := b.backend.RecordKey(ev); done {
				return accel, nil
			}
			return nil, nil
		}},

		ProvidersList: {fn: func(context.Context, []json.RawMessage) (any, error) {
			return providers.Registry, nil
		}},
		ProvidersTabs: {fn: func(ctx context.Context, _ []json.RawMessage) (any, error) {
			return b.backend.Tabs(ctx), nil
		}},
		ProvidersToggle: {failure: false, fn: func(ctx context.Context, args []json.RawMessage) (any, error) {
			index, err := arg[int](args, 0)
			if err != nil {
				return nil, err
			}
			return true, b.backend.ToggleProvider(ctx, index)
		}},
	}
}

// arg декодирует i-й аргумент запроса.
func arg[T any](args []json.RawMessage, i int) (T, error) {
	var v T
	if i >= len(args) {
		return v, fmt.Errorf("missing argument %d", i)
	}
	if err := json.Unmarshal(args[i], &v); err != nil {
		return v, fmt.Errorf("argument %d: %w", i, err)
	}
	return v, nil
}
