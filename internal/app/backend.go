package app

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"chatbar/internal/accelerator"
	"chatbar/internal/config"
	"chatbar/internal/providers"
	"chatbar/internal/recorder"
	"chatbar/internal/shortcuts"
)

// Методы ниже обслуживают ipc.Bridge и вызываются из цикла событий.

// GetSetting значение одной настройки.
func (a *App) GetSetting(ctx context.Context, key string) (any, error) {
	return a.store.Get(ctx, key)
}

// SetSetting записывает настройку и применяет её.
func (a *App) SetSetting(ctx context.Context, key string, value any) error {
	if err := a.store.Set(ctx, key, value); err != nil {
		return err
	}
	a.applySetting(key)
	return nil
}

// SetAllSettings записывает несколько настроек одной записью.
func (a *App) SetAllSettings(ctx context.Context, values map[string]any) error {
	if err := a.store.SetAll(ctx, values); err != nil {
		return err
	}
	for _, key := range config.Keys() {
		if _, ok := values[key]; ok {
			a.applySetting(key)
		}
	}
	return nil
}

// GetAllSettings все настройки.
func (a *App) GetAllSettings(ctx context.Context) (map[string]any, error) {
	return a.store.GetAll(ctx)
}

// ResetSettings возвращает значения по умолчанию и применяет их.
func (a *App) ResetSettings(ctx context.Context) (map[string]any, error) {
	if _, err := a.store.Reset(ctx); err != nil {
		return nil, err
	}
	a.applyAll()
	a.notifier.Reset()
	a.log.Info().Msg("Настройки сброшены")
	return a.store.GetAll(ctx)
}

// Shortcuts текущее назначение горячих клавиш.
func (a *App) Shortcuts() map[string]string {
	out := make(map[string]string)
	for name, accel := range a.shortcuts.Bindings() {
		out[string(name)] = accel
	}
	return out
}

// UpdateShortcut назначает комбинацию действию и сохраняет назначение.
// Пустая строка снимает комбинацию.
func (a *App) UpdateShortcut(name, accel string) bool {
	if accel != "" {
		normalized, err := accelerator.Normalize(accel)
		if err != nil {
			a.log.Warn().Err(err).Str("accelerator", accel).Msg("Некорректная комбинация")
			return false
		}
		accel = normalized
	}

	var callbacks shortcuts.Callbacks
	if a.shortcuts.Registered() {
		callbacks = a.callbacks()
	}
	ok := a.shortcuts.UpdateOne(shortcuts.ActionID(name), accel, callbacks)

	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()
	if err := a.store.Set(ctx, config.KeyShortcuts, a.Shortcuts()); err != nil {
		a.log.Error().Err(err).Msg("Не удалось сохранить горячие клавиши")
		return false
	}
	if !ok {
		a.notifier.ShortcutFailed(accel)
	}
	return ok
}

// UnregisterShortcuts снимает все глобальные комбинации, пока идёт запись.
func (a *App) UnregisterShortcuts() {
	a.shortcuts.UnregisterAll()
}

// Minimize сворачивает окно.
func (a *App) Minimize() {
	a.window.Minimise()
}

// Hide скрывает окно.
func (a *App) Hide() {
	a.window.Hide()
}

// Close кнопка закрытия в интерфейсе: окно прячется, приложение продолжает работу.
func (a *App) Close() {
	a.window.HandleCloseRequest()
}

// Blur окно потеряло фокус.
func (a *App) Blur() {
	a.window.HandleBlur()
}

// Platform ОС для интерфейса.
func (a *App) Platform() string {
	return a.host.Platform()
}

// SetRecording поле записи получило или потеряло фокус.
func (a *App) SetRecording(active bool, action string) {
	if !active {
		a.recordTarget = ""
		a.recorder.Blur()
		a.resumeShortcuts()
		return
	}
	a.recordTarget = shortcuts.ActionID(action)
	a.recorder.Begin()
}

// RecordKey нажатие во время записи.
func (a *App) RecordKey(ev recorder.KeyEvent) (string, bool) {
	return a.recorder.KeyDown(ev)
}

// Tabs вкладки чатов.
func (a *App) Tabs(ctx context.Context) providers.Tabs {
	return providers.BuildTabs(a.store.Load(ctx))
}

// ToggleProvider включает или выключает вкладку чата.
func (a *App) ToggleProvider(ctx context.Context, index int) error {
	settings := a.store.Load(ctx)
	selected, err := providers.ToggleSelected(settings.SelectedProviders, index)
	if err != nil {
		return err
	}
	values := map[string]any{config.KeySelectedProviders: selected}
	// Новый чат появляется в конце порядка, если его там не было.
	if !slices.Contains(settings.ProviderOrder, index) {
		values[config.KeyProviderOrder] = append(slices.Clone(settings.ProviderOrder), index)
	}
	if err := a.SetAllSettings(ctx, values); err != nil {
		return fmt.Errorf("toggle provider %d: %w", index, err)
	}
	a.log.Debug().Ints("selected", selected).Strs("keys", slices.Sorted(maps.Keys(values))).Msg("Выбор чатов изменён")
	return nil
}
