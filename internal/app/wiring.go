package app

import (
	"context"

	"chatbar/embedded"
	"chatbar/internal/config"
	"chatbar/internal/dialog"
	"chatbar/internal/i18n"
	"chatbar/internal/shortcuts"
	"chatbar/internal/tray"
)

// callbacks обработчики глобальных горячих клавиш. Срабатывают в горутине
// hotkey, поэтому только ставят задачу в цикл событий.
func (a *App) callbacks() shortcuts.Callbacks {
	post := func(fn func()) func() {
		return func() {
			a.loop.Post(func() {
				if a.state.Recording() {
					a.log.Debug().Msg("Идёт запись горячей клавиши, действие пропущено")
					return
				}
				fn()
			})
		}
	}
	return shortcuts.Callbacks{
		shortcuts.ActionToggleWindow: post(a.window.Toggle),
		shortcuts.ActionQuit:         post(a.Quit),
	}
}

func bindingsFrom(m map[string]string) []shortcuts.Binding {
	out := make([]shortcuts.Binding, 0, len(m))
	// Порядок по умолчанию, затем остальные
	seen := make(map[string]bool)
	for _, b := range shortcuts.DefaultBindings() {
		if accel, ok := m[string(b.Name)]; ok {
			out = append(out, shortcuts.Binding{Name: b.Name, Accelerator: accel})
			seen[string(b.Name)] = true
		}
	}
	for name, accel := range m {
		if !seen[name] {
			out = append(out, shortcuts.Binding{Name: shortcuts.ActionID(name), Accelerator: accel})
		}
	}
	return out
}

func (a *App) registerShortcuts(settings config.AppSettings) {
	if !a.shortcuts.RegisterAll(bindingsFrom(settings.Shortcuts), a.callbacks()) {
		a.reportShortcutFailure()
	}
}

// reportShortcutFailure уведомление или, если уведомления выключены, диалог.
func (a *App) reportShortcutFailure() {
	var failed []string
	for name, accel := range a.shortcuts.Bindings() {
		if accel != "" && !a.shortcuts.IsRegistered(accel) {
			failed = append(failed, string(name)+": "+accel)
		}
	}
	for _, f := range failed {
		if a.notifier.Enabled() {
			a.notifier.ShortcutFailed(f)
			continue
		}
		go dialog.ShowError(i18n.T("notify_shortcut_failed") + "\n" + f)
	}
}

// trayReady иконка создана: подключаем маршрутизатор кликов.
func (a *App) trayReady() {
	settings := a.settings()
	policy := a.clickBehavior(settings.TrayClickBehavior)

	a.router.Initialize(a.systray, policy)
	a.attachLeftClick(policy)
	a.router.UpdateContextMenu(a.customItems(settings))
}

// attachLeftClick в right-only левый клик показывает и скрывает окно.
// Вызывается после маршрутизатора: режимы left-* снимают этот обработчик.
func (a *App) attachLeftClick(policy tray.ClickBehavior) {
	if policy.TakesOverLeftClick() || a.systray.ListenerCount(tray.EventClick) > 0 {
		return
	}
	a.systray.On(tray.EventClick, a.window.Toggle)
}

func (a *App) clickBehavior(s string) tray.ClickBehavior {
	policy, err := tray.ParseClickBehavior(s)
	if err != nil {
		a.log.Warn().Err(err).Msg("Поведение кликов по умолчанию")
		return tray.DefaultClickBehavior
	}
	return policy
}

func (a *App) setClickBehavior(policy tray.ClickBehavior) {
	a.router.SetClickBehavior(policy)
	a.attachLeftClick(policy)
}

// customItems пункты меню приложения поверх базовых.
func (a *App) customItems(settings config.AppSettings) []tray.MenuItem {
	autoStart := settings.AutoStart
	return []tray.MenuItem{
		{Label: i18n.T("tray_about"), Click: func() {
			go dialog.ShowAbout(a.opts.Version, a.store.Path())
		}},
		{Label: i18n.T("tray_autostart"), Checked: &autoStart, Disabled: a.autostart == nil, Click: func() {
			ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
			defer cancel()
			if err := a.SetSetting(ctx, config.KeyAutoStart, !a.settings().AutoStart); err != nil {
				a.log.Warn().Err(err).Msg("Не удалось переключить автозапуск")
			}
		}},
		{Label: i18n.T("tray_reset"), Click: a.confirmReset},
	}
}

// confirmReset диалог блокирующий, поэтому ждём его вне цикла событий.
func (a *App) confirmReset() {
	go func() {
		ok, err := dialog.ConfirmReset()
		if err != nil {
			a.log.Warn().Err(err).Msg("Диалог сброса недоступен")
			return
		}
		if !ok {
			return
		}
		a.loop.Post(func() {
			ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
			defer cancel()
			if _, err := a.ResetSettings(ctx); err != nil {
				a.log.Error().Err(err).Msg("Не удалось сбросить настройки")
				a.notifier.Error(err.Error())
			}
		})
	}()
}

// reloadSettings файл настроек изменили снаружи. Наблюдатель уже перечитал
// его в Store, поэтому здесь только применяем.
func (a *App) reloadSettings(settings config.AppSettings) {
	a.log.Info().
		Str("theme", string(settings.Theme)).
		Str("trayClickBehavior", settings.TrayClickBehavior).
		Msg("Применяем настройки, изменённые извне")
	a.applyAll()
}

func (a *App) applyAll() {
	for _, key := range config.Keys() {
		a.applySetting(key)
	}
}

// applySetting применяет записанное значение. Вызывается только после
// успешной записи, чтобы состояние на экране не расходилось с файлом.
func (a *App) applySetting(key string) {
	settings := a.settings()

	switch key {
	case config.KeyTheme:
		a.router.SetImage(embedded.TrayIcon(settings.Theme == config.ThemeDark))
		a.host.SetTheme(settings.Theme)

	case config.KeyShortcuts:
		partial := make(map[shortcuts.ActionID]string, len(settings.Shortcuts))
		for name, accel := range settings.Shortcuts {
			partial[shortcuts.ActionID(name)] = accel
		}
		if !a.shortcuts.UpdateAll(partial, a.callbacks()) {
			a.reportShortcutFailure()
		}

	case config.KeyAutoStart:
		a.syncAutostart(settings.AutoStart)
		a.router.UpdateContextMenu(a.customItems(settings))

	case config.KeyShowNotifications:
		a.notifier.SetEnabled(settings.ShowNotifications)

	case config.KeyUILanguage:
		i18n.SetLanguage(i18n.Language(settings.UILanguage))
		a.router.UpdateContextMenu(a.customItems(settings))
		a.router.Refresh()

	case config.KeyTrayClickBehavior:
		a.setClickBehavior(a.clickBehavior(settings.TrayClickBehavior))

	case config.KeySelectedProviders, config.KeyProviderOrder, config.KeyDefaultProvider:
		a.host.Emit("providers:changed")
	}
}

func (a *App) syncAutostart(on bool) {
	if a.autostart == nil {
		return
	}
	if err := a.autostart.Set(on); err != nil {
		a.log.Warn().Err(err).Bool("enabled", on).Msg("Не удалось изменить автозапуск")
	}
}

// onShortcutCaptured запись завершилась: назначаем комбинацию выбранному действию.
func (a *App) onShortcutCaptured(accel string) {
	target := a.recordTarget
	a.recordTarget = ""
	if target == "" {
		a.resumeShortcuts()
		return
	}
	a.UpdateShortcut(string(target), accel)
	a.resumeShortcuts()
}

// resumeShortcuts возвращает регистрацию, снятую на время записи.
func (a *App) resumeShortcuts() {
	if a.shortcuts.Registered() || a.state.Quitting() {
		return
	}
	a.registerShortcuts(a.settings())
}
