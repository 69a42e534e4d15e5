// Package notify предоставляет системные уведомления.
package notify

import (
	"fmt"
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"chatbar/internal/i18n"
)

// send подменяется в тестах.
var send = beeep.Notify

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled atomic.Bool
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Enabled включены ли уведомления.
func (n *Notifier) Enabled() bool {
	return n.enabled.Load()
}

// ShortcutFailed горячую клавишу не удалось зарегистрировать.
func (n *Notifier) ShortcutFailed(accel string) {
	n.notify(i18n.T("notify_shortcut_failed"), fmt.Sprintf("%s: %s", accel, i18n.T("notify_shortcut_hint")))
}

// Reset настройки сброшены.
func (n *Notifier) Reset() {
	n.notify(i18n.T("notify_reset"), "")
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled.Load() {
		return
	}
	appName := i18n.T("app_name")
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = send(appName+": "+title, message, "")
	} else {
		_ = send(appName, message, "")
	}
}
