// Package dialog предоставляет нативные диалоги приложения.
package dialog

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"

	"chatbar/internal/i18n"
)

// Подменяются в тестах.
var (
	question = zenity.Question
	info     = zenity.Info
	showErr  = zenity.Error
)

// ConfirmReset спрашивает, сбросить ли настройки.
// Отмена не считается ошибкой: возвращается false, nil.
func ConfirmReset() (bool, error) {
	err := question(
		i18n.T("dialog_reset_confirm"),
		zenity.Title(i18n.T("dialog_reset_title")),
		zenity.WarningIcon,
	)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, zenity.ErrCanceled):
		return false, nil
	default:
		return false, err
	}
}

// ShowAbout показывает окно "О программе".
func ShowAbout(version, settingsPath string) {
	ShowInfo(i18n.T("dialog_about_title"), fmt.Sprintf(i18n.T("dialog_about_text"), version, settingsPath))
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	_ = info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(message string) {
	_ = showErr(message, zenity.Title(i18n.T("dialog_error_title")))
}
