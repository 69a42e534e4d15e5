// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Chatbar",
		"app_tooltip": "Chatbar - чаты с ИИ в трее",

		// Tray menu
		"tray_show_hide": "Показать/Скрыть",
		"tray_reload":    "Перезагрузить",
		"tray_devtools":  "Инструменты разработчика",
		"tray_about":     "О программе",
		"tray_reset":     "Сбросить настройки...",
		"tray_autostart": "Запускать при входе",
		"tray_quit":      "Выход",

		// Notifications
		"notify_shortcut_failed": "Не удалось назначить горячую клавишу",
		"notify_shortcut_hint":   "Комбинация занята другим приложением",
		"notify_reset":           "Настройки сброшены",
		"notify_error":           "Ошибка",

		// Dialogs
		"dialog_reset_title":   "Сброс настроек",
		"dialog_reset_confirm": "Вернуть все настройки к значениям по умолчанию?",
		"dialog_about_title":   "О программе",
		"dialog_about_text":    "Chatbar %s\nНастройки: %s",
		"dialog_error_title":   "Ошибка",
	},

	EN: {
		// App
		"app_name":    "Chatbar",
		"app_tooltip": "Chatbar - AI chats in your tray",

		// Tray menu
		"tray_show_hide": "Show/Hide",
		"tray_reload":    "Reload",
		"tray_devtools":  "Toggle Developer Tools",
		"tray_about":     "About",
		"tray_reset":     "Reset settings...",
		"tray_autostart": "Start at login",
		"tray_quit":      "Quit",

		// Notifications
		"notify_shortcut_failed": "Could not register shortcut",
		"notify_shortcut_hint":   "The combination is taken by another application",
		"notify_reset":           "Settings were reset",
		"notify_error":           "Error",

		// Dialogs
		"dialog_reset_title":   "Reset settings",
		"dialog_reset_confirm": "Restore all settings to their defaults?",
		"dialog_about_title":   "About",
		"dialog_about_text":    "Chatbar %s\nSettings: %s",
		"dialog_error_title":   "Error",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) bool {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; !ok {
		return false
	}
	current = lang
	return true
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// IsSupported reports whether lang has translations.
func IsSupported(lang string) bool {
	_, ok := translations[Language(lang)]
	return ok
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
