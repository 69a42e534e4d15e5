// Package config хранит настройки приложения в JSON-файле.
package config

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrUnknownKey настройка с таким именем не существует.
var ErrUnknownKey = errors.New("unknown setting")

// Имена настроек в файле.
const (
	KeyTheme             = "theme"
	KeyAutoStart         = "autoStart"
	KeyShowNotifications = "showNotifications"
	KeyShowInDock        = "showInDock"
	KeyHideOnBlur        = "hideOnBlur"
	KeyShortcuts         = "shortcuts"
	KeyWindow            = "window"
	KeyUILanguage        = "uiLanguage"
	KeyTrayClickBehavior = "trayClickBehavior"
	KeySelectedProviders = "selectedProviders"
	KeyProviderOrder     = "providerOrder"
	KeyDefaultProvider   = "defaultProvider"
	KeyLastTab           = "lastTab"
)

// Keys все известные настройки в порядке применения.
func Keys() []string {
	return []string{
		KeyTheme,
		KeyAutoStart,
		KeyShowNotifications,
		KeyShowInDock,
		KeyHideOnBlur,
		KeyShortcuts,
		KeyWindow,
		KeyUILanguage,
		KeyTrayClickBehavior,
		KeySelectedProviders,
		KeyProviderOrder,
		KeyDefaultProvider,
		KeyLastTab,
	}
}

// Theme тема оформления.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Размер окна по умолчанию.
const (
	DefaultWidth  = 400
	DefaultHeight = 500
)

// Window положение и размер окна. X и Y отсутствуют, пока окно ни разу не скрывали.
type Window struct {
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

// AppSettings типизированный снимок всех настроек.
type AppSettings struct {
	Theme             Theme             `json:"theme"`
	AutoStart         bool              `json:"autoStart"`
	ShowNotifications bool              `json:"showNotifications"`
	ShowInDock        bool              `json:"showInDock"`
	HideOnBlur        bool              `json:"hideOnBlur"`
	Shortcuts         map[string]string `json:"shortcuts"`
	Window            Window            `json:"window"`
	UILanguage        string            `json:"uiLanguage"`
	TrayClickBehavior string            `json:"trayClickBehavior"`
	SelectedProviders []int             `json:"selectedProviders"`
	ProviderOrder     []int             `json:"providerOrder"`
	DefaultProvider   int               `json:"defaultProvider"`
	LastTab           int               `json:"lastTab"`
}

// Defaults настройки по умолчанию.
func Defaults() AppSettings {
	return AppSettings{
		Theme:             ThemeLight,
		AutoStart:         false,
		ShowNotifications: true,
		ShowInDock:        false,
		HideOnBlur:        false,
		Shortcuts: map[string]string{
			"toggleWindow": "CommandOrControl+Shift+Space",
			"quit":         "CommandOrControl+Q",
		},
		Window: Window{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		UILanguage:        "en",
		TrayClickBehavior: "right-only",
		SelectedProviders: []int{0, 1, 2, 3, 4},
		ProviderOrder:     []int{0, 1, 2, 3, 4},
		DefaultProvider:   0,
		LastTab:           0,
	}
}

func (s AppSettings) clone() AppSettings {
	out := s
	out.Shortcuts = make(map[string]string, len(s.Shortcuts))
	for k, v := range s.Shortcuts {
		out.Shortcuts[k] = v
	}
	out.SelectedProviders = append([]int(nil), s.SelectedProviders...)
	out.ProviderOrder = append([]int(nil), s.ProviderOrder...)
	if s.Window.X != nil {
		x := *s.Window.X
		out.Window.X = &x
	}
	if s.Window.Y != nil {
		y := *s.Window.Y
		out.Window.Y = &y
	}
	return out
}

// DefaultPath путь к файлу настроек в каталоге пользователя.
// Если каталог не определить, файл лежит рядом с бинарником.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "chatbar", "settings.json")
	}

	execPath, err := os.Executable()
	if err == nil {
		// Резолвим симлинки
		if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = resolved
		}
		return filepath.Join(filepath.Dir(execPath), "settings.json")
	}
	return "settings.json"
}
