// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// TrayIconDark - тёмная иконка для светлой панели.
//
//go:embed tray-icon-dark.png
var TrayIconDark []byte

// TrayIconLight - светлая иконка для тёмной панели.
//
//go:embed tray-icon-light.png
var TrayIconLight []byte

// TrayIcon иконка под тему: тёмной теме нужна светлая иконка.
func TrayIcon(dark bool) []byte {
	if dark {
		return TrayIconLight
	}
	return TrayIconDark
}
