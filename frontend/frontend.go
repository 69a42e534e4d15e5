// Package frontend встраивает собранный веб-интерфейс.
package frontend

import "embed"

// Assets содержимое dist для сервера ресурсов wails.
//
//go:embed all:dist
var Assets embed.FS
