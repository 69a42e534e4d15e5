package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

// newBackend .desktop-файл в $XDG_CONFIG_HOME/autostart.
func newBackend(name, exe string) (backend, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}

	content := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec="%s"
Terminal=false
X-GNOME-Autostart-enabled=true
`, name, exe)

	return fileEntry{
		path:    filepath.Join(dir, "autostart", name+".desktop"),
		content: []byte(content),
	}, nil
}
