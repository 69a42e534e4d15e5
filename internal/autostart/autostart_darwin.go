package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// newBackend LaunchAgent в ~/Library/LaunchAgents, подхватывается при следующем входе.
func newBackend(name, exe string) (backend, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home: %w", err)
	}

	label := "com." + strings.ToLower(name) + ".app"
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, label, exe)

	return fileEntry{
		path:    filepath.Join(home, "Library", "LaunchAgents", label+".plist"),
		content: []byte(content),
	}, nil
}
