package config

import (
	"encoding/json"
	"fmt"

	"chatbar/internal/accelerator"
	"chatbar/internal/i18n"
	"chatbar/internal/tray/policy"
)

// validate проверяет значение настройки до записи.
func validate(key string, raw json.RawMessage) error {
	switch key {
	case KeyTheme:
		var v Theme
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch v {
		case ThemeLight, ThemeDark, ThemeSystem:
			return nil
		}
		return fmt.Errorf("%s: unknown theme %q", key, v)

	case KeyAutoStart, KeyShowNotifications, KeyShowInDock, KeyHideOnBlur:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil

	case KeyShortcuts:
		var v map[string]string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		for name, accel := range v {
			if accel == "" {
				continue
			}
			if _, err := accelerator.Normalize(accel); err != nil {
				return fmt.Errorf("%s.%s: %w", key, name, err)
			}
		}
		return nil

	case KeyWindow:
		var v Window
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("%s: size must be positive, got %dx%d", key, v.Width, v.Height)
		}
		return nil

	case KeyUILanguage:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if !i18n.IsSupported(v) {
			return fmt.Errorf("%s: unsupported language %q", key, v)
		}
		return nil

	case KeyTrayClickBehavior:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if _, err := policy.Parse(v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil

	case KeySelectedProviders, KeyProviderOrder:
		var v []int
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == KeySelectedProviders && len(v) == 0 {
			return fmt.Errorf("%s: at least one provider must stay selected", key)
		}
		for _, i := range v {
			if i < 0 {
				return fmt.Errorf("%s: negative index %d", key, i)
			}
		}
		return nil

	case KeyDefaultProvider, KeyLastTab:
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if v < 0 {
			return fmt.Errorf("%s: negative index %d", key, v)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, key)
}
