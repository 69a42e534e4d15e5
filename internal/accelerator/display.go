package accelerator

import "strings"

var macSymbols = map[string]string{
	string(ModCommandOrControl): "⌘",
	string(ModCommand):         "⌘",
	string(ModControl):         "⌃",
	string(ModAlt):             "⌥",
	string(ModShift):           "⇧",
	string(ModSuper):           "⌘",
}

var otherNames = map[string]string{
	string(ModCommandOrControl): "Ctrl",
	string(ModCommand):         "Super",
	string(ModControl):         "Ctrl",
	string(ModAlt):             "Alt",
	string(ModShift):           "Shift",
	string(ModSuper):           "Super",
}

var keySymbols = map[string]string{
	"Space":     "␣",
	"Return":    "↩",
	"Escape":    "⎋",
	"Tab":       "⇥",
	"Backspace": "⌫",
	"Delete":    "⌦",
	"Up":        "↑",
	"Down":      "↓",
	"Left":      "←",
	"Right":     "→",
}

// Display форматирует комбинацию для показа пользователю на платформе goos.
// Невалидная строка возвращается как есть.
func Display(s, goos string) string {
	acc, err := Parse(s)
	if err != nil {
		return s
	}

	mods := otherNames
	if goos == "darwin" {
		mods = macSymbols
	}

	parts := make([]string, 0, len(acc.Modifiers)+1)
	for _, m := range acc.Modifiers {
		parts = append(parts, mods[string(m)])
	}
	key := string(acc.Key)
	if sym, ok := keySymbols[key]; ok {
		key = sym
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}
