// Package accelerator разбирает и нормализует строки горячих клавиш
// вида "CommandOrControl+Shift+Space".
package accelerator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAccelerator строка не является допустимой комбинацией.
var ErrInvalidAccelerator = errors.New("invalid accelerator")

// Modifier модификатор в каноническом написании.
type Modifier string

const (
	ModCommandOrControl Modifier = "CommandOrControl"
	ModCommand          Modifier = "Command"
	ModControl          Modifier = "Control"
	ModAlt              Modifier = "Alt"
	ModShift            Modifier = "Shift"
	ModSuper            Modifier = "Super"
)

// modifierOrder порядок модификаторов в нормализованной строке.
var modifierOrder = []Modifier{
	ModCommandOrControl,
	ModCommand,
	ModControl,
	ModAlt,
	ModShift,
	ModSuper,
}

var modifierAliases = map[string]Modifier{
	"commandorcontrol": ModCommandOrControl,
	"cmdorctrl":        ModCommandOrControl,
	"command":          ModCommand,
	"cmd":              ModCommand,
	"meta":             ModCommand,
	"control":          ModControl,
	"ctrl":             ModControl,
	"alt":              ModAlt,
	"option":           ModAlt,
	"altgr":            ModAlt,
	"shift":            ModShift,
	"super":            ModSuper,
	"win":              ModSuper,
}

// Key основная (не модификатор) клавиша.
type Key string

var namedKeys = map[string]Key{
	"space":     "Space",
	"return":    "Return",
	"enter":     "Return",
	"tab":       "Tab",
	"escape":    "Escape",
	"esc":       "Escape",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"plus":      "Plus",
}

// Accelerator разобранная комбинация.
type Accelerator struct {
	Modifiers []Modifier
	Key       Key
}

// Parse разбирает строку. Регистр и порядок модификаторов не важны,
// должна быть ровно одна основная клавиша.
func Parse(s string) (Accelerator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Accelerator{}, fmt.Errorf("%w: empty", ErrInvalidAccelerator)
	}

	seen := make(map[Modifier]bool)
	var key Key
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Accelerator{}, fmt.Errorf("%w: %q", ErrInvalidAccelerator, s)
		}
		if mod, ok := modifierAliases[strings.ToLower(part)]; ok {
			seen[mod] = true
			continue
		}
		k, ok := ParseKey(part)
		if !ok {
			return Accelerator{}, fmt.Errorf("%w: unknown key %q", ErrInvalidAccelerator, part)
		}
		if key != "" {
			return Accelerator{}, fmt.Errorf("%w: more than one key in %q", ErrInvalidAccelerator, s)
		}
		key = k
	}
	if key == "" {
		return Accelerator{}, fmt.Errorf("%w: no key in %q", ErrInvalidAccelerator, s)
	}

	acc := Accelerator{Key: key}
	for _, m := range modifierOrder {
		if seen[m] {
			acc.Modifiers = append(acc.Modifiers, m)
		}
	}
	return acc, nil
}

// ParseKey возвращает каноническое имя основной клавиши.
func ParseKey(s string) (Key, bool) {
	if len(s) == 1 {
		c := s[0]
		switch {
		case c >= 'a' && c <= 'z':
			return Key(strings.ToUpper(s)), true
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return Key(s), true
		}
		return "", false
	}
	lower := strings.ToLower(s)
	if k, ok := namedKeys[lower]; ok {
		return k, true
	}
	if lower[0] == 'f' {
		n, err := strconv.Atoi(lower[1:])
		if err == nil && n >= 1 && n <= 24 && strconv.Itoa(n) == lower[1:] {
			return Key("F" + strconv.Itoa(n)), true
		}
	}
	return "", false
}

// IsModifier true, если имя обозначает модификатор.
func IsModifier(name string) bool {
	_, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Has проверяет наличие модификатора.
func (a Accelerator) Has(m Modifier) bool {
	for _, x := range a.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

// String возвращает нормализованную запись.
func (a Accelerator) String() string {
	parts := make([]string, 0, len(a.Modifiers)+1)
	for _, m := range a.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, string(a.Key))
	return strings.Join(parts, "+")
}

// Normalize приводит строку к канонической форме.
func Normalize(s string) (string, error) {
	acc, err := Parse(s)
	if err != nil {
		return "", err
	}
	return acc.String(), nil
}

// Build собирает нормализованную строку из модификаторов и клавиши.
func Build(mods []Modifier, key string) (string, error) {
	parts := make([]string, 0, len(mods)+1)
	for _, m := range mods {
		parts = append(parts, string(m))
	}
	parts = append(parts, key)
	return Normalize(strings.Join(parts, "+"))
}
