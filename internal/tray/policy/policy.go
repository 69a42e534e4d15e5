// Package policy описывает, как иконка трея реагирует на клики.
// Пакет без зависимостей: его читают и настройки, и трей.
package policy

import "fmt"

// ClickBehavior как иконка трея реагирует на клики.
type ClickBehavior string

const (
	// RightOnly правый клик открывает меню, левый остаётся за приложением.
	RightOnly ClickBehavior = "right-only"
	// LeftAndRight левый клик открывает меню, правый показывает его средствами ОС.
	LeftAndRight ClickBehavior = "left-and-right"
	// LeftOnly меню только по левому клику.
	LeftOnly ClickBehavior = "left-only"
)

// Default поведение по умолчанию.
const Default = RightOnly

// All все допустимые значения.
func All() []ClickBehavior {
	return []ClickBehavior{RightOnly, LeftAndRight, LeftOnly}
}

// Parse разбирает строку из настроек.
func Parse(s string) (ClickBehavior, error) {
	for _, b := range All() {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown tray click behavior %q", s)
}

// TakesOverLeftClick true для режимов, которые забирают левый клик у приложения.
func (b ClickBehavior) TakesOverLeftClick() bool {
	return b == LeftAndRight || b == LeftOnly
}
