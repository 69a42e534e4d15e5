package tray

import "chatbar/internal/tray/policy"

// ClickBehavior как иконка трея реагирует на клики.
type ClickBehavior = policy.ClickBehavior

const (
	RightOnly    = policy.RightOnly
	LeftAndRight = policy.LeftAndRight
	LeftOnly     = policy.LeftOnly

	DefaultClickBehavior = policy.Default
)

// ClickBehaviors все допустимые значения.
func ClickBehaviors() []ClickBehavior {
	return policy.All()
}

// ParseClickBehavior разбирает строку из настроек.
func ParseClickBehavior(s string) (ClickBehavior, error) {
	return policy.Parse(s)
}
