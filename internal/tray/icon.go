package tray

// Event событие иконки трея.
type Event string

const (
	EventClick       Event = "click"
	EventRightClick  Event = "right-click"
	EventDoubleClick Event = "double-click"
)

// ListenerID идентификатор подписки, нужен для точечной отписки.
type ListenerID uint64

// Icon иконка в системном трее.
type Icon interface {
	// On добавляет слушателя события.
	On(event Event, fn func()) ListenerID
	// Off снимает одного слушателя.
	Off(event Event, id ListenerID)
	// RemoveAllListeners снимает всех слушателей события, включая чужих.
	RemoveAllListeners(event Event)
	// SetContextMenu назначает меню, которое ОС показывает сама; nil снимает его.
	SetContextMenu(menu *Menu)
	// PopUpContextMenu показывает меню программно.
	PopUpContextMenu(menu *Menu)
	SetImage(image []byte)
	SetTooltip(tooltip string)
}
