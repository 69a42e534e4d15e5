package tray

import (
	"os"

	"github.com/rs/zerolog"

	"chatbar/internal/appstate"
	"chatbar/internal/i18n"
)

// processQuit прямой выход, если обработчик Quit не передан.
var processQuit = func() { os.Exit(0) }

// Actions обработчики пунктов базового меню.
type Actions struct {
	ToggleWindow   func()
	Reload         func()
	ToggleDevTools func()
	Quit           func()
}

// Router решает, какие клики по иконке открывают меню.
// Вызывается только из цикла событий.
type Router struct {
	icon      Icon
	state     *appstate.State
	actions   Actions
	log       zerolog.Logger
	policy    ClickBehavior
	custom    []MenuItem
	menu      *Menu
	listeners map[Event]ListenerID // только свои подписки
	native    bool
}

// NewRouter создаёт маршрутизатор. Иконка передаётся в Initialize, когда трей готов.
func NewRouter(actions Actions, state *appstate.State, log zerolog.Logger) *Router {
	return &Router{
		state:     state,
		actions:   actions,
		log:       log,
		policy:    DefaultClickBehavior,
		listeners: make(map[Event]ListenerID),
	}
}

// Initialize строит меню и применяет поведение. icon == nil: трея нет, только предупреждение.
func (r *Router) Initialize(icon Icon, policy ClickBehavior) {
	r.policy = policy
	r.menu = r.buildMenu()
	if icon == nil {
		r.log.Warn().Msg("Трей не создан, настройка кликов пропущена")
		return
	}
	r.icon = icon
	r.apply(policy)
	r.log.Info().Str("policy", string(policy)).Msg("Трей готов")
}

// Policy текущее поведение.
func (r *Router) Policy() ClickBehavior {
	return r.policy
}

// Menu текущий шаблон меню.
func (r *Router) Menu() *Menu {
	return r.menu
}

// Ready true, когда иконка трея уже есть.
func (r *Router) Ready() bool {
	return r.icon != nil
}

// SetClickBehavior меняет поведение. Без трея операция пропускается.
func (r *Router) SetClickBehavior(policy ClickBehavior) bool {
	if r.icon == nil {
		r.log.Warn().Str("policy", string(policy)).Msg("Трей ещё не создан, смена поведения пропущена")
		return false
	}
	r.apply(policy)
	r.log.Debug().Str("policy", string(policy)).Msg("Поведение кликов изменено")
	return true
}

// UpdateContextMenu пересобирает меню с дополнительными пунктами перед "Выход".
// Системное меню переназначается только в режиме left-and-right.
func (r *Router) UpdateContextMenu(custom []MenuItem) {
	r.custom = append([]MenuItem(nil), custom...)
	r.menu = r.buildMenu()
	if r.icon != nil && r.policy == LeftAndRight {
		r.icon.SetContextMenu(r.menu)
		r.native = true
	}
}

// Refresh пересобирает меню с текущими переводами.
func (r *Router) Refresh() {
	r.UpdateContextMenu(r.custom)
	if r.icon != nil {
		r.icon.SetTooltip(i18n.T("app_tooltip"))
	}
}

// SetImage меняет иконку. false, если трея нет.
func (r *Router) SetImage(image []byte) bool {
	if r.icon == nil {
		r.log.Warn().Msg("Трей ещё не создан, иконка не обновлена")
		return false
	}
	r.icon.SetImage(image)
	return true
}

// Cleanup снимает подписки. В right-only снимается только свой правый клик,
// в остальных режимах всё. Повторный вызов безопасен.
func (r *Router) Cleanup() {
	if r.icon == nil {
		return
	}
	if r.policy == RightOnly {
		r.off(EventRightClick)
		return
	}
	for _, ev := range []Event{EventClick, EventRightClick, EventDoubleClick} {
		r.icon.RemoveAllListeners(ev)
		delete(r.listeners, ev)
	}
	r.clearNative()
}

func (r *Router) apply(policy ClickBehavior) {
	switch policy {
	case LeftAndRight, LeftOnly:
		// Левый клик забираем целиком, включая обработчик приложения.
		r.icon.RemoveAllListeners(EventClick)
		delete(r.listeners, EventClick)
		r.off(EventRightClick)
		r.off(EventDoubleClick)
		r.clearNative()

		r.listeners[EventClick] = r.icon.On(EventClick, r.popUp)
		if policy == LeftAndRight {
			r.icon.SetContextMenu(r.menu)
			r.native = true
		}
	default:
		// right-only: чужих слушателей не трогаем, свои от прошлых режимов снимаем.
		r.off(EventClick)
		r.off(EventDoubleClick)
		r.clearNative()
		if _, ok := r.listeners[EventRightClick]; !ok {
			r.listeners[EventRightClick] = r.icon.On(EventRightClick, r.popUp)
		}
		policy = RightOnly
	}
	r.policy = policy
}

func (r *Router) off(ev Event) {
	id, ok := r.listeners[ev]
	if !ok {
		return
	}
	r.icon.Off(ev, id)
	delete(r.listeners, ev)
}

func (r *Router) clearNative() {
	if r.native {
		r.icon.SetContextMenu(nil)
		r.native = false
	}
}

func (r *Router) popUp() {
	if r.icon == nil || r.menu == nil {
		return
	}
	r.icon.PopUpContextMenu(r.menu)
}

func (r *Router) buildMenu() *Menu {
	items := []MenuItem{
		{Label: i18n.T("tray_show_hide"), Click: r.guarded(r.actions.ToggleWindow)},
		Separator(),
		{Label: i18n.T("tray_reload"), Click: safe(r.actions.Reload)},
		{Label: i18n.T("tray_devtools"), Click: safe(r.actions.ToggleDevTools)},
	}
	if len(r.custom) > 0 {
		items = append(items, Separator())
		items = append(items, r.custom...)
	}
	items = append(items, Separator(), MenuItem{Label: i18n.T("tray_quit"), Click: r.quit})
	return &Menu{Items: items}
}

// guarded не даёт пунктам меню трогать окно во время записи горячей клавиши.
func (r *Router) guarded(fn func()) func() {
	return func() {
		if r.state != nil && r.state.Recording() {
			r.log.Debug().Msg("Идёт запись горячей клавиши, пункт меню пропущен")
			return
		}
		if fn != nil {
			fn()
		}
	}
}

func safe(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

func (r *Router) quit() {
	if r.actions.Quit != nil {
		r.actions.Quit()
		return
	}
	processQuit()
}
