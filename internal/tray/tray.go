// Package tray управляет иконкой в системном трее и тем, как она реагирует на клики.
package tray

import (
	"sync"

	"github.com/energye/systray"
	"github.com/rs/zerolog"
)

// SystemTray реализация Icon поверх energye/systray.
//
// Колбэки ОС не выполняются здесь напрямую: каждый слушатель и каждый пункт
// меню передаётся в dispatch (цикл событий приложения).
type SystemTray struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[Event][]listener
	native    *Menu
	shown     *Menu
	handle    systray.IMenu
	dispatch  func(func()) bool
	title     string
	tooltip   string
	image     []byte
	log       zerolog.Logger
}

type listener struct {
	id ListenerID
	fn func()
}

// NewSystemTray создаёт трей. Сама иконка появляется после Run.
func NewSystemTray(title, tooltip string, image []byte, dispatch func(func()) bool, log zerolog.Logger) *SystemTray {
	return &SystemTray{
		listeners: make(map[Event][]listener),
		dispatch:  dispatch,
		title:     title,
		tooltip:   tooltip,
		image:     image,
		log:       log,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *SystemTray) Run(onReady, onExit func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, func() {
		if onExit != nil {
			onExit()
		}
	})
}

func (t *SystemTray) onReady() {
	t.mu.Lock()
	image, title, tooltip := t.image, t.title, t.tooltip
	t.mu.Unlock()

	if len(image) > 0 {
		systray.SetIcon(image)
	}
	systray.SetTitle(title)
	systray.SetTooltip(tooltip)

	systray.SetOnClick(func(menu systray.IMenu) {
		t.remember(menu)
		t.emit(EventClick)
	})
	systray.SetOnDClick(func(menu systray.IMenu) {
		t.remember(menu)
		t.emit(EventDoubleClick)
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		t.remember(menu)
		t.mu.Lock()
		native := t.native
		t.mu.Unlock()
		if native != nil {
			t.show(native)
		}
		t.emit(EventRightClick)
	})
	t.log.Debug().Msg("Иконка трея создана")
}

// Quit закрывает системный трей.
func (t *SystemTray) Quit() {
	systray.Quit()
}

// On добавляет слушателя.
func (t *SystemTray) On(ev Event, fn func()) ListenerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.listeners[ev] = append(t.listeners[ev], listener{id: t.nextID, fn: fn})
	return t.nextID
}

// Off снимает слушателя по id.
func (t *SystemTray) Off(ev Event, id ListenerID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ls := t.listeners[ev]
	for i, l := range ls {
		if l.id == id {
			t.listeners[ev] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// RemoveAllListeners снимает всех слушателей события.
func (t *SystemTray) RemoveAllListeners(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.listeners, ev)
}

// ListenerCount число слушателей события.
func (t *SystemTray) ListenerCount(ev Event) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[ev])
}

// SetContextMenu назначает меню, показываемое по правому клику без участия приложения.
func (t *SystemTray) SetContextMenu(menu *Menu) {
	t.mu.Lock()
	t.native = menu
	t.mu.Unlock()
	if menu != nil {
		t.materialize(menu)
	}
}

// PopUpContextMenu показывает меню.
func (t *SystemTray) PopUpContextMenu(menu *Menu) {
	t.show(menu)
}

// SetImage меняет иконку.
func (t *SystemTray) SetImage(image []byte) {
	t.mu.Lock()
	t.image = image
	t.mu.Unlock()
	systray.SetIcon(image)
}

// SetTooltip меняет подсказку.
func (t *SystemTray) SetTooltip(tooltip string) {
	t.mu.Lock()
	t.tooltip = tooltip
	t.mu.Unlock()
	systray.SetTooltip(tooltip)
}

func (t *SystemTray) remember(menu systray.IMenu) {
	if menu == nil {
		return
	}
	t.mu.Lock()
	t.handle = menu
	t.mu.Unlock()
}

func (t *SystemTray) emit(ev Event) {
	t.mu.Lock()
	ls := append([]listener(nil), t.listeners[ev]...)
	t.mu.Unlock()

	for _, l := range ls {
		if !t.dispatch(l.fn) {
			t.log.Debug().Str("event", string(ev)).Msg("Цикл событий остановлен, клик пропущен")
			return
		}
	}
}

func (t *SystemTray) show(menu *Menu) {
	t.materialize(menu)

	t.mu.Lock()
	handle := t.handle
	t.mu.Unlock()
	if handle == nil {
		t.log.Warn().Msg("Меню трея ещё недоступно")
		return
	}
	if err := handle.ShowMenu(); err != nil {
		t.log.Warn().Err(err).Msg("Не удалось показать меню трея")
	}
}

// materialize переносит шаблон в нативное меню, если он сменился.
func (t *SystemTray) materialize(menu *Menu) {
	t.mu.Lock()
	if t.shown == menu {
		t.mu.Unlock()
		return
	}
	t.shown = menu
	t.mu.Unlock()

	systray.ResetMenu()
	for _, it := range menu.Items {
		if it.Separator {
			systray.AddSeparator()
			continue
		}
		var item *systray.MenuItem
		if it.Checked != nil {
			item = systray.AddMenuItemCheckbox(it.Label, it.Tooltip, *it.Checked)
		} else {
			item = systray.AddMenuItem(it.Label, it.Tooltip)
		}
		if it.Disabled {
			item.Disable()
		}
		if click := it.Click; click != nil {
			item.Click(func() {
				t.dispatch(click)
			})
		}
	}
}
