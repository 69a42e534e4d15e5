// Package hotkey регистрирует глобальные горячие клавиши в ОС.
//
// Главный поток на macOS обслуживает цикл окна (wails), поэтому
// mainthread.Init здесь не нужен: события приходят через run loop приложения.
package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"

	"chatbar/internal/accelerator"
)

// ErrAlreadyRegistered комбинация уже зарегистрирована этим процессом.
var ErrAlreadyRegistered = errors.New("accelerator already registered")

const (
	debounceInterval  = 300 * time.Millisecond // Защита от key repeat
	unregisterTimeout = 500 * time.Millisecond
)

type binding struct {
	hk     *hotkey.Hotkey
	stopCh chan struct{}
}

// Facility глобальные горячие клавиши ОС, по одной на строку-акселератор.
type Facility struct {
	mu     sync.Mutex
	active map[string]*binding
	log    zerolog.Logger
}

// NewFacility создаёт пустой реестр системных горячих клавиш.
func NewFacility(log zerolog.Logger) *Facility {
	return &Facility{
		active: make(map[string]*binding),
		log:    log,
	}
}

// Register регистрирует комбинацию. callback вызывается из горутины слушателя.
func (f *Facility) Register(accel string, callback func()) error {
	acc, err := accelerator.Parse(accel)
	if err != nil {
		return err
	}
	name := acc.String()

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.active[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	// Конвертируем модификаторы
	mods := make([]hotkey.Modifier, 0, len(acc.Modifiers))
	for _, m := range acc.Modifiers {
		mod, ok := modifierMap[m]
		if !ok {
			return fmt.Errorf("модификатор %s не поддерживается: %w", m, accelerator.ErrInvalidAccelerator)
		}
		mods = append(mods, mod)
	}

	// Конвертируем клавишу
	key, ok := keyMap[acc.Key]
	if !ok {
		return fmt.Errorf("клавиша %s не поддерживается: %w", acc.Key, accelerator.ErrInvalidAccelerator)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		f.log.Warn().Err(err).Str("accelerator", name).Msg("Ошибка регистрации")
		return fmt.Errorf("register %s: %w", name, err)
	}

	b := &binding{hk: hk, stopCh: make(chan struct{})}
	f.active[name] = b
	go f.listen(b, callback)

	f.log.Debug().Str("accelerator", name).Msg("Горячая клавиша зарегистрирована")
	return nil
}

func (f *Facility) listen(b *binding, callback func()) {
	var lastKeydown time.Time

	for {
		select {
		case <-b.stopCh:
			return
		case _, ok := <-b.hk.Keydown():
			if !ok {
				return
			}
			// Debounce: игнорируем повторные keydown от key repeat
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if callback != nil {
				callback()
			}
		case _, ok := <-b.hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Unregister снимает комбинацию. Незарегистрированная комбинация не ошибка.
func (f *Facility) Unregister(accel string) error {
	name, err := accelerator.Normalize(accel)
	if err != nil {
		return err
	}

	f.mu.Lock()
	b, ok := f.active[name]
	delete(f.active, name)
	f.mu.Unlock()

	if !ok {
		return nil
	}
	return f.release(name, b)
}

// UnregisterAll снимает все комбинации этого процесса.
func (f *Facility) UnregisterAll() error {
	f.mu.Lock()
	all := f.active
	f.active = make(map[string]*binding)
	f.mu.Unlock()

	var errs []error
	for name, b := range all {
		if err := f.release(name, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Facility) release(name string, b *binding) error {
	close(b.stopCh)

	// Отменяем регистрацию в горутине с таймаутом
	done := make(chan error, 1)
	go func() {
		done <- b.hk.Unregister()
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("unregister %s: %w", name, err)
		}
		return nil
	case <-time.After(unregisterTimeout):
		f.log.Warn().Str("accelerator", name).Msg("Hotkey unregister timeout")
		return nil
	}
}

// keyMap маппинг accelerator.Key -> hotkey.Key
var keyMap = map[accelerator.Key]hotkey.Key{
	"Space":  hotkey.KeySpace,
	"Return": hotkey.KeyReturn,
	"Tab":    hotkey.KeyTab,
	"Escape": hotkey.KeyEscape,
	"Delete": hotkey.KeyDelete,
	"Up":     hotkey.KeyUp,
	"Down":   hotkey.KeyDown,
	"Left":   hotkey.KeyLeft,
	"Right":  hotkey.KeyRight,
	"0":      hotkey.Key0,
	"1":      hotkey.Key1,
	"2":      hotkey.Key2,
	"3":      hotkey.Key3,
	"4":      hotkey.Key4,
	"5":      hotkey.Key5,
	"6":      hotkey.Key6,
	"7":      hotkey.Key7,
	"8":      hotkey.Key8,
	"9":      hotkey.Key9,
	"A":      hotkey.KeyA,
	"B":      hotkey.KeyB,
	"C":      hotkey.KeyC,
	"D":      hotkey.KeyD,
	"E":      hotkey.KeyE,
	"F":      hotkey.KeyF,
	"G":      hotkey.KeyG,
	"H":      hotkey.KeyH,
	"I":      hotkey.KeyI,
	"J":      hotkey.KeyJ,
	"K":      hotkey.KeyK,
	"L":      hotkey.KeyL,
	"M":      hotkey.KeyM,
	"N":      hotkey.KeyN,
	"O":      hotkey.KeyO,
	"P":      hotkey.KeyP,
	"Q":      hotkey.KeyQ,
	"R":      hotkey.KeyR,
	"S":      hotkey.KeyS,
	"T":      hotkey.KeyT,
	"U":      hotkey.KeyU,
	"V":      hotkey.KeyV,
	"W":      hotkey.KeyW,
	"X":      hotkey.KeyX,
	"Y":      hotkey.KeyY,
	"Z":      hotkey.KeyZ,
	"F1":     hotkey.KeyF1,
	"F2":     hotkey.KeyF2,
	"F3":     hotkey.KeyF3,
	"F4":     hotkey.KeyF4,
	"F5":     hotkey.KeyF5,
	"F6":     hotkey.KeyF6,
	"F7":     hotkey.KeyF7,
	"F8":     hotkey.KeyF8,
	"F9":     hotkey.KeyF9,
	"F10":    hotkey.KeyF10,
	"F11":    hotkey.KeyF11,
	"F12":    hotkey.KeyF12,
}
