// Package shortcuts связывает действия приложения с глобальными горячими клавишами.
package shortcuts

import (
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"chatbar/internal/accelerator"
)

// ActionID имя действия, на которое вешается горячая клавиша.
type ActionID string

const (
	ActionToggleWindow ActionID = "toggleWindow"
	ActionQuit         ActionID = "quit"
)

// Binding действие и его комбинация. Пустая комбинация значит "не назначено".
type Binding struct {
	Name        ActionID `json:"name"`
	Accelerator string   `json:"accelerator"`
}

// Callbacks обработчики по действиям.
type Callbacks map[ActionID]func()

// Facility системный механизм горячих клавиш.
type Facility interface {
	Register(accelerator string, callback func()) error
	Unregister(accelerator string) error
	UnregisterAll() error
}

// DefaultBindings комбинации по умолчанию.
func DefaultBindings() []Binding {
	return []Binding{
		{Name: ActionToggleWindow, Accelerator: "CommandOrControl+Shift+Space"},
		{Name: ActionQuit, Accelerator: "CommandOrControl+Q"},
	}
}

// Registry хранит текущее назначение и то, что реально зарегистрировано в ОС.
// Не потокобезопасен: вызывается только из цикла событий.
type Registry struct {
	facility   Facility
	log        zerolog.Logger
	order      []ActionID
	bindings   map[ActionID]string
	active     map[string]ActionID // нормализованная комбинация -> действие
	registered bool
}

// New создаёт реестр с комбинациями по умолчанию. В ОС ничего не регистрирует.
func New(facility Facility, log zerolog.Logger) *Registry {
	r := &Registry{
		facility: facility,
		log:      log,
		bindings: make(map[ActionID]string),
		active:   make(map[string]ActionID),
	}
	for _, b := range DefaultBindings() {
		r.set(b.Name, b.Accelerator)
	}
	return r
}

// Bindings копия текущего назначения.
func (r *Registry) Bindings() map[ActionID]string {
	out := make(map[ActionID]string, len(r.bindings))
	for k, v := range r.bindings {
		out[k] = v
	}
	return out
}

// Accelerator комбинация действия.
func (r *Registry) Accelerator(name ActionID) (string, bool) {
	acc, ok := r.bindings[name]
	return acc, ok
}

// Registered true между RegisterAll и UnregisterAll.
func (r *Registry) Registered() bool {
	return r.registered
}

// IsRegistered true, если комбинация сейчас зарегистрирована этим реестром.
func (r *Registry) IsRegistered(accel string) bool {
	_, ok := r.active[key(accel)]
	return ok
}

// Owner действие, за которым сейчас зарегистрирована комбинация.
func (r *Registry) Owner(accel string) (ActionID, bool) {
	name, ok := r.active[key(accel)]
	return name, ok
}

// RegisterAll снимает всё зарегистрированное и регистрирует bindings заново.
// Действия без обработчика пропускаются. Ошибки отдельных комбинаций
// не прерывают процесс, но итог будет false.
func (r *Registry) RegisterAll(bindings []Binding, callbacks Callbacks) bool {
	r.releaseAll()

	var names []ActionID
	seen := make(map[ActionID]bool)
	for _, b := range bindings {
		r.set(b.Name, b.Accelerator)
		if !seen[b.Name] {
			seen[b.Name] = true
			names = append(names, b.Name)
		}
	}

	ok := true
	for _, name := range names {
		accel := r.bindings[name]
		cb := callbacks[name]
		if cb == nil || accel == "" {
			continue
		}
		k := key(accel)
		if owner, taken := r.active[k]; taken {
			r.log.Warn().
				Str("action", string(name)).
				Str("accelerator", accel).
				Str("owner", string(owner)).
				Msg("Комбинация уже занята другим действием")
			ok = false
			continue
		}
		if err := r.facility.Register(accel, cb); err != nil {
			r.log.Warn().Err(err).
				Str("action", string(name)).
				Str("accelerator", accel).
				Msg("Не удалось зарегистрировать горячую клавишу")
			ok = false
			continue
		}
		r.active[k] = name
	}

	r.registered = true
	r.log.Info().Int("active", len(r.active)).Bool("ok", ok).Msg("Горячие клавиши зарегистрированы")
	return ok
}

// UpdateOne меняет комбинацию одного действия. Если комбинацию держит другое
// действие, у него она снимается. Регистрация в ОС только при callbacks != nil.
// Назначение сохраняется, даже если регистрация не удалась.
func (r *Registry) UpdateOne(name ActionID, accel string, callbacks Callbacks) bool {
	accel = strings.TrimSpace(accel)

	if old, ok := r.bindings[name]; ok && old != "" {
		if owner, active := r.active[key(old)]; active && owner == name {
			r.release(key(old), old)
		}
	}

	if accel != "" {
		k := key(accel)
		if owner, active := r.active[k]; active && owner != name {
			r.release(k, accel)
		}
		for other, a := range r.bindings {
			if other != name && a != "" && key(a) == k {
				r.log.Info().
					Str("accelerator", accel).
					Str("from", string(other)).
					Str("to", string(name)).
					Msg("Комбинация переназначена")
				r.bindings[other] = ""
			}
		}
	}

	r.set(name, accel)

	if callbacks == nil || accel == "" {
		return true
	}
	cb := callbacks[name]
	if cb == nil {
		r.log.Warn().Str("action", string(name)).Msg("Нет обработчика для действия")
		return false
	}
	if err := r.facility.Register(accel, cb); err != nil {
		r.log.Warn().Err(err).
			Str("action", string(name)).
			Str("accelerator", accel).
			Msg("Не удалось зарегистрировать горячую клавишу")
		return false
	}
	r.active[key(accel)] = name
	r.registered = true
	return true
}

// UpdateAll сливает partial с текущим назначением и, если реестр
// зарегистрирован, перерегистрирует всё.
func (r *Registry) UpdateAll(partial map[ActionID]string, callbacks Callbacks) bool {
	for _, name := range slices.Sorted(maps.Keys(partial)) {
		r.set(name, partial[name])
	}
	if !r.registered {
		return true
	}
	return r.RegisterAll(r.snapshot(), callbacks)
}

// UnregisterAll снимает все комбинации. Ошибки только логируются.
func (r *Registry) UnregisterAll() {
	r.releaseAll()
	r.registered = false
}

func (r *Registry) snapshot() []Binding {
	out := make([]Binding, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Binding{Name: name, Accelerator: r.bindings[name]})
	}
	return out
}

func (r *Registry) set(name ActionID, accel string) {
	if _, ok := r.bindings[name]; !ok {
		r.order = append(r.order, name)
	}
	r.bindings[name] = strings.TrimSpace(accel)
}

func (r *Registry) release(k, accel string) {
	delete(r.active, k)
	if err := r.facility.Unregister(accel); err != nil {
		r.log.Warn().Err(err).Str("accelerator", accel).Msg("Ошибка отмены регистрации")
	}
}

func (r *Registry) releaseAll() {
	if err := r.facility.UnregisterAll(); err != nil {
		r.log.Warn().Err(err).Msg("Ошибка отмены регистрации горячих клавиш")
	}
	r.active = make(map[string]ActionID)
}

// key нормализованная форма для сравнения; невалидные строки сравниваются как есть.
func key(accel string) string {
	if n, err := accelerator.Normalize(accel); err == nil {
		return n
	}
	return strings.TrimSpace(accel)
}
