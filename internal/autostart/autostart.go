// Package autostart включает запуск приложения при входе пользователя в систему.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrUnsupported автозапуск на этой ОС не поддерживается.
var ErrUnsupported = errors.New("autostart is not supported on this platform")

type backend interface {
	enable() error
	disable() error
	enabled() (bool, error)
}

// Manager управляет записью автозапуска.
type Manager struct {
	name    string
	backend backend
	log     zerolog.Logger
}

// New создаёт Manager для приложения name, запускаемого бинарником exe.
// Пустой exe означает текущий исполняемый файл.
func New(name, exe string, log zerolog.Logger) (*Manager, error) {
	if exe == "" {
		path, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			path = resolved
		}
		exe = path
	}
	b, err := newBackend(name, exe)
	if err != nil {
		return nil, err
	}
	return &Manager{name: name, backend: b, log: log}, nil
}

// Enable добавляет приложение в автозапуск.
func (m *Manager) Enable() error {
	if err := m.backend.enable(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	m.log.Info().Str("app", m.name).Msg("Автозапуск включён")
	return nil
}

// Disable убирает приложение из автозапуска. Отсутствие записи не ошибка.
func (m *Manager) Disable() error {
	if err := m.backend.disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	m.log.Info().Str("app", m.name).Msg("Автозапуск выключен")
	return nil
}

// Enabled есть ли запись автозапуска.
func (m *Manager) Enabled() (bool, error) {
	return m.backend.enabled()
}

// Set приводит запись к нужному состоянию.
func (m *Manager) Set(on bool) error {
	current, err := m.Enabled()
	if err == nil && current == on {
		return nil
	}
	if on {
		return m.Enable()
	}
	return m.Disable()
}

// fileEntry автозапуск через файл в каталоге пользователя.
type fileEntry struct {
	path    string
	content []byte
}

func (f fileEntry) enable() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, f.content, 0o644)
}

func (f fileEntry) disable() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (f fileEntry) enabled() (bool, error) {
	_, err := os.Stat(f.path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
