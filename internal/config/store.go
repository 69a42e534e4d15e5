package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Store настройки в JSON-файле с одним писателем.
//
// В памяти лежит документ в том виде, в каком он записан на диск:
// отсутствующие ключи берутся из Defaults при чтении.
type Store struct {
	mu          sync.RWMutex
	path        string
	doc         map[string]json.RawMessage
	lastWritten []byte
	log         zerolog.Logger
}

// Open загружает настройки. Ошибки чтения не фатальны: используются значения по умолчанию.
func Open(path string, log zerolog.Logger) *Store {
	s := &Store{
		path: path,
		doc:  make(map[string]json.RawMessage),
		log:  log,
	}
	s.load()
	return s
}

// Path путь к файлу.
func (s *Store) Path() string {
	return s.path
}

// load загружает документ из файла.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Не удалось прочитать настройки, используются значения по умолчанию")
		}
		return // Файл не существует, используем defaults
	}

	doc, err := parse(data)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("Файл настроек повреждён, используются значения по умолчанию")
		return
	}
	s.doc = doc
	s.lastWritten = data
}

func parse(data []byte) (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}
	return doc, nil
}

// Load типизированные настройки: значения из файла поверх значений по умолчанию.
// Невалидные значения в файле пропускаются.
func (s *Store) Load(ctx context.Context) AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsLocked()
}

func (s *Store) settingsLocked() AppSettings {
	out := Defaults()
	for _, key := range Keys() {
		raw, ok := s.doc[key]
		if !ok {
			continue
		}
		if err := validate(key, raw); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Некорректное значение в настройках, используется значение по умолчанию")
			continue
		}
		next := out.clone()
		wrapped, _ := json.Marshal(map[string]json.RawMessage{key: raw})
		if err := json.Unmarshal(wrapped, &next); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Некорректное значение в настройках, используется значение по умолчанию")
			continue
		}
		out = next
	}
	return out
}

// Get значение настройки (или значение по умолчанию).
func (s *Store) Get(ctx context.Context, key string) (any, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	v, ok := all[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return v, nil
}

// GetAll все настройки в виде JSON-совместимой карты.
func (s *Store) GetAll(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toMap(s.Load(ctx))
}

func toMap(settings AppSettings) (map[string]any, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Set записывает одно значение. Побочные эффекты вызывающий выполняет после успешного возврата.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.SetAll(ctx, map[string]any{key: value})
}

// SetAll записывает несколько значений одной записью на диск.
// При любой ошибке валидации ничего не меняется.
func (s *Store) SetAll(ctx context.Context, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded := make(map[string]json.RawMessage, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if err := validate(key, raw); err != nil {
			return err
		}
		encoded[key] = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doc
	next := make(map[string]json.RawMessage, len(prev)+len(encoded))
	for k, v := range prev {
		next[k] = v
	}
	for k, v := range encoded {
		next[k] = v
	}

	s.doc = next
	if err := s.saveLocked(); err != nil {
		s.doc = prev
		return err
	}
	return nil
}

// SaveWindow запоминает положение и размер окна.
func (s *Store) SaveWindow(ctx context.Context, w Window) error {
	return s.Set(ctx, KeyWindow, w)
}

// Reset возвращает все настройки к значениям по умолчанию.
func (s *Store) Reset(ctx context.Context) (AppSettings, error) {
	if err := ctx.Err(); err != nil {
		return AppSettings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doc
	s.doc = make(map[string]json.RawMessage)
	if err := s.saveLocked(); err != nil {
		s.doc = prev
		return AppSettings{}, err
	}
	return Defaults(), nil
}

// Reload перечитывает файл после внешнего изменения.
// Возвращает false, если содержимое совпадает с последней записью.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = nil, nil
	}
	if err != nil {
		return false, fmt.Errorf("read settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bytes.Equal(data, s.lastWritten) {
		return false, nil
	}
	doc, err := parse(data)
	if err != nil {
		return false, err
	}
	s.doc = doc
	s.lastWritten = data
	return true, nil
}

// saveLocked пишет документ атомарно: временный файл и rename.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings: %w", err)
	}

	s.lastWritten = data
	return nil
}
