package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher следит за внешними изменениями файла настроек.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	store     *Store
	onChange  func(AppSettings)
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	timer     *time.Timer
}

// Watch начинает следить за файлом. onChange вызывается из горутины
// наблюдателя с уже перечитанными настройками; повторный Reload в нём
// вернёт false, применять нужно переданный снимок.
func (s *Store) Watch(onChange func(AppSettings)) (*Watcher, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Следим за каталогом: запись через rename заменяет сам файл.
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		store:     s,
		onChange:  onChange,
		done:      make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

// Close останавливает наблюдение. Повторные вызовы безопасны.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) processEvents() {
	target := filepath.Clean(w.store.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.schedule()
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.store.log.Warn().Err(err).Msg("Ошибка наблюдения за настройками")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.fire)
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}

	ctx := context.Background()
	changed, err := w.store.Reload(ctx)
	if err != nil {
		w.store.log.Warn().Err(err).Msg("Не удалось перечитать настройки")
		return
	}
	if !changed {
		return
	}
	w.store.log.Info().Str("path", w.store.path).Msg("Настройки изменены извне")
	if w.onChange != nil {
		w.onChange(w.store.Load(ctx))
	}
}
