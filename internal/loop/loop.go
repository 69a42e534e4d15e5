// Package loop реализует однопоточный цикл событий.
//
// Все переходы состояния (трей, горячие клавиши, окно, настройки) выполняются
// здесь по очереди. Колбэки из чужих горутин только ставят работу в очередь.
package loop

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// ErrStopped возвращается, если цикл уже остановлен.
var ErrStopped = errors.New("event loop stopped")

const queueSize = 256

// Loop очередь задач с одним исполнителем.
type Loop struct {
	tasks    chan func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	log      zerolog.Logger
}

// New создаёт цикл. Run нужно вызвать отдельно.
func New(log zerolog.Logger) *Loop {
	return &Loop{
		tasks:  make(chan func(), queueSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		log:    log,
	}
}

// Run выполняет задачи до вызова Stop. Блокирует.
func (l *Loop) Run() {
	defer close(l.doneCh)
	for {
		select {
		case <-l.stopCh:
			return
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

// Post ставит задачу в очередь. false, если цикл остановлен.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.stopCh:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopCh:
		return false
	}
}

// Call ставит задачу и ждёт её выполнения.
// Нельзя вызывать из самой задачи: цикл заблокируется.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopCh:
		return ErrStopped
	}
}

// Stop останавливает цикл. Повторные вызовы безопасны.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// Done закрывается, когда Run вернул управление.
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("Паника в обработчике цикла событий")
		}
	}()
	fn()
}
