// Package appstate хранит общие флаги приложения, которые читают несколько компонентов.
package appstate

import "sync/atomic"

// State флаги процесса. Передаётся по указателю, глобальных переменных нет.
type State struct {
	recording atomic.Bool
	quitting  atomic.Bool
}

// New создаёт состояние со сброшенными флагами.
func New() *State {
	return &State{}
}

// SetRecording включает/выключает режим записи горячей клавиши.
func (s *State) SetRecording(v bool) {
	s.recording.Store(v)
}

// Recording true, пока идёт запись горячей клавиши.
func (s *State) Recording() bool {
	return s.recording.Load()
}

// MarkQuitting помечает, что приложение завершается. Обратно не сбрасывается.
func (s *State) MarkQuitting() {
	s.quitting.Store(true)
}

// Quitting true после начала завершения.
func (s *State) Quitting() bool {
	return s.quitting.Load()
}
