// Package recorder захватывает новую горячую клавишу из нажатий в окне настроек.
package recorder

import (
	"strings"

	"github.com/rs/zerolog"

	"chatbar/internal/accelerator"
	"chatbar/internal/appstate"
)

// KeyEvent нажатие клавиши в веб-интерфейсе (поля KeyboardEvent).
type KeyEvent struct {
	Key     string `json:"key"`
	Meta    bool   `json:"metaKey"`
	Control bool   `json:"ctrlKey"`
	Alt     bool   `json:"altKey"`
	Shift   bool   `json:"shiftKey"`
	Code    string `json:"code,omitempty"`
}

var modifierKeys = map[string]accelerator.Modifier{
	"Meta":    accelerator.ModCommand,
	"OS":      accelerator.ModCommand,
	"Control": accelerator.ModControl,
	"Alt":     accelerator.ModAlt,
	"Shift":   accelerator.ModShift,
}

var domKeys = map[string]string{
	" ":          "Space",
	"Spacebar":   "Space",
	"Enter":      "Return",
	"ArrowUp":    "Up",
	"ArrowDown":  "Down",
	"ArrowLeft":  "Left",
	"ArrowRight": "Right",
	"Esc":        "Escape",
	"Del":        "Delete",
	"+":          "Plus",
}

// Recorder режим записи. Флаг записи живёт в appstate.State,
// чтобы окно и меню трея могли его проверить.
type Recorder struct {
	state     *appstate.State
	onCapture func(accel string)
	log       zerolog.Logger
}

// New создаёт запись; onCapture получает нормализованную комбинацию.
func New(state *appstate.State, onCapture func(accel string), log zerolog.Logger) *Recorder {
	return &Recorder{
		state:     state,
		onCapture: onCapture,
		log:       log,
	}
}

// Active идёт ли запись.
func (r *Recorder) Active() bool {
	return r.state.Recording()
}

// Begin поле ввода получило фокус.
func (r *Recorder) Begin() {
	if r.state.Recording() {
		return
	}
	r.state.SetRecording(true)
	r.log.Debug().Msg("Запись горячей клавиши начата")
}

// KeyDown обрабатывает нажатие. Первая не-модификаторная клавиша завершает запись.
func (r *Recorder) KeyDown(ev KeyEvent) (string, bool) {
	if !r.state.Recording() {
		return "", false
	}

	// Модификаторы берём из текущего события: отпущенные раньше не считаются.
	if _, ok := modifierKeys[ev.Key]; ok {
		return "", false
	}

	key := ev.Key
	if k, ok := domKeys[key]; ok {
		key = k
	}
	mods := ev.modifiers()
	accel, err := accelerator.Build(mods, strings.TrimSpace(key))
	if err != nil && ev.Code != "" {
		// Option на macOS меняет символ ("†" вместо "t"), физическая клавиша надёжнее.
		accel, err = accelerator.Build(mods, keyFromCode(ev.Code))
	}
	if err != nil {
		r.log.Debug().Str("key", ev.Key).Msg("Клавиша не подходит для комбинации, запись продолжается")
		return "", false
	}

	r.finish()
	r.log.Info().Str("accelerator", accel).Msg("Горячая клавиша записана")
	if r.onCapture != nil {
		r.onCapture(accel)
	}
	return accel, true
}

// Blur поле ввода потеряло фокус: запись отменяется.
func (r *Recorder) Blur() {
	if !r.state.Recording() {
		return
	}
	r.finish()
	r.log.Debug().Msg("Запись горячей клавиши отменена")
}

// Reset сбрасывает флаг при закрытии окна или выходе.
func (r *Recorder) Reset() {
	r.finish()
}

func (r *Recorder) finish() {
	r.state.SetRecording(false)
}

// modifiers зажатые в момент события модификаторы.
func (ev KeyEvent) modifiers() []accelerator.Modifier {
	var mods []accelerator.Modifier
	if ev.Meta {
		mods = append(mods, accelerator.ModCommand)
	}
	if ev.Control {
		mods = append(mods, accelerator.ModControl)
	}
	if ev.Alt {
		mods = append(mods, accelerator.ModAlt)
	}
	if ev.Shift {
		mods = append(mods, accelerator.ModShift)
	}
	return mods
}

// keyFromCode KeyboardEvent.code -> имя клавиши: "KeyT" -> "T", "Digit5" -> "5".
func keyFromCode(code string) string {
	switch {
	case strings.HasPrefix(code, "Key") && len(code) == 4:
		return code[3:]
	case strings.HasPrefix(code, "Digit") && len(code) == 6:
		return code[5:]
	}
	return code
}
