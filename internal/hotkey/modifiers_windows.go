//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"

	"chatbar/internal/accelerator"
)

// modifierMap маппинг accelerator.Modifier -> hotkey.Modifier для Windows
var modifierMap = map[accelerator.Modifier]hotkey.Modifier{
	accelerator.ModCommandOrControl: hotkey.ModCtrl,
	accelerator.ModControl:          hotkey.ModCtrl,
	accelerator.ModShift:            hotkey.ModShift,
	accelerator.ModAlt:              hotkey.ModAlt,
	accelerator.ModCommand:          hotkey.ModWin,
	accelerator.ModSuper:            hotkey.ModWin,
}
