//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"chatbar/internal/accelerator"
)

// modifierMap маппинг accelerator.Modifier -> hotkey.Modifier для macOS
var modifierMap = map[accelerator.Modifier]hotkey.Modifier{
	accelerator.ModCommandOrControl: hotkey.ModCmd,
	accelerator.ModCommand:          hotkey.ModCmd,
	accelerator.ModSuper:            hotkey.ModCmd,
	accelerator.ModControl:          hotkey.ModCtrl,
	accelerator.ModShift:            hotkey.ModShift,
	accelerator.ModAlt:              hotkey.ModOption,
}
