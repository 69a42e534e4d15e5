//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"chatbar/internal/accelerator"
)

// modifierMap маппинг accelerator.Modifier -> hotkey.Modifier для Linux
var modifierMap = map[accelerator.Modifier]hotkey.Modifier{
	accelerator.ModCommandOrControl: hotkey.ModCtrl,
	accelerator.ModControl:          hotkey.ModCtrl,
	accelerator.ModShift:            hotkey.ModShift,
	accelerator.ModAlt:              hotkey.Mod1, // Alt = Mod1 на X11
	accelerator.ModCommand:          hotkey.Mod4, // Super/Win = Mod4 на X11
	accelerator.ModSuper:            hotkey.Mod4,
}
