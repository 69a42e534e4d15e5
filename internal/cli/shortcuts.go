package cli

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chatbar/internal/accelerator"
	"chatbar/internal/config"
)

func newShortcutsCmd(v *viper.Viper, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "List global shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtimeFrom(v, version, cmd)
			settings := config.Open(rt.SettingsPath, rt.Logger).Load(ctx(cmd))

			names := make([]string, 0, len(settings.Shortcuts))
			for name := range settings.Shortcuts {
				names = append(names, name)
			}
			slices.Sort(names)

			width := len("ACTION")
			for _, name := range names {
				width = max(width, len(name))
			}
			cell := lipgloss.NewStyle().Width(width + 2)
			accelCell := lipgloss.NewStyle().Width(32)

			var b strings.Builder
			b.WriteString(headerStyle.Render(cell.Render("ACTION") + accelCell.Render("ACCELERATOR") + "DISPLAY"))
			b.WriteString("\n")
			for _, name := range names {
				accel := settings.Shortcuts[name]
				display := accelerator.Display(accel, runtime.GOOS)
				if accel == "" {
					accel, display = "-", warnStyle.Render("unbound")
				}
				b.WriteString(nameStyle.Render(cell.Render(name)) + accelCell.Render(accel) + display)
				b.WriteString("\n")
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}
