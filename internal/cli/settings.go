package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"chatbar/internal/config"
)

func newSettingsCmd(v *viper.Viper, version string) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"config"},
		Short:   "Inspect or reset settings",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print all settings with defaults applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtimeFrom(v, version, cmd)
			store := config.Open(rt.SettingsPath, rt.Logger)

			values, err := store.GetAll(ctx(cmd))
			if err != nil {
				return fmt.Errorf("read settings: %w", err)
			}

			var data []byte
			switch format {
			case "json":
				data, err = json.MarshalIndent(values, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(values)
			default:
				return fmt.Errorf("unknown format %q (expected json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json or yaml")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtimeFrom(v, version, cmd)
			store := config.Open(rt.SettingsPath, rt.Logger)

			if _, err := store.Reset(ctx(cmd)); err != nil {
				return fmt.Errorf("reset settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings reset: "+dimStyle.Render(store.Path()))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), runtimeFrom(v, version, cmd).SettingsPath)
		},
	}

	settingsCmd.AddCommand(showCmd, resetCmd, pathCmd)
	return settingsCmd
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
