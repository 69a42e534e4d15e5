// Package cli реализует командную строку chatbar.
package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chatbar/internal/config"
	"chatbar/internal/logging"
)

const envPrefix = "CHATBAR"

// Runtime параметры, общие для всех команд.
type Runtime struct {
	SettingsPath string
	Version      string
	Logger       zerolog.Logger
}

// RunFunc запускает приложение с треем.
type RunFunc func(rt Runtime) error

// NewRootCmd собирает дерево команд. run вызывается командой без подкоманд.
func NewRootCmd(version string, run RunFunc) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "chatbar",
		Short: "Chat providers in the tray",
		Long: `Chatbar keeps AI chat web apps one shortcut away.
Without a subcommand it starts the tray application.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtimeFrom(v, version, cmd)
			if run == nil {
				return fmt.Errorf("no application runner")
			}
			return run(rt)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("settings", "", "path to settings.json (default: user config dir)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	for _, name := range []string{"settings", "log-level", "log-format"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(newSettingsCmd(v, version))
	rootCmd.AddCommand(newShortcutsCmd(v, version))
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// Execute запускает CLI.
func Execute(version string, run RunFunc) error {
	return NewRootCmd(version, run).Execute()
}

func runtimeFrom(v *viper.Viper, version string, cmd *cobra.Command) Runtime {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(v.GetString("log-level"))
	cfg.Format = v.GetString("log-format")
	cfg.Out = cmd.ErrOrStderr()

	path := v.GetString("settings")
	if path == "" {
		path = config.DefaultPath()
	}
	return Runtime{
		SettingsPath: path,
		Version:      version,
		Logger:       logging.New(cfg),
	}
}
