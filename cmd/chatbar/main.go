// Chatbar - веб-чаты с ИИ в системном трее.
//
// Окно с вкладками чатов показывается и скрывается глобальной горячей
// клавишей (по умолчанию CommandOrControl+Shift+Space) или кликом по иконке.
package main

import (
	"os"

	"chatbar/internal/app"
	"chatbar/internal/cli"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	if err := cli.Execute(Version, run); err != nil {
		os.Exit(1)
	}
}

func run(rt cli.Runtime) error {
	rt.Logger.Info().Str("version", rt.Version).Msg("Chatbar запускается...")

	application, err := app.New(app.Options{
		SettingsPath: rt.SettingsPath,
		Version:      rt.Version,
		Logger:       rt.Logger,
	})
	if err != nil {
		rt.Logger.Error().Err(err).Msg("Ошибка инициализации")
		return err
	}
	return application.Run()
}
