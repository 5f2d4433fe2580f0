package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/finvault/cmd/app/commands"
	"github.com/allisson/finvault/internal/app"
	"github.com/allisson/finvault/internal/config"
)

// withKeyUseCase loads the configuration, builds the container, resolves the
// key use case, and guarantees container shutdown after fn returns.
func withKeyUseCase(
	ctx context.Context,
	fn func(container *app.Container) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	err := fn(container)

	if shutdownErr := container.Shutdown(ctx); shutdownErr != nil {
		container.Logger().Error("failed to shutdown container", slog.Any("error", shutdownErr))
	}

	return err
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init-key",
			Usage: "Generate and install a fresh master key on this device",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keyUseCase, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunInitKey(
						ctx, keyUseCase, container.Logger(), commands.DefaultIO().Writer,
					)
				})
			},
		},
		{
			Name:  "key-status",
			Usage: "Report whether a master key is installed on this device",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keyUseCase, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunKeyStatus(ctx, keyUseCase, commands.DefaultIO().Writer)
				})
			},
		},
		{
			Name:  "export-key",
			Usage: "Print the installed key's recovery phrase and exported string",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keyUseCase, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunExportKey(ctx, keyUseCase, commands.DefaultIO().Writer)
				})
			},
		},
		{
			Name:  "import-key",
			Usage: "Install a master key from its recovery phrase or exported string",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "phrase",
					Aliases: []string{"p"},
					Usage:   "Recovery phrase (dash-separated groups)",
				},
				&cli.StringFlag{
					Name:    "exported",
					Aliases: []string{"e"},
					Usage:   "Exported key string (base64)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keyUseCase, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunImportKey(
						ctx,
						keyUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("phrase"),
						cmd.String("exported"),
					)
				})
			},
		},
		{
			Name:  "delete-key",
			Usage: "Permanently delete the master key from this device",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Value:   false,
					Usage:   "Skip the interactive confirmation prompt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keyUseCase, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunDeleteKey(
						ctx,
						keyUseCase,
						container.Logger(),
						commands.DefaultIO(),
						cmd.Bool("yes"),
					)
				})
			},
		},
	}
}
