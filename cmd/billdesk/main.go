package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/billdesk/internal/cli"
	"github.com/mmynk/billdesk/internal/config"
	"github.com/mmynk/billdesk/pkg/logging"
)

func main() {
	cfg, envErr := config.Load()
	logging.Setup(cfg.LogLevel)
	if envErr != nil {
		slog.Warn("Ignoring unreadable .env file", "error", envErr)
	}

	commander := subcommands.NewCommander(flag.CommandLine, "billdesk")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, cli.NewApp(cfg))

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
