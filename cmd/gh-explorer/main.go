package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/cli"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/config"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/github"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/printer"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/service"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/logger"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.DefaultPath, os.Stdin, os.Stdout); err != nil {
		if errors.HasReference(err, errors.RefConfig) {
			logger.Fatal("‼️ Failed to load config: %v", err)
		}
		logger.Fatal("%v", err)
	}
}

func run(ctx context.Context, envPath string, in io.Reader, out io.Writer) error {
	// * Load configuration before anything touches the network
	cfg, err := config.Load(envPath)
	if err != nil {
		return err
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}
	logger.Debug("configuration loaded (api version %s, api url %s)", cfg.APIVersion, cfg.APIURL)

	// * Initialize GitHub client
	githubClient := github.NewClient(cfg)

	// * Create services
	explorer := service.NewExplorerService(githubClient)

	dispatcher := cli.NewDispatcher(explorer, printer.New(out))
	if isTerminal(in) && isTerminal(out) {
		dispatcher.UseSelector(cli.NewTerminalSelector(in, out))
	}
	return dispatcher.Run(ctx, in)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
