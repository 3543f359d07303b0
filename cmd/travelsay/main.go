package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/taebin/travelsay/internal/api"
	"github.com/taebin/travelsay/internal/cli"
	"github.com/taebin/travelsay/internal/config"
	"github.com/taebin/travelsay/internal/db"
	"github.com/taebin/travelsay/internal/repository"
	"github.com/taebin/travelsay/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.DescribeError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	credentialRepo := repository.NewSQLiteCredentialRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var callObserver api.Observer = api.NoopObserver{}
	var useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogCalls {
		callObserver = api.NewLogObserver(os.Stderr, cfg.LogLevel)
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel)
	}

	timeout := time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond

	// Login runs without a credential; everything else goes through the
	// session so a 401 purges the stored token.
	publicClient := api.NewClient(cfg.APIBaseURL, timeout, nil, callObserver)
	session := service.NewSessionService(cfg.APIBaseURL, publicClient, credentialRepo, settingsRepo, uow, useCaseObserver)
	client := api.NewClient(cfg.APIBaseURL, timeout, session, callObserver)

	app := &cli.App{
		Server:  cfg.APIBaseURL,
		Session: session,
		Plans:   service.NewPlanService(client, cfg.FanOut, useCaseObserver),
		Backend: client,
		Members: client,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
