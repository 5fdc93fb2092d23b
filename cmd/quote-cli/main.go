package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wolfman30/window-quote/cmd/mainconfig"
	"github.com/wolfman30/window-quote/internal/app/bootstrap"
	appconfig "github.com/wolfman30/window-quote/internal/config"
	"github.com/wolfman30/window-quote/internal/leads"
	"github.com/wolfman30/window-quote/internal/quoteform"
	"github.com/wolfman30/window-quote/internal/terminal"
	"github.com/wolfman30/window-quote/pkg/logging"
)

// quote-cli fills in the quote form from a terminal. Submitted quotes go
// through the same lead intake as the web form.
func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, terminal.NewSurveyDriver(os.Stdout), logger); err != nil {
		if errors.Is(err, terminal.ErrAborted) {
			fmt.Fprintln(os.Stderr, "quote cancelled")
			os.Exit(130)
		}
		logger.Error("quote-cli failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *appconfig.Config, driver terminal.PromptDriver, logger *logging.Logger) error {
	def, err := bootstrap.BuildDefinition(cfg)
	if err != nil {
		return err
	}

	intake, closeIntake := buildIntake(ctx, cfg, logger)
	defer closeIntake()

	s := quoteform.NewSession(quoteform.NewSessionID(), def)
	_, err = terminal.NewRunner(driver, intake, logger).Run(ctx, s)
	return err
}

func buildIntake(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*leads.Intake, func()) {
	pool := bootstrap.BuildPostgresPool(ctx, cfg.DatabaseURL, logger)
	awsCfg := mainconfig.OptionalAWSConfig(ctx, cfg, logger)

	intake := bootstrap.BuildIntake(cfg,
		bootstrap.BuildLeadRepository(pool, logger),
		bootstrap.BuildLeadPublisher(cfg, awsCfg),
		bootstrap.BuildEmailSender(cfg, awsCfg, logger),
		nil,
		logger,
		leads.WithSource(leads.SourceTerminal),
	)
	return intake, func() {
		if pool != nil {
			pool.Close()
		}
	}
}
