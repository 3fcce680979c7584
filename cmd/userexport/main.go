// Command userexport downloads the Slack workspace user list and writes it
// to an .xlsx roster.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	slackadapter "github.com/efrayne/prrelay/internal/adapter/driven/slack"
	"github.com/efrayne/prrelay/internal/adapter/driven/xlsx"
	"github.com/efrayne/prrelay/internal/application"
	"github.com/efrayne/prrelay/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadExport()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slackClient := slackadapter.NewClient(cfg.SlackBotToken, cfg.OrgFieldID)
	writer := xlsx.NewWriter()
	exporter := application.NewExportService(slackClient, writer, slog.Default())

	count, err := exporter.Export(ctx, cfg.OutputPath)
	if err != nil {
		return err
	}

	slog.Info("roster written", "path", cfg.OutputPath, "users", count)
	return nil
}
