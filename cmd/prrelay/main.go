package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"google.golang.org/api/option"

	githubadapter "github.com/efrayne/prrelay/internal/adapter/driven/github"
	sheetsadapter "github.com/efrayne/prrelay/internal/adapter/driven/sheets"
	slackadapter "github.com/efrayne/prrelay/internal/adapter/driven/slack"
	sqliteadapter "github.com/efrayne/prrelay/internal/adapter/driven/sqlite"
	httphandler "github.com/efrayne/prrelay/internal/adapter/driving/http"
	"github.com/efrayne/prrelay/internal/application"
	"github.com/efrayne/prrelay/internal/config"
	"github.com/efrayne/prrelay/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"spreadsheet_id", cfg.SpreadsheetID,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open local audit database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	auditRepo := sqliteadapter.NewAuditRepo(db)
	ghClient := githubadapter.NewClient(cfg.GitHubToken)
	slackClient := slackadapter.NewClient(cfg.SlackBotToken, "")

	// 6. Resolve the bot's own user ID so its replies are not re-processed.
	botUserID := cfg.SlackBotUserID
	if botUserID == "" {
		botUserID, err = slackClient.BotUserID(ctx)
		if err != nil {
			return err
		}
		slog.Info("bot user resolved via auth.test", "user_id", botUserID)
	}

	// 7. Audit sinks: the sqlite mirror always, the Google Sheet when
	// credentials are configured.
	auditLogs := []driven.AuditLog{auditRepo}
	if cfg.GoogleCredentials != "" {
		sheet, err := sheetsadapter.NewAuditSheet(ctx, cfg.SpreadsheetID,
			option.WithCredentialsFile(cfg.GoogleCredentials))
		if err != nil {
			return err
		}
		auditLogs = append(auditLogs, sheet)
		slog.Info("sheet audit sink enabled", "spreadsheet_id", cfg.SpreadsheetID)
	} else {
		slog.Info("no google credentials configured, sheet audit sink disabled")
	}

	// 8. Wire application services.
	enricher := application.NewEnrichService(ghClient, slog.Default())
	dispatcher := application.NewDispatcher(slackClient, auditLogs, slog.Default())
	relay := application.NewRelayService(enricher, dispatcher, slog.Default())

	// 9. Create HTTP handler and routes.
	apiHandler := httphandler.NewHandler(relay, auditRepo, botUserID, slog.Default())
	handler := httphandler.NewServeMux(apiHandler, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("prrelay started", "listen_addr", cfg.ListenAddr, "bot_user_id", botUserID)

	// 10. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
