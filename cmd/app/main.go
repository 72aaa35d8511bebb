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

	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/news-publisher/config"
	_ "github.com/daniilsolovey/news-publisher/docs"
	"github.com/daniilsolovey/news-publisher/internal/app"
	"github.com/daniilsolovey/news-publisher/internal/db"
)

var (
	flConfig  = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug   = flag.Bool("debug", false, "enable debug mode")
	flMigrate = flag.Bool("migrate", false, "apply database migrations before start")

	flDatabaseURL   = flag.String("database-url", "", "postgres connection url, overrides [Database]")
	flJWTSecret     = flag.String("jwt-secret", "", "secret for signing admin tokens")
	flAdminUsername = flag.String("admin-username", "", "admin login")
	flAdminPassword = flag.String("admin-password", "", "admin password")
	flSMTPHost      = flag.String("smtp-host", "", "smtp relay host")
	flSMTPPort      = flag.String("smtp-port", "", "smtp relay port")
	flSMTPUser      = flag.String("smtp-user", "", "smtp username")
	flSMTPPassword  = flag.String("smtp-password", "", "smtp password")
	flSMTPFrom      = flag.String("smtp-from", "", "sender address of contact messages")
	flUploadKey     = flag.String("upload-private-key", "", "image host private key")
	flPort          = flag.Int("port", 0, "http port, overrides [App] Port")

	cfg config.Config
	lg  *slog.Logger
)

// @title News Publisher API
// @version 1.0
// @description Public content API and admin console API of the news portal
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// flags read the environment, so .env has to be loaded first
	lg = newLogger(false)
	exitOnError(config.LoadEnv(".env"))

	flag.Parse()
	lg = newLogger(*flDebug)

	var err error
	cfg, err = config.Load(*flConfig)
	exitOnError(err)

	exitOnError(cfg.Apply(config.Overrides{
		DatabaseURL:      *flDatabaseURL,
		JWTSecret:        *flJWTSecret,
		AdminUsername:    *flAdminUsername,
		AdminPassword:    *flAdminPassword,
		SMTPHost:         *flSMTPHost,
		SMTPPort:         *flSMTPPort,
		SMTPUser:         *flSMTPUser,
		SMTPPassword:     *flSMTPPassword,
		SMTPFrom:         *flSMTPFrom,
		UploadPrivateKey: *flUploadKey,
		Port:             *flPort,
	}))
	exitOnError(cfg.Validate())

	ctx := context.Background()

	if *flMigrate {
		exitOnError(db.Migrate(ctx, cfg.DatabaseURL()))
		lg.Info("migrations applied")
	}

	dbc := pg.Connect(&cfg.Database)
	if cfg.App.LogQueries {
		dbc.AddQueryHook(db.NewQueryHook(lg))
	}
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		exitOnError(err)
	}

	service := app.New(cfg, dbc, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx, cfg.App.Port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := service.GracefulShutdown(shutdownCtx); err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}

	if err := dbc.Close(); err != nil {
		lg.Error("failed to close database", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
