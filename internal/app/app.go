package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	"github.com/vmkteam/zenrpc/v2"
	"golang.org/x/time/rate"

	"github.com/daniilsolovey/news-publisher/config"
	"github.com/daniilsolovey/news-publisher/internal/auth"
	"github.com/daniilsolovey/news-publisher/internal/db"
	"github.com/daniilsolovey/news-publisher/internal/mail"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
	"github.com/daniilsolovey/news-publisher/internal/rest"
	"github.com/daniilsolovey/news-publisher/internal/rpc"
	"github.com/daniilsolovey/news-publisher/internal/upload"
)

const rpcPath = "/rpc"

type App struct {
	DB      *db.Repository
	Manager *newsportal.Manager
	Logger  *slog.Logger
	Echo    *echo.Echo
	RPC     *zenrpc.Server
	Config  config.Config
}

// New wires every dependency once. The returned App owns no goroutines until Run.
func New(cfg config.Config, dbConnect *pg.DB, logger *slog.Logger) *App {
	repo := db.New(dbConnect)
	manager := newsportal.NewManager(repo, newsportal.Options{
		AutoApproveComments: cfg.Comments.AutoApprove,
		SanitizeArticleHTML: cfg.Articles.SanitizeHTML,
	})

	authService := auth.New(auth.Config{
		Secret:   cfg.Auth.JWTSecret,
		Username: cfg.Auth.AdminUsername,
		Password: cfg.Auth.AdminPassword,
		TTL:      cfg.Auth.TokenTTL,
	})

	mailer := mail.NewSMTPSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		To:       cfg.SMTP.To,
	})

	uploader := upload.New(upload.Config{
		Endpoint:   cfg.Upload.Endpoint,
		PrivateKey: cfg.Upload.PrivateKey,
		Folder:     cfg.Upload.Folder,
		MaxSize:    cfg.Upload.MaxSize,
	}, nil)

	proxies, err := cfg.TrustedProxyNets()
	if err != nil {
		logger.Error("trusted proxies ignored", "error", err)
	}

	opts := rest.Options{MaxUploadSize: cfg.Upload.MaxSize, TrustedProxies: proxies}
	if cfg.RateLimit.RPS > 0 {
		opts.RateLimiter = rest.NewRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	handler := rest.NewHandler(manager, authService, mailer, uploader, logger, opts)
	rpcServer := rpc.New(logger, manager)

	e := handler.RegisterRoutes()
	e.Any(rpcPath, echo.WrapHandler(rpcServer))

	if !mailer.Enabled() {
		logger.Warn("smtp host is not set, contact messages are only logged")
	}
	if !uploader.Configured() {
		logger.Warn("upload private key is not set, image upload is disabled")
	}

	return &App{
		DB:      repo,
		Manager: manager,
		Logger:  logger,
		Echo:    e,
		RPC:     rpcServer,
		Config:  cfg,
	}
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, port)
	a.Logger.InfoContext(ctx, "service started", "addr", addr)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
