package rest

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/auth"
	"github.com/daniilsolovey/news-publisher/internal/mail"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
	"github.com/daniilsolovey/news-publisher/internal/upload"
)

const headerTotalCount = "X-Total-Count"

type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (*upload.Result, error)
}

type Options struct {
	// RateLimiter guards public write endpoints, nil disables it.
	RateLimiter *RateLimiter
	// MaxUploadSize bounds multipart and JSON upload bodies.
	MaxUploadSize int64
	// TrustedProxies are the ranges allowed to set X-Forwarded-For. Empty means the
	// connection address is the client ip.
	TrustedProxies []*net.IPNet
}

type Handler struct {
	manager  *newsportal.Manager
	auth     *auth.Service
	mailer   mail.Sender
	uploader Uploader
	log      *slog.Logger
	opts     Options
}

func NewHandler(manager *newsportal.Manager, authService *auth.Service, mailer mail.Sender, uploader Uploader, log *slog.Logger, opts Options) *Handler {
	return &Handler{
		manager:  manager,
		auth:     authService,
		mailer:   mailer,
		uploader: uploader,
		log:      log,
		opts:     opts,
	}
}

// bindQuery decodes the query string into a urlstruct-tagged struct.
func bindQuery(c echo.Context, dst interface{}) error {
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), dst); err != nil {
		return badRequest("invalid query parameters")
	}
	return nil
}

// bindBody decodes and validates a JSON body.
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return c.Validate(dst)
}

func paramID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

func queryInt(values url.Values, name string, def int) (int, error) {
	s := values.Get(name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, badRequest("invalid " + name)
	}
	return n, nil
}
