package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/news-publisher/internal/metrics"
)

const (
	apiPrefix  = "/api"
	healthPath = "/health"
	metricPath = "/metrics"
	docPath    = "/swagger/doc.json"
)

// RegisterRoutes builds the echo router with every public, admin and service route.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ipExtractor(h.opts.TrustedProxies)
	e.Validator = NewValidator()
	e.HTTPErrorHandler = h.handleError

	e.Use(requestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger(h.log))
	e.Use(cors())

	e.GET(healthPath, h.Health)
	e.GET(metricPath, echo.WrapHandler(metrics.Handler()))
	e.GET(docPath, h.SwaggerDoc)

	api := e.Group(apiPrefix)
	h.registerPublicRoutes(api)
	h.registerAdminRoutes(api)

	return e
}

func (h *Handler) registerPublicRoutes(api *echo.Group) {
	limited := h.opts.RateLimiter.Middleware()

	api.GET("/categories", h.Categories)
	api.GET("/categories/slug/:slug", h.CategoryBySlug)
	api.GET("/authors", h.Authors)
	api.GET("/authors/:id", h.AuthorByID)

	api.GET("/articles", h.Articles)
	api.GET("/articles/breaking", h.BreakingArticles)
	api.GET("/articles/related", h.RelatedArticles)
	api.GET("/articles/slug/:slug", h.ArticleBySlug)
	api.POST("/articles/:id/views", h.IncrementViews)
	api.GET("/articles/:id/comments", h.Comments)
	api.POST("/articles/:id/comments", h.AddComment, limited)
	api.GET("/articles/:id/likes", h.Likes)
	api.POST("/articles/:id/like", h.ToggleLike, limited)

	api.POST("/subscribe", h.Subscribe, limited)
	api.GET("/subscribe/check", h.CheckSubscription)
	api.POST("/unsubscribe", h.Unsubscribe, limited)

	api.GET("/search", h.Search)
	api.POST("/contact", h.Contact, limited)

	api.GET("/polls", h.Polls)
	api.GET("/polls/:id", h.PollByID)
	api.POST("/polls/:id/vote", h.Vote, limited)

	api.POST("/upload", h.Upload, h.auth.RequireAdmin())
}

func (h *Handler) registerAdminRoutes(api *echo.Group) {
	api.POST("/admin/login", h.Login, h.opts.RateLimiter.Middleware())

	admin := api.Group("/admin", h.auth.RequireAdmin())
	admin.GET("/verify", h.Verify)
	admin.GET("/stats", h.Stats)

	admin.GET("/articles", h.AdminArticles)
	admin.POST("/articles", h.CreateArticle)
	admin.GET("/articles/:id", h.AdminArticleByID)
	admin.PUT("/articles/:id", h.UpdateArticle)
	admin.PATCH("/articles/:id", h.UpdateArticle)
	admin.DELETE("/articles/:id", h.DeleteArticle)

	admin.GET("/categories", h.Categories)
	admin.POST("/categories", h.CreateCategory)
	admin.GET("/categories/:id", h.AdminCategoryByID)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.PATCH("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)

	admin.GET("/authors", h.Authors)
	admin.POST("/authors", h.CreateAuthor)
	admin.GET("/authors/:id", h.AuthorByID)
	admin.PUT("/authors/:id", h.UpdateAuthor)
	admin.PATCH("/authors/:id", h.UpdateAuthor)
	admin.DELETE("/authors/:id", h.DeleteAuthor)

	admin.GET("/comments", h.AdminComments)
	admin.PUT("/comments/:id/approve", h.ApproveComment)
	admin.PATCH("/comments/:id/approve", h.ApproveComment)
	admin.DELETE("/comments/:id", h.DeleteComment)

	admin.GET("/subscribers", h.AdminSubscribers)
	admin.DELETE("/subscribers/:id", h.DeleteSubscriber)

	admin.GET("/polls", h.AdminPolls)
	admin.POST("/polls", h.CreatePoll)
	admin.GET("/polls/:id", h.AdminPollByID)
	admin.PUT("/polls/:id", h.UpdatePoll)
	admin.PATCH("/polls/:id", h.UpdatePoll)
	admin.DELETE("/polls/:id", h.DeletePoll)
}

// Health handles GET /health
// @Summary Health check
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} rest.ErrorResponse
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	if err := h.manager.Ping(c.Request().Context()); err != nil {
		h.log.Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "database unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "API documentation is not registered")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}
