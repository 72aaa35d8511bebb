package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/metrics"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
)

// Articles handles GET /api/articles
// @Summary List articles
// @Description Published articles without content, newest first, or most viewed first when trending is set.
// @Tags articles
// @Produce json
// @Param category_id query int false "Filter by category ID"
// @Param category query string false "Filter by category slug"
// @Param author_id query int false "Filter by author ID"
// @Param featured query bool false "Only featured articles"
// @Param breaking query bool false "Only breaking articles"
// @Param trending query bool false "Order by views"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param page query int false "Page number (default: 1)"
// @Success 200 {array} rest.Article
// @Header 200 {integer} X-Total-Count "Total number of matching articles"
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles [get]
func (h *Handler) Articles(c echo.Context) error {
	var req ArticlesQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	list, err := h.manager.Articles(ctx, req.query())
	if err != nil {
		return err
	}

	total, err := h.manager.ArticlesCount(ctx, req.query())
	if err != nil {
		return err
	}

	c.Response().Header().Set(headerTotalCount, strconv.Itoa(total))
	return c.JSON(http.StatusOK, NewArticles(list))
}

// BreakingArticles handles GET /api/articles/breaking
// @Summary Breaking news
// @Tags articles
// @Produce json
// @Param limit query int false "Number of articles (default: 5)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/breaking [get]
func (h *Handler) BreakingArticles(c echo.Context) error {
	limit, err := queryInt(c.QueryParams(), "limit", newsportal.DefaultBreakingLimit)
	if err != nil {
		return err
	}

	list, err := h.manager.BreakingArticles(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// RelatedArticles handles GET /api/articles/related
// @Summary Related articles
// @Description Articles of the same category, excluding the current one. Without a category the list is empty.
// @Tags articles
// @Produce json
// @Param category_id query int false "Category ID"
// @Param exclude_id query int false "Article ID to exclude"
// @Param limit query int false "Number of articles (default: 3)"
// @Success 200 {array} rest.Article
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/related [get]
func (h *Handler) RelatedArticles(c echo.Context) error {
	var req RelatedQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	list, err := h.manager.RelatedArticles(c.Request().Context(), req.CategoryID, req.ExcludeID, req.Limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// ArticleBySlug handles GET /api/articles/slug/:slug
// @Summary Get article by slug
// @Description Full article with its category and author.
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} rest.Article
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /api/articles/slug/{slug} [get]
func (h *Handler) ArticleBySlug(c echo.Context) error {
	article, err := h.manager.ArticleBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	} else if article == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Article not found")
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// IncrementViews handles POST /api/articles/:id/views
// @Summary Count an article view
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} rest.ViewsResponse
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/views [post]
func (h *Handler) IncrementViews(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	views, err := h.manager.IncrementViews(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.RecordView()
	return c.JSON(http.StatusOK, ViewsResponse{Views: views})
}

// Search handles GET /api/search
// @Summary Search articles
// @Description Case-insensitive substring match on title and excerpt, at most 50 results.
// @Tags articles
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} rest.Article
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/search [get]
func (h *Handler) Search(c echo.Context) error {
	list, err := h.manager.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewArticles(list))
}

// Categories handles GET /api/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} rest.Category
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/categories [get]
func (h *Handler) Categories(c echo.Context) error {
	list, err := h.manager.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewCategories(list))
}

// CategoryBySlug handles GET /api/categories/slug/:slug
// @Summary Get category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} rest.Category
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /api/categories/slug/{slug} [get]
func (h *Handler) CategoryBySlug(c echo.Context) error {
	category, err := h.manager.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	} else if category == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}

	return c.JSON(http.StatusOK, NewCategory(*category))
}

// Authors handles GET /api/authors
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {array} rest.Author
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/authors [get]
func (h *Handler) Authors(c echo.Context) error {
	list, err := h.manager.Authors(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewAuthors(list))
}

// AuthorByID handles GET /api/authors/:id
// @Summary Get author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} rest.Author
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/authors/{id} [get]
func (h *Handler) AuthorByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	author, err := h.manager.AuthorByID(c.Request().Context(), id)
	if err != nil {
		return err
	} else if author == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Author not found")
	}

	return c.JSON(http.StatusOK, NewAuthor(*author))
}
