package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

var deleted = MessageResponse{Message: "Deleted"}

func setTotal(c echo.Context, total int) {
	c.Response().Header().Set(headerTotalCount, strconv.Itoa(total))
}

// Stats handles GET /api/admin/stats
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.Stats
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /api/admin/stats [get]
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.manager.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewStats(*stats))
}

// AdminArticles handles GET /api/admin/articles
// @Summary List all articles
// @Description Includes scheduled articles. Total count is sent in X-Total-Count.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Title or excerpt substring"
// @Param category_id query int false "Filter by category ID"
// @Param author_id query int false "Filter by author ID"
// @Param limit query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {array} rest.Article
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/admin/articles [get]
func (h *Handler) AdminArticles(c echo.Context) error {
	var req AdminArticlesQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, total, err := h.manager.AdminArticles(c.Request().Context(), req.query())
	if err != nil {
		return err
	}

	setTotal(c, total)
	return c.JSON(http.StatusOK, NewArticles(list))
}

// AdminArticleByID handles GET /api/admin/articles/:id
// @Summary Get article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} rest.Article
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/articles/{id} [get]
func (h *Handler) AdminArticleByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	article, err := h.manager.AdminArticleByID(c.Request().Context(), id)
	if err != nil {
		return err
	} else if article == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Article not found")
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// CreateArticle handles POST /api/admin/articles
// @Summary Create article
// @Description Slug is derived from the title and reading time from the content when omitted.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.ArticleRequest true "Article"
// @Success 201 {object} rest.Article
// @Failure 400,401,409,500 {object} rest.ErrorResponse
// @Router /api/admin/articles [post]
func (h *Handler) CreateArticle(c echo.Context) error {
	var req ArticleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	article, err := h.manager.CreateArticle(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, NewArticle(*article))
}

// UpdateArticle handles PUT and PATCH /api/admin/articles/:id
// @Summary Update article
// @Description Only fields present in the body are changed.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body rest.ArticlePatchRequest true "Changed fields"
// @Success 200 {object} rest.Article
// @Failure 400,401,404,409,500 {object} rest.ErrorResponse
// @Router /api/admin/articles/{id} [put]
// @Router /api/admin/articles/{id} [patch]
func (h *Handler) UpdateArticle(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req ArticlePatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	article, err := h.manager.UpdateArticle(c.Request().Context(), id, req.update())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewArticle(*article))
}

// DeleteArticle handles DELETE /api/admin/articles/:id
// @Summary Delete article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/articles/{id} [delete]
func (h *Handler) DeleteArticle(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.DeleteArticle(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}

// AdminCategoryByID handles GET /api/admin/categories/:id
// @Summary Get category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} rest.Category
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/categories/{id} [get]
func (h *Handler) AdminCategoryByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.manager.CategoryByID(c.Request().Context(), id)
	if err != nil {
		return err
	} else if category == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}

	return c.JSON(http.StatusOK, NewCategory(*category))
}

// CreateCategory handles POST /api/admin/categories
// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.CategoryRequest true "Category"
// @Success 201 {object} rest.Category
// @Failure 400,401,409,500 {object} rest.ErrorResponse
// @Router /api/admin/categories [post]
func (h *Handler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	category, err := h.manager.CreateCategory(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, NewCategory(*category))
}

// UpdateCategory handles PUT and PATCH /api/admin/categories/:id
// @Summary Update category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body rest.CategoryPatchRequest true "Changed fields"
// @Success 200 {object} rest.Category
// @Failure 400,401,404,409,500 {object} rest.ErrorResponse
// @Router /api/admin/categories/{id} [put]
// @Router /api/admin/categories/{id} [patch]
func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req CategoryPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	category, err := h.manager.UpdateCategory(c.Request().Context(), id, req.update())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewCategory(*category))
}

// DeleteCategory handles DELETE /api/admin/categories/:id
// @Summary Delete category
// @Description Articles of the category keep existing without a category.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/categories/{id} [delete]
func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}

// CreateAuthor handles POST /api/admin/authors
// @Summary Create author
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.AuthorRequest true "Author"
// @Success 201 {object} rest.Author
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/admin/authors [post]
func (h *Handler) CreateAuthor(c echo.Context) error {
	var req AuthorRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	author, err := h.manager.CreateAuthor(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, NewAuthor(*author))
}

// UpdateAuthor handles PUT and PATCH /api/admin/authors/:id
// @Summary Update author
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param request body rest.AuthorPatchRequest true "Changed fields"
// @Success 200 {object} rest.Author
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/authors/{id} [put]
// @Router /api/admin/authors/{id} [patch]
func (h *Handler) UpdateAuthor(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req AuthorPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	author, err := h.manager.UpdateAuthor(c.Request().Context(), id, req.update())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewAuthor(*author))
}

// DeleteAuthor handles DELETE /api/admin/authors/:id
// @Summary Delete author
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/authors/{id} [delete]
func (h *Handler) DeleteAuthor(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.DeleteAuthor(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}

// AdminComments handles GET /api/admin/comments
// @Summary List comments for moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param approved query bool false "Filter by moderation state"
// @Param limit query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {array} rest.Comment
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/admin/comments [get]
func (h *Handler) AdminComments(c echo.Context) error {
	var req AdminCommentsQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, total, err := h.manager.AdminComments(c.Request().Context(), req.Approved.Value, req.Limit, req.Page)
	if err != nil {
		return err
	}

	setTotal(c, total)
	return c.JSON(http.StatusOK, NewAdminComments(list))
}

// ApproveComment handles PUT and PATCH /api/admin/comments/:id/approve
// @Summary Approve comment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/comments/{id}/approve [put]
// @Router /api/admin/comments/{id}/approve [patch]
func (h *Handler) ApproveComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.ApproveComment(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Approved"})
}

// DeleteComment handles DELETE /api/admin/comments/:id
// @Summary Delete comment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/comments/{id} [delete]
func (h *Handler) DeleteComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.DeleteComment(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}

// AdminSubscribers handles GET /api/admin/subscribers
// @Summary List subscribers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active subscribers"
// @Param email query string false "Email substring"
// @Param limit query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {array} rest.Subscriber
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/admin/subscribers [get]
func (h *Handler) AdminSubscribers(c echo.Context) error {
	var req AdminSubscribersQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}

	list, total, err := h.manager.AdminSubscribers(c.Request().Context(), bool(req.Active), req.Email, req.Limit, req.Page)
	if err != nil {
		return err
	}

	setTotal(c, total)
	return c.JSON(http.StatusOK, NewSubscribers(list))
}

// DeleteSubscriber handles DELETE /api/admin/subscribers/:id
// @Summary Delete subscriber
// @Description Removes the subscriber with their comments and likes.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscriber ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/subscribers/{id} [delete]
func (h *Handler) DeleteSubscriber(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.DeleteSubscriber(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}

// AdminPolls handles GET /api/admin/polls
// @Summary List all polls
// @Description Includes drafts and real vote counts.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} rest.Poll
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /api/admin/polls [get]
func (h *Handler) AdminPolls(c echo.Context) error {
	list, err := h.manager.AdminPolls(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewPolls(list))
}

// AdminPollByID handles GET /api/admin/polls/:id
// @Summary Get poll
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Success 200 {object} rest.Poll
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/polls/{id} [get]
func (h *Handler) AdminPollByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	poll, err := h.manager.AdminPollByID(c.Request().Context(), id)
	if err != nil {
		return err
	} else if poll == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
	}

	return c.JSON(http.StatusOK, NewPoll(*poll))
}

// CreatePoll handles POST /api/admin/polls
// @Summary Create poll
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.PollRequest true "Poll with options"
// @Success 201 {object} rest.Poll
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/admin/polls [post]
func (h *Handler) CreatePoll(c echo.Context) error {
	var req PollRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	poll, err := h.manager.CreatePoll(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, NewPoll(*poll))
}

// UpdatePoll handles PUT and PATCH /api/admin/polls/:id
// @Summary Update poll
// @Description When options are sent they replace the option set; options keep their votes when their id is sent back.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Param request body rest.PollPatchRequest true "Changed fields"
// @Success 200 {object} rest.Poll
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/polls/{id} [put]
// @Router /api/admin/polls/{id} [patch]
func (h *Handler) UpdatePoll(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req PollPatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	poll, err := h.manager.UpdatePoll(c.Request().Context(), id, req.update())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewPoll(*poll))
}

// DeletePoll handles DELETE /api/admin/polls/:id
// @Summary Delete poll
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/admin/polls/{id} [delete]
func (h *Handler) DeletePoll(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.manager.DeletePoll(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleted)
}
