package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/mail"
	"github.com/daniilsolovey/news-publisher/internal/metrics"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
)

var errMailDelivery = errors.New("failed to send message")

// Subscribe handles POST /api/subscribe
// @Summary Subscribe to the newsletter
// @Description Creates a subscription or reactivates an unsubscribed email.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body rest.SubscribeRequest true "Subscriber"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,429,500 {object} rest.ErrorResponse
// @Router /api/subscribe [post]
func (h *Handler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	result, err := h.manager.Subscribe(c.Request().Context(), req.Email, req.Name)
	if errors.Is(err, newsportal.ErrAlreadySubscribed) {
		metrics.RecordSubscription("already_subscribed")
		return err
	} else if err != nil {
		return err
	}

	label := "subscribed"
	if result == newsportal.Resubscribed {
		label = "resubscribed"
	}
	metrics.RecordSubscription(label)

	return c.JSON(http.StatusOK, MessageResponse{Message: string(result)})
}

// Unsubscribe handles POST /api/unsubscribe
// @Summary Unsubscribe from the newsletter
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body rest.EmailRequest true "Subscriber email"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,404,429,500 {object} rest.ErrorResponse
// @Router /api/unsubscribe [post]
func (h *Handler) Unsubscribe(c echo.Context) error {
	var req EmailRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.manager.Unsubscribe(c.Request().Context(), req.Email); errors.Is(err, newsportal.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Subscriber not found")
	} else if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Unsubscribed"})
}

// CheckSubscription handles GET /api/subscribe/check
// @Summary Check subscription
// @Tags subscriptions
// @Produce json
// @Param email query string true "Subscriber email"
// @Success 200 {object} rest.SubscriptionStatus
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/subscribe/check [get]
func (h *Handler) CheckSubscription(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return badRequest("email is required")
	}

	ok, err := h.manager.IsSubscribed(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SubscriptionStatus{Subscribed: ok})
}

// Comments handles GET /api/articles/:id/comments
// @Summary List approved comments
// @Tags comments
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {array} rest.Comment
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/comments [get]
func (h *Handler) Comments(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	list, err := h.manager.Comments(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewComments(list))
}

// AddComment handles POST /api/articles/:id/comments
// @Summary Add a comment
// @Description Only active subscribers may comment.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body rest.CommentRequest true "Comment"
// @Success 200 {object} rest.Comment
// @Failure 400,403,404,429,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/comments [post]
func (h *Handler) AddComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	comment, err := h.manager.AddComment(c.Request().Context(), id, req.Email, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewComment(*comment))
}

// Likes handles GET /api/articles/:id/likes
// @Summary Like count
// @Description Like count and, when email is given, whether that subscriber liked the article.
// @Tags likes
// @Produce json
// @Param id path int true "Article ID"
// @Param email query string false "Subscriber email"
// @Success 200 {object} rest.LikeStatus
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/likes [get]
func (h *Handler) Likes(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	status, err := h.manager.LikeStatus(c.Request().Context(), id, c.QueryParam("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewLikeStatus(status))
}

// ToggleLike handles POST /api/articles/:id/like
// @Summary Toggle like
// @Tags likes
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body rest.EmailRequest true "Subscriber email"
// @Success 200 {object} rest.LikeStatus
// @Failure 400,403,404,429,500 {object} rest.ErrorResponse
// @Router /api/articles/{id}/like [post]
func (h *Handler) ToggleLike(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req EmailRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	status, err := h.manager.ToggleLike(c.Request().Context(), id, req.Email)
	if err != nil {
		return err
	}

	metrics.RecordLike(status.Liked)
	return c.JSON(http.StatusOK, NewLikeStatus(status))
}

// Contact handles POST /api/contact
// @Summary Send a contact message
// @Description Mails the editors when SMTP is configured, otherwise the message is only logged.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body rest.ContactRequest true "Message"
// @Success 200 {object} rest.MessageResponse
// @Failure 400,429,500 {object} rest.ErrorResponse
// @Router /api/contact [post]
func (h *Handler) Contact(c echo.Context) error {
	var req ContactRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if h.mailer == nil || !h.mailer.Enabled() {
		h.log.Info("contact message received, smtp disabled", "email", req.Email, "subject", req.Subject)
		return c.JSON(http.StatusOK, MessageResponse{Message: "Message received"})
	}

	err := h.mailer.Send(c.Request().Context(), mail.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	})
	if errors.Is(err, mail.ErrInvalidMessage) {
		return err
	} else if err != nil {
		return fmt.Errorf("%w: %v", errMailDelivery, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Message sent"})
}
