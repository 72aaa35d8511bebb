package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/metrics"
)

// Polls handles GET /api/polls
// @Summary List polls
// @Description Active and closed polls. Vote counts are zero unless the poll shows results or is closed.
// @Tags polls
// @Produce json
// @Success 200 {array} rest.Poll
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/polls [get]
func (h *Handler) Polls(c echo.Context) error {
	list, err := h.manager.Polls(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewPolls(list))
}

// PollByID handles GET /api/polls/:id
// @Summary Get poll
// @Tags polls
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} rest.Poll
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/polls/{id} [get]
func (h *Handler) PollByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	poll, err := h.manager.PollByID(c.Request().Context(), id)
	if err != nil {
		return err
	} else if poll == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Poll not found")
	}

	return c.JSON(http.StatusOK, NewPoll(*poll))
}

// Vote handles POST /api/polls/:id/vote
// @Summary Vote in a poll
// @Description One vote per phone number and poll.
// @Tags polls
// @Accept json
// @Produce json
// @Param id path int true "Poll ID"
// @Param request body rest.VoteRequest true "Vote"
// @Success 200 {object} rest.Poll
// @Failure 400,403,404,409,429,500 {object} rest.ErrorResponse
// @Router /api/polls/{id}/vote [post]
func (h *Handler) Vote(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req VoteRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	poll, err := h.manager.Vote(c.Request().Context(), id, req.OptionID, req.Phone)
	if err != nil {
		return err
	}

	metrics.RecordVote()
	return c.JSON(http.StatusOK, NewPoll(*poll))
}
