package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/mail"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
	"github.com/daniilsolovey/news-publisher/internal/upload"
)

const internalErrorMessage = "internal server error"

// handleError is the echo HTTPErrorHandler. Every failure leaves as {"error": message}.
func (h *Handler) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := h.classify(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"status", status,
			"error", err,
		)
	} else {
		h.log.Debug("request rejected", "path", c.Request().URL.Path, "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, ErrorResponse{Error: message})
	}
	if err != nil {
		h.log.Error("failed to write error response", "error", err)
	}
}

func (h *Handler) classify(err error) (int, string) {
	var (
		he   *echo.HTTPError
		verr *ValidationError
		perr *upload.ProviderError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, internalErrorMessage
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)

	case errors.Is(err, newsportal.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, newsportal.ErrNotSubscribed):
		return http.StatusForbidden, "Active subscription required"
	case errors.Is(err, newsportal.ErrAlreadySubscribed):
		return http.StatusBadRequest, "Already subscribed"
	case errors.Is(err, newsportal.ErrSlugTaken):
		return http.StatusConflict, "Slug already exists"
	case errors.Is(err, newsportal.ErrAlreadyVoted):
		return http.StatusConflict, "This phone number has already voted"
	case errors.Is(err, newsportal.ErrPollClosed):
		return http.StatusForbidden, "Poll is not accepting votes"
	case errors.Is(err, newsportal.ErrInvalidReference),
		errors.Is(err, newsportal.ErrInvalidOption),
		errors.Is(err, newsportal.ErrInvalidPhone),
		errors.Is(err, newsportal.ErrInvalidInput),
		errors.Is(err, upload.ErrEmptyFile),
		errors.Is(err, upload.ErrInvalidData),
		errors.Is(err, mail.ErrInvalidMessage):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "File is too large"

	// Provider failures are reported with their own message.
	case errors.Is(err, upload.ErrNotConfigured):
		return http.StatusInternalServerError, "Image upload is not configured"
	case errors.As(err, &perr):
		return http.StatusInternalServerError, perr.Message
	case errors.Is(err, errMailDelivery):
		return http.StatusInternalServerError, err.Error()
	}

	return http.StatusInternalServerError, internalErrorMessage
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
