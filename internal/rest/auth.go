package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/auth"
)

// Login handles POST /api/admin/login
// @Summary Admin login
// @Description Returns a bearer token valid for eight hours.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.LoginResponse
// @Failure 400,401,429 {object} rest.ErrorResponse
// @Router /api/admin/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	token, expiresAt, err := h.auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	} else if err != nil {
		return err
	}

	h.log.Info("admin logged in", "username", req.Username, "remote_ip", c.RealIP())
	return c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Verify handles GET /api/admin/verify
// @Summary Check the admin token
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.VerifyResponse
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/admin/verify [get]
func (h *Handler) Verify(c echo.Context) error {
	resp := VerifyResponse{Valid: true}
	if claims := auth.ClaimsFrom(c); claims != nil {
		resp.Username = claims.Username
	}
	return c.JSON(http.StatusOK, resp)
}
