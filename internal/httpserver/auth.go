package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchwell/storefront/internal/service"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, service.ErrBadCredentials):
			l.Warn("login_error", "status", 401, "reason", "bad credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "bad credentials")
		default:
			l.Error("login_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("login_success", "username", req.Username)
	return c.JSON(http.StatusOK, transport.LoginResponse{AccessToken: token})
}
