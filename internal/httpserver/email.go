package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchwell/storefront/internal/service"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

type EmailHTTP struct {
	Svc *service.NotificationService
}

func (h *EmailHTTP) Send(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "email.send")

	var req transport.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("send_email_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	emailID, err := h.Svc.SendOrderEmail(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("send_email_error", "status", 400, "reason", "invalid request", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("send_email_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		default:
			l.Error("send_email_error", "status", 500, "reason", "send failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("send_email_success", "email_id", emailID)
	return c.JSON(http.StatusOK, transport.SendEmailResponse{Success: true, EmailID: emailID})
}
