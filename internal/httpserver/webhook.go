package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/stitchwell/storefront/internal/service"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

// maxWebhookBody bounds the payload we are willing to verify.
const maxWebhookBody = 1 << 20

type WebhookHTTP struct {
	Orders *service.OrderService
	Secret string
}

// Handle verifies the provider signature and dispatches the event. Any
// signature problem is a 400 with no database writes; a handler failure is a
// 500 so the provider redelivers. Event types we do not handle are
// acknowledged with 200 so they stop retrying.
func (h *WebhookHTTP) Handle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "webhook.stripe")

	if h.Secret == "" {
		l.Error("webhook_error", "status", 500, "reason", "webhook secret not configured")
		return echo.NewHTTPError(http.StatusInternalServerError, "webhook not configured")
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		l.Warn("webhook_error", "status", 400, "reason", "unreadable body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if sig == "" {
		l.Warn("webhook_error", "status", 400, "reason", "missing signature header")
		return echo.NewHTTPError(http.StatusBadRequest, "missing signature")
	}

	event, err := webhook.ConstructEvent(payload, sig, h.Secret)
	if err != nil {
		l.Warn("webhook_error", "status", 400, "reason", "signature verification failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
	}

	l = l.With("event_id", event.ID, "event_type", event.Type)

	switch event.Type {
	case "checkout.session.completed":
		var sess transport.CheckoutSessionCompleted
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			l.Warn("webhook_error", "status", 400, "reason", "malformed event data", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "malformed event data")
		}
		if _, err := h.Orders.IngestCheckoutSession(ctx, sess); err != nil {
			l.Error("webhook_error", "status", 500, "reason", "ingestion failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

	case "customer.subscription.updated":
		var sub transport.SubscriptionUpdated
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			l.Warn("webhook_error", "status", 400, "reason", "malformed event data", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "malformed event data")
		}
		if err := h.Orders.MirrorSubscriptionUpdate(ctx, sub); err != nil {
			l.Error("webhook_error", "status", 500, "reason", "subscription mirror failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

	case "customer.subscription.deleted":
		var sub transport.SubscriptionUpdated
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			l.Warn("webhook_error", "status", 400, "reason", "malformed event data", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "malformed event data")
		}
		if err := h.Orders.MirrorSubscriptionDeleted(ctx, sub.ID); err != nil {
			l.Error("webhook_error", "status", 500, "reason", "subscription cancel failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

	case "invoice.payment_failed":
		var inv transport.InvoicePaymentFailed
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			l.Warn("webhook_error", "status", 400, "reason", "malformed event data", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "malformed event data")
		}
		if err := h.Orders.MarkSubscriptionPastDue(ctx, inv.Subscription); err != nil {
			l.Error("webhook_error", "status", 500, "reason", "past due flag failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

	default:
		l.Info("webhook_ignored")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
