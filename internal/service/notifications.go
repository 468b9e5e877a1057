package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/email"
	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

type NotificationService struct {
	Repo     *repo.GormRepo
	Renderer *email.Renderer
	Sender   email.Sender
}

// SendConfirmation renders and sends the order receipt. Callers on the
// ingestion path log the error and move on; the order is already committed.
func (n *NotificationService) SendConfirmation(ctx context.Context, order *models.Order, items []models.OrderItem) (string, error) {
	if order.CustomerEmail == "" {
		return "", fmt.Errorf("%w: order has no customer email", ErrValidation)
	}

	subject, html, err := n.Renderer.Confirmation(order, items)
	if err != nil {
		return "", err
	}
	return n.Sender.Send(ctx, order.CustomerEmail, subject, html)
}

// SendOrderEmail serves the internal trigger endpoint for shipping, refund,
// and cancellation messages, mirroring the corresponding status onto the
// order afterwards (best-effort).
func (n *NotificationService) SendOrderEmail(ctx context.Context, req transport.SendEmailRequest) (string, error) {
	l := logging.FromContext(ctx).With("order_id", req.OrderID, "email_type", req.EmailType)

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return "", fmt.Errorf("%w: orderId is not a uuid", ErrValidation)
	}

	order, err := n.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: order %s", ErrNotFound, req.OrderID)
		}
		return "", fmt.Errorf("load order: %w", err)
	}
	if order.CustomerEmail == "" {
		return "", fmt.Errorf("%w: order has no customer email", ErrValidation)
	}

	var (
		subject, html string
		status        models.OrderStatus
		payment       models.PaymentStatus
	)

	switch req.EmailType {
	case "shipping":
		if req.TrackingNumber == "" {
			return "", fmt.Errorf("%w: trackingNumber required for shipping emails", ErrValidation)
		}
		subject, html, err = n.Renderer.Shipping(order, req.TrackingNumber, req.TrackingURL)
		status = models.OrderStatusShipped
	case "refund":
		amount := order.Total
		if req.RefundAmount != nil {
			amount = *req.RefundAmount
		}
		subject, html, err = n.Renderer.Refund(order, amount, req.IsFullRefund, req.Reason)
		status = models.OrderStatusRefunded
		payment = models.PaymentStatusRefunded
	case "cancellation":
		subject, html, err = n.Renderer.Cancellation(order)
		status = models.OrderStatusCancelled
	default:
		return "", fmt.Errorf("%w: unknown emailType %q", ErrValidation, req.EmailType)
	}
	if err != nil {
		return "", err
	}

	emailID, err := n.Sender.Send(ctx, order.CustomerEmail, subject, html)
	if err != nil {
		return "", fmt.Errorf("send %s email: %w", req.EmailType, err)
	}
	l.Info("order email sent", "email_id", emailID)

	if err := n.Repo.SetOrderStatus(ctx, order.ID, status); err != nil {
		l.Error("status mirror after email failed", "status", status, "error", err)
	}
	if payment != "" {
		if err := n.Repo.SetOrderPaymentStatus(ctx, order.ID, payment); err != nil {
			l.Error("payment status mirror after email failed", "error", err)
		}
	}

	return emailID, nil
}
