package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchwell/storefront/internal/email"
	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/transport"
)

func newTestNotifier(t *testing.T, sender *fakeSender) (*NotificationService, *repo.GormRepo) {
	t.Helper()

	store := &repo.GormRepo{DB: newTestDB(t)}
	return &NotificationService{
		Repo:     store,
		Renderer: &email.Renderer{Org: email.Org{Name: "Test Shop", SupportEmail: "help@test.example"}},
		Sender:   sender,
	}, store
}

func seedOrder(t *testing.T, store *repo.GormRepo) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                uuid.New(),
		CheckoutSessionID: "cs_" + uuid.NewString(),
		Status:            models.OrderStatusProcessing,
		PaymentStatus:     models.PaymentStatusPaid,
		CustomerName:      "Jamie Doe",
		CustomerEmail:     "jamie@example.com",
		Subtotal:          decimal.RequireFromString("20.00"),
		ShippingCost:      decimal.RequireFromString("3.00"),
		Total:             decimal.RequireFromString("23.00"),
	}
	require.NoError(t, store.DB.Create(order).Error)
	return order
}

func TestSendOrderEmail_ShippingMirrorsStatus(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc, store := newTestNotifier(t, sender)
	ctx := context.Background()
	order := seedOrder(t, store)

	emailID, err := svc.SendOrderEmail(ctx, transport.SendEmailRequest{
		OrderID:        order.ID.String(),
		EmailType:      "shipping",
		TrackingNumber: "TRACK123",
	})
	require.NoError(t, err)
	assert.Equal(t, "email_test_id", emailID)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jamie@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, "TRACK123")

	updated, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
}

func TestSendOrderEmail_ShippingRequiresTrackingNumber(t *testing.T) {
	t.Parallel()

	svc, store := newTestNotifier(t, &fakeSender{})
	order := seedOrder(t, store)

	_, err := svc.SendOrderEmail(context.Background(), transport.SendEmailRequest{
		OrderID:   order.ID.String(),
		EmailType: "shipping",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendOrderEmail_RefundDefaultsToOrderTotal(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc, store := newTestNotifier(t, sender)
	ctx := context.Background()
	order := seedOrder(t, store)

	_, err := svc.SendOrderEmail(ctx, transport.SendEmailRequest{
		OrderID:      order.ID.String(),
		EmailType:    "refund",
		IsFullRefund: true,
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "$23.00")

	updated, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRefunded, updated.Status)
	assert.Equal(t, models.PaymentStatusRefunded, updated.PaymentStatus)
}

func TestSendOrderEmail_PartialRefundAmount(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	svc, store := newTestNotifier(t, sender)
	order := seedOrder(t, store)

	amount := decimal.RequireFromString("5.50")
	_, err := svc.SendOrderEmail(context.Background(), transport.SendEmailRequest{
		OrderID:      order.ID.String(),
		EmailType:    "refund",
		RefundAmount: &amount,
		Reason:       "damaged in transit",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "$5.50")
	assert.Contains(t, sender.sent[0].HTML, "damaged in transit")
}

func TestSendOrderEmail_UnknownOrder(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNotifier(t, &fakeSender{})

	_, err := svc.SendOrderEmail(context.Background(), transport.SendEmailRequest{
		OrderID:   uuid.NewString(),
		EmailType: "cancellation",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendOrderEmail_UnknownType(t *testing.T) {
	t.Parallel()

	svc, store := newTestNotifier(t, &fakeSender{})
	order := seedOrder(t, store)

	_, err := svc.SendOrderEmail(context.Background(), transport.SendEmailRequest{
		OrderID:   order.ID.String(),
		EmailType: "marketing",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendOrderEmail_SenderFailureKeepsStatus(t *testing.T) {
	t.Parallel()

	svc, store := newTestNotifier(t, &fakeSender{err: errors.New("provider down")})
	ctx := context.Background()
	order := seedOrder(t, store)

	_, err := svc.SendOrderEmail(ctx, transport.SendEmailRequest{
		OrderID:   order.ID.String(),
		EmailType: "cancellation",
	})
	require.Error(t, err)

	updated, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
}
