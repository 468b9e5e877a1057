package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/client"
	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/money"
	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

type OrderService struct {
	Repo      *repo.GormRepo
	Provider  client.PaymentProvider
	Notifier  *NotificationService
	Publisher mq.Publisher
}

// IngestCheckoutSession turns a completed checkout session into a persisted
// Order plus line-item snapshots. The checkout session id is the dedup key:
// a retried delivery that hits the unique index is treated as success, so the
// whole operation is safe under at-least-once webhook delivery.
//
// Everything after the Order insert is best-effort. Item snapshots, inventory,
// the subscription record, the confirmation email, and the ops event may
// individually fail without failing ingestion; only errors before or at the
// Order insert propagate and trigger a provider-side retry.
func (s *OrderService) IngestCheckoutSession(ctx context.Context, sess transport.CheckoutSessionCompleted) (*models.Order, error) {
	l := logging.FromContext(ctx).With("session_id", sess.ID, "mode", sess.Mode)

	if sess.ID == "" {
		return nil, fmt.Errorf("%w: session id required", ErrValidation)
	}

	lineItems, err := s.Provider.ListLineItems(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch line items: %w", err)
	}

	items := make([]models.OrderItem, 0, len(lineItems))
	for _, li := range lineItems {
		item := models.OrderItem{
			ID:         uuid.New(),
			Title:      li.Description,
			SKU:        li.SKU,
			ImageURL:   li.ImageURL,
			Quantity:   int(li.Quantity),
			UnitPrice:  money.FromMinorUnits(li.UnitAmount),
			TotalPrice: money.FromMinorUnits(li.AmountTotal),
		}
		if li.ProductID != "" {
			if pid, err := uuid.Parse(li.ProductID); err == nil {
				item.ProductID = &pid
			} else {
				l.Warn("unparsable catalog product id on line item", "raw_id", li.ProductID)
			}
		}
		items = append(items, item)
	}

	order := buildOrder(sess)

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Info("duplicate webhook delivery, order already ingested")
			return s.recoverExisting(ctx, sess)
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	l.Info("order created", "order_id", order.ID)

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := s.Repo.CreateOrderItems(ctx, items); err != nil {
		l.Error("insert order items failed, order stands without snapshots", "order_id", order.ID, "error", err)
	} else {
		order.Items = items
	}

	s.decrementInventory(ctx, items)

	if sess.Mode == "subscription" && sess.Subscription != "" {
		if err := s.ensureSubscription(ctx, order, sess.Subscription); err != nil {
			return nil, err
		}
	}

	if s.Notifier != nil {
		if _, err := s.Notifier.SendConfirmation(ctx, order, order.Items); err != nil {
			l.Error("confirmation email failed, order unaffected", "order_id", order.ID, "error", err)
		}
	}

	if err := s.Publisher.Publish(ctx, mq.TopicOrderEvents, order.CheckoutSessionID, map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"total":    order.Total,
	}); err != nil {
		l.Error("publish order_created failed", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// recoverExisting handles a retried delivery: the Order row exists, but a
// previous attempt may have died before the subscription record was written.
func (s *OrderService) recoverExisting(ctx context.Context, sess transport.CheckoutSessionCompleted) (*models.Order, error) {
	existing, err := s.Repo.GetOrderByCheckoutSession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load existing order: %w", err)
	}

	if sess.Mode == "subscription" && sess.Subscription != "" && existing.SubscriptionID == nil {
		if err := s.ensureSubscription(ctx, existing, sess.Subscription); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

func buildOrder(sess transport.CheckoutSessionCompleted) *models.Order {
	order := &models.Order{
		ID:                uuid.New(),
		CheckoutSessionID: sess.ID,
		PaymentIntentID:   sess.PaymentIntent,
		CustomerID:        sess.Customer,
		Status:            models.OrderStatusProcessing,
		PaymentStatus:     models.PaymentStatusPaid,
		Subtotal:          money.FromMinorUnits(sess.AmountSubtotal),
		Total:             money.FromMinorUnits(sess.AmountTotal),
	}

	if td := sess.TotalDetails; td != nil {
		order.ShippingCost = money.FromMinorUnits(td.AmountShipping)
		order.DiscountAmount = money.FromMinorUnits(td.AmountDiscount)
	}

	if cd := sess.CustomerDetails; cd != nil {
		order.CustomerName = cd.Name
		order.CustomerEmail = cd.Email
		order.CustomerPhone = cd.Phone
	}

	addr := (*transport.Address)(nil)
	if sess.ShippingDetails != nil && sess.ShippingDetails.Address != nil {
		addr = sess.ShippingDetails.Address
		if sess.ShippingDetails.Name != "" {
			order.CustomerName = sess.ShippingDetails.Name
		}
	} else if sess.CustomerDetails != nil && sess.CustomerDetails.Address != nil {
		addr = sess.CustomerDetails.Address
	}
	if addr != nil {
		order.ShippingLine1 = addr.Line1
		order.ShippingLine2 = addr.Line2
		order.ShippingCity = addr.City
		order.ShippingState = addr.State
		order.ShippingPostal = addr.PostalCode
		order.ShippingCountry = addr.Country
	}

	return order
}

func (s *OrderService) decrementInventory(ctx context.Context, items []models.OrderItem) {
	l := logging.FromContext(ctx)
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		if err := s.Repo.DecrementInventory(ctx, *item.ProductID, item.Quantity); err != nil {
			l.Warn("inventory decrement failed, continuing", "product_id", item.ProductID, "qty", item.Quantity, "error", err)
		}
	}
}

func (s *OrderService) ensureSubscription(ctx context.Context, order *models.Order, providerSubID string) error {
	l := logging.FromContext(ctx).With("provider_subscription_id", providerSubID)

	info, err := s.Provider.GetSubscription(ctx, providerSubID)
	if err != nil {
		return fmt.Errorf("fetch subscription: %w", err)
	}

	sub := &models.Subscription{
		ID:                     uuid.New(),
		ProviderSubscriptionID: info.ID,
		CustomerID:             info.CustomerID,
		Status:                 mapSubscriptionStatus(info.Status),
		Interval:               models.IntervalFrom(info.Interval, info.IntervalCount),
		ShippingName:           order.CustomerName,
		ShippingLine1:          order.ShippingLine1,
		ShippingCity:           order.ShippingCity,
		ShippingPostal:         order.ShippingPostal,
		ShippingCountry:        order.ShippingCountry,
	}
	if !info.CurrentPeriodEnd.IsZero() {
		next := info.CurrentPeriodEnd
		sub.NextBillingDate = &next
	}

	if err := s.Repo.CreateSubscription(ctx, sub); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("insert subscription: %w", err)
		}
		existing, err := s.Repo.GetSubscriptionByProviderID(ctx, info.ID)
		if err != nil {
			return fmt.Errorf("load existing subscription: %w", err)
		}
		sub = existing
	}

	if err := s.Repo.SetOrderSubscription(ctx, order.ID, sub.ID); err != nil {
		return fmt.Errorf("link subscription to order: %w", err)
	}
	order.SubscriptionID = &sub.ID

	l.Info("subscription recorded", "subscription_id", sub.ID, "interval", sub.Interval)
	return nil
}

func unixUTC(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}

func mapSubscriptionStatus(providerStatus string) models.SubscriptionStatus {
	switch providerStatus {
	case "past_due", "unpaid":
		return models.SubscriptionStatusPastDue
	case "canceled", "incomplete_expired":
		return models.SubscriptionStatusCancelled
	case "paused":
		return models.SubscriptionStatusPaused
	default:
		return models.SubscriptionStatusActive
	}
}

// MirrorSubscriptionUpdate applies a customer.subscription.updated event to
// the local record. An update for a subscription we never stored is logged
// and ignored so the provider stops retrying it.
func (s *OrderService) MirrorSubscriptionUpdate(ctx context.Context, payload transport.SubscriptionUpdated) error {
	l := logging.FromContext(ctx).With("provider_subscription_id", payload.ID)

	sub, err := s.Repo.GetSubscriptionByProviderID(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("subscription update for unknown subscription, ignoring")
			return nil
		}
		return fmt.Errorf("load subscription: %w", err)
	}

	sub.Status = mapSubscriptionStatus(payload.Status)
	if payload.PauseCollection != nil {
		sub.Status = models.SubscriptionStatusPaused
	}
	if len(payload.Items.Data) > 0 {
		item := payload.Items.Data[0]
		if item.Price.Recurring != nil {
			sub.Interval = models.IntervalFrom(item.Price.Recurring.Interval, item.Price.Recurring.IntervalCount)
		}
		if item.CurrentPeriodEnd > 0 {
			next := unixUTC(item.CurrentPeriodEnd)
			sub.NextBillingDate = &next
		}
	}

	if err := s.Repo.UpdateSubscription(ctx, sub); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	l.Info("subscription mirrored", "status", sub.Status, "interval", sub.Interval)
	return nil
}

// MirrorSubscriptionDeleted marks a subscription cancelled.
func (s *OrderService) MirrorSubscriptionDeleted(ctx context.Context, providerSubID string) error {
	l := logging.FromContext(ctx).With("provider_subscription_id", providerSubID)

	if err := s.Repo.SetSubscriptionStatus(ctx, providerSubID, models.SubscriptionStatusCancelled); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	l.Info("subscription cancelled")
	return nil
}

// MarkSubscriptionPastDue flags the owning subscription of a failed invoice.
func (s *OrderService) MarkSubscriptionPastDue(ctx context.Context, providerSubID string) error {
	l := logging.FromContext(ctx).With("provider_subscription_id", providerSubID)

	if providerSubID == "" {
		l.Warn("invoice without subscription reference, ignoring")
		return nil
	}
	if err := s.Repo.SetSubscriptionStatus(ctx, providerSubID, models.SubscriptionStatusPastDue); err != nil {
		return fmt.Errorf("mark subscription past due: %w", err)
	}
	l.Info("subscription marked past due")
	return nil
}
