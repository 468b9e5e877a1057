package client

import (
	"context"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	stripeclient "github.com/stripe/stripe-go/v82/client"
)

// LineItem is the provider-agnostic view of one priced entry in a checkout
// session. Amounts are minor units; conversion happens in the service layer.
type LineItem struct {
	Description string
	Quantity    int64
	UnitAmount  int64
	AmountTotal int64
	ImageURL    string
	SKU         string
	// ProductID carries the originating catalog id from the provider
	// product's metadata; empty when the product was created ad hoc.
	ProductID string
}

type SubscriptionInfo struct {
	ID               string
	CustomerID       string
	Status           string
	Interval         string
	IntervalCount    int64
	CurrentPeriodEnd time.Time
}

// PaymentProvider is what order ingestion needs from the payment processor.
// Tests substitute a fake.
type PaymentProvider interface {
	ListLineItems(ctx context.Context, sessionID string) ([]LineItem, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionInfo, error)
}

type StripeClient struct {
	api *stripeclient.API
}

func NewStripeClient(apiKey string) *StripeClient {
	api := &stripeclient.API{}
	api.Init(apiKey, nil)
	return &StripeClient{api: api}
}

func (c *StripeClient) ListLineItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.AddExpand("data.price.product")

	var items []LineItem
	it := c.api.CheckoutSessions.ListLineItems(params)
	for it.Next() {
		li := it.LineItem()

		item := LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			AmountTotal: li.AmountTotal,
		}
		if li.Price != nil {
			item.UnitAmount = li.Price.UnitAmount
			if prod := li.Price.Product; prod != nil {
				if item.Description == "" {
					item.Description = prod.Name
				}
				if len(prod.Images) > 0 {
					item.ImageURL = prod.Images[0]
				}
				item.SKU = prod.Metadata["sku"]
				item.ProductID = prod.Metadata["catalog_product_id"]
			}
		}
		items = append(items, item)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list line items for session %s: %w", sessionID, err)
	}

	return items, nil
}

func (c *StripeClient) GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionInfo, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := c.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("get subscription %s: %w", subscriptionID, err)
	}

	info := &SubscriptionInfo{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.Customer != nil {
		info.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil && item.Price.Recurring != nil {
			info.Interval = string(item.Price.Recurring.Interval)
			info.IntervalCount = item.Price.Recurring.IntervalCount
		}
		if item.CurrentPeriodEnd > 0 {
			info.CurrentPeriodEnd = time.Unix(item.CurrentPeriodEnd, 0).UTC()
		}
	}

	return info, nil
}
