package transport

// Payload shapes for the provider webhook events we act on. Only the fields
// the pipeline reads are declared; the rest of the envelope is ignored.

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CustomerDetails struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address"`
}

type ShippingDetails struct {
	Name    string   `json:"name"`
	Address *Address `json:"address"`
}

type TotalDetails struct {
	AmountDiscount int64 `json:"amount_discount"`
	AmountShipping int64 `json:"amount_shipping"`
}

// CheckoutSessionCompleted is the data object of a checkout.session.completed
// event. Mode is "payment" for one-off purchases and "subscription" for
// recurring ones.
type CheckoutSessionCompleted struct {
	ID              string           `json:"id"`
	Mode            string           `json:"mode"`
	Customer        string           `json:"customer"`
	PaymentIntent   string           `json:"payment_intent"`
	Subscription    string           `json:"subscription"`
	AmountSubtotal  int64            `json:"amount_subtotal"`
	AmountTotal     int64            `json:"amount_total"`
	TotalDetails    *TotalDetails    `json:"total_details"`
	CustomerDetails *CustomerDetails `json:"customer_details"`
	ShippingDetails *ShippingDetails `json:"shipping_details"`
}

// SubscriptionUpdated covers customer.subscription.updated and .deleted.
type SubscriptionUpdated struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	PauseCollection   *struct {
		Behavior string `json:"behavior"`
	} `json:"pause_collection"`
	Items struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
			Price            struct {
				Recurring *struct {
					Interval      string `json:"interval"`
					IntervalCount int64  `json:"interval_count"`
				} `json:"recurring"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// InvoicePaymentFailed is the data object of invoice.payment_failed; only the
// owning subscription matters here.
type InvoicePaymentFailed struct {
	ID           string `json:"id"`
	Subscription string `json:"subscription"`
}
