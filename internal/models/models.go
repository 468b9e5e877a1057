package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
)

type BillingInterval string

const (
	IntervalEveryTwoWeeks   BillingInterval = "every-2-weeks"
	IntervalMonthly         BillingInterval = "monthly"
	IntervalEveryThreeMonths BillingInterval = "every-3-months"
)

type Order struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	CheckoutSessionID string          `gorm:"uniqueIndex;not null"          json:"checkout_session_id"`
	PaymentIntentID   string          `json:"payment_intent_id"`
	CustomerID        string          `gorm:"index"                         json:"customer_id"`
	Status            OrderStatus     `gorm:"not null"                      json:"status"`
	PaymentStatus     PaymentStatus   `gorm:"not null"                      json:"payment_status"`
	CustomerName      string          `json:"customer_name"`
	CustomerEmail     string          `gorm:"index"                         json:"customer_email"`
	CustomerPhone     string          `json:"customer_phone"`
	ShippingLine1     string          `json:"shipping_line1"`
	ShippingLine2     string          `json:"shipping_line2"`
	ShippingCity      string          `json:"shipping_city"`
	ShippingState     string          `json:"shipping_state"`
	ShippingPostal    string          `json:"shipping_postal"`
	ShippingCountry   string          `json:"shipping_country"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(10,2)"            json:"subtotal"`
	ShippingCost      decimal.Decimal `gorm:"type:decimal(10,2)"            json:"shipping_cost"`
	DiscountAmount    decimal.Decimal `gorm:"type:decimal(10,2)"            json:"discount_amount"`
	Total             decimal.Decimal `gorm:"type:decimal(10,2)"            json:"total"`
	SubscriptionID    *uuid.UUID      `gorm:"type:uuid"                     json:"subscription_id,omitempty"`
	Items             []OrderItem     `gorm:"foreignKey:OrderID"            json:"items,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// OrderItem is a point-of-sale snapshot. Catalog rows may change or disappear
// later; historical orders must not.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"       json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"   json:"order_id"`
	ProductID  *uuid.UUID      `gorm:"type:uuid"                  json:"product_id,omitempty"`
	Title      string          `gorm:"not null"                   json:"title"`
	SKU        string          `json:"sku"`
	ImageURL   string          `json:"image_url"`
	Quantity   int             `gorm:"not null;check:quantity>0"  json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2)"         json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2)"         json:"total_price"`
}

type Subscription struct {
	ID                     uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderSubscriptionID string             `gorm:"uniqueIndex;not null" json:"provider_subscription_id"`
	CustomerID             string             `gorm:"index"                json:"customer_id"`
	Status                 SubscriptionStatus `gorm:"not null"             json:"status"`
	Interval               BillingInterval    `gorm:"not null"             json:"interval"`
	NextBillingDate        *time.Time         `json:"next_billing_date,omitempty"`
	ShippingName           string             `json:"shipping_name"`
	ShippingLine1          string             `json:"shipping_line1"`
	ShippingCity           string             `json:"shipping_city"`
	ShippingPostal         string             `json:"shipping_postal"`
	ShippingCountry        string             `json:"shipping_country"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string          `gorm:"not null"             json:"name"`
	SKU            string          `gorm:"index"                json:"sku"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2)"   json:"price"`
	Inventory      int             `json:"inventory"`
	TrackInventory bool            `gorm:"default:true"         json:"track_inventory"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

type Coupon struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string          `gorm:"uniqueIndex;not null" json:"code"`
	Type           CouponType      `gorm:"not null"             json:"type"`
	Value          decimal.Decimal `gorm:"type:decimal(10,2)"   json:"value"`
	Active         bool            `gorm:"default:true"         json:"active"`
	MaxRedemptions int             `json:"max_redemptions"`
	Redemptions    int             `gorm:"default:0"            json:"redemptions"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null"             json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `gorm:"index"                json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	Published   bool      `gorm:"default:false;index"  json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// A Review with no ProductID is a general testimonial.
type Review struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey"     json:"id"`
	CustomerName    string       `gorm:"not null"                 json:"customer_name"`
	CustomerEmail   string       `json:"customer_email"`
	Rating          int          `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Title           string       `json:"title"`
	Body            string       `json:"body"`
	ProductID       *uuid.UUID   `gorm:"type:uuid;index"          json:"product_id,omitempty"`
	IsVerifiedBuyer bool         `gorm:"default:false"            json:"is_verified_buyer"`
	Status          ReviewStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Role         string    `gorm:"not null"             json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
