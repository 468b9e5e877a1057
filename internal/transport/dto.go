package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type SendEmailRequest struct {
	OrderID        string           `json:"orderId"`
	EmailType      string           `json:"emailType"`
	TrackingNumber string           `json:"trackingNumber,omitempty"`
	TrackingURL    string           `json:"trackingUrl,omitempty"`
	RefundAmount   *decimal.Decimal `json:"refundAmount,omitempty"`
	IsFullRefund   bool             `json:"isFullRefund,omitempty"`
	Reason         string           `json:"reason,omitempty"`
}

type SendEmailResponse struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId"`
}

type CreateCouponRequest struct {
	Code           string          `json:"code"`
	Type           string          `json:"type"`
	Value          decimal.Decimal `json:"value"`
	Active         *bool           `json:"active,omitempty"`
	MaxRedemptions int             `json:"max_redemptions"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
}

type PatchCouponRequest struct {
	Code           *string          `json:"code,omitempty"`
	Type           *string          `json:"type,omitempty"`
	Value          *decimal.Decimal `json:"value,omitempty"`
	Active         *bool            `json:"active,omitempty"`
	MaxRedemptions *int             `json:"max_redemptions,omitempty"`
	ExpiresAt      *time.Time       `json:"expires_at,omitempty"`
}

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	Published   *bool     `json:"published,omitempty"`
}

type PatchEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Published   *bool      `json:"published,omitempty"`
}

type CreateReviewRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	Rating          int    `json:"rating"`
	Title           string `json:"title"`
	Body            string `json:"body"`
	ProductID       string `json:"product_id,omitempty"`
	IsVerifiedBuyer bool   `json:"is_verified_buyer"`
}

type PatchReviewRequest struct {
	CustomerName    *string `json:"customer_name,omitempty"`
	CustomerEmail   *string `json:"customer_email,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
	Title           *string `json:"title,omitempty"`
	Body            *string `json:"body,omitempty"`
	Status          *string `json:"status,omitempty"`
	IsVerifiedBuyer *bool   `json:"is_verified_buyer,omitempty"`
}

type ImportReviewsResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
