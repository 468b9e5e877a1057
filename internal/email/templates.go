package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/stitchwell/storefront/internal/models"
)

// Org holds the organization identity every email carries. TaxID being set
// marks a registered non-profit seller and switches on the donation-receipt
// block in confirmation emails.
type Org struct {
	Name         string
	Address      string
	TaxID        string
	SupportEmail string
}

type Renderer struct {
	Org Org
}

type templateData struct {
	Org   Org
	Order *models.Order
	Items []models.OrderItem

	TrackingNumber string
	TrackingURL    string

	RefundAmount decimal.Decimal
	IsFullRefund bool
	Reason       string
}

func (r *Renderer) Confirmation(order *models.Order, items []models.OrderItem) (subject, html string, err error) {
	subject = fmt.Sprintf("Order confirmation — %s", r.Org.Name)
	html, err = render("confirmation", templateData{Org: r.Org, Order: order, Items: items})
	return subject, html, err
}

func (r *Renderer) Shipping(order *models.Order, trackingNumber, trackingURL string) (subject, html string, err error) {
	subject = fmt.Sprintf("Your order has shipped — %s", r.Org.Name)
	html, err = render("shipping", templateData{
		Org:            r.Org,
		Order:          order,
		Items:          order.Items,
		TrackingNumber: trackingNumber,
		TrackingURL:    trackingURL,
	})
	return subject, html, err
}

func (r *Renderer) Refund(order *models.Order, amount decimal.Decimal, isFull bool, reason string) (subject, html string, err error) {
	subject = fmt.Sprintf("Your refund from %s", r.Org.Name)
	html, err = render("refund", templateData{
		Org:          r.Org,
		Order:        order,
		Items:        order.Items,
		RefundAmount: amount,
		IsFullRefund: isFull,
		Reason:       reason,
	})
	return subject, html, err
}

func (r *Renderer) Cancellation(order *models.Order) (subject, html string, err error) {
	subject = fmt.Sprintf("Order cancelled — %s", r.Org.Name)
	html, err = render("cancellation", templateData{Org: r.Org, Order: order, Items: order.Items})
	return subject, html, err
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

var emailTmpl = template.Must(template.New("email").Parse(shellPartials + confirmationTmpl + shippingTmpl + refundTmpl + cancellationTmpl))

// Shared shell: dark card, gradient header, address block, items table,
// footer. Each email template wraps its content with these partials.
const shellPartials = `
{{define "head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
<div style="max-width:600px;margin:24px auto;background-color:#18181b;border-radius:12px;overflow:hidden;color:#e4e4e7;">
<div style="background:linear-gradient(135deg,#7c3aed,#db2777);padding:28px 32px;">
<h1 style="margin:0;font-size:22px;color:#ffffff;">{{.Org.Name}}</h1>
</div>
<div style="padding:32px;">{{end}}

{{define "address"}}{{if .Order.ShippingLine1}}
<div style="margin:20px 0;padding:16px;background-color:#27272a;border-radius:8px;">
<p style="margin:0 0 4px;font-size:12px;color:#a1a1aa;text-transform:uppercase;">Shipping to</p>
<p style="margin:0;font-size:14px;line-height:1.5;">
{{.Order.CustomerName}}<br>
{{.Order.ShippingLine1}}{{if .Order.ShippingLine2}}<br>{{.Order.ShippingLine2}}{{end}}<br>
{{.Order.ShippingCity}}{{if .Order.ShippingState}}, {{.Order.ShippingState}}{{end}} {{.Order.ShippingPostal}}<br>
{{.Order.ShippingCountry}}
</p>
</div>
{{end}}{{end}}

{{define "items"}}{{if .Items}}
<table style="width:100%;border-collapse:collapse;margin:20px 0;font-size:14px;">
<tr style="color:#a1a1aa;text-align:left;">
<th style="padding:8px 0;border-bottom:1px solid #3f3f46;">Item</th>
<th style="padding:8px 0;border-bottom:1px solid #3f3f46;">Qty</th>
<th style="padding:8px 0;border-bottom:1px solid #3f3f46;text-align:right;">Price</th>
</tr>
{{range .Items}}
<tr>
<td style="padding:10px 0;border-bottom:1px solid #27272a;">{{.Title}}</td>
<td style="padding:10px 0;border-bottom:1px solid #27272a;">{{.Quantity}}</td>
<td style="padding:10px 0;border-bottom:1px solid #27272a;text-align:right;">${{.TotalPrice.StringFixed 2}}</td>
</tr>
{{end}}
</table>
<table style="width:100%;font-size:14px;">
<tr><td style="color:#a1a1aa;padding:2px 0;">Subtotal</td><td style="text-align:right;">${{.Order.Subtotal.StringFixed 2}}</td></tr>
<tr><td style="color:#a1a1aa;padding:2px 0;">Shipping</td><td style="text-align:right;">${{.Order.ShippingCost.StringFixed 2}}</td></tr>
{{if not .Order.DiscountAmount.IsZero}}<tr><td style="color:#a1a1aa;padding:2px 0;">Discount</td><td style="text-align:right;">&minus;${{.Order.DiscountAmount.StringFixed 2}}</td></tr>{{end}}
<tr><td style="padding:8px 0;font-weight:bold;">Total</td><td style="text-align:right;font-weight:bold;">${{.Order.Total.StringFixed 2}}</td></tr>
</table>
{{end}}{{end}}

{{define "footer"}}</div>
<div style="padding:20px 32px;background-color:#09090b;font-size:12px;color:#71717a;">
<p style="margin:0 0 4px;">Questions? Reach us at <a href="mailto:{{.Org.SupportEmail}}" style="color:#a78bfa;">{{.Org.SupportEmail}}</a></p>
<p style="margin:0;">{{.Org.Name}}{{if .Org.Address}} &middot; {{.Org.Address}}{{end}}</p>
</div>
</div>
</body>
</html>{{end}}
`

const confirmationTmpl = `
{{define "confirmation"}}{{template "head" .}}
<h2 style="margin:0 0 8px;font-size:18px;color:#ffffff;">Thank you for your order{{if .Order.CustomerName}}, {{.Order.CustomerName}}{{end}}!</h2>
<p style="margin:0 0 16px;font-size:14px;color:#a1a1aa;">We're getting it ready now. Here is your receipt.</p>
{{template "address" .}}
{{template "items" .}}
{{if .Org.TaxID}}
<div style="margin:20px 0;padding:16px;background-color:#27272a;border-left:3px solid #7c3aed;border-radius:4px;font-size:13px;line-height:1.6;">
<p style="margin:0 0 6px;font-weight:bold;color:#ffffff;">Donation receipt</p>
<p style="margin:0;">{{.Org.Name}} is a registered non-profit organization. Tax ID: {{.Org.TaxID}}.
Only the portion of your purchase that exceeds the fair market value of the goods received is tax-deductible.
Please retain this receipt for your records.</p>
</div>
{{end}}
{{template "footer" .}}{{end}}
`

const shippingTmpl = `
{{define "shipping"}}{{template "head" .}}
<h2 style="margin:0 0 8px;font-size:18px;color:#ffffff;">Your order is on its way!</h2>
<p style="margin:0 0 16px;font-size:14px;color:#a1a1aa;">Tracking number: <span style="color:#ffffff;font-weight:bold;">{{.TrackingNumber}}</span></p>
{{if .TrackingURL}}
<p style="margin:0 0 16px;"><a href="{{.TrackingURL}}" style="display:inline-block;padding:10px 20px;background-color:#7c3aed;color:#ffffff;border-radius:6px;text-decoration:none;font-size:14px;">Track your package</a></p>
{{end}}
{{template "address" .}}
{{template "items" .}}
<p style="margin:16px 0 0;font-size:12px;color:#71717a;">Delivery estimates are provided by the carrier and may change in transit.</p>
{{template "footer" .}}{{end}}
`

const refundTmpl = `
{{define "refund"}}{{template "head" .}}
{{if .IsFullRefund}}
<h2 style="margin:0 0 8px;font-size:18px;color:#ffffff;">Your order has been fully refunded</h2>
<p style="margin:0 0 16px;font-size:14px;color:#a1a1aa;">The full amount has been returned to your original payment method.</p>
{{else}}
<h2 style="margin:0 0 8px;font-size:18px;color:#ffffff;">A partial refund has been issued</h2>
<p style="margin:0 0 16px;font-size:14px;color:#a1a1aa;">Part of your order total has been returned to your original payment method.</p>
{{end}}
<div style="margin:20px 0;padding:16px;background-color:#27272a;border-radius:8px;text-align:center;">
<p style="margin:0 0 4px;font-size:12px;color:#a1a1aa;text-transform:uppercase;">Refund amount</p>
<p style="margin:0;font-size:26px;font-weight:bold;color:#34d399;">${{.RefundAmount.StringFixed 2}}</p>
</div>
{{if .Reason}}<p style="margin:0 0 16px;font-size:14px;color:#a1a1aa;">Reason: {{.Reason}}</p>{{end}}
<p style="margin:0;font-size:13px;color:#71717a;">Refunds usually appear within 5&ndash;10 business days depending on your bank.</p>
{{template "footer" .}}{{end}}
`

const cancellationTmpl = `
{{define "cancellation"}}{{template "head" .}}
<h2 style="margin:0 0 8px;font-size:18px;color:#ffffff;">Your order has been cancelled</h2>
<p style="margin:0 0 16px;font-size:14px;color:#a1a1aa;">Order total: <span style="text-decoration:line-through;">${{.Order.Total.StringFixed 2}}</span></p>
{{template "items" .}}
<p style="margin:16px 0 0;font-size:13px;color:#71717a;">If your payment was captured, a separate refund confirmation will follow shortly.</p>
{{template "footer" .}}{{end}}
`
