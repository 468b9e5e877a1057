package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchwell/storefront/internal/auth"
)

type Deps struct {
	Webhook   *WebhookHTTP
	Email     *EmailHTTP
	Auth      *AuthHTTP
	Orders    *OrderHTTP
	Coupons   *CouponHTTP
	Events    *EventHTTP
	Reviews   *ReviewHTTP
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	api.POST("/webhooks/stripe", d.Webhook.Handle)
	api.POST("/admin/login", d.Auth.Login)
	api.POST("/emails/send", d.Email.Send, auth.AdminOnly(d.JWTSecret))

	admin := api.Group("/admin", auth.AdminOnly(d.JWTSecret))

	admin.GET("/orders", d.Orders.List)
	admin.GET("/orders/:id", d.Orders.Get)

	admin.GET("/coupons", d.Coupons.List)
	admin.POST("/coupons", d.Coupons.Create)
	admin.GET("/coupons/:id", d.Coupons.Get)
	admin.PATCH("/coupons/:id", d.Coupons.Patch)
	admin.DELETE("/coupons/:id", d.Coupons.Delete)

	admin.GET("/events", d.Events.List)
	admin.POST("/events", d.Events.Create)
	admin.GET("/events/:id", d.Events.Get)
	admin.PATCH("/events/:id", d.Events.Patch)
	admin.DELETE("/events/:id", d.Events.Delete)

	admin.GET("/reviews", d.Reviews.List)
	admin.GET("/reviews/search", d.Reviews.Search)
	admin.POST("/reviews", d.Reviews.Create)
	admin.POST("/reviews/import", d.Reviews.Import)
	admin.GET("/reviews/:id", d.Reviews.Get)
	admin.PATCH("/reviews/:id", d.Reviews.Patch)
	admin.DELETE("/reviews/:id", d.Reviews.Delete)
}
