package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/service"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

type CouponHTTP struct {
	Svc       *service.CouponService
	Publisher mq.Publisher
}

func (h *CouponHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupons.list")

	filter := repo.CouponFilter{Code: c.QueryParam("code")}
	switch strings.ToLower(c.QueryParam("active")) {
	case "true":
		t := true
		filter.Active = &t
	case "false":
		f := false
		filter.Active = &f
	}
	offset, limit := pageParams(c)

	total, coupons, err := h.Svc.ListCoupons(ctx, filter, limit, offset)
	if err != nil {
		l.Error("list_coupons_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, listResponse{Total: total, Items: coupons})
}

func (h *CouponHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupons.get")

	id, err := pathID(c)
	if err != nil {
		l.Warn("get_coupon_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	coupon, err := h.Svc.GetCoupon(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_coupon_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		l.Error("get_coupon_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, coupon)
}

func (h *CouponHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupons.create")

	var req transport.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_coupon_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	coupon, err := h.Svc.CreateCoupon(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_coupon_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrDuplicatedKey):
			l.Warn("create_coupon_error", "status", 409, "reason", "duplicate code")
			return echo.NewHTTPError(http.StatusConflict, "coupon code already exists")
		default:
			l.Error("create_coupon_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_coupon_success", "coupon_id", coupon.ID, "code", coupon.Code)
	publishAdminEvent(ctx, h.Publisher, "coupon_created", coupon.ID.String(), coupon)
	return c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupons.patch")

	id, err := pathID(c)
	if err != nil {
		l.Warn("patch_coupon_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchCouponRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_coupon_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	coupon, err := h.Svc.PatchCoupon(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_coupon_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("patch_coupon_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "coupon not found")
		default:
			l.Error("patch_coupon_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("patch_coupon_success", "coupon_id", coupon.ID)
	publishAdminEvent(ctx, h.Publisher, "coupon_updated", coupon.ID.String(), coupon)
	return c.JSON(http.StatusOK, coupon)
}

func (h *CouponHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "coupons.delete")

	id, err := pathID(c)
	if err != nil {
		l.Warn("delete_coupon_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteCoupon(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_coupon_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "coupon not found")
		}
		l.Error("delete_coupon_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("delete_coupon_success", "coupon_id", id)
	publishAdminEvent(ctx, h.Publisher, "coupon_deleted", id.String(), nil)
	return c.NoContent(http.StatusNoContent)
}
