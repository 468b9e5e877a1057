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

type EventHTTP struct {
	Svc       *service.EventService
	Publisher mq.Publisher
}

func (h *EventHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "events.list")

	var filter repo.EventFilter
	switch strings.ToLower(c.QueryParam("published")) {
	case "true":
		t := true
		filter.Published = &t
	case "false":
		f := false
		filter.Published = &f
	}
	offset, limit := pageParams(c)

	total, events, err := h.Svc.ListEvents(ctx, filter, limit, offset)
	if err != nil {
		l.Error("list_events_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, listResponse{Total: total, Items: events})
}

func (h *EventHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "events.get")

	id, err := pathID(c)
	if err != nil {
		l.Warn("get_event_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	event, err := h.Svc.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_event_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		l.Error("get_event_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, event)
}

func (h *EventHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "events.create")

	var req transport.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_event_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	event, err := h.Svc.CreateEvent(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_event_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_event_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("create_event_success", "event_id", event.ID)
	publishAdminEvent(ctx, h.Publisher, "event_created", event.ID.String(), event)
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "events.patch")

	id, err := pathID(c)
	if err != nil {
		l.Warn("patch_event_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchEventRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_event_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	event, err := h.Svc.PatchEvent(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_event_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("patch_event_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		default:
			l.Error("patch_event_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("patch_event_success", "event_id", event.ID)
	publishAdminEvent(ctx, h.Publisher, "event_updated", event.ID.String(), event)
	return c.JSON(http.StatusOK, event)
}

func (h *EventHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "events.delete")

	id, err := pathID(c)
	if err != nil {
		l.Warn("delete_event_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_event_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		l.Error("delete_event_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("delete_event_success", "event_id", id)
	publishAdminEvent(ctx, h.Publisher, "event_deleted", id.String(), nil)
	return c.NoContent(http.StatusNoContent)
}
