package httpserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/util"
	"github.com/stitchwell/storefront/pkg/logging"
)

type listResponse struct {
	Total int64 `json:"total"`
	Items any   `json:"items"`
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("id is not a uuid")
	}
	return id, nil
}

func pageParams(c echo.Context) (offset, limit int) {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("page_size"), util.DefaultPageSize)
	return util.Calculate(page, size)
}

// publishAdminEvent emits an ops event for an admin mutation. Failures are
// logged and never surface to the admin.
func publishAdminEvent(ctx context.Context, pub mq.Publisher, eventType, key string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, mq.TopicAdminEvents, key, map[string]any{
		"type":    eventType,
		"payload": payload,
	}); err != nil {
		logging.FromContext(ctx).Error("admin event publish failed", "event_type", eventType, "error", err)
	}
}
