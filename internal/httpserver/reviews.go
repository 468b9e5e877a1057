package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/service"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/internal/util"
	"github.com/stitchwell/storefront/pkg/logging"
)

type ReviewHTTP struct {
	Svc       *service.ReviewService
	Publisher mq.Publisher
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.list")

	filter := repo.ReviewFilter{
		Status: models.ReviewStatus(c.QueryParam("status")),
		Rating: util.ParseIntDefault(c.QueryParam("rating"), 0),
	}
	offset, limit := pageParams(c)

	total, reviews, err := h.Svc.ListReviews(ctx, filter, limit, offset)
	if err != nil {
		l.Error("list_reviews_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, listResponse{Total: total, Items: reviews})
}

func (h *ReviewHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.get")

	id, err := pathID(c)
	if err != nil {
		l.Warn("get_review_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	review, err := h.Svc.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_review_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		l.Error("get_review_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.create")

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_review_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.CreateReview(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_review_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_review_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("create_review_success", "review_id", review.ID)
	publishAdminEvent(ctx, h.Publisher, "review_created", review.ID.String(), review)
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.patch")

	id, err := pathID(c)
	if err != nil {
		l.Warn("patch_review_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_review_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.PatchReview(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_review_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("patch_review_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		default:
			l.Error("patch_review_error", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("patch_review_success", "review_id", review.ID)
	publishAdminEvent(ctx, h.Publisher, "review_updated", review.ID.String(), review)
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.delete")

	id, err := pathID(c)
	if err != nil {
		l.Warn("delete_review_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteReview(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_review_error", "status", 404, "reason", "not found")
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		l.Error("delete_review_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("delete_review_success", "review_id", id)
	publishAdminEvent(ctx, h.Publisher, "review_deleted", id.String(), nil)
	return c.NoContent(http.StatusNoContent)
}

// Import ingests the review CSV upload. It accepts either a multipart form
// with a "file" field or a raw CSV body.
func (h *ReviewHTTP) Import(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.import")

	body := c.Request().Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			l.Warn("import_reviews_error", "status", 400, "reason", "unreadable upload", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
		}
		defer f.Close()
		body = f
	}

	resp, err := h.Svc.ImportCSV(ctx, body)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("import_reviews_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("import_reviews_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("import_reviews_success", "imported", resp.Imported, "skipped", resp.Skipped)
	publishAdminEvent(ctx, h.Publisher, "reviews_imported", "", resp)
	return c.JSON(http.StatusOK, resp)
}

func (h *ReviewHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.search")

	query := c.QueryParam("q")
	if query == "" {
		l.Warn("search_reviews_error", "status", 400, "reason", "missing query")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	offset, limit := pageParams(c)

	total, reviews, err := h.Svc.SearchReviews(ctx, query, offset, limit)
	if err != nil {
		l.Error("search_reviews_error", "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, listResponse{Total: total, Items: reviews})
}
