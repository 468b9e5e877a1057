package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/search"
	"github.com/stitchwell/storefront/internal/transport"
	"github.com/stitchwell/storefront/pkg/logging"
)

type ReviewService struct {
	Repo  *repo.GormRepo
	Index search.ReviewIndexer
}

func (s *ReviewService) ListReviews(ctx context.Context, f repo.ReviewFilter, limit, offset int) (int64, []models.Review, error) {
	return s.Repo.ListReviews(ctx, f, limit, offset)
}

func (s *ReviewService) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return s.Repo.GetReview(ctx, id)
}

func (s *ReviewService) CreateReview(ctx context.Context, req transport.CreateReviewRequest) (*models.Review, error) {
	review, err := reviewFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	s.indexReview(ctx, review)
	return review, nil
}

func (s *ReviewService) PatchReview(ctx context.Context, id uuid.UUID, req transport.PatchReviewRequest) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		review.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		review.CustomerEmail = *req.CustomerEmail
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, fmt.Errorf("%w: rating must be 1-5", ErrValidation)
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Body != nil {
		review.Body = *req.Body
	}
	if req.IsVerifiedBuyer != nil {
		review.IsVerifiedBuyer = *req.IsVerifiedBuyer
	}
	if req.Status != nil {
		status := models.ReviewStatus(*req.Status)
		switch status {
		case models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
			review.Status = status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
	}

	if err := s.Repo.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	s.indexReview(ctx, review)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("review index delete failed", "review_id", id, "error", err)
		}
	}
	return nil
}

func (s *ReviewService) SearchReviews(ctx context.Context, query string, from, size int) (int64, []models.Review, error) {
	if s.Index == nil {
		return 0, nil, fmt.Errorf("review search is not configured")
	}
	return s.Index.Search(ctx, query, from, size)
}

// ImportCSV loads reviews from the admin CSV format:
//
//	customer_name, customer_email, rating, title, review_text, product_id, date, verified_buyer
//
// An empty product_id imports as a general testimonial. Dates are parsed
// permissively and default to now. Bad rows are skipped and reported, good
// rows still land.
func (s *ReviewService) ImportCSV(ctx context.Context, r io.Reader) (*transport.ImportReviewsResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read csv header", ErrValidation)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"customer_name", "rating"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: csv missing %s column", ErrValidation, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	resp := &transport.ImportReviewsResponse{}
	var reviews []models.Review
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		name := field(record, "customer_name")
		if name == "" {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: customer_name is empty", row))
			continue
		}

		rating, err := strconv.Atoi(field(record, "rating"))
		if err != nil || rating < 1 || rating > 5 {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: rating must be 1-5", row))
			continue
		}

		review := models.Review{
			ID:              uuid.New(),
			CustomerName:    name,
			CustomerEmail:   field(record, "customer_email"),
			Rating:          rating,
			Title:           field(record, "title"),
			Body:            field(record, "review_text"),
			IsVerifiedBuyer: parseBoolish(field(record, "verified_buyer")),
			Status:          models.ReviewStatusApproved,
			CreatedAt:       parseDateDefault(field(record, "date")),
		}

		if raw := field(record, "product_id"); raw != "" {
			pid, err := uuid.Parse(raw)
			if err != nil {
				resp.Skipped++
				resp.Errors = append(resp.Errors, fmt.Sprintf("row %d: product_id is not a uuid", row))
				continue
			}
			review.ProductID = &pid
		}

		reviews = append(reviews, review)
	}

	if err := s.Repo.CreateReviews(ctx, reviews); err != nil {
		return nil, fmt.Errorf("insert imported reviews: %w", err)
	}
	resp.Imported = len(reviews)

	for i := range reviews {
		s.indexReview(ctx, &reviews[i])
	}

	return resp, nil
}

func (s *ReviewService) indexReview(ctx context.Context, review *models.Review) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, review); err != nil {
		logging.FromContext(ctx).Warn("review indexing failed", "review_id", review.ID, "error", err)
	}
}

func reviewFromRequest(req transport.CreateReviewRequest) (*models.Review, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer_name required", ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 1-5", ErrValidation)
	}

	review := &models.Review{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		Rating:          req.Rating,
		Title:           req.Title,
		Body:            req.Body,
		IsVerifiedBuyer: req.IsVerifiedBuyer,
		Status:          models.ReviewStatusPending,
	}

	if req.ProductID != "" {
		pid, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product_id is not a uuid", ErrValidation)
		}
		review.ProductID = &pid
	}

	return review, nil
}

var csvDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

func parseDateDefault(raw string) time.Time {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func parseBoolish(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
