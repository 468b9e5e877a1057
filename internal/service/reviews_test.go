package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/transport"
)

func newTestReviewService(t *testing.T) (*ReviewService, *repo.GormRepo) {
	t.Helper()

	store := &repo.GormRepo{DB: newTestDB(t)}
	return &ReviewService{Repo: store}, store
}

func TestImportCSV(t *testing.T) {
	t.Parallel()

	svc, store := newTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()

	csvData := strings.Join([]string{
		"customer_name,customer_email,rating,title,review_text,product_id,date,verified_buyer",
		"Ana,ana@example.com,5,Great,Loved it," + productID.String() + ",2026-01-15,true",
		"Ben,ben@example.com,4,Nice,Good quality,,2026-02-01,false",
		"Cleo,cleo@example.com,9,Bad rating,oops,,2026-02-02,false",
		",missing@example.com,3,No name,oops,,2026-02-03,false",
	}, "\n")

	resp, err := svc.ImportCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 2, resp.Skipped)
	assert.Len(t, resp.Errors, 2)

	total, reviews, err := store.ListReviews(ctx, repo.ReviewFilter{}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	byName := map[string]models.Review{}
	for _, r := range reviews {
		byName[r.CustomerName] = r
	}

	ana := byName["Ana"]
	require.NotNil(t, ana.ProductID)
	assert.Equal(t, productID, *ana.ProductID)
	assert.True(t, ana.IsVerifiedBuyer)
	assert.Equal(t, models.ReviewStatusApproved, ana.Status)
	assert.Equal(t, 2026, ana.CreatedAt.Year())

	// Empty product_id imports as a general testimonial.
	ben := byName["Ben"]
	assert.Nil(t, ben.ProductID)
	assert.False(t, ben.IsVerifiedBuyer)
}

func TestImportCSV_MissingHeader(t *testing.T) {
	t.Parallel()

	svc, _ := newTestReviewService(t)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("name,stars\nAna,5\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestImportCSV_BadDateDefaultsToNow(t *testing.T) {
	t.Parallel()

	svc, store := newTestReviewService(t)
	ctx := context.Background()

	csvData := "customer_name,rating,date\nAna,5,someday\n"
	resp, err := svc.ImportCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)

	_, reviews, err := store.ListReviews(ctx, repo.ReviewFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.False(t, reviews[0].CreatedAt.IsZero())
}

func TestCreateReview_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestReviewService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.CreateReviewRequest
	}{
		{name: "missing name", req: transport.CreateReviewRequest{Rating: 5}},
		{name: "rating too low", req: transport.CreateReviewRequest{CustomerName: "Ana", Rating: 0}},
		{name: "rating too high", req: transport.CreateReviewRequest{CustomerName: "Ana", Rating: 6}},
		{name: "bad product id", req: transport.CreateReviewRequest{CustomerName: "Ana", Rating: 5, ProductID: "nope"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.CreateReview(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPatchReview_StatusTransitions(t *testing.T) {
	t.Parallel()

	svc, _ := newTestReviewService(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, transport.CreateReviewRequest{
		CustomerName: "Ana",
		Rating:       5,
		Title:        "Great",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusPending, review.Status)

	approved := "approved"
	review, err = svc.PatchReview(ctx, review.ID, transport.PatchReviewRequest{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, review.Status)

	bogus := "published"
	_, err = svc.PatchReview(ctx, review.ID, transport.PatchReviewRequest{Status: &bogus})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
