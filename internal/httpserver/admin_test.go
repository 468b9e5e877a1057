package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/transport"
)

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	seedAdminUser(t, env, "admin", "correct-horse")

	body, _ := json.Marshal(transport.LoginRequest{Username: "admin", Password: "correct-horse"})
	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", bytes.NewReader(body), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp transport.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)

	// The issued token opens the admin surface.
	list := env.do(t, http.MethodGet, "/api/v1/admin/coupons", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + resp.AccessToken,
	})
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestAdminLogin_BadPassword(t *testing.T) {
	env := newTestEnv(t)
	seedAdminUser(t, env, "admin", "correct-horse")

	body, _ := json.Marshal(transport.LoginRequest{Username: "admin", Password: "wrong"})
	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", bytes.NewReader(body), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCouponCRUD(t *testing.T) {
	env := newTestEnv(t)

	body := []byte(`{"code":"spring10","type":"percent","value":"10"}`)
	rec := env.doAdmin(t, http.MethodPost, "/api/v1/admin/coupons", bytes.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var coupon models.Coupon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coupon))
	assert.Equal(t, "SPRING10", coupon.Code)

	patch := []byte(`{"active":false}`)
	rec = env.doAdmin(t, http.MethodPatch, "/api/v1/admin/coupons/"+coupon.ID.String(), bytes.NewReader(patch))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doAdmin(t, http.MethodGet, "/api/v1/admin/coupons/"+coupon.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coupon))
	assert.False(t, coupon.Active)

	rec = env.doAdmin(t, http.MethodDelete, "/api/v1/admin/coupons/"+coupon.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doAdmin(t, http.MethodGet, "/api/v1/admin/coupons/"+coupon.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCoupon_DuplicateCodeConflict(t *testing.T) {
	env := newTestEnv(t)

	body := []byte(`{"code":"TWICE","type":"fixed","value":"5"}`)
	rec := env.doAdmin(t, http.MethodPost, "/api/v1/admin/coupons", bytes.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doAdmin(t, http.MethodPost, "/api/v1/admin/coupons", bytes.NewReader(body))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEventCRUD(t *testing.T) {
	env := newTestEnv(t)

	body := []byte(`{"title":"Spring Market","location":"Town Hall","starts_at":"2026-04-01T10:00:00Z","ends_at":"2026-04-01T16:00:00Z","capacity":50}`)
	rec := env.doAdmin(t, http.MethodPost, "/api/v1/admin/events", bytes.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var event models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.False(t, event.Published)

	patch := []byte(`{"published":true}`)
	rec = env.doAdmin(t, http.MethodPatch, "/api/v1/admin/events/"+event.ID.String(), bytes.NewReader(patch))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	assert.True(t, event.Published)

	rec = env.doAdmin(t, http.MethodGet, "/api/v1/admin/events?published=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Total int64          `json:"total"`
		Items []models.Event `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.EqualValues(t, 1, list.Total)
}

func TestEvent_EndsBeforeStartsRejected(t *testing.T) {
	env := newTestEnv(t)

	body := []byte(`{"title":"Backwards","starts_at":"2026-04-02T10:00:00Z","ends_at":"2026-04-01T10:00:00Z"}`)
	rec := env.doAdmin(t, http.MethodPost, "/api/v1/admin/events", bytes.NewReader(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewCRUDAndModeration(t *testing.T) {
	env := newTestEnv(t)

	body := []byte(`{"customer_name":"Ana","rating":5,"title":"Great","body":"Loved it"}`)
	rec := env.doAdmin(t, http.MethodPost, "/api/v1/admin/reviews", bytes.NewReader(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var review models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	assert.Equal(t, models.ReviewStatusPending, review.Status)
	assert.Nil(t, review.ProductID)

	patch := []byte(`{"status":"approved"}`)
	rec = env.doAdmin(t, http.MethodPatch, "/api/v1/admin/reviews/"+review.ID.String(), bytes.NewReader(patch))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	assert.Equal(t, models.ReviewStatusApproved, review.Status)

	rec = env.doAdmin(t, http.MethodGet, "/api/v1/admin/reviews?status=approved", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Total int64           `json:"total"`
		Items []models.Review `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.EqualValues(t, 1, list.Total)
}

func TestReviewImport_Multipart(t *testing.T) {
	env := newTestEnv(t)

	csvData := strings.Join([]string{
		"customer_name,customer_email,rating,title,review_text,product_id,date,verified_buyer",
		"Ana,ana@example.com,5,Great,Loved it,,2026-01-15,true",
		"Ben,ben@example.com,4,Nice,Good quality,,2026-02-01,false",
	}, "\n")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "reviews.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reviews/import", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+env.adminToken(t))
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp transport.ImportReviewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 0, resp.Skipped)
}

func TestAdminSurface_RejectsNonAdminToken(t *testing.T) {
	env := newTestEnv(t)

	token := signRoleToken(t, "customer")
	rec := env.do(t, http.MethodGet, "/api/v1/admin/coupons", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + token,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
