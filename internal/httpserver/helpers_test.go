package httpserver

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/auth"
	"github.com/stitchwell/storefront/internal/client"
	"github.com/stitchwell/storefront/internal/email"
	"github.com/stitchwell/storefront/internal/hash"
	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/service"
)

const (
	testWebhookSecret = "whsec_test_secret"
	testJWTSecret     = "test-jwt-secret"
)

type fakeProvider struct {
	items    []client.LineItem
	itemsErr error
	sub      *client.SubscriptionInfo
	subErr   error
}

func (f *fakeProvider) ListLineItems(ctx context.Context, sessionID string) ([]client.LineItem, error) {
	return f.items, f.itemsErr
}

func (f *fakeProvider) GetSubscription(ctx context.Context, subscriptionID string) (*client.SubscriptionInfo, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.sub, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, to)
	return "email_test_id", nil
}

type testEnv struct {
	E        *echo.Echo
	Store    *repo.GormRepo
	Provider *fakeProvider
	Sender   *fakeSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))

	store := &repo.GormRepo{DB: db}
	provider := &fakeProvider{}
	sender := &fakeSender{}

	notifier := &service.NotificationService{
		Repo:     store,
		Renderer: &email.Renderer{Org: email.Org{Name: "Test Shop", SupportEmail: "help@test.example"}},
		Sender:   sender,
	}
	orders := &service.OrderService{
		Repo:      store,
		Provider:  provider,
		Notifier:  notifier,
		Publisher: mq.NopPublisher{},
	}

	e := echo.New()
	Register(e, &Deps{
		Webhook:   &WebhookHTTP{Orders: orders, Secret: testWebhookSecret},
		Email:     &EmailHTTP{Svc: notifier},
		Auth:      &AuthHTTP{Svc: &service.AuthService{Repo: store, JWTSecret: []byte(testJWTSecret)}},
		Orders:    &OrderHTTP{Svc: orders},
		Coupons:   &CouponHTTP{Svc: &service.CouponService{Repo: store}, Publisher: mq.NopPublisher{}},
		Events:    &EventHTTP{Svc: &service.EventService{Repo: store}, Publisher: mq.NopPublisher{}},
		Reviews:   &ReviewHTTP{Svc: &service.ReviewService{Repo: store}, Publisher: mq.NopPublisher{}},
		JWTSecret: []byte(testJWTSecret),
	})

	return &testEnv{E: e, Store: store, Provider: provider, Sender: sender}
}

func seedAdminUser(t *testing.T, env *testEnv, username, password string) {
	t.Helper()

	passwordHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, env.Store.DB.Create(&models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "admin",
	}).Error)
}

func signRoleToken(t *testing.T, role string) string {
	t.Helper()

	token, err := auth.SignAccessToken("test-user", role, []byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	token, err := auth.SignAccessToken("test-admin", "admin", []byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doAdmin(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, method, path, body, map[string]string{
		echo.HeaderAuthorization: "Bearer " + env.adminToken(t),
	})
}
