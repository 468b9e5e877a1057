package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/client"
	"github.com/stitchwell/storefront/internal/email"
	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

type fakeProvider struct {
	items    []client.LineItem
	itemsErr error

	sub    *client.SubscriptionInfo
	subErr error
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
	sent []sentEmail
	err  error
}

type sentEmail struct {
	To      string
	Subject string
	HTML    string
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, HTML: html})
	return "email_test_id", nil
}

func newTestOrderService(t *testing.T, provider *fakeProvider, sender *fakeSender) (*OrderService, *repo.GormRepo) {
	t.Helper()

	store := &repo.GormRepo{DB: newTestDB(t)}
	notifier := &NotificationService{
		Repo:     store,
		Renderer: &email.Renderer{Org: email.Org{Name: "Test Shop", SupportEmail: "help@test.example"}},
		Sender:   sender,
	}
	svc := &OrderService{
		Repo:      store,
		Provider:  provider,
		Notifier:  notifier,
		Publisher: mq.NopPublisher{},
	}
	return svc, store
}
