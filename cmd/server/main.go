package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/stitchwell/storefront/internal/client"
	"github.com/stitchwell/storefront/internal/config"
	"github.com/stitchwell/storefront/internal/email"
	"github.com/stitchwell/storefront/internal/httpserver"
	"github.com/stitchwell/storefront/internal/mq"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/search"
	"github.com/stitchwell/storefront/internal/service"
	pkgdb "github.com/stitchwell/storefront/pkg/db"
	"github.com/stitchwell/storefront/pkg/logging"
	loggingmw "github.com/stitchwell/storefront/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.StripeSecretKey, "STRIPE_SECRET_KEY")
	config.MustNonEmpty(cfg.ResendAPIKey, "RESEND_API_KEY")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	store := &repo.GormRepo{DB: db}
	provider := client.NewStripeClient(cfg.StripeSecretKey)
	sender := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	renderer := &email.Renderer{Org: email.Org{
		Name:         cfg.OrgName,
		Address:      cfg.OrgAddress,
		TaxID:        cfg.OrgTaxID,
		SupportEmail: cfg.SupportEmail,
	}}

	var publisher mq.Publisher = mq.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := mq.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		publisher = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, ops events disabled")
	}

	var indexer search.ReviewIndexer
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch unavailable, review search disabled", "error", err)
		} else {
			indexer = search.NewESReviews(es)
		}
	}

	notifier := &service.NotificationService{Repo: store, Renderer: renderer, Sender: sender}
	orders := &service.OrderService{Repo: store, Provider: provider, Notifier: notifier, Publisher: publisher}
	coupons := &service.CouponService{Repo: store}
	events := &service.EventService{Repo: store}
	reviews := &service.ReviewService{Repo: store, Index: indexer}
	authSvc := &service.AuthService{Repo: store, JWTSecret: cfg.JWTSecret}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := authSvc.EnsureBootstrapAdmin(bootCtx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	bootCancel()

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Webhook:   &httpserver.WebhookHTTP{Orders: orders, Secret: cfg.StripeWebhookSecret},
		Email:     &httpserver.EmailHTTP{Svc: notifier},
		Auth:      &httpserver.AuthHTTP{Svc: authSvc},
		Orders:    &httpserver.OrderHTTP{Svc: orders},
		Coupons:   &httpserver.CouponHTTP{Svc: coupons, Publisher: publisher},
		Events:    &httpserver.EventHTTP{Svc: events, Publisher: publisher},
		Reviews:   &httpserver.ReviewHTTP{Svc: reviews, Publisher: publisher},
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
