package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fashionstore/auth"
	"fashionstore/config"
	"fashionstore/controllers"
	"fashionstore/database"
	"fashionstore/events"
	"fashionstore/logger"
	"fashionstore/mailer"
	"fashionstore/metrics"
	"fashionstore/middleware"
	"fashionstore/repository"
	"fashionstore/routes"
	"fashionstore/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	var sender mailer.Sender
	if cfg.Mail.ServiceURL != "" {
		sender = mailer.NewHTTPSender(cfg.Mail.ServiceURL, &http.Client{Timeout: cfg.Mail.Timeout})
	} else {
		log.Warn("MAIL_SERVICE_URL not set, emails will only be logged")
		sender = mailer.NewLogSender(log.Named("mailer"))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := metrics.NewOrderMetrics(registry)

	opts := []services.Option{services.WithMetrics(orderMetrics)}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn("failed to close kafka publisher", zap.Error(err))
			}
		}()
		opts = append(opts, services.WithEventPublisher(publisher))
		log.Info("publishing order events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrderTopic))
	}

	orderService := services.NewOrderService(repository.NewOrderRepository(db), sender, log.Named("orders"), opts...)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	blacklist := repository.NewTokenBlacklist(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:        controllers.NewAuthController(repository.NewUserRepository(db), tokens, blacklist, log),
		Orders:      controllers.NewOrderController(orderService, log),
		Products:    controllers.NewProductController(repository.NewProductRepository(db), log),
		Newsletter:  controllers.NewNewsletterController(repository.NewSubscriberRepository(db), sender, log),
		Contact:     controllers.NewContactController(repository.NewContactRepository(db), sender, cfg.Mail.ContactInbox, log),
		Tokens:      tokens,
		Revocations: blacklist,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
