package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"laundrydesk.com/app/internal/auth"
	"laundrydesk.com/app/internal/config"
	"laundrydesk.com/app/internal/database"
	apphttp "laundrydesk.com/app/internal/http"
	"laundrydesk.com/app/internal/logging"
	"laundrydesk.com/app/internal/metrics"
	"laundrydesk.com/app/internal/modules/customers"
	"laundrydesk.com/app/internal/modules/expenses"
	"laundrydesk.com/app/internal/modules/orders"
	"laundrydesk.com/app/internal/modules/payments"
	"laundrydesk.com/app/internal/modules/reports"
	"laundrydesk.com/app/internal/remote"
	"laundrydesk.com/app/internal/sms"
	"laundrydesk.com/app/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.File)
	ctx := context.Background()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	client, err := remote.New(cfg.API.BaseURL, auth.NewRequestStore(nil),
		remote.WithTimeout(cfg.API.Timeout),
		remote.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	store, err := storage.New(ctx, storage.Config{
		Driver:          cfg.Storage.Driver,
		LocalDir:        cfg.Storage.LocalDir,
		LocalURLPrefix:  cfg.Storage.LocalURLPrefix,
		S3Region:        cfg.Storage.S3Region,
		S3Bucket:        cfg.Storage.S3Bucket,
		S3Prefix:        cfg.Storage.S3Prefix,
		S3PublicBaseURL: cfg.Storage.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	smsSvc := sms.NewService(db, sms.NewRemoteProvider(client), logger)
	if err := smsSvc.Migrate(ctx); err != nil {
		log.Fatalf("migrate sms_sent_logs: %v", err)
	}
	smsSvc.OnResult(m.SMS)

	orderRepo := orders.NewRepo(client, logger)
	deps := apphttp.Deps{
		Resolver:        customers.NewResolver(client, logger),
		Aggregator:      orders.NewAggregator(client, logger),
		Orders:          orderRepo,
		Admin:           orders.NewAdminService(orderRepo, logger),
		Payments:        payments.NewService(orderRepo, payments.NewDarajaProvider(client, logger), logger),
		Reports:         reports.NewService(client, logger),
		Expenses:        expenses.NewService(client, logger),
		SMS:             smsSvc,
		Storage:         store.Storage,
		Metrics:         m,
		DefaultPageSize: cfg.DefaultPageSize,
	}
	if cfg.MetricsEnabled {
		reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
		deps.Gatherer = reg
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(logger, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", cfg.HTTPAddr, "api", cfg.API.BaseURL, "storage", store.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
