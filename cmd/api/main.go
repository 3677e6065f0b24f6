package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/tahoebearjerky/storefront-api/internal/config"
	"github.com/tahoebearjerky/storefront-api/internal/domain"
	"github.com/tahoebearjerky/storefront-api/internal/handler"
	"github.com/tahoebearjerky/storefront-api/internal/middleware"
	"github.com/tahoebearjerky/storefront-api/internal/repository"
	"github.com/tahoebearjerky/storefront-api/internal/service"
	"github.com/tahoebearjerky/storefront-api/internal/store"
	"github.com/tahoebearjerky/storefront-api/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("telemetry shutdown", zap.Error(err))
		}
	}()

	st, err := store.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	if err := waitForStore(ctx, st, logger); err != nil {
		logger.Fatal("database not reachable", zap.Error(err))
	}

	pricing, err := domain.NewPricingPolicy(cfg.TaxRate, cfg.FreeShippingThreshold, cfg.FlatShippingCost)
	if err != nil {
		logger.Fatal("invalid pricing config", zap.Error(err))
	}

	catalogRepo := repository.NewCatalogRepository(st)
	orderRepo := repository.NewOrderRepository(st)
	newsletterRepo := repository.NewNewsletterRepository(st)

	orderSvc := service.NewOrderService(orderRepo, pricing, logger)
	newsletterSvc := service.NewNewsletterService(newsletterRepo, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	handler.Routes(r,
		handler.NewCatalogHandler(catalogRepo, logger),
		handler.NewOrderHandler(orderSvc, logger),
		handler.NewNewsletterHandler(newsletterSvc, logger),
		handler.NewHealthHandler(st),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("🚀 storefront API listening",
			zap.String("port", cfg.Port),
			zap.String("database", st.Engine()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zcfg.Build()
}

func waitForStore(ctx context.Context, st *store.Store, logger *zap.Logger) error {
	var err error
	for i := 0; i < 30; i++ {
		if err = st.Ping(ctx); err == nil {
			logger.Info("✅ connected to database")
			return nil
		}
		logger.Info("⏳ waiting for database", zap.Int("attempt", i+1))
		time.Sleep(time.Second)
	}
	return err
}
