package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"delivery-management-api/auth"
	"delivery-management-api/config"
	"delivery-management-api/handlers"
	"delivery-management-api/metrics"
	"delivery-management-api/routes"
	"delivery-management-api/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])

	logger, _ := zap.NewProduction()
	if (cfg != nil && cfg.IsLocal()) || os.Getenv("APP_ENV") == "local" {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := config.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	rates := service.PaymentRates{
		PerOrder:  cfg.Payment.PerOrder,
		PerMinute: cfg.Payment.PerMinute,
		PerKm:     cfg.Payment.PerKm,
	}
	h := handlers.New(handlers.Services{
		Auth:    service.NewAuthService(st, tokens, logger),
		Drivers: service.NewDriverService(st, rates, logger),
		Orders:  service.NewOrderService(st, m, logger),
		Routes:  service.NewRouteService(st, m, logger),
	}, st, logger)

	addr := ":" + strconv.Itoa(cfg.Port)
	httpServer := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Handler:  h,
			Tokens:   tokens,
			Metrics:  m,
			Gatherer: reg,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", zap.String("addr", addr), zap.String("store", cfg.Store.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Error("store close failed", zap.Error(err))
	}
}
