package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lixing-Zhang/order-intake/internal/config"
	"github.com/Lixing-Zhang/order-intake/internal/handlers"
	"github.com/Lixing-Zhang/order-intake/internal/mailer"
	"github.com/Lixing-Zhang/order-intake/internal/metrics"
	"github.com/Lixing-Zhang/order-intake/internal/middleware"
	"github.com/Lixing-Zhang/order-intake/internal/money"
	"github.com/Lixing-Zhang/order-intake/internal/service"
	"github.com/Lixing-Zhang/order-intake/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	log.Info("starting order intake server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.Log.Level,
		"currency", cfg.Currency.Code,
	)

	formatter, err := money.NewFormatter(cfg.Currency.Money())
	if err != nil {
		log.Error("invalid currency settings", "error", err)
		os.Exit(1)
	}

	// Email settings are read per request; a missing setup only refuses orders
	emailSource := config.EnvEmailSource{}
	if emailCfg, err := emailSource.Email(); err != nil || !emailCfg.Configured() {
		log.Warn("email service not configured, orders will be refused until it is")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	orderService := service.NewOrderService(emailSource, mailer.NewSender, formatter, m, log)

	healthHandler := handlers.NewHealthHandler(emailSource, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(cfg.Server.WriteTimeout) * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins(),
		AllowedMethods:   []string{"POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{handlers.ReferenceHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// every method reaches the handler so non-POST requests get the JSON 405
	r.HandleFunc("/api/order", orderHandler.SubmitOrder)
	r.HandleFunc("/order", orderHandler.SubmitOrder)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
