package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/i474232898/weather-screen/internal/api/http"
	"github.com/i474232898/weather-screen/internal/config"
	"github.com/i474232898/weather-screen/internal/logging"
	"github.com/i474232898/weather-screen/internal/metrics"
	"github.com/i474232898/weather-screen/internal/scheduler"
	"github.com/i474232898/weather-screen/internal/screen"
	"github.com/i474232898/weather-screen/internal/store"
	"github.com/i474232898/weather-screen/internal/suggest"
	"github.com/i474232898/weather-screen/internal/weather/providers"
)

const (
	appName = "weather-screen"
	// Default version is "dev" if not set with -ldflags "-X main.version=..."
	version = "dev"
)

func main() {
	// Load configuration. Missing API keys abort here.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg, appName, version).With("session", uuid.NewString())
	log.Info("starting", "env", cfg.AppEnv, "log_level", cfg.LogLevel.String(), "view_addr", cfg.ViewAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewCollector("weather_screen", reg)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	weatherClient := providers.NewWeatherAPIClient(httpClient, cfg.WeatherAPIKey,
		providers.WithBaseURL(cfg.WeatherAPIBase),
		providers.WithLogger(log),
		providers.WithMetrics(m),
	)

	model, err := suggest.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error("failed to create suggestion model", "err", err)
		os.Exit(1)
	}
	defer model.Close()

	kv, err := store.OpenSQLite(cfg.StorePath)
	if err != nil {
		log.Error("failed to open store", "path", cfg.StorePath, "err", err)
		os.Exit(1)
	}
	defer kv.Close()

	ctrl := screen.New(screen.Config{
		DefaultCity:    cfg.DefaultCity,
		FallbackCity:   cfg.FallbackCity,
		ForecastDays:   cfg.ForecastDays,
		SearchDelay:    cfg.SearchDelay,
		RequestTimeout: cfg.HTTPTimeout,
	}, screen.Deps{
		Weather:   weatherClient,
		Suggester: suggest.NewClient(model, log, m),
		Locator:   cfg.Locator(),
		Store:     kv,
		Notifier:  screen.LogNotifier{Logger: log},
		Logger:    log,
		Metrics:   m,
	})
	defer ctrl.Close()

	mounted := make(chan struct{})
	go func() {
		defer close(mounted)
		ctrl.Mount(ctx)
	}()

	// Auto-refresh of the last location.
	sched := scheduler.New(ctrl, cfg.RefreshInterval, 2*cfg.HTTPTimeout, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * cfg.HTTPTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	httpapi.RegisterRoutes(app, ctrl)
	httpapi.RegisterMetrics(app, reg)

	go func() {
		if err := app.Listen(cfg.ViewAddr); err != nil {
			log.Error("fiber server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "err", err)
	}
	<-mounted
}
