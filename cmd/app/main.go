package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Marketplace stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig(".env", os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	level, _ := config.Level()
	logger := newLogger(level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, config, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to release resources", "error", closeErr)
		}
	}()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := newWebServer(app, config, level, logger)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Marketplace listening", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-serveErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newLogger(level log.Lvl) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case log.DEBUG:
		slogLevel = slog.LevelDebug
	case log.WARN:
		slogLevel = slog.LevelWarn
	case log.ERROR:
		slogLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}

func newWebServer(app *cmd.CompositionRoot, config cmd.Config, level log.Lvl, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(level)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelDebug, "request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	app.CreateHTTPServer().RegisterRoutes(e, []byte(config.JWTSecret))
	return e
}
