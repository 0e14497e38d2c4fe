package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"periodictables/internal/config"
	transport "periodictables/internal/gateway/interface"
	realtimeinfra "periodictables/internal/modules/realtime/infrastructure"
	reservationsinfra "periodictables/internal/modules/reservations/infrastructure"
	tablesinfra "periodictables/internal/modules/tables/infrastructure"
	"periodictables/internal/platform/rest"
	"periodictables/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("backend configured", slog.String("baseUrl", cfg.API.BaseURL), slog.Duration("timeout", cfg.API.Timeout))

	restClient := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, nil, logger)
	reservationSvc := reservationsinfra.NewClient(restClient)
	tableSvc := tablesinfra.NewClient(restClient)

	hub := realtimeinfra.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Stream.URL != "" {
		stream := realtimeinfra.NewStreamClient(cfg.Stream.URL, hub, logger)
		go func() {
			if err := stream.Run(ctx); err != nil {
				slog.Error("update stream stopped", slog.Any("error", err))
			}
		}()
	} else {
		slog.Info("update stream disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	handler := transport.NewHandler(reservationSvc, tableSvc)
	handler.Register(e)
	e.GET("/ws/updates", transport.NewUpdatesWebsocketHandler(hub))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	cancel()
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
