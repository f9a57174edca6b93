package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/medicines-admin/apiclient"
	"github.com/giygas/medicines-admin/catalog"
	"github.com/giygas/medicines-admin/config"
	"github.com/giygas/medicines-admin/data"
	"github.com/giygas/medicines-admin/dispatcher"
	"github.com/giygas/medicines-admin/handlers"
	"github.com/giygas/medicines-admin/health"
	"github.com/giygas/medicines-admin/logging"
	"github.com/giygas/medicines-admin/report"
	"github.com/giygas/medicines-admin/scheduler"
	"github.com/giygas/medicines-admin/server"
	"github.com/giygas/medicines-admin/validation"
	"github.com/giygas/medicines-admin/views"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions(logging.Options{
		Dir:            cfg.LogDir,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to close logger:", err)
		}
	}()

	logging.Info("Configuration loaded", "env", cfg.Env, "backend", cfg.APIBaseURL, "log_level", cfg.LogLevel)

	board := data.NewBoard()
	api := apiclient.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	loader := catalog.NewLoader(api, board, board, api.BaseURL())
	reporter := report.NewReporter(api, board)
	mutations := dispatcher.New(api, loader, validation.NewInputValidator())
	checker := health.NewHealthChecker(board, board, cfg.HealthProbeInterval)

	renderer, err := views.NewRenderer()
	if err != nil {
		logging.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	admin := handlers.NewAdminHandler(loader, reporter, mutations, board, checker, renderer, api.BaseURL())

	probe := scheduler.NewScheduler(api, board, cfg.HealthProbeInterval)
	if err := probe.Start(); err != nil {
		logging.Error("Failed to start backend probe", "error", err)
		os.Exit(1)
	}

	if cfg.Env == config.EnvDevelopment {
		go func() {
			logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				logging.Warn("Profiling server failed", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, admin)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
		}
	}

	probe.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
	}
}
