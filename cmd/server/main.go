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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"petledger/internal/config"
	"petledger/internal/handler"
	"petledger/internal/logging"
	"petledger/internal/port"
	"petledger/internal/repository/postgres"
	"petledger/internal/router"
	"petledger/internal/service"
	s3storage "petledger/internal/storage/s3"
	"petledger/internal/tax"
	"petledger/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.Log)
	logging.Install(logger)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	productRepo := postgres.NewProductRepo(db)
	taxSettingsRepo := postgres.NewTaxSettingsRepo(db)
	importRunRepo := postgres.NewImportRunRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	hsnLookup, err := tax.LoadHSNLookup(ctx, hsnRepo)
	if err != nil {
		return err
	}
	logger.Info("loaded HSN master list", slog.Int("codes", hsnLookup.Len()))

	// Initialize storage
	var archive port.ObjectStorage
	if cfg.Import.ArchiveUploads {
		archive, err = s3storage.NewArchive(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics("petledger", reg)

	// Initialize services
	importSvc := service.NewImportService(productRepo, importRunRepo, archive, metrics, cfg.Import, cfg.S3)
	taxSettingsSvc := service.NewTaxSettingsService(taxSettingsRepo, hsnLookup, metrics)

	// Setup router
	r := router.Setup(router.Handlers{
		Health:      handler.NewHealthHandler(db),
		Tax:         handler.NewTaxHandler(metrics),
		Sales:       handler.NewSalesHandler(),
		Import:      handler.NewImportHandler(importSvc, cfg.S3.MaxFileBytes()),
		TaxSettings: handler.NewTaxSettingsHandler(taxSettingsSvc),
	}, router.Options{
		Logger:      logger,
		Metrics:     metrics,
		Gatherer:    reg,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Server.Port), slog.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
