package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"enertika/internal/config"
	"enertika/internal/handler"
	"enertika/internal/logger"
	"enertika/internal/parser/cfdi"
	"enertika/internal/parser/voucher"
	"enertika/internal/repository/postgres"
	"enertika/internal/router"
	"enertika/internal/service"
	s3storage "enertika/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	voucherRepo := postgres.NewVoucherRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	dupeFinder := postgres.NewDuplicateFinderRepo(db)

	// Initialize storage (nil when no bucket is configured)
	archive, err := s3storage.NewArchive(context.Background(), &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 archive: %w", err)
	}
	if archive == nil {
		log.Warn().Msg("s3 bucket not configured, uploaded originals will not be archived")
	}

	// Initialize services
	voucherSvc := service.NewVoucherService(
		voucherRepo, supplierRepo, catalogRepo, dupeFinder,
		voucher.NewExtractor(), archive, attachmentRepo,
		&cfg.Upload, &cfg.S3,
	)
	invoiceSvc := service.NewInvoiceService(
		invoiceRepo, voucherRepo, supplierRepo, dupeFinder,
		cfdi.NewParser(cfg.Upload.MaxXMLBytes()), archive, attachmentRepo,
		&cfg.Upload, &cfg.Match, &cfg.S3,
	)
	catalogSvc := service.NewCatalogService(catalogRepo)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	voucherH := handler.NewVoucherHandler(voucherSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)

	r := router.Setup(cfg, healthH, voucherH, invoiceH, catalogH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
