package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"enertika/internal/config"
	"enertika/internal/domain"
	"enertika/internal/export"
	"enertika/internal/logger"
	"enertika/internal/port"
	"enertika/internal/storage"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	defaultSearch    = 20
)

// VoucherService defines the payment voucher contract.
type VoucherService interface {
	ProcessBatch(ctx context.Context, files []UploadedFile, actor uuid.UUID) (*domain.BatchResult, error)
	List(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, int, error)
	DefaultView(ctx context.Context) ([]domain.VoucherView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Voucher, error)
	BulkUpdate(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error)
	Stats(ctx context.Context, filters domain.VoucherFilters) (*domain.VoucherStats, error)
	Export(ctx context.Context, filters domain.VoucherFilters, format domain.ExportFormat, w io.Writer) error
	SearchPending(ctx context.Context, q string, limit int) ([]domain.VoucherView, error)
	Attachments(ctx context.Context, voucherID uuid.UUID) ([]domain.Attachment, error)
	Catalogs(ctx context.Context) (*domain.CatalogOptions, error)
	SearchSuppliers(ctx context.Context, term string, limit int) ([]domain.Supplier, error)
}

type voucherService struct {
	vouchers  port.VoucherRepository
	suppliers port.SupplierRepository
	catalogs  port.CatalogRepository
	dupes     port.DuplicateFinder
	extractor port.VoucherExtractor
	archive   *archiver
	upload    *config.UploadConfig
	log       zerolog.Logger
}

// NewVoucherService creates a new VoucherService implementation. objects may
// be nil, which disables archival of uploaded PDFs.
func NewVoucherService(
	vouchers port.VoucherRepository,
	suppliers port.SupplierRepository,
	catalogs port.CatalogRepository,
	dupes port.DuplicateFinder,
	extractor port.VoucherExtractor,
	objects port.ObjectStorage,
	attachments port.AttachmentRepository,
	upload *config.UploadConfig,
	s3Cfg *config.S3Config,
) VoucherService {
	log := logger.WithComponent("voucher_service")
	return &voucherService{
		vouchers:  vouchers,
		suppliers: suppliers,
		catalogs:  catalogs,
		dupes:     dupes,
		extractor: extractor,
		archive: &archiver{
			storage:     objects,
			attachments: attachments,
			cfg:         s3Cfg,
			log:         log,
		},
		upload: upload,
		log:    log,
	}
}

// ProcessBatch extracts, deduplicates and stores each PDF in upload order.
// A failing file lands in the error bucket and never stops the batch.
func (s *voucherService) ProcessBatch(ctx context.Context, files []UploadedFile, actor uuid.UUID) (*domain.BatchResult, error) {
	if err := checkBatchSize(len(files), s.upload.MaxFiles); err != nil {
		return nil, err
	}

	result := domain.NewBatchResult()
	for _, f := range files {
		s.processOne(ctx, f, actor, result)
	}

	s.log.Info().
		Int("inserted", result.Inserted).
		Int("duplicates", len(result.Duplicates)).
		Int("errors", len(result.Errors)).
		Str("actor", actor.String()).
		Msg("voucher batch processed")
	return result, nil
}

func (s *voucherService) processOne(ctx context.Context, f UploadedFile, actor uuid.UUID, result *domain.BatchResult) {
	fail := func(msg string) {
		s.log.Warn().Str("file", f.Filename).Str("reason", msg).Msg("voucher rejected")
		result.Errors = append(result.Errors, domain.BatchError{Filename: f.Filename, Error: msg})
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("file", f.Filename).Msg("voucher processing panicked")
			fail(fmt.Sprintf("processing error: %v", r))
		}
	}()

	content, err := readUpload(f, domain.FileTypePDF, s.upload.MaxPDFBytes())
	if err != nil {
		fail(err.Error())
		return
	}

	rec := s.extractor.Extract(content, f.Filename)
	if rec.ExtractionError != "" {
		fail(rec.ExtractionError)
		return
	}
	if !rec.IsValid() {
		fail("incomplete data")
		return
	}

	exists, err := s.dupes.VoucherExists(ctx, *rec.PaymentDate, rec.Beneficiary, *rec.Amount)
	if err != nil {
		fail(fmt.Sprintf("database error: %v", err))
		return
	}
	if exists {
		s.log.Info().Str("file", f.Filename).Msg("duplicate voucher")
		result.Duplicates = append(result.Duplicates, domain.DuplicateEntry{
			Filename:    f.Filename,
			PaymentDate: rec.PaymentDate.Format("02/01/2006"),
			Beneficiary: rec.Beneficiary,
			Amount:      *rec.Amount,
			Currency:    rec.Currency,
		})
		return
	}

	v := &domain.Voucher{
		PaymentDate: *rec.PaymentDate,
		Beneficiary: rec.Beneficiary,
		Amount:      *rec.Amount,
		Currency:    rec.Currency,
		Status:      domain.VoucherStatusPending,
		SourceFile:  f.Filename,
		CapturedBy:  actor,
	}
	if err := s.vouchers.Create(ctx, v); err != nil {
		fail(fmt.Sprintf("database error: %v", err))
		return
	}
	result.Inserted++
	s.log.Info().
		Str("file", f.Filename).
		Str("beneficiary", v.Beneficiary).
		Str("amount", v.Amount.StringFixed(2)).
		Msg("voucher inserted")

	s.archive.store(ctx, archiveInput{
		owner:       domain.AttachmentOwnerVoucher,
		ownerID:     v.ID.String(),
		key:         storage.VoucherKey(v.ID, f.Filename),
		filename:    f.Filename,
		contentType: domain.AllowedFileTypes[domain.FileTypePDF],
		content:     content,
		actor:       actor,
	})
}

func (s *voucherService) List(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, int, error) {
	if filters.Status != "" && !domain.ValidVoucherStatuses[filters.Status] {
		return nil, 0, domain.ErrInvalidStatus
	}
	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateTo.Before(*filters.DateFrom) {
		return nil, 0, domain.ErrInvalidFilter
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	if filters.Limit > maxListLimit {
		filters.Limit = maxListLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.vouchers.List(ctx, filters)
}

// DefaultView lists every pending voucher.
func (s *voucherService) DefaultView(ctx context.Context) ([]domain.VoucherView, error) {
	return s.vouchers.ListAll(ctx, domain.VoucherFilters{Status: domain.VoucherStatusPending})
}

func (s *voucherService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	return s.vouchers.GetByID(ctx, id)
}

// Update applies the editable fields of one voucher. Null or empty values
// clear the column.
func (s *voucherService) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Voucher, error) {
	coerced, err := coerceVoucherFields(fields, singleUpdateFields, true)
	if err != nil {
		return nil, err
	}
	v, err := s.vouchers.Update(ctx, id, coerced)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("voucher_id", id.String()).Int("fields", len(coerced)).Msg("voucher updated")
	return v, nil
}

// BulkUpdate applies the same assignment to every voucher in ids. Null
// values are skipped.
func (s *voucherService) BulkUpdate(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrInvalidFilter
	}
	coerced, err := coerceVoucherFields(fields, bulkUpdateFields, false)
	if err != nil {
		return 0, err
	}
	n, err := s.vouchers.BulkUpdate(ctx, ids, coerced)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("requested", len(ids)).Int64("updated", n).Msg("vouchers bulk updated")
	return n, nil
}

func (s *voucherService) Stats(ctx context.Context, filters domain.VoucherFilters) (*domain.VoucherStats, error) {
	return s.vouchers.Stats(ctx, filters)
}

// Export writes every voucher matching filters to w in the requested format.
func (s *voucherService) Export(ctx context.Context, filters domain.VoucherFilters, format domain.ExportFormat, w io.Writer) error {
	if format != domain.ExportFormatXLSX && format != domain.ExportFormatCSV {
		return domain.ErrUnsupportedExport
	}
	vouchers, err := s.vouchers.ListAll(ctx, filters)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, vouchers); err != nil {
		return fmt.Errorf("voucherService.Export: %w", err)
	}
	s.log.Info().Str("format", string(format)).Int("rows", len(vouchers)).Msg("vouchers exported")
	return nil
}

func (s *voucherService) SearchPending(ctx context.Context, q string, limit int) ([]domain.VoucherView, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultSearch
	}
	return s.vouchers.Search(ctx, q, limit)
}

func (s *voucherService) Attachments(ctx context.Context, voucherID uuid.UUID) ([]domain.Attachment, error) {
	if _, err := s.vouchers.GetByID(ctx, voucherID); err != nil {
		return nil, err
	}
	return s.archive.list(ctx, domain.AttachmentOwnerVoucher, voucherID.String())
}

func (s *voucherService) Catalogs(ctx context.Context) (*domain.CatalogOptions, error) {
	return s.catalogs.Options(ctx)
}

func (s *voucherService) SearchSuppliers(ctx context.Context, term string, limit int) ([]domain.Supplier, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = defaultSearch
	}
	return s.suppliers.Search(ctx, term, limit)
}
