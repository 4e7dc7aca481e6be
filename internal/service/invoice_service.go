package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"enertika/internal/config"
	"enertika/internal/domain"
	"enertika/internal/logger"
	"enertika/internal/parser/cfdi"
	"enertika/internal/port"
	"enertika/internal/storage"
)

// InvoiceService defines the tax invoice ingestion and matching contract.
type InvoiceService interface {
	ProcessBatch(ctx context.Context, files []UploadedFile, actor uuid.UUID) (*domain.InvoiceBatchResult, error)
	ConfirmMatch(ctx context.Context, invoiceUUID string, voucherID, actor uuid.UUID, saveRelation bool) (*domain.MatchConfirmation, error)
}

type invoiceService struct {
	invoices  port.InvoiceRepository
	vouchers  port.VoucherRepository
	suppliers port.SupplierRepository
	dupes     port.DuplicateFinder
	parser    port.InvoiceParser
	archive   *archiver
	upload    *config.UploadConfig
	match     *config.MatchConfig
	log       zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService implementation. objects may
// be nil, which disables archival of uploaded XML.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	vouchers port.VoucherRepository,
	suppliers port.SupplierRepository,
	dupes port.DuplicateFinder,
	parser port.InvoiceParser,
	objects port.ObjectStorage,
	attachments port.AttachmentRepository,
	upload *config.UploadConfig,
	match *config.MatchConfig,
	s3Cfg *config.S3Config,
) InvoiceService {
	log := logger.WithComponent("invoice_service")
	return &invoiceService{
		invoices:  invoices,
		vouchers:  vouchers,
		suppliers: suppliers,
		dupes:     dupes,
		parser:    parser,
		archive: &archiver{
			storage:     objects,
			attachments: attachments,
			cfg:         s3Cfg,
			log:         log,
		},
		upload: upload,
		match:  match,
		log:    log,
	}
}

// ProcessBatch parses, deduplicates and stores each CFDI in upload order and
// proposes matching vouchers. Matches are never confirmed here.
func (s *invoiceService) ProcessBatch(ctx context.Context, files []UploadedFile, actor uuid.UUID) (*domain.InvoiceBatchResult, error) {
	if err := checkBatchSize(len(files), s.upload.MaxFiles); err != nil {
		return nil, err
	}

	result := domain.NewInvoiceBatchResult()
	for _, f := range files {
		s.processOne(ctx, f, actor, result)
	}

	s.log.Info().
		Int("processed", len(result.Processed)).
		Int("duplicates", len(result.Duplicates)).
		Int("errors", len(result.Errors)).
		Str("actor", actor.String()).
		Msg("invoice batch processed")
	return result, nil
}

func (s *invoiceService) processOne(ctx context.Context, f UploadedFile, actor uuid.UUID, result *domain.InvoiceBatchResult) {
	fail := func(msg string) {
		s.log.Warn().Str("file", f.Filename).Str("reason", msg).Msg("invoice rejected")
		result.Errors = append(result.Errors, domain.BatchError{Filename: f.Filename, Error: msg})
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("file", f.Filename).Msg("invoice processing panicked")
			fail(fmt.Sprintf("processing error: %v", r))
		}
	}()

	content, err := readUpload(f, domain.FileTypeXML, s.upload.MaxXMLBytes())
	if err != nil {
		fail(err.Error())
		return
	}
	if msg := s.parser.ValidateContent(content); msg != "" {
		fail(msg)
		return
	}

	rec, err := s.parser.Parse(content, f.Filename)
	if err != nil {
		fail(err.Error())
		return
	}

	exists, err := s.dupes.InvoiceExists(ctx, rec.UUID)
	if err != nil {
		fail(fmt.Sprintf("database error: %v", err))
		return
	}
	if exists {
		s.log.Info().Str("file", f.Filename).Str("uuid", rec.UUID).Msg("duplicate invoice")
		result.Duplicates = append(result.Duplicates, domain.BatchError{
			Filename: f.Filename,
			Error:    fmt.Sprintf("UUID %s... already exists", shortUUID(rec.UUID)),
		})
		return
	}

	supplier, err := s.supplierFor(ctx, rec)
	if err != nil {
		fail(fmt.Sprintf("database error: %v", err))
		return
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		fail(fmt.Sprintf("encoding invoice: %v", err))
		return
	}
	inv := &domain.Invoice{
		UUID:       rec.UUID,
		SupplierID: supplier.ID,
		IssuerRFC:  rec.IssuerRFC,
		IssuerName: rec.IssuerName,
		Total:      rec.Total,
		Currency:   rec.Currency,
		Kind:       rec.Kind,
		IssueDate:  rec.IssueDate,
		SourceFile: f.Filename,
		UploadedBy: actor,
		Payload:    payload,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		fail(fmt.Sprintf("database error: %v", err))
		return
	}

	issued, _ := rec.IssueDay()
	s.archive.store(ctx, archiveInput{
		owner:       domain.AttachmentOwnerInvoice,
		ownerID:     rec.UUID,
		key:         storage.InvoiceKey(rec.UUID, issued),
		filename:    f.Filename,
		contentType: domain.AllowedFileTypes[domain.FileTypeXML],
		content:     content,
		actor:       actor,
	})

	m := s.findMatch(ctx, rec, supplier.ID)
	m.Filename = f.Filename
	result.Processed = append(result.Processed, *m)
	s.log.Info().
		Str("file", f.Filename).
		Str("uuid", rec.UUID).
		Str("match", string(m.MatchType)).
		Msg("invoice processed")
}

// supplierFor returns the supplier registered under the issuer RFC, creating
// it on first sight.
func (s *invoiceService) supplierFor(ctx context.Context, rec *domain.InvoiceRecord) (*domain.Supplier, error) {
	supplier, err := s.suppliers.GetByRFC(ctx, rec.IssuerRFC)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, domain.ErrSupplierNotFound) {
		return nil, err
	}

	supplier = &domain.Supplier{RFC: rec.IssuerRFC, LegalName: rec.IssuerName}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}
	s.log.Info().Str("rfc", supplier.RFC).Str("name", supplier.LegalName).Msg("supplier created")
	return supplier, nil
}

// findMatch searches pending vouchers in three levels: known beneficiary
// names of the supplier, then amount alone, then nothing. Lookup failures
// degrade to NO_MATCH since the invoice is already stored.
func (s *invoiceService) findMatch(ctx context.Context, rec *domain.InvoiceRecord, supplierID uuid.UUID) *domain.InvoiceMatch {
	m := &domain.InvoiceMatch{
		UUID:          rec.UUID,
		IssuerRFC:     rec.IssuerRFC,
		IssuerName:    rec.IssuerName,
		SupplierID:    supplierID,
		Total:         rec.Total,
		Currency:      rec.Currency,
		IssueDate:     rec.IssueDate,
		Kind:          rec.Kind,
		LineItemCount: len(rec.LineItems),
		MatchType:     domain.MatchTypeNone,
		Candidates:    []domain.MatchCandidate{},
	}

	query := port.MatchQuery{
		Amount:    rec.Total,
		Currency:  rec.Currency,
		Tolerance: s.match.Tolerance,
	}
	if query.Currency == "" {
		query.Currency = domain.CurrencyMXN
	}

	names, err := s.suppliers.BeneficiaryNames(ctx, supplierID)
	if err != nil {
		s.log.Warn().Err(err).Str("uuid", rec.UUID).Msg("loading beneficiary relations failed")
	}
	for _, name := range names {
		query.Beneficiary = name
		candidates, err := s.vouchers.FindCandidates(ctx, query)
		if err != nil {
			s.log.Warn().Err(err).Str("uuid", rec.UUID).Msg("beneficiary match lookup failed")
			return m
		}
		if applyCandidates(m, candidates, domain.MatchTypeAuto) {
			return m
		}
	}

	query.Beneficiary = ""
	candidates, err := s.vouchers.FindCandidates(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("uuid", rec.UUID).Msg("amount match lookup failed")
		return m
	}
	applyCandidates(m, candidates, domain.MatchTypeAmount)
	return m
}

// applyCandidates records candidates on m. A single candidate is proposed
// with the given single-match type; several become MULTIPLE_MATCH.
func applyCandidates(m *domain.InvoiceMatch, candidates []domain.MatchCandidate, single domain.MatchType) bool {
	switch len(candidates) {
	case 0:
		return false
	case 1:
		id := candidates[0].VoucherID
		m.MatchType = single
		m.VoucherID = &id
	default:
		m.MatchType = domain.MatchTypeMultiple
	}
	m.Candidates = candidates
	return true
}

// ConfirmMatch links a stored invoice to a pending voucher and records its
// line items and related documents.
func (s *invoiceService) ConfirmMatch(
	ctx context.Context,
	invoiceUUID string,
	voucherID, actor uuid.UUID,
	saveRelation bool,
) (*domain.MatchConfirmation, error) {
	invoiceUUID = strings.ToUpper(strings.TrimSpace(invoiceUUID))

	inv, err := s.invoices.GetByUUID(ctx, invoiceUUID)
	if err != nil {
		return nil, err
	}

	_, err = s.vouchers.GetByInvoiceUUID(ctx, invoiceUUID)
	if err == nil {
		return nil, domain.ErrInvoiceAlreadyMatched
	}
	if !errors.Is(err, domain.ErrVoucherNotFound) {
		return nil, err
	}

	voucher, err := s.vouchers.GetByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.VoucherStatusPending {
		return nil, domain.ErrVoucherNotPending
	}

	rec, err := inv.Record()
	if err != nil {
		return nil, fmt.Errorf("invoiceService.ConfirmMatch decode: %w", err)
	}

	link := domain.InvoiceLink{
		VoucherID:   voucherID,
		InvoiceUUID: inv.UUID,
		SupplierID:  inv.SupplierID,
		Status:      domain.VoucherStatusInvoiced,
		Kind:        inv.Kind,
	}
	if inv.Kind == domain.DocumentKindAdvancePayment {
		link.Status = domain.VoucherStatusAdvance
		link.IsAdvance = true
	}
	if err := s.vouchers.LinkInvoice(ctx, link); err != nil {
		return nil, err
	}

	if saveRelation {
		if err := s.suppliers.SaveBeneficiary(ctx, voucher.Beneficiary, inv.SupplierID, actor); err != nil {
			return nil, err
		}
	}

	materials := materialEntries(inv, rec)
	if err := s.invoices.SaveMaterials(ctx, materials); err != nil {
		return nil, err
	}
	if err := s.invoices.SaveRelated(ctx, inv.UUID, rec.RelatedDocuments); err != nil {
		return nil, err
	}

	if inv.Kind == domain.DocumentKindAdvanceClosure {
		for _, rel := range rec.RelatedDocuments {
			if rel.RelationType != cfdi.AdvanceRelationType {
				continue
			}
			if err := s.vouchers.LinkAdvance(ctx, voucherID, rel.UUID); err != nil {
				return nil, err
			}
		}
	}

	s.log.Info().
		Str("uuid", shortUUID(inv.UUID)).
		Str("voucher_id", voucherID.String()).
		Str("rfc", inv.IssuerRFC).
		Str("kind", string(inv.Kind)).
		Msg("match confirmed")

	return &domain.MatchConfirmation{
		InvoiceUUID:    inv.UUID,
		VoucherID:      voucherID,
		SupplierID:     inv.SupplierID,
		Kind:           inv.Kind,
		MaterialsSaved: len(materials),
		RelatedSaved:   len(rec.RelatedDocuments),
	}, nil
}

// materialEntries dates each line item with the invoice issue day, or today
// when the issue date cannot be parsed.
func materialEntries(inv *domain.Invoice, rec *domain.InvoiceRecord) []domain.MaterialEntry {
	purchasedOn, ok := rec.IssueDay()
	if !ok {
		purchasedOn = time.Now().UTC().Truncate(24 * time.Hour)
	}

	entries := make([]domain.MaterialEntry, 0, len(rec.LineItems))
	for i, item := range rec.LineItems {
		entries = append(entries, domain.MaterialEntry{
			InvoiceUUID: inv.UUID,
			SupplierID:  inv.SupplierID,
			LineNumber:  i + 1,
			PurchasedOn: purchasedOn,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			Unit:        item.Unit,
			ProductKey:  item.ProductKey,
			UnitKey:     item.UnitKey,
			Currency:    inv.Currency,
		})
	}
	return entries
}

func shortUUID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
