package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"enertika/internal/domain"
)

// MatchQuery selects pending vouchers that could be paid by an invoice.
// An empty Beneficiary matches any beneficiary.
type MatchQuery struct {
	Beneficiary string
	Amount      decimal.Decimal
	Currency    domain.Currency
	Tolerance   decimal.Decimal
}

// VoucherRepository defines the contract for payment voucher persistence.
type VoucherRepository interface {
	Create(ctx context.Context, v *domain.Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error)
	GetByInvoiceUUID(ctx context.Context, invoiceUUID string) (*domain.Voucher, error)
	List(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, int, error)
	ListAll(ctx context.Context, filters domain.VoucherFilters) ([]domain.VoucherView, error)
	Search(ctx context.Context, term string, limit int) ([]domain.VoucherView, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Voucher, error)
	BulkUpdate(ctx context.Context, ids []uuid.UUID, fields map[string]interface{}) (int64, error)
	Stats(ctx context.Context, filters domain.VoucherFilters) (*domain.VoucherStats, error)
	FindCandidates(ctx context.Context, q MatchQuery) ([]domain.MatchCandidate, error)
	LinkInvoice(ctx context.Context, link domain.InvoiceLink) error
	LinkAdvance(ctx context.Context, voucherID uuid.UUID, advanceInvoiceUUID string) error
}

// SupplierRepository defines the contract for supplier persistence and the
// learned beneficiary-name to supplier relation.
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	GetByRFC(ctx context.Context, rfc string) (*domain.Supplier, error)
	Search(ctx context.Context, term string, limit int) ([]domain.Supplier, error)
	BeneficiaryNames(ctx context.Context, supplierID uuid.UUID) ([]string, error)
	SaveBeneficiary(ctx context.Context, beneficiary string, supplierID, createdBy uuid.UUID) error
}

// InvoiceRepository defines the contract for tax invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByUUID(ctx context.Context, invoiceUUID string) (*domain.Invoice, error)
	SaveMaterials(ctx context.Context, entries []domain.MaterialEntry) error
	SaveRelated(ctx context.Context, invoiceUUID string, related []domain.RelatedDocument) error
}

// AttachmentRepository defines the contract for archived file metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.Attachment) error
	ListByOwner(ctx context.Context, owner domain.AttachmentOwner, ownerID string) ([]domain.Attachment, error)
}
