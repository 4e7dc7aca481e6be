package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherRecord is the structured result of reading one payment voucher PDF.
// Optional fields stay nil/empty when the extractor could not find them.
type VoucherRecord struct {
	Filename        string           `json:"filename"`
	PaymentDate     *time.Time       `json:"payment_date,omitempty"`
	Beneficiary     string           `json:"beneficiary,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Currency        Currency         `json:"currency"`
	ExtractionError string           `json:"extraction_error,omitempty"`
}

// IsValid reports whether the record carries everything needed to persist it.
func (r *VoucherRecord) IsValid() bool {
	return r.ExtractionError == "" &&
		r.PaymentDate != nil &&
		r.Beneficiary != "" &&
		r.Amount != nil
}

// Voucher is a persisted payment voucher.
type Voucher struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	PaymentDate      time.Time       `db:"payment_date" json:"payment_date"`
	Beneficiary      string          `db:"beneficiary" json:"beneficiary"`
	Amount           decimal.Decimal `db:"amount" json:"amount"`
	Currency         Currency        `db:"currency" json:"currency"`
	Status           VoucherStatus   `db:"status" json:"status"`
	SourceFile       string          `db:"source_file" json:"source_file"`
	CapturedBy       uuid.UUID       `db:"captured_by" json:"captured_by"`
	SupplierID       *uuid.UUID      `db:"supplier_id" json:"supplier_id,omitempty"`
	ZoneID           *int64          `db:"zone_id" json:"zone_id,omitempty"`
	ProjectID        *uuid.UUID      `db:"project_id" json:"project_id,omitempty"`
	CategoryID       *int64          `db:"category_id" json:"category_id,omitempty"`
	InvoiceUUID      *string         `db:"invoice_uuid" json:"invoice_uuid,omitempty"`
	InvoiceKind      *DocumentKind   `db:"invoice_kind" json:"invoice_kind,omitempty"`
	IsAdvance        bool            `db:"is_advance" json:"is_advance"`
	AdvanceVoucherID *uuid.UUID      `db:"advance_voucher_id" json:"advance_voucher_id,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// VoucherView is a voucher joined with the display names of its references.
type VoucherView struct {
	Voucher
	BuyerName    *string `db:"buyer_name" json:"buyer_name,omitempty"`
	SupplierName *string `db:"supplier_name" json:"supplier_name,omitempty"`
	ZoneName     *string `db:"zone_name" json:"zone_name,omitempty"`
	ProjectName  *string `db:"project_name" json:"project_name,omitempty"`
	CategoryName *string `db:"category_name" json:"category_name,omitempty"`
}

// VoucherFilters narrows voucher listings, stats and exports.
type VoucherFilters struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     VoucherStatus
	ZoneID     *int64
	ProjectID  *uuid.UUID
	CategoryID *int64
	Offset     int
	Limit      int
}

// VoucherStats summarises the vouchers matching a filter.
type VoucherStats struct {
	Total    int             `db:"total" json:"total"`
	Pending  int             `db:"pending" json:"pending"`
	Invoiced int             `db:"invoiced" json:"invoiced"`
	TotalMXN decimal.Decimal `db:"total_mxn" json:"total_mxn"`
	TotalUSD decimal.Decimal `db:"total_usd" json:"total_usd"`
}

// InvoiceLink carries the fields written to a voucher when an invoice is confirmed against it.
type InvoiceLink struct {
	VoucherID   uuid.UUID
	InvoiceUUID string
	SupplierID  uuid.UUID
	Status      VoucherStatus
	Kind        DocumentKind
	IsAdvance   bool
}

// Supplier is an invoice issuer identified by its RFC.
type Supplier struct {
	ID             uuid.UUID `db:"id" json:"id"`
	RFC            string    `db:"rfc" json:"rfc"`
	LegalName      string    `db:"legal_name" json:"legal_name"`
	CommercialName *string   `db:"commercial_name" json:"commercial_name,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Attachment records an archived original file.
type Attachment struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	OwnerType   AttachmentOwner `db:"owner_type" json:"owner_type"`
	OwnerID     string          `db:"owner_id" json:"owner_id"`
	FileName    string          `db:"file_name" json:"file_name"`
	ContentType string          `db:"content_type" json:"content_type"`
	FileSize    int64           `db:"file_size" json:"file_size"`
	S3Bucket    string          `db:"s3_bucket" json:"-"`
	S3Key       string          `db:"s3_key" json:"-"`
	UploadedBy  uuid.UUID       `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	DownloadURL string          `db:"-" json:"download_url,omitempty"`
}
