package domain

// FileType represents the document types accepted by the ingestion endpoints.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeXML FileType = "xml"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeXML: "application/xml",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"xml": FileTypeXML,
}

// Currency is the ISO code of a monetary amount.
type Currency string

const (
	CurrencyMXN Currency = "MXN"
	CurrencyUSD Currency = "USD"
)

// VoucherStatus tracks a payment voucher through invoicing.
type VoucherStatus string

const (
	VoucherStatusPending   VoucherStatus = "PENDING"
	VoucherStatusInvoiced  VoucherStatus = "INVOICED"
	VoucherStatusAdvance   VoucherStatus = "ADVANCE"
	VoucherStatusCancelled VoucherStatus = "CANCELLED"
)

// ValidVoucherStatuses lists every status accepted on update.
var ValidVoucherStatuses = map[VoucherStatus]bool{
	VoucherStatusPending:   true,
	VoucherStatusInvoiced:  true,
	VoucherStatusAdvance:   true,
	VoucherStatusCancelled: true,
}

// DocumentKind classifies a tax invoice.
type DocumentKind string

const (
	DocumentKindNormal         DocumentKind = "NORMAL"
	DocumentKindAdvancePayment DocumentKind = "ADVANCE_PAYMENT"
	DocumentKindAdvanceClosure DocumentKind = "ADVANCE_CLOSURE"
)

// MatchType describes how an uploaded invoice relates to pending vouchers.
type MatchType string

const (
	MatchTypeAuto     MatchType = "AUTO_MATCH"
	MatchTypeMultiple MatchType = "MULTIPLE_MATCH"
	MatchTypeAmount   MatchType = "AMOUNT_MATCH"
	MatchTypeNone     MatchType = "NO_MATCH"
)

// CatalogKind names one of the reference catalogs used by the opportunity import.
type CatalogKind string

const (
	CatalogTechnologies CatalogKind = "technologies"
	CatalogRequestTypes CatalogKind = "request_types"
	CatalogStatuses     CatalogKind = "statuses"
	CatalogCloseReasons CatalogKind = "close_reasons"
)

// CatalogKinds is the load order used when building a catalog snapshot.
var CatalogKinds = []CatalogKind{
	CatalogTechnologies,
	CatalogRequestTypes,
	CatalogStatuses,
	CatalogCloseReasons,
}

// AttachmentOwner identifies what an archived file belongs to.
type AttachmentOwner string

const (
	AttachmentOwnerVoucher AttachmentOwner = "voucher"
	AttachmentOwnerInvoice AttachmentOwner = "invoice"
)

// ExportFormat is the file format of a voucher export.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)
