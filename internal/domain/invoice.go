package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one concept line of a tax invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Unit        string          `json:"unit,omitempty"`
	ProductKey  string          `json:"product_key,omitempty"`
	UnitKey     string          `json:"unit_key,omitempty"`
}

// RelatedDocument references another tax invoice by UUID.
type RelatedDocument struct {
	UUID                string `json:"uuid"`
	RelationType        string `json:"relation_type"`
	RelationDescription string `json:"relation_description"`
}

// InvoiceRecord is the structured result of parsing one CFDI XML document.
type InvoiceRecord struct {
	UUID             string            `json:"uuid"`
	Series           string            `json:"series,omitempty"`
	Folio            string            `json:"folio,omitempty"`
	IssueDate        string            `json:"issue_date,omitempty"`
	ReceiptType      string            `json:"receipt_type,omitempty"`
	IssuerRFC        string            `json:"issuer_rfc"`
	IssuerName       string            `json:"issuer_name"`
	IssuerRegime     string            `json:"issuer_regime,omitempty"`
	ReceiverRFC      string            `json:"receiver_rfc,omitempty"`
	ReceiverName     string            `json:"receiver_name,omitempty"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	Total            decimal.Decimal   `json:"total"`
	Currency         Currency          `json:"currency"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	PaymentForm      string            `json:"payment_form,omitempty"`
	LineItems        []LineItem        `json:"line_items"`
	RelatedDocuments []RelatedDocument `json:"related_documents"`
	Kind             DocumentKind      `json:"kind"`
}

// IssueDay returns the calendar date of issue, reporting false when it cannot be parsed.
func (r *InvoiceRecord) IssueDay() (time.Time, bool) {
	if len(r.IssueDate) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", r.IssueDate[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Invoice is a persisted tax invoice keyed by its UUID.
type Invoice struct {
	UUID       string          `db:"uuid" json:"uuid"`
	SupplierID uuid.UUID       `db:"supplier_id" json:"supplier_id"`
	IssuerRFC  string          `db:"issuer_rfc" json:"issuer_rfc"`
	IssuerName string          `db:"issuer_name" json:"issuer_name"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Currency   Currency        `db:"currency" json:"currency"`
	Kind       DocumentKind    `db:"kind" json:"kind"`
	IssueDate  string          `db:"issue_date" json:"issue_date"`
	SourceFile string          `db:"source_file" json:"source_file"`
	UploadedBy uuid.UUID       `db:"uploaded_by" json:"uploaded_by"`
	Payload    json.RawMessage `db:"payload" json:"-"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Record decodes the full parsed document stored with the invoice.
func (i *Invoice) Record() (*InvoiceRecord, error) {
	var rec InvoiceRecord
	if err := json.Unmarshal(i.Payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// MaterialEntry is one line item written to the purchased-materials history.
type MaterialEntry struct {
	InvoiceUUID string          `db:"invoice_uuid"`
	SupplierID  uuid.UUID       `db:"supplier_id"`
	LineNumber  int             `db:"line_number"`
	PurchasedOn time.Time       `db:"purchased_on"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
	Unit        string          `db:"unit"`
	ProductKey  string          `db:"product_key"`
	UnitKey     string          `db:"unit_key"`
	Currency    Currency        `db:"currency"`
}

// MatchCandidate is a pending voucher proposed for an invoice.
type MatchCandidate struct {
	VoucherID   uuid.UUID       `db:"id" json:"voucher_id"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	Beneficiary string          `db:"beneficiary" json:"beneficiary"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Currency    Currency        `db:"currency" json:"currency"`
}

// InvoiceMatch is the per-file outcome of an invoice upload.
type InvoiceMatch struct {
	Filename      string           `json:"filename"`
	UUID          string           `json:"uuid"`
	IssuerRFC     string           `json:"issuer_rfc"`
	IssuerName    string           `json:"issuer_name"`
	SupplierID    uuid.UUID        `json:"supplier_id"`
	Total         decimal.Decimal  `json:"total"`
	Currency      Currency         `json:"currency"`
	IssueDate     string           `json:"issue_date,omitempty"`
	Kind          DocumentKind     `json:"kind"`
	LineItemCount int              `json:"line_item_count"`
	MatchType     MatchType        `json:"match_type"`
	VoucherID     *uuid.UUID       `json:"voucher_id,omitempty"`
	Candidates    []MatchCandidate `json:"candidates,omitempty"`
}

// MatchConfirmation summarises a confirmed invoice-to-voucher link.
type MatchConfirmation struct {
	InvoiceUUID    string       `json:"invoice_uuid"`
	VoucherID      uuid.UUID    `json:"voucher_id"`
	SupplierID     uuid.UUID    `json:"supplier_id"`
	Kind           DocumentKind `json:"kind"`
	MaterialsSaved int          `json:"materials_saved"`
	RelatedSaved   int          `json:"related_saved"`
}
