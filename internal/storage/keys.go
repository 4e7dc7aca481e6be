// Package storage holds the object key layout for archived originals.
package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VoucherKey returns the archive key for a voucher PDF.
func VoucherKey(voucherID uuid.UUID, filename string) string {
	return fmt.Sprintf("vouchers/%s/%s", voucherID, baseName(filename))
}

// InvoiceKey returns the archive key for a CFDI XML, partitioned by issue month.
// A zero issued time falls back to now.
func InvoiceKey(invoiceUUID string, issued time.Time) string {
	if issued.IsZero() {
		issued = time.Now()
	}
	return fmt.Sprintf("invoices/%s/%s.xml", issued.Format("2006-01"), strings.ToUpper(invoiceUUID))
}

// baseName strips any client-supplied directory components.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return "file"
	}
	return name
}
