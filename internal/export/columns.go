// Package export renders voucher listings as CSV or XLSX files.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"enertika/internal/domain"
)

// columns defines the header row shared by every export format.
var columns = []string{
	"Buyer",
	"Supplier",
	"Project",
	"Zone",
	"Payment Date",
	"Status",
	"Amount",
	"Currency",
	"Category",
	"Invoice UUID",
}

const (
	colAmount   = 6
	dateDisplay = "02/01/2006"
)

// voucherToRow converts a voucher to its display cells. The supplier column
// falls back to the beneficiary printed on the voucher.
func voucherToRow(v *domain.VoucherView) []string {
	row := make([]string, len(columns))
	row[0] = deref(v.BuyerName)
	row[1] = deref(v.SupplierName)
	if row[1] == "" {
		row[1] = v.Beneficiary
	}
	row[2] = deref(v.ProjectName)
	row[3] = deref(v.ZoneName)
	row[4] = v.PaymentDate.Format(dateDisplay)
	row[5] = string(v.Status)
	row[colAmount] = v.Amount.StringFixed(2)
	row[7] = string(v.Currency)
	row[8] = deref(v.CategoryName)
	row[9] = deref(v.InvoiceUUID)
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{format}.
func BuildFilename(name string, format domain.ExportFormat) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), format)
}

// ContentType returns the MIME type served for format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
