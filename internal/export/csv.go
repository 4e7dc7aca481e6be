package export

import (
	"encoding/csv"
	"io"

	"enertika/internal/domain"
)

// BOM lets Excel on Windows detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting vouchers as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteVouchers converts a batch of vouchers to CSV rows and writes them.
func (w *Writer) WriteVouchers(vouchers []domain.VoucherView) error {
	for i := range vouchers {
		if err := w.csv.Write(voucherToRow(&vouchers[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, header and rows to out.
func WriteCSV(out io.Writer, vouchers []domain.VoucherView) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteVouchers(vouchers); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
