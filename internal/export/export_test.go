package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"enertika/internal/domain"
	"enertika/internal/export"
)

func strPtr(s string) *string { return &s }

func sampleVoucher() domain.VoucherView {
	return domain.VoucherView{
		Voucher: domain.Voucher{
			ID:          uuid.New(),
			PaymentDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Beneficiary: "ACME SA DE CV",
			Amount:      decimal.RequireFromString("12345.6"),
			Currency:    domain.CurrencyMXN,
			Status:      domain.VoucherStatusInvoiced,
			InvoiceUUID: strPtr("AD662D33-6934-459C-A128-BDF0393E0F44"),
		},
		BuyerName:    strPtr("Ana Pérez"),
		SupplierName: strPtr("Acme Industrial"),
		ProjectName:  strPtr("Planta Solar Norte"),
		ZoneName:     strPtr("Bajío"),
		CategoryName: strPtr("Materiales"),
	}
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, export.BOM), "missing BOM")
	rows, err := csv.NewReader(bytes.NewReader(raw[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV_HeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []domain.VoucherView{sampleVoucher()}))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"Buyer", "Supplier", "Project", "Zone", "Payment Date",
		"Status", "Amount", "Currency", "Category", "Invoice UUID",
	}, rows[0])
	assert.Equal(t, []string{
		"Ana Pérez", "Acme Industrial", "Planta Solar Norte", "Bajío", "15/01/2025",
		"INVOICED", "12345.60", "MXN", "Materiales", "AD662D33-6934-459C-A128-BDF0393E0F44",
	}, rows[1])
}

func TestWriteCSV_SupplierFallsBackToBeneficiary(t *testing.T) {
	v := sampleVoucher()
	v.SupplierName = nil
	v.InvoiceUUID = nil
	v.ZoneName = nil

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []domain.VoucherView{v}))

	rows := readCSV(t, &buf)
	assert.Equal(t, "ACME SA DE CV", rows[1][1])
	assert.Empty(t, rows[1][3])
	assert.Empty(t, rows[1][9])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))

	rows := readCSV(t, &buf)
	assert.Len(t, rows, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, []domain.VoucherView{sampleVoucher(), sampleVoucher()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Vouchers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Buyer", rows[0][0])
	assert.Equal(t, "Invoice UUID", rows[0][9])
	assert.Equal(t, "Acme Industrial", rows[1][1])

	raw, err := f.GetCellValue("Vouchers", "G2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "12345.6", raw)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := export.Write(&buf, domain.ExportFormat("pdf"), nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedExport)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Vouchers Enero", "Vouchers_Enero"},
		{"special chars", "Compras / Q1 (Ene–Mar)", "Compras_Q1_Ene_Mar"},
		{"hyphens and underscores preserved", "vouchers-2025_q1", "vouchers-2025_q1"},
		{"consecutive underscores collapsed", "a___b", "a_b"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, export.SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "vouchers_"+today+".xlsx", export.BuildFilename("vouchers", domain.ExportFormatXLSX))
	assert.Equal(t, "vouchers_"+today+".csv", export.BuildFilename("vouchers", domain.ExportFormatCSV))
}

func TestContentType(t *testing.T) {
	assert.Contains(t, export.ContentType(domain.ExportFormatXLSX), "spreadsheetml")
	assert.Contains(t, export.ContentType(domain.ExportFormatCSV), "text/csv")
}
