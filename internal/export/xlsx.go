package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"enertika/internal/domain"
)

const sheetName = "Vouchers"

var amountFormat = "#,##0.00"

// WriteXLSX renders vouchers as a single-sheet workbook with a styled,
// frozen header row and a numeric amount column.
func WriteXLSX(out io.Writer, vouchers []domain.VoucherView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range vouchers {
		v := &vouchers[i]
		cells := voucherToRow(v)
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		row[colAmount] = v.Amount.InexactFloat64()

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if len(vouchers) > 0 {
		amountCol, _ := excelize.ColumnNumberToName(colAmount + 1)
		first := fmt.Sprintf("%s2", amountCol)
		last := fmt.Sprintf("%s%d", amountCol, len(vouchers)+1)
		if err := f.SetCellStyle(sheetName, first, last, amountStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", lastCol, 20); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	return f.Write(out)
}

// Write renders vouchers in the requested format.
func Write(out io.Writer, format domain.ExportFormat, vouchers []domain.VoucherView) error {
	switch format {
	case domain.ExportFormatXLSX:
		return WriteXLSX(out, vouchers)
	case domain.ExportFormatCSV:
		return WriteCSV(out, vouchers)
	default:
		return domain.ErrUnsupportedExport
	}
}
