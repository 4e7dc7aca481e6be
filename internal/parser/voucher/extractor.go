// Package voucher extracts payment data from bank transfer receipts (BBVA template).
package voucher

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"enertika/internal/domain"
	"enertika/internal/logger"
)

// Extraction failure reasons reported on VoucherRecord.ExtractionError.
const (
	ReasonNoPages            = "PDF has no pages"
	ReasonNoText             = "could not extract text from PDF"
	ReasonMissingDate        = "payment date not found"
	ReasonMissingAmount      = "amount not found"
	ReasonMissingBeneficiary = "beneficiary not found"
)

var (
	errNoPages = errors.New(ReasonNoPages)
	errNoText  = errors.New(ReasonNoText)

	dateRe   = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	amountRe = regexp.MustCompile(`Importe.*?\$?\s*([\d,]+\.\d{2})`)

	usdMarkers = []string{"USD", "Dólares", "DOLARES", "Dollars", "Divisa: USD"}
)

// Extractor turns voucher PDFs into VoucherRecords. It never returns an error:
// every failure is reported on the record itself.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{log: logger.WithComponent("voucher_extractor")}
}

// Extract reads the first page of a PDF and extracts the voucher fields.
func (e *Extractor) Extract(content []byte, filename string) (rec *domain.VoucherRecord) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Str("file", filename).Interface("panic", r).Msg("pdf extraction panicked")
			rec = &domain.VoucherRecord{
				Filename:        filename,
				Currency:        domain.CurrencyMXN,
				ExtractionError: fmt.Sprintf("processing error: %v", r),
			}
		}
	}()

	text, err := firstPageText(content)
	if err != nil {
		rec = &domain.VoucherRecord{Filename: filename, Currency: domain.CurrencyMXN}
		switch {
		case errors.Is(err, errNoPages), errors.Is(err, errNoText):
			rec.ExtractionError = err.Error()
		default:
			e.log.Warn().Err(err).Str("file", filename).Msg("could not read pdf")
			rec.ExtractionError = fmt.Sprintf("processing error: %v", err)
		}
		return rec
	}
	return e.ExtractText(text, filename)
}

// ExtractText applies the field heuristics to already extracted page text.
func (e *Extractor) ExtractText(text, filename string) *domain.VoucherRecord {
	rec := &domain.VoucherRecord{Filename: filename, Currency: domain.CurrencyMXN}

	if m := dateRe.FindStringSubmatch(text); m != nil {
		d, err := time.Parse("02/01/2006", m[1])
		if err != nil {
			e.log.Warn().Str("file", filename).Str("date", m[1]).Msg("invalid payment date")
		} else {
			rec.PaymentDate = &d
		}
	}

	if m := amountRe.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			e.log.Warn().Str("file", filename).Str("amount", raw).Msg("invalid amount")
		} else if !amount.IsZero() {
			rec.Amount = &amount
		}
	}

	for _, marker := range usdMarkers {
		if strings.Contains(text, marker) {
			rec.Currency = domain.CurrencyUSD
			break
		}
	}

	rec.Beneficiary = findBeneficiary(text)

	switch {
	case rec.PaymentDate == nil:
		rec.ExtractionError = ReasonMissingDate
	case rec.Amount == nil:
		rec.ExtractionError = ReasonMissingAmount
	case rec.Beneficiary == "":
		rec.ExtractionError = ReasonMissingBeneficiary
	}
	return rec
}

func firstPageText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}
	if r.NumPage() < 1 {
		return "", errNoPages
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", errNoText
	}
	lines := groupLines(page.Content().Text)

	var b strings.Builder
	for _, line := range lines {
		text := lineText(line)
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errNoText
	}
	return b.String(), nil
}

// groupLines buckets glyphs by baseline, top of the page first. Glyphs keep
// their drawing order within a line so zero-width fonts still read correctly.
func groupLines(glyphs []pdf.Text) [][]pdf.Text {
	byY := make(map[float64][]pdf.Text)
	var keys []float64
	for _, g := range glyphs {
		if g.S == "\n" {
			continue
		}
		y := math.Round(g.Y)
		if _, ok := byY[y]; !ok {
			keys = append(keys, y)
		}
		byY[y] = append(byY[y], g)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(keys)))

	lines := make([][]pdf.Text, 0, len(keys))
	for _, y := range keys {
		lines = append(lines, byY[y])
	}
	return lines
}

// lineText joins the glyphs of one line, inserting a space where the
// horizontal gap between glyphs is wider than a fraction of the font size.
func lineText(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var b strings.Builder
	prevEnd := 0.0
	for i, g := range glyphs {
		if i > 0 && g.X-prevEnd > g.FontSize*0.2 && !strings.HasPrefix(g.S, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prevEnd = g.X + g.W
	}
	return b.String()
}
