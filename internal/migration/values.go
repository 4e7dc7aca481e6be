package migration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"

	"enertika/internal/domain"
	"enertika/internal/textnorm"
)

// Day-first layouts accepted for text dates.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseDate reads a raw cell as an Excel serial or a day-first text date and
// places the wall clock in loc. Blank or unparseable input returns nil.
func parseDate(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
		return &local
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t
		}
	}
	return nil
}

// parseBool accepts the spreadsheet spellings of true; anything else is false.
func parseBool(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE", "SI", "SÍ", "1", "YES", "VERDADERO":
		return true
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return n != 0
	}
	return false
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// cleanClientName removes dots and commas, collapses spaces and upper-cases.
func cleanClientName(name string) string {
	name = strings.NewReplacer(".", "", ",", "").Replace(name)
	return strings.ToUpper(textnorm.CollapseSpaces(name))
}

// buildOpID formats OP-YYMMDD-<first 8 alphanumerics of client>-NNN.
func buildOpID(requested time.Time, client string, seq int) string {
	var short []rune
	for _, r := range strings.ToUpper(client) {
		if len(short) == 8 {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			short = append(short, r)
		}
	}
	return fmt.Sprintf("OP-%s-%s-%03d", requested.Format("060102"), string(short), seq)
}

// buildTitle formats "[<request type, 15 chars>] client - project".
func buildTitle(client, project, requestType string) string {
	kind := []rune(strings.ToUpper(requestType))
	if len(kind) > 15 {
		kind = kind[:15]
	}
	return fmt.Sprintf("[%s] %s - %s", string(kind), client, project)
}

// computeKPIs grades a delivery against the internal deadline and against
// the negotiated deadline, falling back to the internal one. Both are nil
// without a delivery date and an internal deadline.
func computeKPIs(delivered, computed, negotiated *time.Time) (internal, commitment *string) {
	if delivered == nil || computed == nil {
		return nil, nil
	}
	grade := func(deadline time.Time) *string {
		kpi := domain.KPILate
		if !delivered.After(deadline) {
			kpi = domain.KPIOnTime
		}
		return &kpi
	}
	commit := computed
	if negotiated != nil {
		commit = negotiated
	}
	return grade(*computed), grade(*commit)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
