package postgres

import (
	"fmt"
	"sort"
	"strings"

	"enertika/internal/domain"
)

// voucherUpdatableColumns is the set of columns a caller may change through
// Update and BulkUpdate. Keys never reach SQL unless they appear here.
var voucherUpdatableColumns = map[string]bool{
	"zone_id":     true,
	"project_id":  true,
	"category_id": true,
	"status":      true,
	"supplier_id": true,
}

// buildVoucherWhere constructs the WHERE clause for voucher listings.
// Column names are fixed; every value is bound as a positional argument
// starting at argN.
func buildVoucherWhere(filters *domain.VoucherFilters, argN int) (clause string, args []interface{}, next int) {
	clause = "WHERE 1=1"

	if filters.DateFrom != nil {
		clause += fmt.Sprintf(" AND v.payment_date >= $%d", argN)
		args = append(args, *filters.DateFrom)
		argN++
	}
	if filters.DateTo != nil {
		clause += fmt.Sprintf(" AND v.payment_date <= $%d", argN)
		args = append(args, *filters.DateTo)
		argN++
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND v.status = $%d", argN)
		args = append(args, filters.Status)
		argN++
	}
	if filters.ZoneID != nil {
		clause += fmt.Sprintf(" AND v.zone_id = $%d", argN)
		args = append(args, *filters.ZoneID)
		argN++
	}
	if filters.ProjectID != nil {
		clause += fmt.Sprintf(" AND v.project_id = $%d", argN)
		args = append(args, *filters.ProjectID)
		argN++
	}
	if filters.CategoryID != nil {
		clause += fmt.Sprintf(" AND v.category_id = $%d", argN)
		args = append(args, *filters.CategoryID)
		argN++
	}

	return clause, args, argN
}

// buildVoucherSet constructs the SET list for a voucher update. Keys are
// emitted in sorted order so the generated SQL is deterministic. An unknown
// key fails the whole update.
func buildVoucherSet(fields map[string]interface{}, argN int) (clause string, args []interface{}, next int, err error) {
	if len(fields) == 0 {
		return "", nil, argN, domain.ErrNoUpdatableFields
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !voucherUpdatableColumns[k] {
			return "", nil, argN, fmt.Errorf("%w: %s", domain.ErrFieldNotUpdatable, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s = $%d", k, argN))
		args = append(args, fields[k])
		argN++
	}
	parts = append(parts, "updated_at = NOW()")

	return strings.Join(parts, ", "), args, argN, nil
}
