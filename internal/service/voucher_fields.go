package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"enertika/internal/domain"
)

type fieldKind int

const (
	fieldInt fieldKind = iota
	fieldUUID
	fieldStatus
)

// singleUpdateFields are the voucher columns editable one voucher at a time.
var singleUpdateFields = map[string]fieldKind{
	"zone_id":     fieldInt,
	"project_id":  fieldUUID,
	"category_id": fieldInt,
	"status":      fieldStatus,
	"supplier_id": fieldUUID,
}

// bulkUpdateFields are the voucher columns editable across a selection.
var bulkUpdateFields = map[string]fieldKind{
	"zone_id":     fieldInt,
	"project_id":  fieldUUID,
	"category_id": fieldInt,
	"status":      fieldStatus,
}

// coerceVoucherFields keeps the allowed keys of raw and converts their values
// to column types. Unknown keys are dropped. A null or empty value becomes a
// NULL assignment when clearNulls is set and is skipped otherwise; status is
// never cleared.
func coerceVoucherFields(raw map[string]interface{}, allowed map[string]fieldKind, clearNulls bool) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		kind, ok := allowed[key]
		if !ok {
			continue
		}
		if isBlank(value) {
			if clearNulls && kind != fieldStatus {
				out[key] = nil
			}
			continue
		}

		var (
			converted interface{}
			err       error
		)
		switch kind {
		case fieldInt:
			converted, err = toInt64(value)
		case fieldUUID:
			converted, err = toUUID(value)
		case fieldStatus:
			converted, err = toStatus(value)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = converted
	}

	if len(out) == 0 {
		return nil, domain.ErrNoUpdatableFields
	}
	return out, nil
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, domain.ErrInvalidFieldValue
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, domain.ErrInvalidFieldValue
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, domain.ErrInvalidFieldValue
		}
		return i, nil
	default:
		return 0, domain.ErrInvalidFieldValue
	}
}

func toUUID(v interface{}) (uuid.UUID, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(u))
		if err != nil {
			return uuid.Nil, domain.ErrInvalidFieldValue
		}
		return id, nil
	default:
		return uuid.Nil, domain.ErrInvalidFieldValue
	}
}

func toStatus(v interface{}) (string, error) {
	var s string
	switch st := v.(type) {
	case domain.VoucherStatus:
		s = string(st)
	case string:
		s = st
	default:
		return "", domain.ErrInvalidStatus
	}
	status := domain.VoucherStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !domain.ValidVoucherStatuses[status] {
		return "", domain.ErrInvalidStatus
	}
	return string(status), nil
}
