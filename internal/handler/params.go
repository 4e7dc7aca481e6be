package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"enertika/internal/domain"
)

const (
	queryDateLayout   = "2006-01-02"
	defaultQueryLimit = 50
	maxQueryLimit     = 500
)

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > maxQueryLimit {
		limit = defaultQueryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseVoucherFilters reads the listing, stats and export filters from the
// query string.
func parseVoucherFilters(c *gin.Context) (domain.VoucherFilters, error) {
	var f domain.VoucherFilters
	f.Offset, f.Limit = parsePagination(c)

	var err error
	if f.DateFrom, err = queryDate(c, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryDate(c, "date_to"); err != nil {
		return f, err
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		f.Status = domain.VoucherStatus(strings.ToUpper(raw))
	}
	if f.ZoneID, err = queryInt64(c, "zone_id"); err != nil {
		return f, err
	}
	if f.CategoryID, err = queryInt64(c, "category_id"); err != nil {
		return f, err
	}
	if raw := c.Query("project_id"); raw != "" {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return f, fmt.Errorf("%w: project_id", domain.ErrInvalidFilter)
		}
		f.ProjectID = &id
	}
	return f, nil
}

func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFilter, key)
	}
	return &t, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFilter, key)
	}
	return &n, nil
}
