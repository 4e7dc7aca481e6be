package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"enertika/internal/domain"
	"enertika/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{domain.ErrVoucherNotFound, http.StatusNotFound, "VOUCHER_NOT_FOUND"},
		{fmt.Errorf("voucherRepo.GetByID: %w", domain.ErrVoucherNotFound), http.StatusNotFound, "VOUCHER_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrEmptyBatch, http.StatusBadRequest, "EMPTY_BATCH"},
		{domain.ErrInvoiceAlreadyMatched, http.StatusConflict, "INVOICE_ALREADY_MATCHED"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantErr, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantCode, status)
			assert.Equal(t, tt.wantErr, code)
		})
	}
}

func TestMapDomainError_FieldMessageIsPreserved(t *testing.T) {
	err := fmt.Errorf("%w: payment_date", domain.ErrFieldNotUpdatable)
	_, _, msg := handler.MapDomainError(err)
	assert.Equal(t, err.Error(), msg)
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/x", http.NoBody)

	handler.HandleError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	h = handler.NewHealthHandler(stubPinger{err: errors.New("down")})
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
