package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"enertika/internal/domain"
	"enertika/internal/handler"
	"enertika/internal/service"
	"enertika/mocks"
)

const invoiceUUID = "ABCDEF12-3456-7890-ABCD-EF1234567890"

func TestInvoiceHandler_Upload(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	userID := uuid.New()

	result := domain.NewInvoiceBatchResult()
	result.Processed = append(result.Processed, domain.InvoiceMatch{Filename: "factura.xml"})
	mockSvc.On("ProcessBatch", mock.Anything, mock.MatchedBy(func(files []service.UploadedFile) bool {
		return len(files) == 1 && files[0].Filename == "factura.xml"
	}), userID).Return(result, nil)

	body, contentType := multipartBody(t, map[string]string{"factura.xml": "<cfdi:Comprobante/>"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/purchases/invoices/upload", body)
	c.Request.Header.Set("Content-Type", contentType)
	setActor(c, userID)

	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "factura.xml")
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Upload_NoActor(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)

	body, contentType := multipartBody(t, map[string]string{"factura.xml": "<x/>"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/purchases/invoices/upload", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Upload(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Confirm(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	userID := uuid.New()
	voucherID := uuid.New()

	confirmation := &domain.MatchConfirmation{
		InvoiceUUID:    invoiceUUID,
		VoucherID:      voucherID,
		Kind:           domain.DocumentKindNormal,
		MaterialsSaved: 2,
	}
	mockSvc.On("ConfirmMatch", mock.Anything, invoiceUUID, voucherID, userID, true).Return(confirmation, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/purchases/invoices/x/confirm",
		strings.NewReader(`{"voucher_id":"`+voucherID.String()+`","save_relation":true}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "uuid", Value: strings.ToLower(invoiceUUID)}}
	setActor(c, userID)

	h.Confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 2, data["materials_saved"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Confirm_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
		wantErr  string
	}{
		{"missing voucher id", `{}`, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown invoice", `{"voucher_id":"` + uuid.NewString() + `"}`, domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{"already matched", `{"voucher_id":"` + uuid.NewString() + `"}`, domain.ErrInvoiceAlreadyMatched, http.StatusConflict, "INVOICE_ALREADY_MATCHED"},
		{"voucher not pending", `{"voucher_id":"` + uuid.NewString() + `"}`, domain.ErrVoucherNotPending, http.StatusConflict, "VOUCHER_NOT_PENDING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockInvoiceService)
			h := handler.NewInvoiceHandler(mockSvc)
			if tt.svcErr != nil {
				mockSvc.On("ConfirmMatch", mock.Anything, invoiceUUID, mock.Anything, mock.Anything, false).
					Return(nil, tt.svcErr)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/purchases/invoices/x/confirm", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Params = gin.Params{{Key: "uuid", Value: invoiceUUID}}
			setActor(c, uuid.New())

			h.Confirm(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decodeResponse(t, w).Error.Code)
		})
	}
}
