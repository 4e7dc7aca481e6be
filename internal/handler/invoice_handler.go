package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"enertika/internal/service"
)

// InvoiceHandler handles CFDI invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Upload handles POST /api/v1/purchases/invoices/upload
// @Summary Upload CFDI invoices
// @Description Parse, classify and store CFDI XML files and search a matching pending voucher for each
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "CFDI XML files (repeat the field per file)"
// @Param X-User-ID header string true "Acting user ID (UUID)"
// @Success 200 {object} Response{data=domain.InvoiceBatchResult} "Per-file outcome with match proposals"
// @Failure 400 {object} ErrorResponseBody "Missing files or batch too large"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/invoices/upload [post]
func (h *InvoiceHandler) Upload(c *gin.Context) {
	userID, ok := extractActor(c)
	if !ok {
		return
	}

	files, ok := uploadedFiles(c)
	if !ok {
		return
	}

	result, err := h.invoiceService.ProcessBatch(c.Request.Context(), files, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Confirm handles POST /api/v1/purchases/invoices/:uuid/confirm
// @Summary Confirm an invoice match
// @Description Link a stored invoice to a pending voucher and record its materials
// @Tags invoices
// @Accept json
// @Produce json
// @Param uuid path string true "CFDI fiscal UUID"
// @Param X-User-ID header string true "Acting user ID (UUID)"
// @Param request body ConfirmMatchRequest true "Voucher to link"
// @Success 200 {object} Response{data=domain.MatchConfirmation} "Match confirmed"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice or voucher not found"
// @Failure 409 {object} ErrorResponseBody "Invoice already matched or voucher not pending"
// @Router /purchases/invoices/{uuid}/confirm [post]
func (h *InvoiceHandler) Confirm(c *gin.Context) {
	userID, ok := extractActor(c)
	if !ok {
		return
	}

	invoiceUUID := strings.ToUpper(strings.TrimSpace(c.Param("uuid")))
	if invoiceUUID == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice UUID")
		return
	}

	var req ConfirmMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "voucher_id is required")
		return
	}

	confirmation, err := h.invoiceService.ConfirmMatch(c.Request.Context(), invoiceUUID, req.VoucherID, userID, req.SaveRelation)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, confirmation)
}
