package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"enertika/internal/domain"
	"enertika/internal/export"
	"enertika/internal/service"
)

// VoucherHandler handles payment voucher endpoints.
type VoucherHandler struct {
	voucherService service.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// uploadedFiles converts the multipart "files" field to service uploads.
func uploadedFiles(c *gin.Context) ([]service.UploadedFile, bool) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "files field is required")
		return nil, false
	}

	headers := form.File["files"]
	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, service.UploadedFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files, true
}

// Upload handles POST /api/v1/purchases/vouchers/upload
// @Summary Upload payment vouchers
// @Description Extract, deduplicate and store a batch of bank transfer PDFs
// @Tags vouchers
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Voucher PDFs (repeat the field per file)"
// @Param X-User-ID header string true "Acting user ID (UUID)"
// @Success 200 {object} Response{data=domain.BatchResult} "Per-file batch outcome"
// @Failure 400 {object} ErrorResponseBody "Missing files or batch too large"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers/upload [post]
func (h *VoucherHandler) Upload(c *gin.Context) {
	userID, ok := extractActor(c)
	if !ok {
		return
	}

	files, ok := uploadedFiles(c)
	if !ok {
		return
	}

	result, err := h.voucherService.ProcessBatch(c.Request.Context(), files, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// List handles GET /api/v1/purchases/vouchers
// @Summary List vouchers
// @Description List vouchers with date, status, zone, project and category filters
// @Tags vouchers
// @Produce json
// @Param date_from query string false "Payment date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Payment date upper bound (YYYY-MM-DD)"
// @Param status query string false "PENDING, INVOICED, ADVANCE or CANCELLED"
// @Param zone_id query int false "Purchase zone ID"
// @Param project_id query string false "Project ID (UUID)"
// @Param category_id query int false "Purchase category ID"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 500)" default(50)
// @Success 200 {object} Response{data=[]domain.VoucherView,meta=PagMeta} "List of vouchers"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers [get]
func (h *VoucherHandler) List(c *gin.Context) {
	filters, err := parseVoucherFilters(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	vouchers, total, err := h.voucherService.List(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vouchers, PagMeta{Total: total, Offset: filters.Offset, Limit: filters.Limit})
}

// Pending handles GET /api/v1/purchases/vouchers/pending
// @Summary List pending vouchers
// @Description Default view: every voucher still waiting for an invoice
// @Tags vouchers
// @Produce json
// @Success 200 {object} Response{data=[]domain.VoucherView} "Pending vouchers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers/pending [get]
func (h *VoucherHandler) Pending(c *gin.Context) {
	vouchers, err := h.voucherService.DefaultView(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vouchers)
}

// Search handles GET /api/v1/purchases/vouchers/search
// @Summary Search pending vouchers
// @Description Free-text search of pending vouchers by beneficiary or amount
// @Tags vouchers
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} Response{data=[]domain.VoucherView} "Matching vouchers"
// @Failure 400 {object} ErrorResponseBody "Missing query"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers/search [get]
func (h *VoucherHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "q is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	vouchers, err := h.voucherService.SearchPending(c.Request.Context(), q, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vouchers)
}

// Stats handles GET /api/v1/purchases/vouchers/stats
// @Summary Voucher statistics
// @Description Counts and per-currency totals for the filtered vouchers
// @Tags vouchers
// @Produce json
// @Param date_from query string false "Payment date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Payment date upper bound (YYYY-MM-DD)"
// @Param status query string false "Voucher status"
// @Success 200 {object} Response{data=domain.VoucherStats} "Voucher statistics"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers/stats [get]
func (h *VoucherHandler) Stats(c *gin.Context) {
	filters, err := parseVoucherFilters(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	stats, err := h.voucherService.Stats(c.Request.Context(), filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// Export handles GET /api/v1/purchases/vouchers/export
// @Summary Export vouchers
// @Description Download the filtered vouchers as an Excel workbook or CSV file
// @Tags vouchers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "xlsx or csv" default(xlsx)
// @Param date_from query string false "Payment date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Payment date upper bound (YYYY-MM-DD)"
// @Param status query string false "Voucher status"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Invalid filter or format"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers/export [get]
func (h *VoucherHandler) Export(c *gin.Context) {
	filters, err := parseVoucherFilters(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatXLSX))))

	var buf bytes.Buffer
	if err := h.voucherService.Export(c.Request.Context(), filters, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("vouchers", format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}

// GetByID handles GET /api/v1/purchases/vouchers/:id
// @Summary Get voucher by ID
// @Tags vouchers
// @Produce json
// @Param id path string true "Voucher ID (UUID)"
// @Success 200 {object} Response{data=domain.Voucher} "Voucher details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Voucher not found"
// @Router /purchases/vouchers/{id} [get]
func (h *VoucherHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	v, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, v)
}

// Update handles PATCH /api/v1/purchases/vouchers/:id
// @Summary Update a voucher
// @Description Partially update a voucher. Keys outside the editable set are ignored; null clears a column.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID (UUID)"
// @Param request body object true "Fields to update"
// @Success 200 {object} Response{data=domain.Voucher} "Updated voucher"
// @Failure 400 {object} ErrorResponseBody "Invalid field or value"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Voucher not found"
// @Router /purchases/vouchers/{id} [patch]
func (h *VoucherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	var fields map[string]interface{}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || len(fields) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "a JSON object of fields is required")
		return
	}

	v, err := h.voucherService.Update(c.Request.Context(), id, fields)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, v)
}

// BulkUpdate handles PATCH /api/v1/purchases/vouchers/bulk
// @Summary Bulk update vouchers
// @Description Apply the same field values to many vouchers. Null values are skipped.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body BulkUpdateRequest true "Voucher IDs and fields"
// @Success 200 {object} Response "Number of vouchers updated"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/vouchers/bulk [patch]
func (h *VoucherHandler) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil || len(req.IDs) == 0 || len(req.Fields) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "ids and fields are required")
		return
	}

	updated, err := h.voucherService.BulkUpdate(c.Request.Context(), req.IDs, req.Fields)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"updated": updated})
}

// Attachments handles GET /api/v1/purchases/vouchers/:id/attachments
// @Summary List voucher attachments
// @Description Archived files for a voucher with time-limited download URLs
// @Tags vouchers
// @Produce json
// @Param id path string true "Voucher ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Attachment} "Attachments"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Voucher not found"
// @Router /purchases/vouchers/{id}/attachments [get]
func (h *VoucherHandler) Attachments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	attachments, err := h.voucherService.Attachments(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, attachments)
}

// Catalogs handles GET /api/v1/purchases/catalogs
// @Summary Voucher form catalogs
// @Description Zones, categories, projects and buyers for voucher classification
// @Tags catalogs
// @Produce json
// @Success 200 {object} Response{data=domain.CatalogOptions} "Catalog options"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/catalogs [get]
func (h *VoucherHandler) Catalogs(c *gin.Context) {
	opts, err := h.voucherService.Catalogs(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, opts)
}

// Suppliers handles GET /api/v1/purchases/suppliers
// @Summary Search suppliers
// @Description Case-insensitive search by legal name, commercial name or RFC
// @Tags suppliers
// @Produce json
// @Param q query string false "Search term"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} Response{data=[]domain.Supplier} "Suppliers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /purchases/suppliers [get]
func (h *VoucherHandler) Suppliers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	suppliers, err := h.voucherService.SearchSuppliers(c.Request.Context(), strings.TrimSpace(c.Query("q")), limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, suppliers)
}
