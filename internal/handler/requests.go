package handler

import "github.com/google/uuid"

// BulkUpdateRequest is the body of PATCH /vouchers/bulk.
type BulkUpdateRequest struct {
	IDs    []uuid.UUID            `json:"ids" binding:"required"`
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// ConfirmMatchRequest is the body of POST /invoices/:uuid/confirm.
type ConfirmMatchRequest struct {
	VoucherID    uuid.UUID `json:"voucher_id" binding:"required"`
	SaveRelation bool      `json:"save_relation"`
}

// SetActiveRequest is the body of PATCH /catalogs/:kind/:id/active.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
