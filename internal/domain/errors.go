package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile           = errors.New("file is empty")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrEmptyBatch          = errors.New("no files provided")
	ErrTooManyFiles        = errors.New("too many files in batch")

	ErrVoucherNotFound   = errors.New("voucher not found")
	ErrVoucherNotPending = errors.New("voucher is not pending")
	ErrNoUpdatableFields = errors.New("no updatable fields provided")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrInvalidStatus     = errors.New("invalid voucher status")
	ErrFieldNotUpdatable = errors.New("field cannot be updated")
	ErrInvalidFieldValue = errors.New("invalid field value")

	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceAlreadyMatched = errors.New("invoice is already linked to a voucher")
	ErrSupplierNotFound      = errors.New("supplier not found")

	ErrUnknownCatalog       = errors.New("unknown catalog")
	ErrUnsupportedExport    = errors.New("unsupported export format")
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
)
