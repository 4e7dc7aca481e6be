package storage_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"enertika/internal/storage"
)

func TestVoucherKey(t *testing.T) {
	id := uuid.MustParse("0b6e3b0e-4a59-4a3f-9a2b-7f1c2d3e4f50")

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain", "pago.pdf", "vouchers/0b6e3b0e-4a59-4a3f-9a2b-7f1c2d3e4f50/pago.pdf"},
		{"unix path stripped", "../../etc/pago.pdf", "vouchers/0b6e3b0e-4a59-4a3f-9a2b-7f1c2d3e4f50/pago.pdf"},
		{"windows path stripped", `C:\Users\ana\pago.pdf`, "vouchers/0b6e3b0e-4a59-4a3f-9a2b-7f1c2d3e4f50/pago.pdf"},
		{"empty", "", "vouchers/0b6e3b0e-4a59-4a3f-9a2b-7f1c2d3e4f50/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.VoucherKey(id, tt.filename))
		})
	}
}

func TestInvoiceKey(t *testing.T) {
	issued := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	key := storage.InvoiceKey("ad662d33-6934-459c-a128-bdf0393e0f44", issued)
	assert.Equal(t, "invoices/2025-03/AD662D33-6934-459C-A128-BDF0393E0F44.xml", key)
}

func TestInvoiceKey_ZeroDateUsesCurrentMonth(t *testing.T) {
	key := storage.InvoiceKey("abc", time.Time{})
	assert.True(t, strings.HasPrefix(key, "invoices/"+time.Now().Format("2006-01")+"/"))
}
