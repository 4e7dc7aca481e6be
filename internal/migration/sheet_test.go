package migration_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"enertika/internal/migration"
)

func workbook(t *testing.T, rows map[string][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, values := range rows {
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadSheet(t *testing.T) {
	buf := workbook(t, map[string][]interface{}{
		"A1": {"Fecha_Solicitud", "cliente_nombre", "Motivo  Cancelacion"},
		"A2": {45672, "ACME", "Precio"},
		"A4": {"15/01/2025", "Beta", ""},
	})

	rows, err := migration.ReadSheet(buf)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "45672", rows[0].Get("fecha_solicitud"))
	assert.Equal(t, "ACME", rows[0].Get("CLIENTE_NOMBRE"))
	assert.Equal(t, "Precio", rows[0].Get("motivo cancelacion"))
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, "15/01/2025", rows[1].Get("fecha_solicitud"))
	assert.Equal(t, "", rows[1].Get("motivo cancelacion"))
	assert.Equal(t, "", rows[1].Get("missing column"))
}

func TestReadSheet_EmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = migration.ReadSheet(buf)
	assert.ErrorIs(t, err, migration.ErrEmptySheet)
}

func TestReadSheet_NotAWorkbook(t *testing.T) {
	_, err := migration.ReadSheet(bytes.NewReader([]byte("fecha,cliente\n")))
	assert.Error(t, err)
}
