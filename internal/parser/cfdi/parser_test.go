package cfdi_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enertika/internal/domain"
	"enertika/internal/parser/cfdi"
)

const stampedUUID = "6f3c2a1b-9d8e-4c7b-a6f5-1e2d3c4b5a69"

func buildCFDI(conceptos, relacionados, complemento string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
  Version="4.0" Serie="A" Folio="1024" Fecha="2024-05-20T10:15:00" SubTotal="10000.00" Total="11600.00"
  Moneda="MXN" MetodoPago="PUE" FormaPago="03" TipoDeComprobante="I">
  %s
  <cfdi:Emisor Rfc="pso120101ab1" Nombre="PANELES SOLARES DEL NORTE" RegimenFiscal="601"/>
  <cfdi:Receptor Rfc="ENE150101XY2" Nombre="ENERTIKA"/>
  <cfdi:Conceptos>%s</cfdi:Conceptos>
  <cfdi:Complemento>%s</cfdi:Complemento>
</cfdi:Comprobante>`, relacionados, conceptos, complemento))
}

const (
	panelConcept = `<cfdi:Concepto ClaveProdServ="26111600" Cantidad="20" ClaveUnidad="H87" Unidad="Pieza"
      Descripcion="Panel solar 550W" ValorUnitario="500.00" Importe="10000.00"/>`
	stamp = `<tfd:TimbreFiscalDigital Version="1.1" UUID="` + stampedUUID + `" FechaTimbrado="2024-05-20T10:20:00"/>`
)

func TestParse_FullDocument(t *testing.T) {
	content := buildCFDI(panelConcept+`<cfdi:Concepto ClaveProdServ="72151500" Descripcion="" Importe="1.00"/>`, "", stamp)

	rec, err := cfdi.NewParser(0).Parse(content, "factura.xml")
	require.NoError(t, err)

	assert.Equal(t, strings.ToUpper(stampedUUID), rec.UUID)
	assert.Equal(t, "PSO120101AB1", rec.IssuerRFC)
	assert.Equal(t, "PANELES SOLARES DEL NORTE", rec.IssuerName)
	assert.Equal(t, "601", rec.IssuerRegime)
	assert.Equal(t, "ENE150101XY2", rec.ReceiverRFC)
	assert.Equal(t, "2024-05-20T10:15:00", rec.IssueDate)
	assert.Equal(t, "I", rec.ReceiptType)
	assert.Equal(t, domain.CurrencyMXN, rec.Currency)
	assert.True(t, decimal.RequireFromString("11600.00").Equal(rec.Total))
	assert.True(t, decimal.RequireFromString("10000").Equal(rec.Subtotal))
	assert.Equal(t, domain.DocumentKindNormal, rec.Kind)

	require.Len(t, rec.LineItems, 1, "items without description are skipped")
	item := rec.LineItems[0]
	assert.Equal(t, "Panel solar 550W", item.Description)
	assert.True(t, decimal.NewFromInt(20).Equal(item.Quantity))
	assert.True(t, decimal.RequireFromString("500").Equal(item.UnitPrice))
	assert.Equal(t, "26111600", item.ProductKey)
	assert.Equal(t, "H87", item.UnitKey)
	assert.Empty(t, rec.RelatedDocuments)

	day, ok := rec.IssueDay()
	require.True(t, ok)
	assert.Equal(t, 20, day.Day())
}

func TestParse_UUIDStoredInCanonicalForm(t *testing.T) {
	want := strings.ToUpper(stampedUUID)
	tests := []struct {
		name string
		raw  string
	}{
		{"urn prefix", "urn:uuid:" + stampedUUID},
		{"braced", "{" + stampedUUID + "}"},
		{"no hyphens", strings.ReplaceAll(stampedUUID, "-", "")},
		{"lowercase", stampedUUID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := buildCFDI(panelConcept, "", strings.Replace(stamp, stampedUUID, tt.raw, 1))

			rec, err := cfdi.NewParser(0).Parse(content, "factura.xml")
			require.NoError(t, err)
			assert.Equal(t, want, rec.UUID)
			assert.Len(t, rec.UUID, 36)
		})
	}
}

func TestParse_MissingStamp(t *testing.T) {
	rec, err := cfdi.NewParser(0).Parse(buildCFDI(panelConcept, "", ""), "sin-timbre.xml")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, cfdi.ErrMissingUUID)
	assert.Contains(t, err.Error(), "missing UUID")
}

func TestParse_MissingMandatoryFields(t *testing.T) {
	base := string(buildCFDI(panelConcept, "", stamp))
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"issuer rfc", strings.Replace(base, `Rfc="pso120101ab1" `, "", 1), cfdi.ErrMissingIssuerRFC},
		{"issuer name", strings.Replace(base, `Nombre="PANELES SOLARES DEL NORTE" `, "", 1), cfdi.ErrMissingIssuerName},
		{"total", strings.Replace(base, `Total="11600.00"`, "", 1), cfdi.ErrMissingTotal},
		{"garbage total", strings.Replace(base, `Total="11600.00"`, `Total="n/a"`, 1), cfdi.ErrMissingTotal},
		{"bad uuid", strings.Replace(base, stampedUUID, "not-a-uuid", 1), cfdi.ErrInvalidUUID},
		{"malformed", base[:len(base)-40], cfdi.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := cfdi.NewParser(0).Parse([]byte(tt.content), "f.xml")
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_OversizedRejectedBeforeParsing(t *testing.T) {
	p := cfdi.NewParser(1024)
	content := append([]byte("<not even xml"), bytes.Repeat([]byte("x"), 2048)...)

	rec, err := p.Parse(content, "big.xml")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, cfdi.ErrTooLarge)
}

func TestParse_RelatedDocuments(t *testing.T) {
	rel := `<cfdi:CfdiRelacionados TipoRelacion="04">
    <cfdi:CfdiRelacionado UUID="aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"/>
  </cfdi:CfdiRelacionados>
  <cfdi:CfdiRelacionados TipoRelacion="99">
    <cfdi:CfdiRelacionado UUID="11111111-2222-3333-4444-555555555555"/>
    <cfdi:CfdiRelacionado/>
  </cfdi:CfdiRelacionados>`

	rec, err := cfdi.NewParser(0).Parse(buildCFDI(panelConcept, rel, stamp), "f.xml")
	require.NoError(t, err)
	require.Len(t, rec.RelatedDocuments, 2)

	assert.Equal(t, "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE", rec.RelatedDocuments[0].UUID)
	assert.Equal(t, "04", rec.RelatedDocuments[0].RelationType)
	assert.Equal(t, "Sustitución de los CFDI previos", rec.RelatedDocuments[0].RelationDescription)

	assert.Equal(t, "99", rec.RelatedDocuments[1].RelationType)
	assert.Empty(t, rec.RelatedDocuments[1].RelationDescription)
}

func TestParse_AdvanceClosureTakesPrecedence(t *testing.T) {
	advance := `<cfdi:Concepto ClaveProdServ="84111506" Descripcion="Anticipo del bien o servicio" Cantidad="1" ValorUnitario="5000" Importe="5000"/>`
	rel := `<cfdi:CfdiRelacionados TipoRelacion="07"><cfdi:CfdiRelacionado UUID="aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"/></cfdi:CfdiRelacionados>`

	rec, err := cfdi.NewParser(0).Parse(buildCFDI(advance, rel, stamp), "f.xml")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentKindAdvanceClosure, rec.Kind)
}

func TestParse_DefaultCurrencyAndNamespaceFree(t *testing.T) {
	content := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<Comprobante Total="250.50" Fecha="2024-01-02T00:00:00">
  <Emisor Rfc="AAA010101AAA" Nombre="Ferretería Central"/>
  <Complemento><TimbreFiscalDigital UUID="` + stampedUUID + `"/></Complemento>
</Comprobante>`)

	rec, err := cfdi.NewParser(0).Parse(content, "f.xml")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyMXN, rec.Currency)
	assert.Equal(t, "Ferretería Central", rec.IssuerName)
	assert.Empty(t, rec.LineItems)
}

func TestParse_Latin1Declaration(t *testing.T) {
	body := `<?xml version="1.0" encoding="ISO-8859-1"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/3" Total="10.00">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="Compa` + "\xf1" + `ia Solar"/>
  <tfd:TimbreFiscalDigital xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital" UUID="` + stampedUUID + `"/>
</cfdi:Comprobante>`

	rec, err := cfdi.NewParser(0).Parse([]byte(body), "latin1.xml")
	require.NoError(t, err)
	assert.Equal(t, "Compañia Solar", rec.IssuerName)
}

func TestValidateContent(t *testing.T) {
	p := cfdi.NewParser(2048)
	valid := buildCFDI(panelConcept, "", stamp)[:600]

	assert.Empty(t, p.ValidateContent(valid))
	assert.Equal(t, "XML file is too small", p.ValidateContent([]byte("<cfdi:Comprobante/>")))
	assert.Equal(t, "not a valid CFDI XML",
		p.ValidateContent([]byte(`<?xml version="1.0"?><order>`+strings.Repeat(" ", 200)+`</order>`)))
	assert.Contains(t, p.ValidateContent(bytes.Repeat([]byte("a"), 4096)), "maximum XML size")
}
