package cfdi

import (
	"strings"

	"enertika/internal/domain"
)

const (
	// AdvanceProductKey is the SAT product/service key for advance payments.
	AdvanceProductKey = "84111506"
	// AdvanceRelationType links an invoice to the advance it settles.
	AdvanceRelationType = "07"
)

var advanceWords = []string{"anticipo", "advance"}

// SAT c_TipoRelacion catalog.
var relationTypes = map[string]string{
	"01": "Nota de crédito de los documentos relacionados",
	"02": "Nota de débito de los documentos relacionados",
	"03": "Devolución de mercancía sobre facturas o traslados previos",
	"04": "Sustitución de los CFDI previos",
	"05": "Traslados de mercancías facturados previamente",
	"06": "Factura generada por los traslados previos",
	"07": "CFDI por aplicación de anticipo",
	"08": "Factura generada por pagos en parcialidades",
	"09": "Factura generada por pagos diferidos",
}

// RelationDescription returns the description of a relation-type code, or "" when unknown.
func RelationDescription(code string) string {
	return relationTypes[code]
}

// Classify derives the document kind. A "07" relation marks an advance
// closure and takes precedence over advance-payment line items.
func Classify(items []domain.LineItem, related []domain.RelatedDocument) domain.DocumentKind {
	for _, rel := range related {
		if rel.RelationType == AdvanceRelationType {
			return domain.DocumentKindAdvanceClosure
		}
	}
	for _, item := range items {
		if item.ProductKey == AdvanceProductKey && mentionsAdvance(item.Description) {
			return domain.DocumentKindAdvancePayment
		}
	}
	return domain.DocumentKindNormal
}

func mentionsAdvance(description string) bool {
	lower := strings.ToLower(description)
	for _, w := range advanceWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
