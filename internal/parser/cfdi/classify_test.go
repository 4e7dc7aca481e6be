package cfdi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"enertika/internal/domain"
	"enertika/internal/parser/cfdi"
)

func TestClassify(t *testing.T) {
	advanceItem := domain.LineItem{ProductKey: cfdi.AdvanceProductKey, Description: "ANTICIPO de obra"}
	closure := domain.RelatedDocument{UUID: "X", RelationType: cfdi.AdvanceRelationType}

	tests := []struct {
		name    string
		items   []domain.LineItem
		related []domain.RelatedDocument
		want    domain.DocumentKind
	}{
		{"plain invoice", []domain.LineItem{{ProductKey: "26111600", Description: "Inversor"}}, nil, domain.DocumentKindNormal},
		{"advance payment", []domain.LineItem{advanceItem}, nil, domain.DocumentKindAdvancePayment},
		{"english wording", []domain.LineItem{{ProductKey: cfdi.AdvanceProductKey, Description: "Advance payment"}}, nil, domain.DocumentKindAdvancePayment},
		{"advance key without wording", []domain.LineItem{{ProductKey: cfdi.AdvanceProductKey, Description: "Servicio"}}, nil, domain.DocumentKindNormal},
		{"wording without key", []domain.LineItem{{ProductKey: "80101500", Description: "Anticipo"}}, nil, domain.DocumentKindNormal},
		{"closure", nil, []domain.RelatedDocument{closure}, domain.DocumentKindAdvanceClosure},
		{"closure wins over advance item", []domain.LineItem{advanceItem}, []domain.RelatedDocument{closure}, domain.DocumentKindAdvanceClosure},
		{"other relation", []domain.LineItem{advanceItem}, []domain.RelatedDocument{{RelationType: "01"}}, domain.DocumentKindAdvancePayment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfdi.Classify(tt.items, tt.related))
		})
	}
}

func TestRelationDescription(t *testing.T) {
	assert.Equal(t, "CFDI por aplicación de anticipo", cfdi.RelationDescription("07"))
	assert.Empty(t, cfdi.RelationDescription("10"))
}
