package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"enertika/internal/textnorm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean text unchanged", "ACME SOLAR", "ACME SOLAR"},
		{"leading and trailing punctuation", "  --ACME SOLAR--  ", "ACME SOLAR"},
		{"interior punctuation kept", "|| ACME, S.A. DE C.V. ||", "ACME, S.A. DE C.V"},
		{"quotes and brackets", `"[Proveedor (Norte)]"`, "Proveedor (Norte"},
		{"only noise", " .,;:|-_ ", ""},
		{"empty", "", ""},
		{"tabs and newlines", "\t\nJuan Pérez\r\n", "Juan Pérez"},
		{"backtick and tilde", "`~Energía~`", "Energía"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"  --ACME--  ", "#Servicios & Mantenimiento!", "", "x"}
	for _, in := range inputs {
		once := textnorm.Normalize(in)
		assert.Equal(t, once, textnorm.Normalize(once), in)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "ACME SOLAR SA", textnorm.CollapseSpaces("  ACME \t SOLAR\n SA "))
	assert.Equal(t, "", textnorm.CollapseSpaces("   "))
}

func TestNormalize_EdgeOnly(t *testing.T) {
	assert.Equal(t, "Project Alpha", textnorm.Normalize("  | Project Alpha - . "))
	assert.Equal(t, "Draft] Project X", textnorm.Normalize("[Draft] Project X"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "JOSE PEREZ", textnorm.Fold("  José   Pérez "))
	assert.Equal(t, "MUNOZ", textnorm.Fold("Muñoz"))
	assert.Equal(t, "ACME", textnorm.Fold("acme"))
	assert.Equal(t, "", textnorm.Fold(""))
}
