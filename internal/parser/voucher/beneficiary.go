package voucher

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"enertika/internal/textnorm"
)

var (
	beneficiaryLabels = []string{"Nombre del tercero", "Nombre de la empresa a pagar"}

	// Legal-form fragments left behind when a long name wraps onto the label line.
	truncationArtifacts = map[string]bool{
		"CV":       true,
		"SA":       true,
		"SA DE CV": true,
		"DE CV":    true,
	}

	beneficiaryBlockRe = regexp.MustCompile(
		`(?is)Datos del beneficiario\s*(.*?)\s*(?:Datos del ordenante|Puedes obtener|BBVA|Cerrar|$)`)

	blockSubLabels = []string{"Dirección", "RFC", "Cuenta", "CLABE"}
)

func findBeneficiary(text string) string {
	lines := strings.Split(text, "\n")
	if name := fromLabeledLine(lines); name != "" {
		return name
	}
	return fromBeneficiaryBlock(text)
}

func fromLabeledLine(lines []string) string {
	for i, line := range lines {
		if !hasBeneficiaryLabel(line) {
			continue
		}

		candidate := ""
		if idx := strings.LastIndex(line, ":"); idx >= 0 {
			candidate = strings.TrimSpace(line[idx+1:])
		}
		if candidate == "" && i+1 < len(lines) {
			candidate = strings.TrimSpace(lines[i+1])
		}

		if utf8.RuneCountInString(candidate) < 5 || truncationArtifacts[strings.ToUpper(candidate)] {
			if i > 0 && !strings.Contains(lines[i-1], ":") {
				candidate = strings.TrimSpace(lines[i-1]) + " " + candidate
			}
		}

		if utf8.RuneCountInString(candidate) >= 3 {
			if name := cleanName(candidate); name != "" {
				return name
			}
		}
	}
	return ""
}

func hasBeneficiaryLabel(line string) bool {
	for _, label := range beneficiaryLabels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}

func fromBeneficiaryBlock(text string) string {
	m := beneficiaryBlockRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.ReplaceAll(line, "Nombre:", "")
		line = strings.ReplaceAll(line, "Beneficiario:", "")
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < 3 || isSubLabel(line) {
			continue
		}
		if name := cleanName(line); name != "" {
			return name
		}
	}
	return ""
}

func isSubLabel(line string) bool {
	for _, label := range blockSubLabels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}

func cleanName(s string) string {
	s = textnorm.CollapseSpaces(s)
	s = strings.NewReplacer(`"`, "", "'", "").Replace(s)
	return textnorm.Normalize(s)
}
