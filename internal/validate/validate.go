// Package validate reúne las reglas de formato compartidas por los
// registros: DNI, teléfonos, email y textos sin dígitos.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[\w.-]+$`)

// DNI acepta exactamente 8 dígitos numéricos.
func DNI(s string) bool {
	return len(s) == 8 && allDigits(s)
}

// Phone acepta exactamente 10 dígitos numéricos.
// Prefijos como "+" o espacios lo invalidan.
func Phone(s string) bool {
	return len(s) == 10 && allDigits(s)
}

// Email valida el formato de correo.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Name acepta texto no vacío y sin dígitos (nombres, especies, sexo).
func Name(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !ContainsDigits(s)
}

// Year acepta un año en formato AAAA.
func Year(s string) bool {
	return len(s) == 4 && allDigits(s)
}

// YearMonth acepta un período en formato AAAA.MM.
func YearMonth(s string) bool {
	return len(s) == 7 && s[4] == '.' && allDigits(s[:4]) && allDigits(s[5:])
}

// ContainsDigits informa si el texto contiene algún dígito.
func ContainsDigits(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
