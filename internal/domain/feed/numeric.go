package feed

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyNumber = errors.New("valor numérico vacío")

// Clean recorta espacios y comillas envolventes de un campo.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.Trim(s, `"`))
}

// IsBlank indica si el campo queda vacío tras limpiarlo.
func IsBlank(s string) bool { return Clean(s) == "" }

// ParseDecimal acepta "12.5", "12,5" y "\"12,5\"". Los valores enteros
// se devuelven con escala 0 ("10.00" -> 10).
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = Clean(s)
	if s == "" {
		return decimal.Zero, errEmptyNumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		d, err = decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return decimal.Zero, err
		}
	}
	if d.Equal(d.Truncate(0)) {
		d = d.Truncate(0)
	}
	return d, nil
}
