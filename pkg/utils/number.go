package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// valores da API externa chegam sempre no formato invariante: sinal opcional, dígitos e ponto decimal
var invariantNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// ParseDecimalOrZero interpreta um número no formato invariante.
// Valor ausente, vazio ou inválido vira zero.
func ParseDecimalOrZero(value *string) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}

	raw := strings.TrimSpace(*value)
	if !invariantNumber.MatchString(raw) {
		return decimal.Zero
	}

	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}

	return parsed
}

// ParseMinorUnits converte um valor em centavos para a unidade principal ("150000" -> 1500.00)
func ParseMinorUnits(value *string) decimal.Decimal {
	return ParseDecimalOrZero(value).Div(minorUnitsPerMajor)
}
