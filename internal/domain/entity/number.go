package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Number es un float64 que nunca falla al decodificar: los registros llegan de
// formularios y planillas sin validación, así que "12,5", "1.234,50", null o
// "abc" se aceptan y lo que no se puede interpretar queda en 0.
type Number float64

// Float devuelve el valor como float64 finito (NaN e Inf se convierten en 0).
func (n Number) Float() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// UnmarshalJSON acepta números, strings numéricos (formato pt-BR incluido), null y booleanos.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = ParseNumber(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// ParseNumber interpreta un texto numérico. Soporta "1234.5", "1234,5" y "1.234,50".
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// 1.234,50 → separador de miles '.', decimal ','
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		// 1,234.50 → separador de miles ','
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return Number(d.InexactFloat64())
}
