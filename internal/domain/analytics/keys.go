package analytics

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NaoInformado es la etiqueta usada cuando ninguna fuente de nombre tiene valor.
const NaoInformado = "Não informado"

// KeyRef agrupa las fuentes de identidad de un material, en orden de precedencia:
// id explícito → código visible → nombre.
type KeyRef struct {
	ID     string
	Codigo string
	Nome   string
}

// ResolveKey devuelve la identidad del material: el primer campo no vacío (recortado)
// según la precedencia de KeyRef. "" si ninguno tiene valor.
func ResolveKey(ref KeyRef) string {
	return FirstNonEmpty(ref.ID, ref.Codigo, ref.Nome)
}

// NormalizeKey es la forma de comparación de una clave: recortada y en minúsculas.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// FirstNonEmpty devuelve el primer valor no vacío (recortado) o "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// NormalizeText pasa a minúsculas y elimina tildes/diacríticos (NFD sin marcas combinantes).
// "Proteção Auditiva" → "protecao auditiva".
func NormalizeText(s string) string {
	// El Transformer de Chain guarda estado: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.TrimSpace(strings.ToLower(s))
	}
	return strings.TrimSpace(folded)
}

// containsFolded indica si algún campo contiene term (ya normalizado). term vacío acepta todo.
func containsFolded(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(NormalizeText(f), term) {
			return true
		}
	}
	return false
}

// SafeNumber convierte NaN e Inf en 0.
func SafeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 redondea a 2 decimales (mitad lejos de cero) usando aritmética decimal.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(SafeNumber(v)).Round(2).InexactFloat64()
}
