package analytics

import (
	"math"
	"sort"
)

// Percentile devuelve el percentil p (0 < p <= 1) por rango más cercano, redondeando hacia
// arriba: índice ceil(p*n)-1 sobre la serie ordenada, sin interpolación.
// Solo cuentan valores positivos y finitos; sin valores devuelve 0.
func Percentile(values []float64, p float64) float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	n := len(sorted)
	if n == 0 {
		return 0
	}
	sort.Float64s(sorted)

	idx := 0
	switch {
	case math.IsNaN(p) || p <= 0:
	case p >= 1:
		idx = n - 1
	default:
		idx = int(math.Ceil(p*float64(n))) - 1
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}
