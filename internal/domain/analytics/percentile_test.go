package analytics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
)

func TestPercentile_RangoMasCercano(t *testing.T) {
	values := []float64{50, 10, 40, 20, 30}

	assert.Equal(t, 40.0, analytics.Percentile(values, 0.8))
	assert.Equal(t, 50.0, analytics.Percentile(values, 0.9))
	assert.Equal(t, 30.0, analytics.Percentile(values, 0.5))
	assert.Equal(t, 10.0, analytics.Percentile(values, 0.1))
}

func TestPercentile_Monotonia(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

	prev := analytics.Percentile(values, 0)
	for p := 0.05; p <= 1.0; p += 0.05 {
		cur := analytics.Percentile(values, p)
		assert.LessOrEqual(t, prev, cur, "p=%.2f", p)
		prev = cur
	}
}

func TestPercentile_IgnoraNoPositivos(t *testing.T) {
	assert.Equal(t,
		analytics.Percentile([]float64{10, 20}, 0.8),
		analytics.Percentile([]float64{-5, 0, 10, 20}, 0.8),
	)
	assert.Equal(t, 20.0, analytics.Percentile([]float64{-5, 0, 10, 20}, 0.8))
}

func TestPercentile_CasosBorde(t *testing.T) {
	assert.Equal(t, 0.0, analytics.Percentile(nil, 0.8), "sin valores → 0")
	assert.Equal(t, 0.0, analytics.Percentile([]float64{0, -1}, 0.8), "solo no positivos → 0")
	assert.Equal(t, 7.0, analytics.Percentile([]float64{7}, 0.8))

	values := []float64{3, 1, 2}
	assert.Equal(t, 1.0, analytics.Percentile(values, 0), "p=0 → mínimo")
	assert.Equal(t, 1.0, analytics.Percentile(values, -3))
	assert.Equal(t, 1.0, analytics.Percentile(values, math.NaN()), "p NaN → índice 0")
	assert.Equal(t, 3.0, analytics.Percentile(values, 1))
	assert.Equal(t, 3.0, analytics.Percentile(values, 1e300))

	assert.Equal(t, 2.0, analytics.Percentile([]float64{2, math.Inf(1), math.NaN()}, 1),
		"Inf y NaN no cuentan")
}

func TestPercentile_NoModificaEntrada(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = analytics.Percentile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}
