package usecase_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/application/usecase"
	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
)

// Los consumidores del reporte leen estos nombres tal cual; no deben cambiar.
func TestNewReportDTO_NombresDeCamposEstables(t *testing.T) {
	repo := fixtureRepo()
	r := analytics.Analyze(analytics.AnalysisInput{
		Saidas:      repo.saidas,
		Estoque:     repo.stock,
		DiasPeriodo: 29,
	}, analytics.DefaultConfig())

	raw, err := json.Marshal(usecase.NewReportDTO(r, dto.PeriodDTO{Days: 29}, time.Now()))
	require.NoError(t, err)

	var body struct {
		ParetoQuantidade struct {
			Itens []map[string]any `json:"itens"`
		} `json:"pareto_quantidade"`
		ParetoRisco struct {
			Itens []map[string]any `json:"itens"`
		} `json:"pareto_risco"`
		Risco []map[string]any `json:"risco"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body.ParetoQuantidade.Itens)
	require.NotEmpty(t, body.ParetoRisco.Itens)
	require.NotEmpty(t, body.Risco)

	for _, item := range []map[string]any{body.ParetoQuantidade.Itens[0], body.ParetoRisco.Itens[0]} {
		for _, k := range []string{"percentual", "percentualAcumulado", "classe", "score", "classeRisco"} {
			assert.Contains(t, item, k)
		}
		assert.NotContains(t, item, "percentual_acumulado")
		assert.NotContains(t, item, "classe_risco")
	}

	riscoTop := body.ParetoRisco.Itens[0]
	assert.Equal(t, "M1", riscoTop["key"])
	assert.Equal(t, "A", riscoTop["classeRisco"])
	assert.EqualValues(t, riscoTop["valor"], riscoTop["score"])

	assert.Contains(t, body.Risco[0], "score")
	assert.Contains(t, body.Risco[0], "classeRisco")
	assert.NotContains(t, body.Risco[0], "classe_risco")
}
