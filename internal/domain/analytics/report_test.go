package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

func analysisFixture() analytics.AnalysisInput {
	m1 := &entity.Material{ID: "M1", Nome: "Respirador PFF2", Categoria: "EPI", ValorUnitario: 10}
	m2 := &entity.Material{ID: "M2", Nome: "Cone", Categoria: "Sinalização", ValorUnitario: 10}
	m3 := &entity.Material{ID: "M3", Nome: "Fita zebrada", Categoria: "Sinalização", ValorUnitario: 10}

	return analytics.AnalysisInput{
		Saidas: []entity.Saida{
			{Material: m1, Quantidade: 30, SetorNome: "Obras", Troca: true},
			{Material: m2, Quantidade: 30, SetorNome: "Obras"},
			{Material: m1, Quantidade: 20, SetorNome: "Manutenção"},
			{Material: m3, Quantidade: 20, SetorNome: "Manutenção"},
		},
		Estoque: []entity.StockLevel{
			{MaterialKey: "m1", Atual: 5, Minimo: 10},
			{MaterialKey: "M2", Atual: 100, Minimo: 10},
		},
		DiasPeriodo: 10,
	}
}

func TestAnalyze_FlujoCompleto(t *testing.T) {
	r := analytics.Analyze(analysisFixture(), analytics.DefaultConfig())

	// Pareto de cantidad: M1 50 (fusionado 30+20), M2 30, M3 20.
	require.Len(t, r.ParetoQuantidade.Lista, 3)
	assert.Equal(t, []string{"M1", "M2", "M3"}, keysOf(r.ParetoQuantidade.Lista))
	assert.Equal(t, []string{"A", "A", "C"}, classesOf(r.ParetoQuantidade.Lista))
	assert.Equal(t, 50.0, r.ParetoQuantidade.Lista[0].Quantidade)

	assert.Equal(t, 1000.0, r.ParetoValor.Total)
	assert.Equal(t, []string{"M1", "M2", "M3"}, keysOf(r.ParetoValor.Lista))

	assert.Equal(t, analytics.RiskThresholds{P80Quantidade: 50, P90Quantidade: 50, P80Giro: 5}, r.Thresholds)

	require.Len(t, r.Risco, 3)
	m1 := r.Risco[0]
	assert.Equal(t, "M1", m1.Key)
	assert.Equal(t, 7, m1.Score)
	assert.Equal(t, analytics.ClasseA, m1.ClasseRisco)
	assert.Equal(t, "M2", r.Risco[1].Key)
	assert.Equal(t, analytics.ClasseC, r.Risco[1].ClasseRisco)

	require.Len(t, r.ParetoRisco.Lista, 3)
	assert.Equal(t, 7.0, r.ParetoRisco.Total)
	assert.Equal(t, "M1", r.ParetoRisco.Lista[0].Key)
	assert.Equal(t, 100.0, r.ParetoRisco.Lista[0].Percentual, "todo el score está en M1")

	assert.Equal(t, analytics.Resumo{
		TotalSaidas:        4,
		TotalQuantidade:    100,
		ValorTotal:         1000,
		MateriaisDistintos: 3,
		ClasseA:            2,
		ClasseC:            1,
		RiscoA:             1,
		RiscoC:             2,
		AbaixoMinimo:       1,
		ItensCriticos:      1,
	}, r.Resumo)

	require.Len(t, r.TopSetores, 2)
	assert.Equal(t, "Obras", r.TopSetores[0].Nome)
	assert.Equal(t, 60.0, r.TopSetores[0].Quantidade)
	require.Len(t, r.TopTrocas, 1)
	assert.Equal(t, 30.0, r.TopTrocas[0].Quantidade)
}

func TestAnalyze_TopNYTermo(t *testing.T) {
	in := analysisFixture()
	in.TopN = 1
	in.Termo = "sinalizacao"

	r := analytics.Analyze(in, analytics.DefaultConfig())

	require.Len(t, r.TopCategorias, 1)
	assert.Equal(t, "Sinalização", r.TopCategorias[0].Nome)
	assert.Equal(t, 50.0, r.TopCategorias[0].Quantidade)
	require.Len(t, r.TopMateriais, 1)
	assert.Equal(t, "M2", r.TopMateriais[0].ID)
	assert.Len(t, r.ParetoQuantidade.Lista, 3, "el término solo filtra los rankings")
}

func TestAnalyze_EntradaVacia(t *testing.T) {
	assert.NotPanics(t, func() {
		r := analytics.Analyze(analytics.AnalysisInput{}, analytics.Config{})
		assert.Empty(t, r.ParetoQuantidade.Lista)
		assert.Empty(t, r.Risco)
		assert.Equal(t, analytics.Resumo{}, r.Resumo)
	})
}
