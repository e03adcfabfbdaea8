package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func entryByKey(t *testing.T, entries []analytics.RiskEntry, key string) analytics.RiskEntry {
	t.Helper()
	for _, e := range entries {
		if e.Key == key {
			return e
		}
	}
	require.FailNow(t, "entrada no encontrada", key)
	return analytics.RiskEntry{}
}

func riskScenario() ([]analytics.MaterialAggregate, analytics.StockIndex) {
	aggs := []analytics.MaterialAggregate{
		// Stock sano pero con casi todas las flags activas.
		{Key: "SANO", Categoria: "EPI - Luvas", Quantidade: 100},
		// Bajo mínimo con giro alto.
		{Key: "CRITICO", Categoria: "Ferramentas", Quantidade: 100, EstoqueMinimoConfigurado: 10},
		// Bajo mínimo (mínimo tomado de la foto de stock) con giro bajo y presión de vida útil.
		{Key: "LENTO", Categoria: "Ferramentas", Quantidade: 5, ValidadeDias: 30},
	}
	stock := analytics.IndexStock([]entity.StockLevel{
		{MaterialKey: "sano", Atual: 1000, Minimo: 10},
		{MaterialKey: "CRITICO", Atual: 5},
		{MaterialKey: "lento", Atual: 0, Minimo: 3},
	})
	return aggs, stock
}

var scenarioThresholds = analytics.RiskThresholds{P80Quantidade: 50, P90Quantidade: 80, P80Giro: 1}

// ──────────────────────────────────────────────────────────────────────────────
// BuildOperationalRisk
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildOperationalRisk_FlagsYScore(t *testing.T) {
	aggs, stock := riskScenario()

	out := analytics.BuildOperationalRisk(aggs, stock, 10, analytics.DefaultRiskConfig(), scenarioThresholds)
	require.Len(t, out, 3)

	sano := entryByKey(t, out, "SANO")
	assert.Equal(t, analytics.RiskFlags{
		SaidaAlta: true, SaidaExtrema: true, GiroAlto: true, TipoCritico: true,
	}, sano.Flags)
	assert.Equal(t, 5, sano.Score)
	assert.Equal(t, 1000.0, sano.EstoqueAtual)
	assert.Equal(t, 10.0, sano.EstoqueMinimo)
	assert.Equal(t, 10.0, sano.GiroDiario)

	critico := entryByKey(t, out, "CRITICO")
	assert.True(t, critico.Flags.EstoqueBaixo)
	assert.True(t, critico.Flags.GiroAlto)
	assert.False(t, critico.Flags.TipoCritico)
	assert.Equal(t, 6, critico.Score)

	lento := entryByKey(t, out, "LENTO")
	assert.Equal(t, 3.0, lento.EstoqueMinimo, "sin mínimo propio se usa el de la foto")
	assert.Equal(t, 15.0, lento.PressaoVidaUtil)
	assert.True(t, lento.Flags.RupturaPressao)
	assert.False(t, lento.Flags.GiroAlto)
	assert.Equal(t, 4, lento.Score)
}

func TestBuildOperationalRisk_ClaseIndependienteDelScore(t *testing.T) {
	aggs, stock := riskScenario()

	out := analytics.BuildOperationalRisk(aggs, stock, 10, analytics.DefaultRiskConfig(), scenarioThresholds)

	for _, e := range out {
		switch {
		case e.Flags.EstoqueBaixo && e.Flags.GiroAlto:
			assert.Equal(t, analytics.ClasseA, e.ClasseRisco, e.Key)
		case e.Flags.EstoqueBaixo:
			assert.Equal(t, analytics.ClasseB, e.ClasseRisco, e.Key)
		default:
			assert.Equal(t, analytics.ClasseC, e.ClasseRisco, e.Key)
		}
	}

	sano := entryByKey(t, out, "SANO")
	assert.Equal(t, analytics.ClasseC, sano.ClasseRisco, "score alto con stock sano sigue siendo C")
	assert.Equal(t, analytics.ClasseA, entryByKey(t, out, "CRITICO").ClasseRisco)
	assert.Equal(t, analytics.ClasseB, entryByKey(t, out, "LENTO").ClasseRisco)
}

func TestBuildOperationalRisk_OrdenPorScore(t *testing.T) {
	aggs, stock := riskScenario()

	out := analytics.BuildOperationalRisk(aggs, stock, 10, analytics.DefaultRiskConfig(), scenarioThresholds)

	keys := []string{out[0].Key, out[1].Key, out[2].Key}
	assert.Equal(t, []string{"CRITICO", "SANO", "LENTO"}, keys)
}

func TestBuildOperationalRisk_DiasCero(t *testing.T) {
	assert.NotPanics(t, func() {
		out := analytics.BuildOperationalRisk(nil, nil, 0, analytics.DefaultRiskConfig(), analytics.RiskThresholds{})
		assert.Empty(t, out)
	})

	aggs := []analytics.MaterialAggregate{{Key: "M1", Quantidade: 12, ValidadeDias: 2}}
	out := analytics.BuildOperationalRisk(aggs, nil, 0, analytics.DefaultRiskConfig(), analytics.RiskThresholds{})
	require.Len(t, out, 1)
	assert.Equal(t, 12.0, out[0].GiroDiario, "días 0 se trata como 1")
	assert.Equal(t, 24.0, out[0].PressaoVidaUtil)
	assert.Zero(t, out[0].EstoqueAtual, "sin foto de stock el actual es 0")
}

func TestBuildOperationalRisk_UmbralesCeroNoActivanFlags(t *testing.T) {
	aggs := []analytics.MaterialAggregate{{Key: "M1", Quantidade: 12}}

	out := analytics.BuildOperationalRisk(aggs, nil, 1, analytics.DefaultRiskConfig(), analytics.RiskThresholds{})

	require.Len(t, out, 1)
	assert.False(t, out[0].Flags.SaidaAlta)
	assert.False(t, out[0].Flags.SaidaExtrema)
	assert.False(t, out[0].Flags.GiroAlto)
}

func TestBuildOperationalRisk_PesoCeroDesactivaFlag(t *testing.T) {
	aggs, stock := riskScenario()
	cfg := analytics.DefaultRiskConfig()
	cfg.Weights.SaidaAlta = 0
	cfg.Weights.TipoCritico = 0

	out := analytics.BuildOperationalRisk(aggs, stock, 10, cfg, scenarioThresholds)

	sano := entryByKey(t, out, "SANO")
	assert.True(t, sano.Flags.SaidaAlta, "la flag se sigue informando")
	assert.Equal(t, 2, sano.Score)
}

func TestBuildOperationalRisk_MarcadoresCriticos(t *testing.T) {
	cases := []struct {
		categoria string
		want      bool
	}{
		{"EPI", true},
		{"Épi - Proteção", true},
		{"Equipamento de Proteção Coletiva (EPC)", true},
		{"Ferramentas", false},
		{"", false},
	}
	for _, tc := range cases {
		aggs := []analytics.MaterialAggregate{{Key: "X", Categoria: tc.categoria, Quantidade: 1}}
		out := analytics.BuildOperationalRisk(aggs, nil, 1, analytics.DefaultRiskConfig(), analytics.RiskThresholds{})
		require.Len(t, out, 1)
		assert.Equal(t, tc.want, out[0].Flags.TipoCritico, tc.categoria)
	}

	cfg := analytics.RiskConfig{Weights: analytics.DefaultRiskWeights(), CriticalMarkers: []string{"química"}}
	aggs := []analytics.MaterialAggregate{{Key: "X", Categoria: "Química Industrial", Quantidade: 1}}
	out := analytics.BuildOperationalRisk(aggs, nil, 1, cfg, analytics.RiskThresholds{})
	assert.True(t, out[0].Flags.TipoCritico, "marcadores configurables sin tildes")
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeRiskThresholds / IndexStock / RiskToParetoItems
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeRiskThresholds(t *testing.T) {
	aggs := []analytics.MaterialAggregate{
		{Key: "a", Quantidade: 10}, {Key: "b", Quantidade: 20}, {Key: "c", Quantidade: 30},
		{Key: "d", Quantidade: 40}, {Key: "e", Quantidade: 50},
	}

	th := analytics.ComputeRiskThresholds(aggs, 10, analytics.DefaultPercentileTargets())

	assert.Equal(t, 40.0, th.P80Quantidade)
	assert.Equal(t, 50.0, th.P90Quantidade)
	assert.Equal(t, 4.0, th.P80Giro)

	vacio := analytics.ComputeRiskThresholds(nil, 0, analytics.PercentileTargets{})
	assert.Equal(t, analytics.RiskThresholds{}, vacio)
}

func TestIndexStock_SumaAlmacenesYSinClave(t *testing.T) {
	idx := analytics.IndexStock([]entity.StockLevel{
		{MaterialKey: " M1 ", Atual: 3},
		{MaterialKey: "m1", Atual: 99, Minimo: 20},
		{MaterialKey: "M1", Atual: 1, Minimo: 50},
		{MaterialKey: "", Atual: 1},
	})

	require.Len(t, idx, 1)
	assert.Equal(t, entity.Number(103), idx["m1"].Atual)
	assert.Equal(t, entity.Number(20), idx["m1"].Minimo, "el primer mínimo no nulo gana")
}

func TestBuildOperationalRisk_StockEnVariosAlmacenesNoEsBajo(t *testing.T) {
	aggs := []analytics.MaterialAggregate{{Key: "M1", Nome: "Luva", Quantidade: 5, EstoqueMinimoConfigurado: 10}}
	stock := analytics.IndexStock([]entity.StockLevel{
		{MaterialKey: "M1", Atual: 6},
		{MaterialKey: "M1", Atual: 6},
	})

	out := analytics.BuildOperationalRisk(aggs, stock, 10, analytics.DefaultRiskConfig(), analytics.RiskThresholds{})

	require.Len(t, out, 1)
	assert.Equal(t, 12.0, out[0].EstoqueAtual)
	assert.False(t, out[0].Flags.EstoqueBaixo)
	assert.Equal(t, analytics.ClasseC, out[0].ClasseRisco)
}

func TestRiskToParetoItems_ParetoPorScore(t *testing.T) {
	aggs, stock := riskScenario()
	risco := analytics.BuildOperationalRisk(aggs, stock, 10, analytics.DefaultRiskConfig(), scenarioThresholds)

	res := analytics.BuildParetoList(analytics.RiskToParetoItems(risco), analytics.MetricScore, analytics.DefaultParetoLimits())

	assert.Equal(t, 15.0, res.Total)
	require.Len(t, res.Lista, 3)
	assert.Equal(t, "CRITICO", res.Lista[0].Key)
	assert.Equal(t, analytics.ClasseA, res.Lista[0].ClasseRisco)
}
