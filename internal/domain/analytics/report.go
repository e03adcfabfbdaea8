// Package analytics es el motor de análisis del inventario de EPI: consolida las
// salidas de material y produce la clasificación ABC/Pareto, los umbrales por
// percentil, el score de riesgo operacional y los rankings por dimensión.
//
// Todas las funciones son puras y síncronas: no hacen I/O, no guardan estado y no
// devuelven errores. Las entradas malformadas se degradan (número inválido → 0,
// nombre ausente → "Não informado") en lugar de fallar.
package analytics

import "github.com/jhoicas/Inventario-epi/internal/domain/entity"

// AnalysisInput datos de entrada de un análisis.
type AnalysisInput struct {
	Saidas      []entity.Saida
	Estoque     []entity.StockLevel
	DiasPeriodo int
	Termo       string // filtro de los rankings; vacío = sin filtro
	TopN        int    // recorte de los rankings; <= 0 = todos
}

// Report resultado completo de un análisis.
type Report struct {
	ParetoQuantidade  ParetoResult           `json:"paretoQuantidade"`
	ParetoValor       ParetoResult           `json:"paretoValor"`
	Risco             []RiskEntry            `json:"risco"`
	ParetoRisco       ParetoResult           `json:"paretoRisco"`
	Thresholds        RiskThresholds         `json:"thresholds"`
	TopMateriais      []RankedDimensionEntry `json:"topMateriais"`
	TopCategorias     []RankedDimensionEntry `json:"topCategorias"`
	TopFabricantes    []RankedDimensionEntry `json:"topFabricantes"`
	TopCentrosServico []RankedDimensionEntry `json:"topCentrosServico"`
	TopSetores        []RankedDimensionEntry `json:"topSetores"`
	TopPessoas        []RankedDimensionEntry `json:"topPessoas"`
	TopTrocas         []RankedDimensionEntry `json:"topTrocas"`
	Resumo            Resumo                 `json:"resumo"`
}

// Analyze ejecuta el flujo completo:
// salidas → agregados → {Pareto cantidad, Pareto valor, riesgo → Pareto score},
// más rankings y resumen.
func Analyze(in AnalysisInput, cfg Config) Report {
	aggs := Normalize(in.Saidas)
	items := AggregatesToParetoItems(aggs)

	paretoQtd := BuildParetoList(items, MetricQuantidade, cfg.Pareto)
	paretoValor := BuildParetoList(items, MetricValorTotal, cfg.Pareto)

	th := ComputeRiskThresholds(aggs, in.DiasPeriodo, cfg.Percentis)
	risco := BuildOperationalRisk(aggs, IndexStock(in.Estoque), in.DiasPeriodo, cfg.Risk, th)
	paretoRisco := BuildParetoList(RiskToParetoItems(risco), MetricScore, cfg.Pareto)

	top := func(d Dimension) []RankedDimensionEntry {
		return LimitTop(BuildTop(in.Saidas, d, in.Termo), in.TopN)
	}

	return Report{
		ParetoQuantidade:  paretoQtd,
		ParetoValor:       paretoValor,
		Risco:             risco,
		ParetoRisco:       paretoRisco,
		Thresholds:        th,
		TopMateriais:      top(DimensionMaterial),
		TopCategorias:     top(DimensionCategoria),
		TopFabricantes:    top(DimensionFabricante),
		TopCentrosServico: top(DimensionCentroServico),
		TopSetores:        top(DimensionSetor),
		TopPessoas:        top(DimensionPessoa),
		TopTrocas:         LimitTop(BuildTopTroca(in.Saidas, DimensionMaterial, in.Termo), in.TopN),
		Resumo:            BuildResumo(in.Saidas, aggs, paretoQtd, risco),
	}
}
