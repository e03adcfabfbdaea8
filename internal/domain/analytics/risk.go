package analytics

import (
	"sort"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// RiskFlags señales individuales que componen el score de riesgo.
type RiskFlags struct {
	EstoqueBaixo   bool `json:"estoqueBaixo"`   // stock actual < mínimo
	SaidaAlta      bool `json:"saidaAlta"`      // cantidad >= P80 de cantidades
	SaidaExtrema   bool `json:"saidaExtrema"`   // cantidad >= P90 de cantidades
	GiroAlto       bool `json:"giroAlto"`       // giro diario >= P80 de giros
	TipoCritico    bool `json:"tipoCritico"`    // categoría EPI/EPC
	RupturaPressao bool `json:"rupturaPressao"` // presión de vida útil > stock actual
}

// RiskThresholds umbrales dinámicos derivados de percentiles del período.
type RiskThresholds struct {
	P80Quantidade float64 `json:"p80Quantidade"`
	P90Quantidade float64 `json:"p90Quantidade"`
	P80Giro       float64 `json:"p80Giro"`
}

// RiskEntry agregado de material enriquecido con el diagnóstico de riesgo.
//
// ClasseRisco NO se deriva del score: depende solo de EstoqueBaixo y GiroAlto
// (A = bajo mínimo con giro alto, B = solo bajo mínimo, C = stock sano).
// El score es una señal de ranking aparte y solo alimenta el Pareto de riesgo;
// un material con score alto y stock sano sigue siendo clase C.
type RiskEntry struct {
	MaterialAggregate
	EstoqueAtual    float64   `json:"estoqueAtual"`
	EstoqueMinimo   float64   `json:"estoqueMinimo"`
	GiroDiario      float64   `json:"giroDiario"`
	PressaoVidaUtil float64   `json:"pressaoVidaUtil"`
	Flags           RiskFlags `json:"flags"`
	Score           int       `json:"score"`
	ClasseRisco     string    `json:"classeRisco"`
}

// StockIndex stock actual por clave normalizada de material.
type StockIndex map[string]entity.StockLevel

// IndexStock indexa la foto de stock por clave normalizada. Varias filas de la misma
// clave (una por almacén) suman el stock actual; el mínimo es el primero no nulo.
func IndexStock(levels []entity.StockLevel) StockIndex {
	idx := make(StockIndex, len(levels))
	for _, l := range levels {
		k := NormalizeKey(l.MaterialKey)
		if k == "" {
			continue
		}
		l.Atual = entity.Number(SafeNumber(l.Atual.Float()))
		prev, ok := idx[k]
		if !ok {
			idx[k] = l
			continue
		}
		prev.Atual = entity.Number(prev.Atual.Float() + l.Atual.Float())
		if prev.Minimo.Float() == 0 {
			prev.Minimo = l.Minimo
		}
		if l.UpdatedAt.After(prev.UpdatedAt) {
			prev.UpdatedAt = l.UpdatedAt
		}
		idx[k] = prev
	}
	return idx
}

func (s StockIndex) lookup(key string) (entity.StockLevel, bool) {
	if l, ok := s[NormalizeKey(key)]; ok {
		return l, true
	}
	l, ok := s[key]
	return l, ok
}

// clampDays evita la división por cero: el período mínimo es de 1 día.
func clampDays(days int) float64 {
	if days < 1 {
		return 1
	}
	return float64(days)
}

// ComputeRiskThresholds calcula los percentiles de cantidad y de giro diario del período.
func ComputeRiskThresholds(aggs []MaterialAggregate, days int, targets PercentileTargets) RiskThresholds {
	targets = targets.withDefaults()
	d := clampDays(days)

	quantidades := make([]float64, 0, len(aggs))
	giros := make([]float64, 0, len(aggs))
	for _, a := range aggs {
		q := SafeNumber(a.Quantidade)
		quantidades = append(quantidades, q)
		giros = append(giros, q/d)
	}
	return RiskThresholds{
		P80Quantidade: Percentile(quantidades, targets.Alta),
		P90Quantidade: Percentile(quantidades, targets.Extrema),
		P80Giro:       Percentile(giros, targets.Alta),
	}
}

// BuildOperationalRisk evalúa cada material con las seis flags de riesgo, calcula el
// score ponderado y la clase de riesgo. days se fuerza a un mínimo de 1.
// El resultado se ordena por score descendente, luego cantidad descendente y clave.
func BuildOperationalRisk(
	aggs []MaterialAggregate,
	stock StockIndex,
	days int,
	cfg RiskConfig,
	th RiskThresholds,
) []RiskEntry {
	d := clampDays(days)
	markers := cfg.CriticalMarkers
	if markers == nil {
		markers = DefaultCriticalMarkers()
	}
	w := cfg.Weights

	out := make([]RiskEntry, 0, len(aggs))
	for _, a := range aggs {
		qty := SafeNumber(a.Quantidade)

		var atual, minimo float64
		snapshot, found := stock.lookup(a.Key)
		if found {
			atual = snapshot.Atual.Float()
		}
		minimo = SafeNumber(a.EstoqueMinimoConfigurado)
		if minimo == 0 && found {
			minimo = snapshot.Minimo.Float()
		}

		giro := qty / d
		var pressao float64
		if validade := SafeNumber(a.ValidadeDias); validade > 0 {
			pressao = qty * validade / d
		}

		flags := RiskFlags{
			EstoqueBaixo:   atual < minimo,
			SaidaAlta:      th.P80Quantidade > 0 && qty >= th.P80Quantidade,
			SaidaExtrema:   th.P90Quantidade > 0 && qty >= th.P90Quantidade,
			GiroAlto:       th.P80Giro > 0 && giro >= th.P80Giro,
			TipoCritico:    isCritical(a.Categoria, markers),
			RupturaPressao: pressao > atual,
		}

		out = append(out, RiskEntry{
			MaterialAggregate: a,
			EstoqueAtual:      atual,
			EstoqueMinimo:     minimo,
			GiroDiario:        giro,
			PressaoVidaUtil:   pressao,
			Flags:             flags,
			Score:             riskScore(flags, w),
			ClasseRisco:       riskClass(flags),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Quantidade != out[j].Quantidade {
			return out[i].Quantidade > out[j].Quantidade
		}
		return NormalizeKey(out[i].Key) < NormalizeKey(out[j].Key)
	})
	return out
}

func riskScore(f RiskFlags, w RiskWeights) int {
	score := 0
	add := func(on bool, weight int) {
		if on && weight > 0 {
			score += weight
		}
	}
	add(f.EstoqueBaixo, w.EstoqueBaixo)
	add(f.SaidaAlta, w.SaidaAlta)
	add(f.SaidaExtrema, w.SaidaExtrema)
	add(f.GiroAlto, w.GiroAlto)
	add(f.TipoCritico, w.TipoCritico)
	add(f.RupturaPressao, w.RupturaPressao)
	return score
}

// riskClass depende solo de EstoqueBaixo y GiroAlto.
func riskClass(f RiskFlags) string {
	switch {
	case f.EstoqueBaixo && f.GiroAlto:
		return ClasseA
	case f.EstoqueBaixo:
		return ClasseB
	default:
		return ClasseC
	}
}

func isCritical(categoria string, markers []string) bool {
	cat := NormalizeText(categoria)
	if cat == "" {
		return false
	}
	for _, m := range markers {
		if mk := NormalizeText(m); mk != "" && containsFolded(mk, cat) {
			return true
		}
	}
	return false
}

// RiskToParetoItems adapta las entradas de riesgo al clasificador (métrica score).
func RiskToParetoItems(entries []RiskEntry) []ParetoItem {
	items := make([]ParetoItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ParetoItem{
			ID:          e.Key,
			Codigo:      e.Codigo,
			Nome:        e.Nome,
			Descricao:   e.Descricao,
			Categoria:   e.Categoria,
			Fabricante:  e.Fabricante,
			ClasseRisco: e.ClasseRisco,
			Quantidade:  e.Quantidade,
			ValorTotal:  e.ValorTotal,
			Score:       float64(e.Score),
		})
	}
	return items
}
