package analytics

import (
	"fmt"
	"math"
	"sort"
)

// Metric campo numérico sobre el que se ordena y clasifica la lista Pareto.
type Metric string

// Métricas soportadas por BuildParetoList.
const (
	MetricQuantidade Metric = "quantidade"
	MetricValorTotal Metric = "valorTotal"
	MetricScore      Metric = "score"
)

// ParseMetric convierte el nombre de una métrica; ok=false si no es conocida.
func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case MetricQuantidade, MetricValorTotal, MetricScore:
		return Metric(s), true
	}
	return "", false
}

// ParetoItem elemento de entrada del clasificador. Los campos numéricos se suman al
// fusionar claves duplicadas; los de texto conservan el primer valor no vacío.
type ParetoItem struct {
	ID          string  `json:"id"`
	Codigo      string  `json:"codigo,omitempty"`
	Nome        string  `json:"nome"`
	Descricao   string  `json:"descricao,omitempty"`
	Categoria   string  `json:"categoria,omitempty"`
	Fabricante  string  `json:"fabricante,omitempty"`
	ClasseRisco string  `json:"classeRisco,omitempty"`
	Quantidade  float64 `json:"quantidade"`
	ValorTotal  float64 `json:"valorTotal"`
	Score       float64 `json:"score"`
}

// metric valor clasificable: no finito o negativo cuenta como 0.
func (it ParetoItem) metric(m Metric) float64 {
	var v float64
	switch m {
	case MetricQuantidade:
		v = it.Quantidade
	case MetricValorTotal:
		v = it.ValorTotal
	case MetricScore:
		v = it.Score
	}
	return math.Max(0, SafeNumber(v))
}

// sanitized devuelve el ítem con los campos numéricos finitos.
func (it ParetoItem) sanitized() ParetoItem {
	it.Quantidade = SafeNumber(it.Quantidade)
	it.ValorTotal = Round2(it.ValorTotal)
	it.Score = SafeNumber(it.Score)
	return it
}

// ParetoEntry elemento clasificado.
type ParetoEntry struct {
	ParetoItem
	Key                 string  `json:"key"`
	Valor               float64 `json:"valor"`
	Percentual          float64 `json:"percentual"`
	PercentualAcumulado float64 `json:"percentualAcumulado"`
	Classe              string  `json:"classe"`
}

// ParetoResult lista clasificada y total de la métrica.
type ParetoResult struct {
	Total float64       `json:"total"`
	Lista []ParetoEntry `json:"lista"`
}

type paretoRow struct {
	item    ParetoItem
	key     string // clave resuelta o sintética
	sortKey string // clave normalizada; "" si no hay clave resoluble
}

// BuildParetoList fusiona los ítems por clave, los ordena de forma descendente por la
// métrica y asigna la clase ABC según el % acumulado:
// A si acumulado <= limits.A, B si <= limits.B, C en otro caso.
//
// Empates en la métrica se ordenan por clave ascendente; los ítems sin clave van al
// final del empate en su orden original. Con total 0 todos los porcentajes son 0 y la
// clase es C. Nunca falla: una entrada vacía devuelve total 0 y lista vacía.
func BuildParetoList(items []ParetoItem, metric Metric, limits ParetoLimits) ParetoResult {
	limits = limits.withDefaults()
	rows := mergeParetoItems(items)

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := rows[i].item.metric(metric), rows[j].item.metric(metric)
		if vi != vj {
			return vi > vj
		}
		hi, hj := rows[i].sortKey != "", rows[j].sortKey != ""
		if hi != hj {
			return hi
		}
		return hi && rows[i].sortKey < rows[j].sortKey
	})

	// El total se suma en el mismo orden que el acumulado para que el último llegue a 100 exacto.
	var total float64
	for _, r := range rows {
		total += r.item.metric(metric)
	}

	lista := make([]ParetoEntry, 0, len(rows))
	var running float64
	for _, r := range rows {
		v := r.item.metric(metric)
		running += v

		var pct, acc float64
		if total != 0 {
			pct = v * 100 / total
			acc = running * 100 / total
		}
		lista = append(lista, ParetoEntry{
			ParetoItem:          r.item,
			Key:                 r.key,
			Valor:               v,
			Percentual:          pct,
			PercentualAcumulado: acc,
			Classe:              classify(acc, total, limits),
		})
	}
	return ParetoResult{Total: total, Lista: lista}
}

func classify(acumulado, total float64, limits ParetoLimits) string {
	switch {
	case total == 0:
		return ClasseC
	case acumulado <= limits.A:
		return ClasseA
	case acumulado <= limits.B:
		return ClasseB
	default:
		return ClasseC
	}
}

// mergeParetoItems suma los ítems con la misma clave (id → código → nombre, sin
// distinguir mayúsculas). Los ítems sin clave reciben una clave sintética por posición.
func mergeParetoItems(items []ParetoItem) []paretoRow {
	rows := make([]paretoRow, 0, len(items))
	index := make(map[string]int, len(items))

	for i, raw := range items {
		it := raw.sanitized()
		key := ResolveKey(KeyRef{ID: it.ID, Codigo: it.Codigo, Nome: it.Nome})
		if key == "" {
			rows = append(rows, paretoRow{item: it, key: fmt.Sprintf("#%d", i)})
			continue
		}
		norm := NormalizeKey(key)
		pos, ok := index[norm]
		if !ok {
			index[norm] = len(rows)
			rows = append(rows, paretoRow{item: it, key: key, sortKey: norm})
			continue
		}

		merged := &rows[pos].item
		merged.Quantidade += it.Quantidade
		merged.ValorTotal = Round2(merged.ValorTotal + it.ValorTotal)
		merged.Score += it.Score
		merged.ID = FirstNonEmpty(merged.ID, it.ID)
		merged.Codigo = FirstNonEmpty(merged.Codigo, it.Codigo)
		merged.Nome = FirstNonEmpty(merged.Nome, it.Nome)
		merged.Descricao = FirstNonEmpty(merged.Descricao, it.Descricao)
		merged.Categoria = FirstNonEmpty(merged.Categoria, it.Categoria)
		merged.Fabricante = FirstNonEmpty(merged.Fabricante, it.Fabricante)
		merged.ClasseRisco = FirstNonEmpty(merged.ClasseRisco, it.ClasseRisco)
	}
	return rows
}

// AggregatesToParetoItems adapta los agregados del normalizador al clasificador.
func AggregatesToParetoItems(aggs []MaterialAggregate) []ParetoItem {
	items := make([]ParetoItem, 0, len(aggs))
	for _, a := range aggs {
		items = append(items, ParetoItem{
			ID:         a.Key,
			Codigo:     a.Codigo,
			Nome:       a.Nome,
			Descricao:  a.Descricao,
			Categoria:  a.Categoria,
			Fabricante: a.Fabricante,
			Quantidade: a.Quantidade,
			ValorTotal: a.ValorTotal,
		})
	}
	return items
}
