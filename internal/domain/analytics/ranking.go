package analytics

import (
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// Dimension eje de agrupación de los rankings.
type Dimension string

// Dimensiones soportadas.
const (
	DimensionMaterial      Dimension = "material"
	DimensionCategoria     Dimension = "categoria"
	DimensionFabricante    Dimension = "fabricante"
	DimensionCentroServico Dimension = "centro_servico"
	DimensionSetor         Dimension = "setor"
	DimensionPessoa        Dimension = "pessoa"
)

// Dimensions devuelve todas las dimensiones en orden de presentación.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionMaterial, DimensionCategoria, DimensionFabricante,
		DimensionCentroServico, DimensionSetor, DimensionPessoa,
	}
}

// ParseDimension interpreta el nombre de una dimensión (acepta "centro-servico").
func ParseDimension(s string) (Dimension, bool) {
	d := Dimension(strings.ReplaceAll(NormalizeText(s), "-", "_"))
	for _, known := range Dimensions() {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// RankedDimensionEntry fila de un ranking.
type RankedDimensionEntry struct {
	ID         string  `json:"id"`
	Nome       string  `json:"nome"`
	Quantidade float64 `json:"quantidade"`
}

// dimensionReader describe cómo leer una dimensión de una salida:
// id explícito, cadena de etiquetas (la primera no vacía gana) y campos del filtro de texto.
type dimensionReader struct {
	id     func(s *entity.Saida) string
	labels func(s *entity.Saida) []string
	fields func(s *entity.Saida) []string
}

func readerFor(d Dimension) (dimensionReader, bool) {
	switch d {
	case DimensionMaterial:
		return dimensionReader{
			id: func(s *entity.Saida) string { return ResolveKey(materialRef(s)) },
			labels: func(s *entity.Saida) []string {
				m := s.MaterialOrEmpty()
				return []string{m.Nome, m.Descricao, m.Codigo}
			},
			fields: func(s *entity.Saida) []string {
				m := s.MaterialOrEmpty()
				return []string{m.Nome, m.Codigo, m.Descricao, m.Categoria, m.Fabricante, m.CA}
			},
		}, true
	case DimensionCategoria:
		return dimensionReader{
			id:     func(*entity.Saida) string { return "" },
			labels: func(s *entity.Saida) []string { return []string{s.MaterialOrEmpty().Categoria} },
			fields: func(s *entity.Saida) []string { return []string{s.MaterialOrEmpty().Categoria} },
		}, true
	case DimensionFabricante:
		return dimensionReader{
			id:     func(*entity.Saida) string { return "" },
			labels: func(s *entity.Saida) []string { return []string{s.MaterialOrEmpty().Fabricante} },
			fields: func(s *entity.Saida) []string {
				m := s.MaterialOrEmpty()
				return []string{m.Fabricante, m.Nome}
			},
		}, true
	case DimensionCentroServico:
		return dimensionReader{
			id:     func(s *entity.Saida) string { return s.CentroServicoID },
			labels: func(s *entity.Saida) []string { return []string{s.CentroServicoNome, s.CentroCustoNome} },
			fields: func(s *entity.Saida) []string { return []string{s.CentroServicoNome, s.CentroCustoNome} },
		}, true
	case DimensionSetor:
		return dimensionReader{
			id:     func(s *entity.Saida) string { return s.SetorID },
			labels: func(s *entity.Saida) []string { return []string{s.SetorNome} },
			fields: func(s *entity.Saida) []string { return []string{s.SetorNome, s.CentroServicoNome} },
		}, true
	case DimensionPessoa:
		return dimensionReader{
			id:     func(s *entity.Saida) string { return s.PessoaID },
			labels: func(s *entity.Saida) []string { return []string{s.PessoaNome, s.PessoaMatricula} },
			fields: func(s *entity.Saida) []string { return []string{s.PessoaNome, s.PessoaMatricula, s.SetorNome} },
		}, true
	}
	return dimensionReader{}, false
}

// BuildTop agrupa las salidas por la dimensión y las ordena por cantidad total descendente.
// term filtra (sin tildes ni mayúsculas) sobre los campos propios de la dimensión.
// Grupos con cantidad <= 0 no se devuelven. Una dimensión desconocida devuelve lista vacía.
func BuildTop(records []entity.Saida, dim Dimension, term string) []RankedDimensionEntry {
	return buildTop(records, dim, term, nil)
}

// BuildTopTroca igual que BuildTop pero solo con salidas marcadas como cambio y no canceladas.
func BuildTopTroca(records []entity.Saida, dim Dimension, term string) []RankedDimensionEntry {
	return buildTop(records, dim, term, func(s *entity.Saida) bool {
		return s.Troca && !IsCancelled(s.Status)
	})
}

// IsCancelled indica si el estado es de cancelación ("cancelado", "Cancelada", ...).
func IsCancelled(status string) bool {
	return strings.HasPrefix(NormalizeText(status), "cancel")
}

func buildTop(records []entity.Saida, dim Dimension, term string, keep func(*entity.Saida) bool) []RankedDimensionEntry {
	rd, ok := readerFor(dim)
	if !ok {
		return []RankedDimensionEntry{}
	}
	needle := NormalizeText(term)

	entries := make([]*RankedDimensionEntry, 0)
	index := make(map[string]*RankedDimensionEntry)
	for i := range records {
		s := &records[i]
		if keep != nil && !keep(s) {
			continue
		}
		if !containsFolded(needle, rd.fields(s)...) {
			continue
		}

		label := FirstNonEmpty(rd.labels(s)...)
		if label == "" {
			label = NaoInformado
		}
		id := FirstNonEmpty(rd.id(s), label)

		k := NormalizeKey(id)
		e, ok := index[k]
		if !ok {
			e = &RankedDimensionEntry{ID: id, Nome: label}
			index[k] = e
			entries = append(entries, e)
		}
		e.Quantidade += SafeNumber(s.Quantidade.Float())
	}

	out := make([]RankedDimensionEntry, 0, len(entries))
	for _, e := range entries {
		if e.Quantidade > 0 {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantidade != out[j].Quantidade {
			return out[i].Quantidade > out[j].Quantidade
		}
		ni, nj := NormalizeText(out[i].Nome), NormalizeText(out[j].Nome)
		if ni != nj {
			return ni < nj
		}
		return NormalizeKey(out[i].ID) < NormalizeKey(out[j].ID)
	})
	return out
}

// LimitTop recorta el ranking a los primeros n (n <= 0 devuelve todo).
func LimitTop(entries []RankedDimensionEntry, n int) []RankedDimensionEntry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// BuildTopMateriais ranking por material.
func BuildTopMateriais(records []entity.Saida, term string) []RankedDimensionEntry {
	return BuildTop(records, DimensionMaterial, term)
}

// BuildTopCategorias ranking por categoría de material.
func BuildTopCategorias(records []entity.Saida, term string) []RankedDimensionEntry {
	return BuildTop(records, DimensionCategoria, term)
}

// BuildTopFabricantes ranking por fabricante.
func BuildTopFabricantes(records []entity.Saida, term string) []RankedDimensionEntry {
	return BuildTop(records, DimensionFabricante, term)
}

// BuildTopCentrosServico ranking por centro de servicio.
func BuildTopCentrosServico(records []entity.Saida, term string) []RankedDimensionEntry {
	return BuildTop(records, DimensionCentroServico, term)
}

// BuildTopSetores ranking por sector.
func BuildTopSetores(records []entity.Saida, term string) []RankedDimensionEntry {
	return BuildTop(records, DimensionSetor, term)
}

// BuildTopPessoas ranking por persona.
func BuildTopPessoas(records []entity.Saida, term string) []RankedDimensionEntry {
	return BuildTop(records, DimensionPessoa, term)
}
