package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// MaterialAggregate totales de un material en el período (una fila por clave).
type MaterialAggregate struct {
	Key                      string  `json:"key"`
	Codigo                   string  `json:"codigo"`
	Nome                     string  `json:"nome"`
	Descricao                string  `json:"descricao"`
	Categoria                string  `json:"categoria"`
	Fabricante               string  `json:"fabricante"`
	ValorUnitario            float64 `json:"valorUnitario"`
	ValidadeDias             float64 `json:"validadeDias"`
	EstoqueMinimoConfigurado float64 `json:"estoqueMinimoConfigurado"`
	Quantidade               float64 `json:"quantidade"`
	ValorTotal               float64 `json:"valorTotal"`
}

// materialRef arma la referencia de identidad de una salida: el id explícito de la
// salida, luego el id del material unido, luego su código y su nombre.
func materialRef(s *entity.Saida) KeyRef {
	m := s.MaterialOrEmpty()
	return KeyRef{
		ID:     FirstNonEmpty(s.MaterialID, m.ID),
		Codigo: m.Codigo,
		Nome:   m.Nome,
	}
}

type aggregateBuilder struct {
	agg   MaterialAggregate
	valor decimal.Decimal
}

// Normalize consolida las salidas en un agregado por material.
//
//   - Salidas sin referencia de material resoluble se ignoran.
//   - Claves iguales tras recortar y pasar a minúsculas se fusionan; los metadatos
//     del primer registro con valor ganan.
//   - El valor total se acumula en decimal exacto y se redondea a 2 decimales una sola
//     vez al emitir. El cálculo histórico redondeaba tras cada suma y podía derivar
//     algunos centavos en materiales con muchas salidas; aquí no se reproduce.
//   - Materiales con cantidad total <= 0 no se devuelven.
//
// El orden de salida es el de primera aparición.
func Normalize(saidas []entity.Saida) []MaterialAggregate {
	builders := make([]*aggregateBuilder, 0)
	index := make(map[string]*aggregateBuilder)

	for i := range saidas {
		s := &saidas[i]
		key := ResolveKey(materialRef(s))
		if key == "" {
			continue
		}
		m := s.MaterialOrEmpty()
		qty := SafeNumber(s.Quantidade.Float())

		b, ok := index[NormalizeKey(key)]
		if !ok {
			b = &aggregateBuilder{agg: MaterialAggregate{Key: key}}
			index[NormalizeKey(key)] = b
			builders = append(builders, b)
		}
		mergeMaterialMetadata(&b.agg, m)

		b.agg.Quantidade += qty
		b.valor = b.valor.Add(decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(m.ValorUnitario.Float())))
	}

	out := make([]MaterialAggregate, 0, len(builders))
	for _, b := range builders {
		if b.agg.Quantidade <= 0 {
			continue
		}
		b.agg.ValorTotal = b.valor.Round(2).InexactFloat64()
		out = append(out, b.agg)
	}
	return out
}

// mergeMaterialMetadata completa los campos vacíos del agregado con los del material.
func mergeMaterialMetadata(agg *MaterialAggregate, m entity.Material) {
	agg.Codigo = FirstNonEmpty(agg.Codigo, m.Codigo)
	agg.Nome = FirstNonEmpty(agg.Nome, m.Nome)
	agg.Descricao = FirstNonEmpty(agg.Descricao, m.Descricao)
	agg.Categoria = FirstNonEmpty(agg.Categoria, m.Categoria)
	agg.Fabricante = FirstNonEmpty(agg.Fabricante, m.Fabricante)
	if agg.ValorUnitario == 0 {
		agg.ValorUnitario = m.ValorUnitario.Float()
	}
	if agg.ValidadeDias == 0 {
		agg.ValidadeDias = m.ValidadeDias.Float()
	}
	if agg.EstoqueMinimoConfigurado == 0 {
		agg.EstoqueMinimoConfigurado = m.EstoqueMinimo.Float()
	}
}
