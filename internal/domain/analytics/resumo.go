package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// Resumo totales del período para la cabecera del tablero.
type Resumo struct {
	TotalSaidas        int     `json:"totalSaidas"`        // salidas recibidas
	TotalQuantidade    float64 `json:"totalQuantidade"`    // suma de cantidades agregadas
	ValorTotal         float64 `json:"valorTotal"`         // suma de valores agregados
	MateriaisDistintos int     `json:"materiaisDistintos"` // agregados emitidos
	ClasseA            int     `json:"classeA"`            // Pareto de cantidad
	ClasseB            int     `json:"classeB"`
	ClasseC            int     `json:"classeC"`
	RiscoA             int     `json:"riscoA"`
	RiscoB             int     `json:"riscoB"`
	RiscoC             int     `json:"riscoC"`
	AbaixoMinimo       int     `json:"abaixoMinimo"`
	ItensCriticos      int     `json:"itensCriticos"`
}

// BuildResumo cuenta clases y totales a partir de las vistas ya calculadas.
func BuildResumo(saidas []entity.Saida, aggs []MaterialAggregate, paretoQtd ParetoResult, risco []RiskEntry) Resumo {
	r := Resumo{
		TotalSaidas:        len(saidas),
		MateriaisDistintos: len(aggs),
	}

	valor := decimal.Zero
	for _, a := range aggs {
		r.TotalQuantidade += SafeNumber(a.Quantidade)
		valor = valor.Add(decimal.NewFromFloat(SafeNumber(a.ValorTotal)))
	}
	r.ValorTotal = valor.Round(2).InexactFloat64()

	for _, e := range paretoQtd.Lista {
		switch e.Classe {
		case ClasseA:
			r.ClasseA++
		case ClasseB:
			r.ClasseB++
		default:
			r.ClasseC++
		}
	}

	for _, e := range risco {
		switch e.ClasseRisco {
		case ClasseA:
			r.RiscoA++
		case ClasseB:
			r.RiscoB++
		default:
			r.RiscoC++
		}
		if e.Flags.EstoqueBaixo {
			r.AbaixoMinimo++
		}
		if e.Flags.TipoCritico {
			r.ItensCriticos++
		}
	}
	return r
}
