package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
	"github.com/jhoicas/Inventario-epi/pkg/config"
)

// EngineConfigFrom traduce la configuración de la aplicación a la del motor.
func EngineConfigFrom(c config.AnalyticsConfig) analytics.Config {
	cfg := analytics.DefaultConfig()
	cfg.Pareto = analytics.ParetoLimits{A: c.LimitA, B: c.LimitB}
	cfg.Percentis = analytics.PercentileTargets{Alta: c.PercentilAlta, Extrema: c.PercentilExtrema}
	if len(c.CriticalMarkers) > 0 {
		cfg.Risk.CriticalMarkers = c.CriticalMarkers
	}
	cfg.Risk.Weights = analytics.RiskWeights{
		EstoqueBaixo:   c.Weights.EstoqueBaixo,
		SaidaAlta:      c.Weights.SaidaAlta,
		SaidaExtrema:   c.Weights.SaidaExtrema,
		GiroAlto:       c.Weights.GiroAlto,
		TipoCritico:    c.Weights.TipoCritico,
		RupturaPressao: c.Weights.RupturaPressao,
	}
	return cfg
}

// NewReportDTO convierte el resultado del motor en la respuesta pública y le asigna un ID.
func NewReportDTO(r analytics.Report, period dto.PeriodDTO, generatedAt time.Time) *dto.AnalyticsReportDTO {
	return &dto.AnalyticsReportDTO{
		ReportID:         newReportID(),
		GeneratedAt:      generatedAt,
		Period:           period,
		Resumo:           resumoToDTO(r.Resumo),
		ParetoQuantidade: paretoToDTO(analytics.MetricQuantidade, r.ParetoQuantidade),
		ParetoValor:      paretoToDTO(analytics.MetricValorTotal, r.ParetoValor),
		ParetoRisco:      paretoToDTO(analytics.MetricScore, r.ParetoRisco),
		Risco:            riskToDTO(r.Risco),
		Thresholds: dto.ThresholdsDTO{
			P80Quantidade: r.Thresholds.P80Quantidade,
			P90Quantidade: r.Thresholds.P90Quantidade,
			P80Giro:       round(r.Thresholds.P80Giro, 4),
		},
		Rankings: dto.RankingsDTO{
			Materiais:      rankingToDTO(r.TopMateriais),
			Categorias:     rankingToDTO(r.TopCategorias),
			Fabricantes:    rankingToDTO(r.TopFabricantes),
			CentrosServico: rankingToDTO(r.TopCentrosServico),
			Setores:        rankingToDTO(r.TopSetores),
			Pessoas:        rankingToDTO(r.TopPessoas),
			Trocas:         rankingToDTO(r.TopTrocas),
		},
	}
}

func paretoToDTO(metric analytics.Metric, res analytics.ParetoResult) dto.ParetoDTO {
	itens := make([]dto.ParetoItemDTO, 0, len(res.Lista))
	for i, e := range res.Lista {
		itens = append(itens, dto.ParetoItemDTO{
			Rank:                i + 1,
			Key:                 e.Key,
			Codigo:              e.Codigo,
			Nome:                e.Nome,
			Categoria:           e.Categoria,
			Fabricante:          e.Fabricante,
			Quantidade:          e.Quantidade,
			ValorTotal:          round(e.ValorTotal, 2),
			Valor:               e.Valor,
			Percentual:          round(e.Percentual, 2),
			PercentualAcumulado: round(e.PercentualAcumulado, 2),
			Classe:              e.Classe,
			Score:               e.Score,
			ClasseRisco:         e.ClasseRisco,
		})
	}
	return dto.ParetoDTO{Metrica: string(metric), Total: res.Total, Itens: itens}
}

func riskToDTO(entries []analytics.RiskEntry) []dto.RiskItemDTO {
	out := make([]dto.RiskItemDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.RiskItemDTO{
			Key:             e.Key,
			Nome:            e.Nome,
			Categoria:       e.Categoria,
			Quantidade:      e.Quantidade,
			ValorTotal:      round(e.ValorTotal, 2),
			EstoqueAtual:    e.EstoqueAtual,
			EstoqueMinimo:   e.EstoqueMinimo,
			GiroDiario:      round(e.GiroDiario, 4),
			PressaoVidaUtil: round(e.PressaoVidaUtil, 2),
			Flags: dto.RiskFlagsDTO{
				EstoqueBaixo:   e.Flags.EstoqueBaixo,
				SaidaAlta:      e.Flags.SaidaAlta,
				SaidaExtrema:   e.Flags.SaidaExtrema,
				GiroAlto:       e.Flags.GiroAlto,
				TipoCritico:    e.Flags.TipoCritico,
				RupturaPressao: e.Flags.RupturaPressao,
			},
			Score:       e.Score,
			ClasseRisco: e.ClasseRisco,
		})
	}
	return out
}

func rankingToDTO(entries []analytics.RankedDimensionEntry) []dto.RankingItemDTO {
	out := make([]dto.RankingItemDTO, 0, len(entries))
	for i, e := range entries {
		out = append(out, dto.RankingItemDTO{
			Posicao:    i + 1,
			ID:         e.ID,
			Nome:       e.Nome,
			Quantidade: e.Quantidade,
		})
	}
	return out
}

func resumoToDTO(r analytics.Resumo) dto.ResumoDTO {
	return dto.ResumoDTO{
		TotalSaidas:        r.TotalSaidas,
		TotalQuantidade:    r.TotalQuantidade,
		ValorTotal:         round(r.ValorTotal, 2),
		MateriaisDistintos: r.MateriaisDistintos,
		ClasseA:            r.ClasseA,
		ClasseB:            r.ClasseB,
		ClasseC:            r.ClasseC,
		RiscoA:             r.RiscoA,
		RiscoB:             r.RiscoB,
		RiscoC:             r.RiscoC,
		AbaixoMinimo:       r.AbaixoMinimo,
		ItensCriticos:      r.ItensCriticos,
	}
}

func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(analytics.SafeNumber(v)).Round(places)
}
