package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsReportRequest parámetros para GET /api/analytics/report y /api/analytics/risk/pdf.
type AnalyticsReportRequest struct {
	StartDate string  `query:"start_date"` // YYYY-MM-DD; por defecto hoy menos el período configurado
	EndDate   string  `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	Termo     string  `query:"termo"`      // filtro de texto de los rankings
	TopN      int     `query:"top_n"`      // máx filas por ranking (default 10, max 200)
	LimitA    float64 `query:"limit_a"`    // % acumulado máximo de la clase A (0 = configurado)
	LimitB    float64 `query:"limit_b"`    // % acumulado máximo de la clase B (0 = configurado)
}

// RankingRequest parámetros para GET /api/analytics/rankings/:dimension.
type RankingRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Termo     string `query:"termo"`
	Troca     bool   `query:"troca"` // solo salidas de cambio no canceladas
	TopN      int    `query:"top_n"`
}

// ReportFilter identifica un reporte calculado; es la clave de la caché.
type ReportFilter struct {
	CompanyID string
	StartDate string
	EndDate   string
	Termo     string
	TopN      int
	LimitA    float64
	LimitB    float64
}

// ── Período ───────────────────────────────────────────────────────────────────

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"` // días del período, mínimo 1
}

// ── Pareto / ABC ──────────────────────────────────────────────────────────────

// ParetoItemDTO material clasificado en una curva ABC.
type ParetoItemDTO struct {
	Rank                int             `json:"rank"` // 1 = mayor valor de la métrica
	Key                 string          `json:"key"`
	Codigo              string          `json:"codigo,omitempty"`
	Nome                string          `json:"nome"`
	Categoria           string          `json:"categoria,omitempty"`
	Fabricante          string          `json:"fabricante,omitempty"`
	Quantidade          float64         `json:"quantidade"`
	ValorTotal          decimal.Decimal `json:"valor_total"`
	Valor               float64         `json:"valor"`               // valor de la métrica clasificada
	Percentual          decimal.Decimal `json:"percentual"`          // participación individual 0-100
	PercentualAcumulado decimal.Decimal `json:"percentualAcumulado"` // acumulado descendente 0-100
	Classe              string          `json:"classe"`              // A | B | C
	Score               float64         `json:"score"`
	ClasseRisco         string          `json:"classeRisco"` // solo en la curva sobre el score
}

// ParetoDTO curva ABC sobre una métrica.
type ParetoDTO struct {
	Metrica string          `json:"metrica"` // quantidade | valorTotal | score
	Total   float64         `json:"total"`
	Itens   []ParetoItemDTO `json:"itens"`
}

// ── Riesgo operacional ────────────────────────────────────────────────────────

// RiskFlagsDTO señales que componen el score.
type RiskFlagsDTO struct {
	EstoqueBaixo   bool `json:"estoque_baixo"`
	SaidaAlta      bool `json:"saida_alta"`
	SaidaExtrema   bool `json:"saida_extrema"`
	GiroAlto       bool `json:"giro_alto"`
	TipoCritico    bool `json:"tipo_critico"`
	RupturaPressao bool `json:"ruptura_pressao"`
}

// RiskItemDTO diagnóstico de riesgo de un material.
type RiskItemDTO struct {
	Key             string          `json:"key"`
	Nome            string          `json:"nome"`
	Categoria       string          `json:"categoria,omitempty"`
	Quantidade      float64         `json:"quantidade"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	EstoqueAtual    float64         `json:"estoque_atual"`
	EstoqueMinimo   float64         `json:"estoque_minimo"`
	GiroDiario      decimal.Decimal `json:"giro_diario"`       // quantidade / días
	PressaoVidaUtil decimal.Decimal `json:"pressao_vida_util"` // quantidade * validade / días
	Flags           RiskFlagsDTO    `json:"flags"`
	Score           int             `json:"score"`
	ClasseRisco     string          `json:"classeRisco"` // A | B | C, no depende del score
}

// ThresholdsDTO umbrales por percentil del período.
type ThresholdsDTO struct {
	P80Quantidade float64         `json:"p80_quantidade"`
	P90Quantidade float64         `json:"p90_quantidade"`
	P80Giro       decimal.Decimal `json:"p80_giro"`
}

// ── Rankings ──────────────────────────────────────────────────────────────────

// RankingItemDTO fila de un ranking por dimensión.
type RankingItemDTO struct {
	Posicao    int     `json:"posicao"`
	ID         string  `json:"id"`
	Nome       string  `json:"nome"`
	Quantidade float64 `json:"quantidade"`
}

// RankingsDTO top-N por cada dimensión.
type RankingsDTO struct {
	Materiais      []RankingItemDTO `json:"materiais"`
	Categorias     []RankingItemDTO `json:"categorias"`
	Fabricantes    []RankingItemDTO `json:"fabricantes"`
	CentrosServico []RankingItemDTO `json:"centros_servico"`
	Setores        []RankingItemDTO `json:"setores"`
	Pessoas        []RankingItemDTO `json:"pessoas"`
	Trocas         []RankingItemDTO `json:"trocas"` // materiales más cambiados
}

// RankingDTO respuesta de GET /api/analytics/rankings/:dimension.
type RankingDTO struct {
	Period   PeriodDTO        `json:"period"`
	Dimensao string           `json:"dimensao"`
	Termo    string           `json:"termo,omitempty"`
	Troca    bool             `json:"troca"`
	Itens    []RankingItemDTO `json:"itens"`
}

// ── Resumen y reporte combinado ───────────────────────────────────────────────

// ResumoDTO totales de cabecera del tablero.
type ResumoDTO struct {
	TotalSaidas        int             `json:"total_saidas"`
	TotalQuantidade    float64         `json:"total_quantidade"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
	MateriaisDistintos int             `json:"materiais_distintos"`
	ClasseA            int             `json:"classe_a"`
	ClasseB            int             `json:"classe_b"`
	ClasseC            int             `json:"classe_c"`
	RiscoA             int             `json:"risco_a"`
	RiscoB             int             `json:"risco_b"`
	RiscoC             int             `json:"risco_c"`
	AbaixoMinimo       int             `json:"abaixo_minimo"`  // materiales con stock < mínimo
	ItensCriticos      int             `json:"itens_criticos"` // materiales de categoría EPI/EPC
}

// AnalyticsReportDTO respuesta completa de GET /api/analytics/report.
type AnalyticsReportDTO struct {
	ReportID         string        `json:"report_id"`
	GeneratedAt      time.Time     `json:"generated_at"`
	Cached           bool          `json:"cached"` // true si vino de la caché
	Period           PeriodDTO     `json:"period"`
	Resumo           ResumoDTO     `json:"resumo"`
	ParetoQuantidade ParetoDTO     `json:"pareto_quantidade"`
	ParetoValor      ParetoDTO     `json:"pareto_valor"`
	ParetoRisco      ParetoDTO     `json:"pareto_risco"`
	Risco            []RiskItemDTO `json:"risco"`
	Thresholds       ThresholdsDTO `json:"thresholds"`
	Rankings         RankingsDTO   `json:"rankings"`
}
