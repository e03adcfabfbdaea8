package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/application/ports"
	"github.com/jhoicas/Inventario-epi/internal/domain"
	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
	"github.com/jhoicas/Inventario-epi/internal/domain/repository"
	"github.com/jhoicas/Inventario-epi/pkg/logger"
)

const (
	defaultTopN       = 10
	maxTopN           = 200
	defaultPeriodDays = 30
	dateLayout        = "2006-01-02"
)

// AnalyticsUseCase orquesta el motor de análisis de EPI:
//   - Lectura en paralelo de salidas y stock actual.
//   - Caché de reportes por filtro (un fallo de caché solo se registra).
//   - Conversión del resultado del motor a DTOs estables.
//   - Rankings por dimensión y PDF del reporte de riesgo.
type AnalyticsUseCase struct {
	repo       repository.AnalyticsRepository
	cache      ports.ReportCache
	renderer   ports.RiskReportRenderer
	cfg        analytics.Config
	periodDays int
	log        *logger.Logger
	now        func() time.Time
}

// AnalyticsOptions dependencias opcionales del caso de uso.
type AnalyticsOptions struct {
	Cache      ports.ReportCache        // nil = sin caché
	Renderer   ports.RiskReportRenderer // nil = PDF no disponible
	Config     analytics.Config
	PeriodDays int // período por defecto sin fechas; <= 0 usa 30
	Logger     *logger.Logger
	Now        func() time.Time // tests
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository, opts AnalyticsOptions) *AnalyticsUseCase {
	uc := &AnalyticsUseCase{
		repo:       repo,
		cache:      opts.Cache,
		renderer:   opts.Renderer,
		cfg:        opts.Config,
		periodDays: opts.PeriodDays,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if uc.periodDays <= 0 {
		uc.periodDays = defaultPeriodDays
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// GetReport calcula (o lee de la caché) el reporte completo del período.
func (uc *AnalyticsUseCase) GetReport(
	ctx context.Context,
	companyID string,
	req dto.AnalyticsReportRequest,
) (*dto.AnalyticsReportDTO, error) {
	period, start, end, err := uc.parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.engineConfig(req.LimitA, req.LimitB)
	if err != nil {
		return nil, err
	}
	topN := clampTopN(req.TopN)

	filter := dto.ReportFilter{
		CompanyID: companyID,
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		Termo:     req.Termo,
		TopN:      topN,
		LimitA:    cfg.Pareto.A,
		LimitB:    cfg.Pareto.B,
	}
	if cached := uc.cachedReport(ctx, filter); cached != nil {
		return cached, nil
	}

	saidas, stock, err := uc.fetch(ctx, companyID, start, end, true)
	if err != nil {
		return nil, err
	}

	report := analytics.Analyze(analytics.AnalysisInput{
		Saidas:      saidas,
		Estoque:     stock,
		DiasPeriodo: period.Days,
		Termo:       req.Termo,
		TopN:        topN,
	}, cfg)
	out := NewReportDTO(report, period, uc.now())

	uc.log.Debug().
		Str("company_id", companyID).
		Str("report_id", out.ReportID).
		Int("saidas", len(saidas)).
		Int("materiais", out.Resumo.MateriaisDistintos).
		Msg("reporte de análisis calculado")

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, filter, out); err != nil {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo guardar el reporte en caché")
		}
	}
	return out, nil
}

// GetRanking devuelve el ranking de una dimensión (material, categoria, fabricante,
// centro_servico, setor, pessoa). Con Troca solo cuentan cambios no cancelados.
func (uc *AnalyticsUseCase) GetRanking(
	ctx context.Context,
	companyID, dimension string,
	req dto.RankingRequest,
) (*dto.RankingDTO, error) {
	dim, ok := analytics.ParseDimension(dimension)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDimension, dimension)
	}
	period, start, end, err := uc.parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	saidas, _, err := uc.fetch(ctx, companyID, start, end, false)
	if err != nil {
		return nil, err
	}

	var entries []analytics.RankedDimensionEntry
	if req.Troca {
		entries = analytics.BuildTopTroca(saidas, dim, req.Termo)
	} else {
		entries = analytics.BuildTop(saidas, dim, req.Termo)
	}

	return &dto.RankingDTO{
		Period:   period,
		Dimensao: string(dim),
		Termo:    req.Termo,
		Troca:    req.Troca,
		Itens:    rankingToDTO(analytics.LimitTop(entries, clampTopN(req.TopN))),
	}, nil
}

// GetRiskPDF genera el PDF del reporte de riesgo del período.
func (uc *AnalyticsUseCase) GetRiskPDF(
	ctx context.Context,
	companyID string,
	req dto.AnalyticsReportRequest,
) ([]byte, error) {
	if uc.renderer == nil {
		return nil, errors.New("analytics: generador de PDF no configurado")
	}
	report, err := uc.GetReport(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	out, err := uc.renderer.RenderRiskReport(report)
	if err != nil {
		return nil, fmt.Errorf("analytics: pdf: %w", err)
	}
	return out, nil
}

// InvalidateCache descarta los reportes en caché de la empresa.
func (uc *AnalyticsUseCase) InvalidateCache(ctx context.Context, companyID string) error {
	if uc.cache == nil {
		return nil
	}
	if err := uc.cache.InvalidateCompany(ctx, companyID); err != nil {
		return fmt.Errorf("analytics: invalidar caché: %w", err)
	}
	return nil
}

// ── Internos ──────────────────────────────────────────────────────────────────

func (uc *AnalyticsUseCase) cachedReport(ctx context.Context, filter dto.ReportFilter) *dto.AnalyticsReportDTO {
	if uc.cache == nil {
		return nil
	}
	report, found, err := uc.cache.Get(ctx, filter)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", filter.CompanyID).Msg("caché de reportes no disponible")
		return nil
	}
	if !found {
		uc.log.Debug().Str("company_id", filter.CompanyID).Msg("reporte no encontrado en caché")
		return nil
	}
	report.Cached = true
	return report
}

// fetch consulta salidas y (si withStock) stock actual en paralelo (llamadas independientes).
func (uc *AnalyticsUseCase) fetch(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	withStock bool,
) ([]entity.Saida, []entity.StockLevel, error) {
	type saidasResult struct {
		rows []entity.Saida
		err  error
	}
	type stockResult struct {
		rows []entity.StockLevel
		err  error
	}

	saidasChan := make(chan saidasResult, 1)
	stockChan := make(chan stockResult, 1)

	go func() {
		rows, err := uc.repo.ListSaidas(ctx, companyID, start, end)
		saidasChan <- saidasResult{rows, err}
	}()
	if withStock {
		go func() {
			rows, err := uc.repo.ListStockLevels(ctx, companyID)
			stockChan <- stockResult{rows, err}
		}()
	} else {
		stockChan <- stockResult{}
	}

	saidasRes := <-saidasChan
	stockRes := <-stockChan

	if saidasRes.err != nil {
		return nil, nil, fmt.Errorf("analytics: salidas: %w", saidasRes.err)
	}
	if stockRes.err != nil {
		return nil, nil, fmt.Errorf("analytics: stock: %w", stockRes.err)
	}
	return saidasRes.rows, stockRes.rows, nil
}

// engineConfig aplica los límites ABC de la petición sobre los configurados.
func (uc *AnalyticsUseCase) engineConfig(limitA, limitB float64) (analytics.Config, error) {
	cfg := uc.cfg
	if cfg.Pareto.A <= 0 {
		cfg.Pareto.A = analytics.DefaultLimitA
	}
	if cfg.Pareto.B <= 0 {
		cfg.Pareto.B = analytics.DefaultLimitB
	}
	if limitA > 0 {
		cfg.Pareto.A = limitA
	}
	if limitB > 0 {
		cfg.Pareto.B = limitB
	}
	if cfg.Pareto.A > 100 || cfg.Pareto.B > 100 || cfg.Pareto.A > cfg.Pareto.B {
		return analytics.Config{}, fmt.Errorf("%w: limit_a (%.2f) y limit_b (%.2f) deben cumplir 0 < A <= B <= 100",
			domain.ErrInvalidInput, cfg.Pareto.A, cfg.Pareto.B)
	}
	return cfg, nil
}

// parsePeriod convierte los strings de fecha en time.Time; aplica valores por defecto si están vacíos.
// Sin end_date el período termina ahora; sin start_date empieza periodDays-1 días antes del fin.
func (uc *AnalyticsUseCase) parsePeriod(startStr, endStr string) (period dto.PeriodDTO, start, end time.Time, err error) {
	now := uc.now()

	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, now.Location())
		if err != nil {
			return dto.PeriodDTO{}, time.Time{}, time.Time{}, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidPeriod, err)
		}
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second) // inclusive hasta el final del día
	}

	if startStr == "" {
		y, m, d := end.Date()
		start = time.Date(y, m, d-(uc.periodDays-1), 0, 0, 0, 0, end.Location())
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, now.Location())
		if err != nil {
			return dto.PeriodDTO{}, time.Time{}, time.Time{}, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidPeriod, err)
		}
	}

	if start.After(end) {
		return dto.PeriodDTO{}, time.Time{}, time.Time{},
			fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidPeriod)
	}

	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return dto.PeriodDTO{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Days:      days,
	}, start, end, nil
}

func clampTopN(n int) int {
	if n <= 0 {
		return defaultTopN
	}
	if n > maxTopN {
		return maxTopN
	}
	return n
}

// newReportID identificador del reporte para trazabilidad (QR del PDF, logs).
func newReportID() string {
	return uuid.NewString()
}
