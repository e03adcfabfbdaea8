package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/application/usecase"
	"github.com/jhoicas/Inventario-epi/internal/domain/analytics"
	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
	infrapdf "github.com/jhoicas/Inventario-epi/internal/infrastructure/pdf"
)

const dateLayout = "2006-01-02"

// reportOptions parámetros del reporte offline.
type reportOptions struct {
	Days   int
	Termo  string
	TopN   int
	Config analytics.Config
	Now    time.Time
}

func runReport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg.App.Env)

	saidas, err := readSaidas(c.String("input"))
	if err != nil {
		return err
	}
	var stock []entity.StockLevel
	if path := c.String("stock"); path != "" {
		if stock, err = readStock(path); err != nil {
			return err
		}
	}
	log.Info().Int("saidas", len(saidas)).Int("stock", len(stock)).Msg("datos cargados")

	report := buildOfflineReport(saidas, stock, reportOptions{
		Days:   c.Int("days"),
		Termo:  c.String("term"),
		TopN:   c.Int("top"),
		Config: usecase.EngineConfigFrom(cfg.Analytics),
		Now:    time.Now(),
	})

	if err := writeOutputs(c, report, infrapdf.NewRiskReportPDF(cfg.App.Name)); err != nil {
		return err
	}
	log.Info().
		Str("report_id", report.ReportID).
		Int("materiais", report.Resumo.MateriaisDistintos).
		Int("itens_criticos", report.Resumo.ItensCriticos).
		Msg("reporte generado")
	return nil
}

// buildOfflineReport ejecuta el motor sobre datos ya cargados.
func buildOfflineReport(saidas []entity.Saida, stock []entity.StockLevel, opts reportOptions) *dto.AnalyticsReportDTO {
	period := periodFromSaidas(saidas, opts.Days)
	r := analytics.Analyze(analytics.AnalysisInput{
		Saidas:      saidas,
		Estoque:     stock,
		DiasPeriodo: period.Days,
		Termo:       opts.Termo,
		TopN:        opts.TopN,
	}, opts.Config)
	return usecase.NewReportDTO(r, period, opts.Now)
}

// periodFromSaidas deriva el período de las fechas de entrega. days > 0 fija la duración.
func periodFromSaidas(saidas []entity.Saida, days int) dto.PeriodDTO {
	var first, last time.Time
	for _, s := range saidas {
		if s.DataEntrega.IsZero() {
			continue
		}
		if first.IsZero() || s.DataEntrega.Before(first) {
			first = s.DataEntrega
		}
		if s.DataEntrega.After(last) {
			last = s.DataEntrega
		}
	}

	period := dto.PeriodDTO{Days: days}
	if !first.IsZero() {
		period.StartDate = first.Format(dateLayout)
		period.EndDate = last.Format(dateLayout)
		if days <= 0 {
			// días calendario inclusivos
			period.Days = int(math.Floor(truncDay(last).Sub(truncDay(first)).Hours()/24)) + 1
		}
	}
	if period.Days < 1 {
		period.Days = 1
	}
	return period
}

func truncDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ── lectura / escritura ──────────────────────────────────────────────────────

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	return f, nil
}

func readSaidas(path string) ([]entity.Saida, error) {
	rc, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return decodeSaidas(rc)
}

func readStock(path string) ([]entity.StockLevel, error) {
	rc, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return decodeStock(rc)
}

// decodeSaidas acepta un arreglo JSON o un objeto {"saidas": [...]}.
func decodeSaidas(r io.Reader) ([]entity.Saida, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer salidas: %w", err)
	}
	var list []entity.Saida
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Saidas []entity.Saida `json:"saidas"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decodificar salidas: %w", err)
	}
	return wrapped.Saidas, nil
}

func decodeStock(r io.Reader) ([]entity.StockLevel, error) {
	var list []entity.StockLevel
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decodificar stock: %w", err)
	}
	return list, nil
}

type riskRenderer interface {
	RenderRiskReport(*dto.AnalyticsReportDTO) ([]byte, error)
}

// writeOutputs escribe el JSON (stdout u --output) y, con --pdf, el PDF de riesgo.
func writeOutputs(c *cli.Context, report *dto.AnalyticsReportDTO, renderer riskRenderer) error {
	out := io.Writer(os.Stdout)
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("crear %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	if err := writeJSON(out, report); err != nil {
		return err
	}

	if path := c.String("pdf"); path != "" {
		pdf, err := renderer.RenderRiskReport(report)
		if err != nil {
			return fmt.Errorf("generar pdf: %w", err)
		}
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", path, err)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("escribir json: %w", err)
	}
	return nil
}
