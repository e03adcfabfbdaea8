package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/application/usecase"
	infrapdf "github.com/jhoicas/Inventario-epi/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-epi/internal/infrastructure/postgres"
)

func runDBReport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if url := c.String("db-url"); url != "" {
		cfg.DB.DatabaseURL = url
	}
	log := newLogger(c, cfg.App.Env)

	pool, err := postgres.NewPool(c.Context, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	renderer := infrapdf.NewRiskReportPDF(cfg.App.Name)
	uc := usecase.NewAnalyticsUseCase(postgres.NewAnalyticsRepository(pool), usecase.AnalyticsOptions{
		Renderer:   renderer,
		Config:     usecase.EngineConfigFrom(cfg.Analytics),
		PeriodDays: cfg.Analytics.DefaultPeriodDays,
		Logger:     log.Named("analytics"),
	})

	report, err := uc.GetReport(c.Context, c.String("company"), dto.AnalyticsReportRequest{
		StartDate: c.String("start"),
		EndDate:   c.String("end"),
		Termo:     c.String("term"),
		TopN:      c.Int("top"),
	})
	if err != nil {
		return err
	}

	if err := writeOutputs(c, report, renderer); err != nil {
		return err
	}
	log.Info().
		Str("company_id", c.String("company")).
		Str("start", report.Period.StartDate).
		Str("end", report.Period.EndDate).
		Int("itens_criticos", report.Resumo.ItensCriticos).
		Msg("reporte generado")
	return nil
}
