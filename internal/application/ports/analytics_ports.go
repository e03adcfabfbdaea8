package ports

import (
	"context"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
)

// ReportCache guarda reportes ya calculados por filtro. Las implementaciones deben ser
// seguras para uso concurrente. Un fallo de la caché nunca debe impedir calcular el reporte.
type ReportCache interface {
	// Get devuelve (reporte, true, nil) si hay un reporte vigente para el filtro.
	Get(ctx context.Context, filter dto.ReportFilter) (*dto.AnalyticsReportDTO, bool, error)
	// Set guarda el reporte con el TTL configurado.
	Set(ctx context.Context, filter dto.ReportFilter, report *dto.AnalyticsReportDTO) error
	// InvalidateCompany elimina los reportes de una empresa (tras cargar salidas nuevas).
	InvalidateCompany(ctx context.Context, companyID string) error
}

// RiskReportRenderer genera el documento imprimible del reporte de riesgo.
type RiskReportRenderer interface {
	RenderRiskReport(report *dto.AnalyticsReportDTO) ([]byte, error)
}
