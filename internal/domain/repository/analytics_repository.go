package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
)

// AnalyticsRepository define las consultas de lectura que alimentan el motor de análisis.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// ListSaidas devuelve las salidas de material del período [start, end] con los
	// metadatos del material unidos. Incluye salidas canceladas; el filtrado por
	// estado lo hace el motor donde corresponde.
	ListSaidas(
		ctx context.Context,
		companyID string,
		start, end time.Time,
	) ([]entity.Saida, error)

	// ListStockLevels devuelve la foto actual de stock, una fila por material.
	ListStockLevels(ctx context.Context, companyID string) ([]entity.StockLevel, error)
}
