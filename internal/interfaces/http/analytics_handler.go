package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/domain"
	"github.com/jhoicas/Inventario-epi/pkg/logger"
)

// analyticsService es el contrato que necesita el handler.
// Lo implementa *usecase.AnalyticsUseCase.
type analyticsService interface {
	GetReport(ctx context.Context, companyID string, req dto.AnalyticsReportRequest) (*dto.AnalyticsReportDTO, error)
	GetRanking(ctx context.Context, companyID, dimension string, req dto.RankingRequest) (*dto.RankingDTO, error)
	GetRiskPDF(ctx context.Context, companyID string, req dto.AnalyticsReportRequest) ([]byte, error)
	InvalidateCache(ctx context.Context, companyID string) error
}

// AnalyticsHandler maneja los endpoints del análisis de consumo y riesgo de EPI.
type AnalyticsHandler struct {
	uc  analyticsService
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc analyticsService, log *logger.Logger) *AnalyticsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetReport godoc
// @Summary      Reporte de análisis de EPI (curvas ABC, riesgo operacional, rankings)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD). Default: hoy menos el período configurado."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD). Default: hoy."
// @Param        termo       query  string  false  "Filtro de texto de los rankings (sin tildes ni mayúsculas)."
// @Param        top_n       query  int     false  "Máx. filas por ranking (default 10, max 200)."
// @Param        limit_a     query  number  false  "Corte de la clase A en % acumulado (default 80)."
// @Param        limit_b     query  number  false  "Corte de la clase B en % acumulado (default 95)."
// @Success      200  {object}  dto.AnalyticsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var req dto.AnalyticsReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	report, err := h.uc.GetReport(c.Context(), companyID, req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(report)
}

// GetRanking godoc
// @Summary      Ranking de salidas por dimensión
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        dimension   path   string  true   "material | categoria | fabricante | centro_servico | setor | pessoa"
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Param        termo       query  string  false  "Filtro de texto."
// @Param        troca       query  bool    false  "Solo salidas de cambio no canceladas."
// @Param        top_n       query  int     false  "Máx. filas (default 10, max 200)."
// @Success      200  {object}  dto.RankingDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/rankings/{dimension} [get]
func (h *AnalyticsHandler) GetRanking(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var req dto.RankingRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	ranking, err := h.uc.GetRanking(c.Context(), companyID, c.Params("dimension"), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(ranking)
}

// GetRiskPDF godoc
// @Summary      PDF del reporte de riesgo operacional
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio del período (YYYY-MM-DD)."
// @Param        end_date    query  string  false  "Fin del período (YYYY-MM-DD)."
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/risk/pdf [get]
func (h *AnalyticsHandler) GetRiskPDF(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var req dto.AnalyticsReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}

	pdf, err := h.uc.GetRiskPDF(c.Context(), companyID, req)
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="risco-operacional.pdf"`)
	return c.Send(pdf)
}

// InvalidateCache godoc
// @Summary      Descarta los reportes en caché de la empresa
// @Tags         analytics
// @Security     Bearer
// @Success      204
// @Router       /api/analytics/cache [delete]
func (h *AnalyticsHandler) InvalidateCache(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	if err := h.uc.InvalidateCache(c.Context(), companyID); err != nil {
		return h.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func requireCompany(c *fiber.Ctx) (string, bool) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
		return "", false
	}
	return companyID, true
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
	})
}

// writeError traduce errores de dominio a HTTP; el resto es 500 sin detalles internos.
func (h *AnalyticsHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownDimension):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_DIMENSION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Str("company_id", GetCompanyID(c)).Msg("error en analytics")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL_ERROR", Message: "no se pudo generar el análisis",
	})
}
