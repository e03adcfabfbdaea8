package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-epi/internal/domain/entity"
	"github.com/jhoicas/Inventario-epi/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre salidas de EPI y stock actual.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// ListSaidas devuelve las salidas del período con material, persona, sector y centro unidos.
// Los LEFT JOIN mantienen salidas con catálogo incompleto: el motor resuelve las etiquetas faltantes.
func (r *AnalyticsRepo) ListSaidas(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) ([]entity.Saida, error) {
	const query = `
	SELECT
	    s.id::TEXT,
	    COALESCE(s.material_id::TEXT, '')    AS material_id,
	    s.quantidade,
	    COALESCE(s.status, '')               AS status,
	    COALESCE(s.troca, FALSE)             AS troca,
	    s.data_entrega,
	    COALESCE(m.id::TEXT, '')             AS m_id,
	    COALESCE(m.codigo, '')               AS m_codigo,
	    COALESCE(m.nome, '')                 AS m_nome,
	    COALESCE(m.descricao, '')            AS m_descricao,
	    COALESCE(m.categoria, '')            AS m_categoria,
	    COALESCE(m.fabricante, '')           AS m_fabricante,
	    COALESCE(m.ca, '')                   AS m_ca,
	    m.valor_unitario,
	    m.validade_dias::NUMERIC,
	    m.estoque_minimo,
	    COALESCE(p.id::TEXT, '')             AS pessoa_id,
	    COALESCE(p.nome, '')                 AS pessoa_nome,
	    COALESCE(p.matricula, '')            AS pessoa_matricula,
	    COALESCE(st.id::TEXT, '')            AS setor_id,
	    COALESCE(st.nome, '')                AS setor_nome,
	    COALESCE(cs.id::TEXT, '')            AS centro_servico_id,
	    COALESCE(cs.nome, '')                AS centro_servico_nome,
	    COALESCE(cs.centro_custo, '')        AS centro_custo_nome
	FROM saidas s
	LEFT JOIN materiais        m  ON m.id  = s.material_id
	LEFT JOIN pessoas          p  ON p.id  = s.pessoa_id
	LEFT JOIN setores          st ON st.id = COALESCE(s.setor_id, p.setor_id)
	LEFT JOIN centros_servico  cs ON cs.id = COALESCE(s.centro_servico_id, p.centro_servico_id)
	WHERE s.company_id = $1
	  AND s.data_entrega BETWEEN $2 AND $3
	ORDER BY s.data_entrega, s.id`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListSaidas: %w", err)
	}
	defer rows.Close()

	saidas := make([]entity.Saida, 0)
	for rows.Next() {
		s, err := scanSaida(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.ListSaidas scan: %w", err)
		}
		saidas = append(saidas, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.ListSaidas: %w", err)
	}
	return saidas, nil
}

func scanSaida(row pgx.Row) (entity.Saida, error) {
	var (
		s                                   entity.Saida
		m                                   entity.Material
		quantidade                          decimal.NullDecimal
		valorUnitario, validade, estoqueMin decimal.NullDecimal
	)
	if err := row.Scan(
		&s.ID,
		&s.MaterialID,
		&quantidade,
		&s.Status,
		&s.Troca,
		&s.DataEntrega,
		&m.ID,
		&m.Codigo,
		&m.Nome,
		&m.Descricao,
		&m.Categoria,
		&m.Fabricante,
		&m.CA,
		&valorUnitario,
		&validade,
		&estoqueMin,
		&s.PessoaID,
		&s.PessoaNome,
		&s.PessoaMatricula,
		&s.SetorID,
		&s.SetorNome,
		&s.CentroServicoID,
		&s.CentroServicoNome,
		&s.CentroCustoNome,
	); err != nil {
		return entity.Saida{}, err
	}

	s.Quantidade = toNumber(quantidade)
	m.ValorUnitario = toNumber(valorUnitario)
	m.ValidadeDias = toNumber(validade)
	m.EstoqueMinimo = toNumber(estoqueMin)
	if m.ID != "" {
		s.Material = &m
	}
	return s, nil
}

// stockLevelsQuery suma el stock de todos los almacenes por material.
const stockLevelsQuery = `
	SELECT
	    e.material_id::TEXT,
	    SUM(COALESCE(e.quantidade, 0))                       AS quantidade,
	    MAX(COALESCE(e.estoque_minimo, m.estoque_minimo, 0)) AS estoque_minimo,
	    MAX(COALESCE(e.updated_at, NOW()))                   AS updated_at
	FROM estoque_atual e
	JOIN materiais m ON m.id = e.material_id
	WHERE e.company_id = $1
	GROUP BY e.material_id`

// ListStockLevels devuelve el stock actual (suma de almacenes) y un mínimo por material.
// El mínimo del catálogo que llega con cada salida tiene prioridad; este es el respaldo.
func (r *AnalyticsRepo) ListStockLevels(ctx context.Context, companyID string) ([]entity.StockLevel, error) {
	rows, err := r.pool.Query(ctx, stockLevelsQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListStockLevels: %w", err)
	}
	defer rows.Close()

	levels := make([]entity.StockLevel, 0)
	for rows.Next() {
		var (
			l             entity.StockLevel
			atual, minimo decimal.NullDecimal
		)
		if err := rows.Scan(&l.MaterialKey, &atual, &minimo, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("analytics.ListStockLevels scan: %w", err)
		}
		l.Atual = toNumber(atual)
		l.Minimo = toNumber(minimo)
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// toNumber convierte un NUMERIC nullable; NULL → 0.
func toNumber(d decimal.NullDecimal) entity.Number {
	if !d.Valid {
		return 0
	}
	return entity.Number(d.Decimal.InexactFloat64())
}
