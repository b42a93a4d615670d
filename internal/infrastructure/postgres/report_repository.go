package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre el log de salidas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// Aggregate agrupa salidas por (tienda, código, nombre) sumando cantidad y
// cantidad*foto en ambas bases. Los filtros son opcionales y SIEMPRE
// parametrizados: nada del request se interpola en el SQL.
func (r *ReportRepo) Aggregate(ctx context.Context, filter repository.ReportFilter) ([]repository.ShipmentAggregate, error) {
	query := `
		SELECT s.store, s.item_no, s.item_name,
		       SUM(s.quantity)                       AS total_quantity,
		       SUM(s.quantity * s.cost_before_tax)   AS total_cost_before_tax,
		       SUM(s.quantity * s.cost_after_tax)    AS total_cost_after_tax
		FROM shipments s
		WHERE 1=1`
	args := []any{}
	pos := 1
	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		query += fmt.Sprintf(" AND %s = $%d", column, pos)
		args = append(args, value)
		pos++
	}
	addFilter("s.personnel", filter.Personnel)
	addFilter("s.store", filter.Store)
	addFilter("s.item_no", filter.ItemNo)
	addFilter("s.item_name", filter.ItemName)
	query += `
		GROUP BY s.store, s.item_no, s.item_name
		ORDER BY s.store, s.item_no, s.item_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.Aggregate: %w", err)
	}
	defer rows.Close()

	var results []repository.ShipmentAggregate
	for rows.Next() {
		var row repository.ShipmentAggregate
		if err := rows.Scan(
			&row.Store, &row.ItemNo, &row.ItemName,
			&row.TotalQuantity, &row.TotalCostBeforeTax, &row.TotalCostAfterTax,
		); err != nil {
			return nil, fmt.Errorf("report.Aggregate scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DistinctPersonnel responsables distintos del log de salidas.
func (r *ReportRepo) DistinctPersonnel(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT personnel FROM shipments ORDER BY personnel`)
	if err != nil {
		return nil, fmt.Errorf("report.DistinctPersonnel: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("report.DistinctPersonnel scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DistinctItems códigos y nombres conocidos: unión de posiciones y salidas,
// para que los dropdowns incluyan artículos ya revertidos del agregado.
func (r *ReportRepo) DistinctItems(ctx context.Context) (itemNos, itemNames []string, err error) {
	const nosQuery = `
		SELECT DISTINCT item_no FROM positions
		UNION SELECT DISTINCT item_no FROM shipments
		ORDER BY 1`
	const namesQuery = `
		SELECT DISTINCT item_name FROM positions
		UNION SELECT DISTINCT item_name FROM shipments
		ORDER BY 1`

	scanAll := func(query string) ([]string, error) {
		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var out []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return nil, err
			}
			if v != "" {
				out = append(out, v)
			}
		}
		return out, rows.Err()
	}

	if itemNos, err = scanAll(nosQuery); err != nil {
		return nil, nil, fmt.Errorf("report.DistinctItems nos: %w", err)
	}
	if itemNames, err = scanAll(namesQuery); err != nil {
		return nil, nil, fmt.Errorf("report.DistinctItems names: %w", err)
	}
	return itemNos, itemNames, nil
}
