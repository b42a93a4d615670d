package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación de PositionRepository sobre PostgreSQL
// (usable con pool o tx).
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

const positionColumns = `store, item_no, item_name, total_quantity, avg_price_before_tax, avg_price_after_tax, updated_at`

func scanPosition(row pgx.Row) (*entity.Position, error) {
	var p entity.Position
	err := row.Scan(
		&p.Key.Store, &p.Key.ItemNo, &p.Key.ItemName,
		&p.TotalQuantity, &p.AvgPriceBeforeTax, &p.AvgPriceAfterTax, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get obtiene la posición de un artículo; nil si no existe.
func (r *PositionRepo) Get(key entity.PositionKey) (*entity.Position, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions WHERE store = $1 AND item_no = $2 AND item_name = $3`
	p, err := scanPosition(r.q.QueryRow(context.Background(), query, key.Store, key.ItemNo, key.ItemName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE):
// serializa las operaciones del libro por clave contra despachos concurrentes.
func (r *PositionRepo) GetForUpdate(key entity.PositionKey) (*entity.Position, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions WHERE store = $1 AND item_no = $2 AND item_name = $3
		FOR UPDATE`
	p, err := scanPosition(r.q.QueryRow(context.Background(), query, key.Store, key.ItemNo, key.ItemName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position for update: %w", err)
	}
	return p, nil
}

// Upsert inserta o actualiza la posición por su clave.
func (r *PositionRepo) Upsert(pos *entity.Position) error {
	query := `
		INSERT INTO positions (store, item_no, item_name, total_quantity, avg_price_before_tax, avg_price_after_tax, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (store, item_no, item_name)
		DO UPDATE SET total_quantity = EXCLUDED.total_quantity,
		              avg_price_before_tax = EXCLUDED.avg_price_before_tax,
		              avg_price_after_tax = EXCLUDED.avg_price_after_tax,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		pos.Key.Store, pos.Key.ItemNo, pos.Key.ItemName,
		pos.TotalQuantity, pos.AvgPriceBeforeTax, pos.AvgPriceAfterTax, pos.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert position: %w", err)
	}
	return nil
}

// Delete elimina la fila; solo llega aquí la reversión que agota la posición.
func (r *PositionRepo) Delete(key entity.PositionKey) error {
	query := `DELETE FROM positions WHERE store = $1 AND item_no = $2 AND item_name = $3`
	_, err := r.q.Exec(context.Background(), query, key.Store, key.ItemNo, key.ItemName)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}

// List devuelve todas las posiciones ordenadas por artículo.
func (r *PositionRepo) List() ([]*entity.Position, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions ORDER BY store, item_no, item_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Position
	for rows.Next() {
		var p entity.Position
		if err := rows.Scan(
			&p.Key.Store, &p.Key.ItemNo, &p.Key.ItemName,
			&p.TotalQuantity, &p.AvgPriceBeforeTax, &p.AvgPriceAfterTax, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
