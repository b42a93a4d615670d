package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del log de salidas sobre PostgreSQL
// (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `id, store, item_no, item_name, quantity, cost_before_tax, cost_after_tax, personnel, entry_date`

// Create persiste una salida con su foto de costo.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		shipment.ID, shipment.Store, shipment.ItemNo, shipment.ItemName,
		shipment.Quantity, shipment.CostBeforeTax, shipment.CostAfterTax,
		shipment.Personnel, shipment.EntryDate,
	)
	if err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}
	return nil
}

// GetByID obtiene una salida por ID; nil si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Store, &s.ItemNo, &s.ItemName,
		&s.Quantity, &s.CostBeforeTax, &s.CostAfterTax,
		&s.Personnel, &s.EntryDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// Delete elimina una salida del log (solo vía reversión del Ledger).
func (r *ShipmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

// List lista salidas, más reciente primero. limit <= 0 lista todo.
func (r *ShipmentRepo) List(limit, offset int) ([]*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments ORDER BY entry_date DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(
			&s.ID, &s.Store, &s.ItemNo, &s.ItemName,
			&s.Quantity, &s.CostBeforeTax, &s.CostAfterTax,
			&s.Personnel, &s.EntryDate,
		); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
