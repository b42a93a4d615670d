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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación del log de entradas sobre PostgreSQL
// (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, store, item_no, item_name, quantity, unit_price, tax_rate_pct, unit_price_after_tax, entry_date`

// Create persiste una entrada.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Store, receipt.ItemNo, receipt.ItemName,
		receipt.Quantity, receipt.UnitPrice, receipt.TaxRatePct, receipt.UnitPriceAfterTax,
		receipt.EntryDate,
	)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID; nil si no existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	var rec entity.Receipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.Store, &rec.ItemNo, &rec.ItemName,
		&rec.Quantity, &rec.UnitPrice, &rec.TaxRatePct, &rec.UnitPriceAfterTax,
		&rec.EntryDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rec, nil
}

// Delete elimina una entrada del log (solo vía reversión del Ledger).
func (r *ReceiptRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return nil
}

// List lista entradas, más reciente primero. limit <= 0 lista todo.
func (r *ReceiptRepo) List(limit, offset int) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts ORDER BY entry_date DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(
			&rec.ID, &rec.Store, &rec.ItemNo, &rec.ItemName,
			&rec.Quantity, &rec.UnitPrice, &rec.TaxRatePct, &rec.UnitPriceAfterTax,
			&rec.EntryDate,
		); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
