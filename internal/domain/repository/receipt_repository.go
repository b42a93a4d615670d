package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ReceiptRepository define el puerto de persistencia del log de entradas.
// El log es append-only salvo la eliminación explícita vía reversión.
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	// GetByID devuelve nil si no existe.
	GetByID(id string) (*entity.Receipt, error)
	Delete(id string) error
	List(limit, offset int) ([]*entity.Receipt, error)
}
