package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// OperatorRepository define el puerto de los operadores del almacén (login).
type OperatorRepository interface {
	// GetByUsername devuelve nil si no existe.
	GetByUsername(username string) (*entity.Operator, error)
	Create(op *entity.Operator) error
}
