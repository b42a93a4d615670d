package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// PositionRepository define el puerto del agregado de posiciones por
// (tienda, código, nombre). Solo el Ledger escribe aquí; todo lo demás lee.
type PositionRepository interface {
	// Get devuelve la posición o nil si no existe.
	Get(key entity.PositionKey) (*entity.Position, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de
	// una transacción; devuelve nil si no existe.
	GetForUpdate(key entity.PositionKey) (*entity.Position, error)
	Upsert(pos *entity.Position) error
	// Delete solo es válido cuando la posición quedó en cero por reversión.
	Delete(key entity.PositionKey) error
	List() ([]*entity.Position, error)
}
