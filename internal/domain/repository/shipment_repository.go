package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia del log de salidas.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	// GetByID devuelve nil si no existe.
	GetByID(id string) (*entity.Shipment, error)
	Delete(id string) error
	List(limit, offset int) ([]*entity.Shipment, error)
}
