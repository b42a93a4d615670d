package ledger

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada operación del Ledger corre completa
// dentro de un Run: o se confirman todas sus escrituras o ninguna, de modo
// que logs y posición no pueden quedar desincronizados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		receiptRepo repository.ReceiptRepository,
		shipmentRepo repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error) error
}
