package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domledger "github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var oneHundred = decimal.NewFromInt(100)

// UseCase orquesta las cuatro operaciones del libro de inventario de forma
// transaccional (entrada, salida y sus reversiones) con bloqueo de fila
// (SELECT FOR UPDATE) sobre la posición y Commit/Rollback. Es el único
// componente que escribe posiciones.
type UseCase struct {
	txRunner     TxRunner
	receiptRepo  repository.ReceiptRepository
	shipmentRepo repository.ShipmentRepository
	positionRepo repository.PositionRepository
}

// NewUseCase construye el caso de uso. Los repos sueltos (atados al pool) se
// usan solo para lecturas; toda mutación pasa por el txRunner.
func NewUseCase(
	txRunner TxRunner,
	receiptRepo repository.ReceiptRepository,
	shipmentRepo repository.ShipmentRepository,
	positionRepo repository.PositionRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		receiptRepo:  receiptRepo,
		shipmentRepo: shipmentRepo,
		positionRepo: positionRepo,
	}
}

// ReceiptInput entrada para RecordReceipt. Los identificadores se normalizan
// dentro de la operación; EntryDate en cero = fecha del servidor.
type ReceiptInput struct {
	Store      string
	ItemNo     string
	ItemName   string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TaxRatePct decimal.Decimal
	EntryDate  time.Time
}

// ShipmentInput entrada para RecordShipment.
type ShipmentInput struct {
	Store     string
	ItemNo    string
	ItemName  string
	Quantity  int64
	Personnel string
	EntryDate time.Time
}

// RecordReceipt registra una entrada: valida, calcula el precio con impuesto,
// anota el log y blend-ea la posición (creándola en la primera entrada del
// artículo). Devuelve la posición resultante.
func (uc *UseCase) RecordReceipt(ctx context.Context, input ReceiptInput) (*entity.Position, error) {
	key := entity.NewPositionKey(input.Store, input.ItemNo, input.ItemName)
	if key.Store == "" || key.ItemNo == "" || key.ItemName == "" {
		return nil, domain.ErrValidation
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrValidation
	}
	if input.UnitPrice.IsNegative() || input.TaxRatePct.IsNegative() {
		return nil, domain.ErrValidation
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	// precio_con_impuesto = precio * (1 + tasa/100); solo en este instante los
	// dos precios guardan la relación exacta de la tasa.
	afterTax := input.UnitPrice.Mul(decimal.NewFromInt(1).Add(input.TaxRatePct.Div(oneHundred)))

	receipt := &entity.Receipt{
		ID:                uuid.New().String(),
		Store:             key.Store,
		ItemNo:            key.ItemNo,
		ItemName:          key.ItemName,
		Quantity:          input.Quantity,
		UnitPrice:         input.UnitPrice,
		TaxRatePct:        input.TaxRatePct,
		UnitPriceAfterTax: afterTax,
		EntryDate:         entryDate,
	}

	var result *entity.Position
	err := uc.txRunner.Run(ctx, func(
		receiptRepo repository.ReceiptRepository,
		_ repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error {
		pos, err := positionRepo.GetForUpdate(key)
		if err != nil {
			return err
		}
		if pos == nil {
			pos = &entity.Position{Key: key}
		}
		next := domledger.ApplyReceipt(*pos, input.Quantity, input.UnitPrice, afterTax)
		next.UpdatedAt = entryDate
		if err := positionRepo.Upsert(&next); err != nil {
			return err
		}
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordShipment registra una salida: verifica stock, congela la foto del
// costo promedio vigente en el registro de salida y descuenta la posición.
// Una salida que deja la posición en cero NO elimina la fila: el último costo
// promedio queda disponible para consulta.
func (uc *UseCase) RecordShipment(ctx context.Context, input ShipmentInput) (*entity.Position, error) {
	key := entity.NewPositionKey(input.Store, input.ItemNo, input.ItemName)
	personnel := entity.NormalizeField(input.Personnel)
	if key.Store == "" || key.ItemNo == "" || key.ItemName == "" || personnel == "" {
		return nil, domain.ErrValidation
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrValidation
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	var result *entity.Position
	err := uc.txRunner.Run(ctx, func(
		_ repository.ReceiptRepository,
		shipmentRepo repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error {
		pos, err := positionRepo.GetForUpdate(key)
		if err != nil {
			return err
		}
		if pos == nil {
			return domain.ErrItemNotFound
		}
		next, err := domledger.ApplyShipment(*pos, input.Quantity)
		if err != nil {
			return err
		}
		// Foto del costo en el momento del despacho; nunca se recalcula.
		shipment := &entity.Shipment{
			ID:            uuid.New().String(),
			Store:         key.Store,
			ItemNo:        key.ItemNo,
			ItemName:      key.ItemName,
			Quantity:      input.Quantity,
			CostBeforeTax: pos.AvgPriceBeforeTax,
			CostAfterTax:  pos.AvgPriceAfterTax,
			Personnel:     personnel,
			EntryDate:     entryDate,
		}
		if err := shipmentRepo.Create(shipment); err != nil {
			return err
		}
		next.UpdatedAt = entryDate
		if err := positionRepo.Upsert(&next); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteReceipt revierte una entrada. Si salidas posteriores ya consumieron
// parte de ese stock la reversión se rechaza (ErrStillShipped). Si la entrada
// es el único stock restante, la posición se elimina por completo en lugar de
// dejar una fila en cero. Devuelve la posición resultante, o nil si la fila
// fue eliminada.
func (uc *UseCase) DeleteReceipt(ctx context.Context, receiptID string) (*entity.Position, error) {
	var result *entity.Position
	err := uc.txRunner.Run(ctx, func(
		receiptRepo repository.ReceiptRepository,
		_ repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error {
		receipt, err := receiptRepo.GetByID(receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		key := receipt.Key()
		pos, err := positionRepo.GetForUpdate(key)
		if err != nil {
			return err
		}
		if pos == nil {
			return domain.ErrItemNotFound
		}
		if pos.TotalQuantity < receipt.Quantity {
			return domain.ErrStillShipped
		}
		if pos.TotalQuantity == receipt.Quantity {
			// Última entrada viva del artículo: volver al estado prístino.
			if err := positionRepo.Delete(key); err != nil {
				return err
			}
			return receiptRepo.Delete(receiptID)
		}
		next, err := domledger.ReverseReceipt(*pos, receipt.Quantity, receipt.UnitPrice, receipt.UnitPriceAfterTax)
		if err != nil {
			return err
		}
		next.UpdatedAt = time.Now()
		if err := positionRepo.Upsert(&next); err != nil {
			return err
		}
		if err := receiptRepo.Delete(receiptID); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteShipment revierte una salida reincorporando el stock al costo de la
// foto registrada en la propia salida (no al promedio vigente). Si la
// posición ya no existe (todo el stock posterior fue revertido) la fila se
// vuelve a crear.
func (uc *UseCase) DeleteShipment(ctx context.Context, shipmentID string) (*entity.Position, error) {
	var result *entity.Position
	err := uc.txRunner.Run(ctx, func(
		_ repository.ReceiptRepository,
		shipmentRepo repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error {
		shipment, err := shipmentRepo.GetByID(shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		key := shipment.Key()
		pos, err := positionRepo.GetForUpdate(key)
		if err != nil {
			return err
		}
		if pos == nil {
			pos = &entity.Position{Key: key}
		}
		next := domledger.ReverseShipment(*pos, shipment.Quantity, shipment.CostBeforeTax, shipment.CostAfterTax)
		next.UpdatedAt = time.Now()
		if err := positionRepo.Upsert(&next); err != nil {
			return err
		}
		if err := shipmentRepo.Delete(shipmentID); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPosition lectura puntual para mostrar; normaliza la clave igual que las
// mutaciones. ErrItemNotFound si no existe.
func (uc *UseCase) GetPosition(_ context.Context, store, itemNo, itemName string) (*entity.Position, error) {
	key := entity.NewPositionKey(store, itemNo, itemName)
	pos, err := uc.positionRepo.Get(key)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, domain.ErrItemNotFound
	}
	return pos, nil
}

// ListPositions lista el agregado completo para mostrar/exportar.
func (uc *UseCase) ListPositions(_ context.Context) ([]*entity.Position, error) {
	return uc.positionRepo.List()
}

// ListReceipts lista el log de entradas, más reciente primero.
func (uc *UseCase) ListReceipts(_ context.Context, limit, offset int) ([]*entity.Receipt, error) {
	return uc.receiptRepo.List(limit, offset)
}

// ListShipments lista el log de salidas, más reciente primero.
func (uc *UseCase) ListShipments(_ context.Context, limit, offset int) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.List(limit, offset)
}
