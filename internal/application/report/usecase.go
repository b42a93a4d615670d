// Package report implementa el proyector de solo lectura sobre el log de
// salidas: agrega cantidades y costos (a la foto de cada despacho) por
// artículo, con filtros tipados. No muta posiciones ni logs.
package report

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// UseCase consultas de reporte y snapshots completos para exportación.
type UseCase struct {
	reportRepo   repository.ReportRepository
	receiptRepo  repository.ReceiptRepository
	shipmentRepo repository.ShipmentRepository
	positionRepo repository.PositionRepository
}

// NewUseCase construye el proyector.
func NewUseCase(
	reportRepo repository.ReportRepository,
	receiptRepo repository.ReceiptRepository,
	shipmentRepo repository.ShipmentRepository,
	positionRepo repository.PositionRepository,
) *UseCase {
	return &UseCase{
		reportRepo:   reportRepo,
		receiptRepo:  receiptRepo,
		shipmentRepo: shipmentRepo,
		positionRepo: positionRepo,
	}
}

// Aggregate agrupa las salidas que cumplen todos los filtros presentes por
// (tienda, código, nombre), sumando cantidad y cantidad*foto en ambas bases.
// Los filtros se normalizan igual que las claves: el filtro construido desde
// un dropdown con otra caja encuentra las mismas filas.
func (uc *UseCase) Aggregate(ctx context.Context, filter repository.ReportFilter) ([]repository.ShipmentAggregate, error) {
	filter.Personnel = entity.NormalizeField(filter.Personnel)
	filter.Store = entity.NormalizeField(filter.Store)
	filter.ItemNo = entity.NormalizeField(filter.ItemNo)
	filter.ItemName = entity.NormalizeField(filter.ItemName)
	return uc.reportRepo.Aggregate(ctx, filter)
}

// Personnel responsables distintos del log de salidas (fuente del dropdown).
func (uc *UseCase) Personnel(ctx context.Context) ([]string, error) {
	return uc.reportRepo.DistinctPersonnel(ctx)
}

// Items códigos y nombres conocidos, para los dropdowns de filtro.
func (uc *UseCase) Items(ctx context.Context) (itemNos, itemNames []string, err error) {
	return uc.reportRepo.DistinctItems(ctx)
}

// Snapshot lecturas de tabla completa para el exportador de hojas de cálculo.
// Lectura pura: ninguna lógica del libro corre aquí.
type Snapshot struct {
	Receipts  []*entity.Receipt
	Shipments []*entity.Shipment
	Positions []*entity.Position
}

// FullSnapshot devuelve las tres relaciones completas.
func (uc *UseCase) FullSnapshot(ctx context.Context) (*Snapshot, error) {
	receipts, err := uc.receiptRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	shipments, err := uc.shipmentRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	positions, err := uc.positionRepo.List()
	if err != nil {
		return nil, err
	}
	return &Snapshot{Receipts: receipts, Shipments: shipments, Positions: positions}, nil
}
