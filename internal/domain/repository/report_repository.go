package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportFilter filtros tipados del reporte de salidas. Campo vacío = sin
// filtro. Los valores llegan ya normalizados (mayúsculas, sin espacios).
type ReportFilter struct {
	Personnel string
	Store     string
	ItemNo    string
	ItemName  string
}

// ShipmentAggregate fila del reporte: totales por (tienda, código, nombre)
// sobre el log de salidas, al costo de la foto de cada despacho.
type ShipmentAggregate struct {
	Store              string
	ItemNo             string
	ItemName           string
	TotalQuantity      int64
	TotalCostBeforeTax decimal.Decimal
	TotalCostAfterTax  decimal.Decimal
}

// ReportRepository define las consultas de solo lectura del reporte.
// Las implementaciones no modifican posiciones ni logs.
type ReportRepository interface {
	// Aggregate agrupa las salidas que cumplen TODOS los filtros presentes.
	Aggregate(ctx context.Context, filter ReportFilter) ([]ShipmentAggregate, error)
	// DistinctPersonnel responsables distintos registrados en salidas.
	DistinctPersonnel(ctx context.Context) ([]string, error)
	// DistinctItems pares (código, nombre) conocidos en posiciones y salidas.
	DistinctItems(ctx context.Context) (itemNos, itemNames []string, err error)
}
