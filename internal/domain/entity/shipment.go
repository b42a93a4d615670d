package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment es una salida de mercancía. CostBeforeTax y CostAfterTax son la
// foto del costo promedio de la posición en el momento del despacho; nunca se
// recalculan aunque entradas posteriores muevan el promedio.
type Shipment struct {
	ID            string
	Store         string
	ItemNo        string
	ItemName      string
	Quantity      int64 // siempre > 0
	CostBeforeTax decimal.Decimal
	CostAfterTax  decimal.Decimal
	Personnel     string // responsable/destino del despacho
	EntryDate     time.Time
}

// Key devuelve la clave de posición de la salida.
func (s Shipment) Key() PositionKey {
	return NewPositionKey(s.Store, s.ItemNo, s.ItemName)
}
