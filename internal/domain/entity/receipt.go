package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt es una entrada de mercancía al almacén. Inmutable una vez
// registrada; solo se elimina vía reversión explícita (DeleteReceipt).
type Receipt struct {
	ID                string
	Store             string
	ItemNo            string
	ItemName          string
	Quantity          int64 // siempre > 0
	UnitPrice         decimal.Decimal
	TaxRatePct        decimal.Decimal // porcentaje, ej. 10 = 10%
	UnitPriceAfterTax decimal.Decimal // UnitPrice * (1 + TaxRatePct/100)
	EntryDate         time.Time
}

// Key devuelve la clave de posición de la entrada.
func (r Receipt) Key() PositionKey {
	return NewPositionKey(r.Store, r.ItemNo, r.ItemName)
}
