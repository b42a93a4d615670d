package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.Und)

// NormalizeField limpia un identificador (tienda, código, nombre, responsable):
// recorta espacios y lo lleva a mayúsculas Unicode. Se aplica en TODOS los
// puntos de entrada para que las búsquedas sean insensibles a caja y espacios.
func NormalizeField(s string) string {
	return upperCaser.String(strings.TrimSpace(s))
}

// PositionKey identifica una posición de inventario. El nombre del artículo
// forma parte de la identidad: el mismo código con otro nombre es otra posición.
type PositionKey struct {
	Store    string
	ItemNo   string
	ItemName string
}

// NewPositionKey construye la clave ya normalizada.
func NewPositionKey(store, itemNo, itemName string) PositionKey {
	return PositionKey{
		Store:    NormalizeField(store),
		ItemNo:   NormalizeField(itemNo),
		ItemName: NormalizeField(itemName),
	}
}

// Position es el agregado derivado por artículo: cantidad total y costo
// promedio ponderado antes y después de impuesto. Los dos promedios
// evolucionan de forma independiente; tras varias entradas con tasas
// distintas NO guardan una relación fija de impuesto.
type Position struct {
	Key               PositionKey
	TotalQuantity     int64
	AvgPriceBeforeTax decimal.Decimal
	AvgPriceAfterTax  decimal.Decimal
	UpdatedAt         time.Time
}

// Qty devuelve la cantidad total como decimal para la aritmética de promedios.
func (p Position) Qty() decimal.Decimal {
	return decimal.NewFromInt(p.TotalQuantity)
}
