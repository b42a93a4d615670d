// Package ledger implementa la aritmética pura del costo promedio ponderado
// (servicio de dominio, sin efectos secundarios). Toda la acumulación se hace
// en decimal con precisión completa; el redondeo (half-even) se aplica solo en
// la frontera de presentación con RoundMoney.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// DefaultMoneyDigits dígitos fraccionarios por defecto al presentar montos.
const DefaultMoneyDigits = 2

// blend recalcula el promedio ponderado al sumar deltaQty unidades a
// deltaPrice sobre una posición de curQty unidades a curAvg.
// NuevoPromedio = (curQty*curAvg + deltaQty*deltaPrice) / (curQty+deltaQty)
// deltaQty puede ser negativo (reversión de una entrada): en ese caso se
// retira exactamente la contribución de esa entrada a la suma ponderada.
func blend(curQty, curAvg, deltaQty, deltaPrice decimal.Decimal) decimal.Decimal {
	sum := curQty.Add(deltaQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := curQty.Mul(curAvg).Add(deltaQty.Mul(deltaPrice))
	return num.Div(sum)
}

// ApplyReceipt incorpora una entrada de qty unidades a la posición,
// recalculando ambos promedios (antes y después de impuesto) de forma
// independiente.
func ApplyReceipt(pos entity.Position, qty int64, unitPrice, unitPriceAfterTax decimal.Decimal) entity.Position {
	dq := decimal.NewFromInt(qty)
	next := pos
	next.AvgPriceBeforeTax = blend(pos.Qty(), pos.AvgPriceBeforeTax, dq, unitPrice)
	next.AvgPriceAfterTax = blend(pos.Qty(), pos.AvgPriceAfterTax, dq, unitPriceAfterTax)
	next.TotalQuantity = pos.TotalQuantity + qty
	return next
}

// ApplyShipment descuenta qty unidades. Los promedios no cambian: una salida
// nunca altera la base de costo. Falla con ErrInsufficientStock si qty supera
// la cantidad disponible.
func ApplyShipment(pos entity.Position, qty int64) (entity.Position, error) {
	if qty > pos.TotalQuantity {
		return pos, domain.ErrInsufficientStock
	}
	next := pos
	next.TotalQuantity = pos.TotalQuantity - qty
	return next, nil
}

// ReverseReceipt deshace una entrada tratándola como una entrada de -qty al
// precio ORIGINAL registrado, lo que retira su contribución exacta de la suma
// ponderada. Es la inversa algebraica de ApplyReceipt con los mismos
// qty/precios. Falla con ErrInvalidReversal si la cantidad quedaría negativa
// o en cero: una posición en cero por reversión no debe persistir, el caller
// elimina la fila.
func ReverseReceipt(pos entity.Position, qty int64, unitPrice, unitPriceAfterTax decimal.Decimal) (entity.Position, error) {
	newQty := pos.TotalQuantity - qty
	if newQty <= 0 {
		return pos, domain.ErrInvalidReversal
	}
	dq := decimal.NewFromInt(qty).Neg()
	next := pos
	next.AvgPriceBeforeTax = blend(pos.Qty(), pos.AvgPriceBeforeTax, dq, unitPrice)
	next.AvgPriceAfterTax = blend(pos.Qty(), pos.AvgPriceAfterTax, dq, unitPriceAfterTax)
	next.TotalQuantity = newQty
	return next, nil
}

// ReverseShipment deshace una salida reincorporando qty unidades al costo
// registrado en la propia salida (la foto tomada al despachar), NO al promedio
// vigente. Usa la misma fórmula de promedio ponderado que una entrada: así la
// posición recupera exactamente la base de costo que la salida retiró.
// No se deriva una "tasa de impuesto" dividiendo las fotos (división por cero
// cuando el costo antes de impuesto es cero); se blend directo en cada base.
func ReverseShipment(pos entity.Position, qty int64, costBeforeTax, costAfterTax decimal.Decimal) entity.Position {
	dq := decimal.NewFromInt(qty)
	next := pos
	next.AvgPriceBeforeTax = blend(pos.Qty(), pos.AvgPriceBeforeTax, dq, costBeforeTax)
	next.AvgPriceAfterTax = blend(pos.Qty(), pos.AvgPriceAfterTax, dq, costAfterTax)
	next.TotalQuantity = pos.TotalQuantity + qty
	return next
}

// RoundMoney redondea un monto a digits decimales con banker's rounding
// (half-even). Solo para presentación; nunca se redondea el acumulado interno.
func RoundMoney(d decimal.Decimal, digits int32) decimal.Decimal {
	return d.RoundBank(digits)
}
