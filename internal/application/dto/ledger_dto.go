package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
)

// RecordReceiptRequest body para POST /api/receipts.
// EntryDate opcional: vacío = fecha del servidor (entradas retroactivas la fijan).
type RecordReceiptRequest struct {
	Store      string          `json:"store"`
	ItemNo     string          `json:"item_no"`
	ItemName   string          `json:"item_name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxRatePct decimal.Decimal `json:"tax_rate_pct"`
	EntryDate  *time.Time      `json:"entry_date,omitempty"`
}

// RecordShipmentRequest body para POST /api/shipments.
type RecordShipmentRequest struct {
	Store     string     `json:"store"`
	ItemNo    string     `json:"item_no"`
	ItemName  string     `json:"item_name"`
	Quantity  int64      `json:"quantity"`
	Personnel string     `json:"personnel"`
	EntryDate *time.Time `json:"entry_date,omitempty"`
}

// PositionResponse posición para mostrar: montos redondeados (half-even) a la
// cantidad de dígitos configurada. El acumulado interno nunca se redondea.
type PositionResponse struct {
	Store             string          `json:"store"`
	ItemNo            string          `json:"item_no"`
	ItemName          string          `json:"item_name"`
	TotalQuantity     int64           `json:"total_quantity"`
	AvgPriceBeforeTax decimal.Decimal `json:"avg_price_before_tax"`
	AvgPriceAfterTax  decimal.Decimal `json:"avg_price_after_tax"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewPositionResponse convierte la entidad aplicando el redondeo de presentación.
func NewPositionResponse(p *entity.Position, digits int32) PositionResponse {
	return PositionResponse{
		Store:             p.Key.Store,
		ItemNo:            p.Key.ItemNo,
		ItemName:          p.Key.ItemName,
		TotalQuantity:     p.TotalQuantity,
		AvgPriceBeforeTax: ledger.RoundMoney(p.AvgPriceBeforeTax, digits),
		AvgPriceAfterTax:  ledger.RoundMoney(p.AvgPriceAfterTax, digits),
		UpdatedAt:         p.UpdatedAt,
	}
}

// ReceiptResponse entrada del log para listados y export.
type ReceiptResponse struct {
	ID                string          `json:"id"`
	Store             string          `json:"store"`
	ItemNo            string          `json:"item_no"`
	ItemName          string          `json:"item_name"`
	Quantity          int64           `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TaxRatePct        decimal.Decimal `json:"tax_rate_pct"`
	UnitPriceAfterTax decimal.Decimal `json:"unit_price_after_tax"`
	EntryDate         time.Time       `json:"entry_date"`
}

// NewReceiptResponse convierte la entidad aplicando el redondeo de presentación.
func NewReceiptResponse(r *entity.Receipt, digits int32) ReceiptResponse {
	return ReceiptResponse{
		ID:                r.ID,
		Store:             r.Store,
		ItemNo:            r.ItemNo,
		ItemName:          r.ItemName,
		Quantity:          r.Quantity,
		UnitPrice:         ledger.RoundMoney(r.UnitPrice, digits),
		TaxRatePct:        r.TaxRatePct,
		UnitPriceAfterTax: ledger.RoundMoney(r.UnitPriceAfterTax, digits),
		EntryDate:         r.EntryDate,
	}
}

// ShipmentResponse salida del log; los costos son la foto tomada al despachar.
type ShipmentResponse struct {
	ID            string          `json:"id"`
	Store         string          `json:"store"`
	ItemNo        string          `json:"item_no"`
	ItemName      string          `json:"item_name"`
	Quantity      int64           `json:"quantity"`
	CostBeforeTax decimal.Decimal `json:"cost_before_tax"`
	CostAfterTax  decimal.Decimal `json:"cost_after_tax"`
	Personnel     string          `json:"personnel"`
	EntryDate     time.Time       `json:"entry_date"`
}

// NewShipmentResponse convierte la entidad aplicando el redondeo de presentación.
func NewShipmentResponse(s *entity.Shipment, digits int32) ShipmentResponse {
	return ShipmentResponse{
		ID:            s.ID,
		Store:         s.Store,
		ItemNo:        s.ItemNo,
		ItemName:      s.ItemName,
		Quantity:      s.Quantity,
		CostBeforeTax: ledger.RoundMoney(s.CostBeforeTax, digits),
		CostAfterTax:  ledger.RoundMoney(s.CostAfterTax, digits),
		Personnel:     s.Personnel,
		EntryDate:     s.EntryDate,
	}
}
