package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ReportQuery filtros del reporte de salidas (query params). Vacío = todos.
type ReportQuery struct {
	Personnel string `query:"personnel"`
	Store     string `query:"store"`
	ItemNo    string `query:"item_no"`
	ItemName  string `query:"item_name"`
}

// ReportRowResponse fila del reporte agregada por artículo.
type ReportRowResponse struct {
	Store              string          `json:"store"`
	ItemNo             string          `json:"item_no"`
	ItemName           string          `json:"item_name"`
	TotalQuantity      int64           `json:"total_quantity"`
	TotalCostBeforeTax decimal.Decimal `json:"total_cost_before_tax"`
	TotalCostAfterTax  decimal.Decimal `json:"total_cost_after_tax"`
}

// NewReportRowResponse convierte la fila cruda aplicando el redondeo de presentación.
func NewReportRowResponse(a repository.ShipmentAggregate, digits int32) ReportRowResponse {
	return ReportRowResponse{
		Store:              a.Store,
		ItemNo:             a.ItemNo,
		ItemName:           a.ItemName,
		TotalQuantity:      a.TotalQuantity,
		TotalCostBeforeTax: ledger.RoundMoney(a.TotalCostBeforeTax, digits),
		TotalCostAfterTax:  ledger.RoundMoney(a.TotalCostAfterTax, digits),
	}
}
