package ledger

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// RecordReceiptFromRequest adapta el request HTTP al caso de uso
// RecordReceipt(ctx, ReceiptInput). Usar desde handlers HTTP.
func (uc *UseCase) RecordReceiptFromRequest(ctx context.Context, in dto.RecordReceiptRequest) (*entity.Position, error) {
	input := ReceiptInput{
		Store:      in.Store,
		ItemNo:     in.ItemNo,
		ItemName:   in.ItemName,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		TaxRatePct: in.TaxRatePct,
	}
	if in.EntryDate != nil {
		input.EntryDate = *in.EntryDate
	}
	return uc.RecordReceipt(ctx, input)
}

// RecordShipmentFromRequest adapta el request HTTP al caso de uso
// RecordShipment(ctx, ShipmentInput).
func (uc *UseCase) RecordShipmentFromRequest(ctx context.Context, in dto.RecordShipmentRequest) (*entity.Position, error) {
	input := ShipmentInput{
		Store:     in.Store,
		ItemNo:    in.ItemNo,
		ItemName:  in.ItemName,
		Quantity:  in.Quantity,
		Personnel: in.Personnel,
	}
	if in.EntryDate != nil {
		input.EntryDate = *in.EntryDate
	}
	return uc.RecordShipment(ctx, input)
}
