package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
)

// LedgerHandler expone las cuatro operaciones del libro y los listados.
type LedgerHandler struct {
	uc          *ledger.UseCase
	moneyDigits int32
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, moneyDigits int32) *LedgerHandler {
	return &LedgerHandler{uc: uc, moneyDigits: moneyDigits}
}

// CreateReceipt POST /api/receipts. Devuelve la posición resultante.
func (h *LedgerHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.RecordReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pos, err := h.uc.RecordReceiptFromRequest(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPositionResponse(pos, h.moneyDigits))
}

// CreateShipment POST /api/shipments. Devuelve la posición resultante.
func (h *LedgerHandler) CreateShipment(c *fiber.Ctx) error {
	var in dto.RecordShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pos, err := h.uc.RecordShipmentFromRequest(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPositionResponse(pos, h.moneyDigits))
}

// DeleteReceipt DELETE /api/receipts/:id. Revierte la entrada; cuando la
// reversión elimina la fila de posición el cuerpo es 204 sin contenido.
func (h *LedgerHandler) DeleteReceipt(c *fiber.Ctx) error {
	pos, err := h.uc.DeleteReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if pos == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.NewPositionResponse(pos, h.moneyDigits))
}

// DeleteShipment DELETE /api/shipments/:id. Revierte la salida al costo de la
// foto registrada y devuelve la posición restaurada.
func (h *LedgerHandler) DeleteShipment(c *fiber.Ctx) error {
	pos, err := h.uc.DeleteShipment(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.NewPositionResponse(pos, h.moneyDigits))
}

// GetPosition GET /api/positions/one?store=&item_no=&item_name=.
func (h *LedgerHandler) GetPosition(c *fiber.Ctx) error {
	pos, err := h.uc.GetPosition(c.Context(), c.Query("store"), c.Query("item_no"), c.Query("item_name"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.NewPositionResponse(pos, h.moneyDigits))
}

// ListPositions GET /api/positions. Todo el agregado, ordenado por clave.
func (h *LedgerHandler) ListPositions(c *fiber.Ctx) error {
	positions, err := h.uc.ListPositions(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, dto.NewPositionResponse(p, h.moneyDigits))
	}
	return c.JSON(out)
}

// ListReceipts GET /api/receipts?limit=&offset=.
func (h *LedgerHandler) ListReceipts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	receipts, err := h.uc.ListReceipts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, dto.NewReceiptResponse(r, h.moneyDigits))
	}
	return c.JSON(out)
}

// ListShipments GET /api/shipments?limit=&offset=.
func (h *LedgerHandler) ListShipments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	shipments, err := h.uc.ListShipments(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, dto.NewShipmentResponse(s, h.moneyDigits))
	}
	return c.JSON(out)
}
