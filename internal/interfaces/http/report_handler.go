package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/report"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/infrastructure/excel"
	"github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
)

// ReportHandler reporte de salidas filtrado, catálogos para dropdowns y
// exportación del libro completo.
type ReportHandler struct {
	uc          *report.UseCase
	pdfGen      *pdf.ReportPDFGenerator
	exporter    *excel.Exporter
	moneyDigits int32
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, pdfGen *pdf.ReportPDFGenerator, exporter *excel.Exporter, moneyDigits int32) *ReportHandler {
	return &ReportHandler{uc: uc, pdfGen: pdfGen, exporter: exporter, moneyDigits: moneyDigits}
}

func (h *ReportHandler) parseFilter(c *fiber.Ctx) (repository.ReportFilter, error) {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return repository.ReportFilter{}, err
	}
	return repository.ReportFilter{
		Personnel: q.Personnel,
		Store:     q.Store,
		ItemNo:    q.ItemNo,
		ItemName:  q.ItemName,
	}, nil
}

// ShipmentReport GET /api/reports/shipments. Agrega las salidas que cumplen
// todos los filtros presentes, por artículo.
func (h *ReportHandler) ShipmentReport(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	rows, err := h.uc.Aggregate(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ReportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewReportRowResponse(row, h.moneyDigits))
	}
	return c.JSON(out)
}

// ShipmentReportPDF GET /api/reports/shipments/pdf. El mismo agregado,
// renderizado como documento descargable.
func (h *ReportHandler) ShipmentReportPDF(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	// El PDF muestra los filtros ya normalizados, igual que los usó la consulta.
	filter.Personnel = entity.NormalizeField(filter.Personnel)
	filter.Store = entity.NormalizeField(filter.Store)
	filter.ItemNo = entity.NormalizeField(filter.ItemNo)
	filter.ItemName = entity.NormalizeField(filter.ItemName)

	rows, err := h.uc.Aggregate(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	doc, err := h.pdfGen.GenerateShipmentReport(filter, rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	filename := fmt.Sprintf("reporte-salidas-%s.pdf", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(doc)
}

// Personnel GET /api/reports/personnel. Responsables distintos del log.
func (h *ReportHandler) Personnel(c *fiber.Ctx) error {
	names, err := h.uc.Personnel(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(names)
}

// Items GET /api/reports/items. Códigos y nombres conocidos.
func (h *ReportHandler) Items(c *fiber.Ctx) error {
	itemNos, itemNames, err := h.uc.Items(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"item_nos": itemNos, "item_names": itemNames})
}

// Export GET /api/export. Libro completo (entradas, salidas, posiciones) en
// una hoja de cálculo de tres pestañas.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	snap, err := h.uc.FullSnapshot(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	filename := fmt.Sprintf("kardex-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, excel.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return h.exporter.WriteSnapshot(c.Response().BodyWriter(), snap)
}

// ExportTable GET /api/export/:table. Una sola relación (receipts, shipments
// o positions) como hoja de cálculo.
func (h *ReportHandler) ExportTable(c *fiber.Ctx) error {
	table := c.Params("table")
	snap, err := h.uc.FullSnapshot(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	filename := fmt.Sprintf("kardex-%s-%s.xlsx", table, time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, excel.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.exporter.WriteTable(c.Response().BodyWriter(), snap, table); err != nil {
		if errors.Is(err, excel.ErrUnknownTable) {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set(fiber.HeaderContentDisposition, "")
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tabla desconocida: " + table})
		}
		return err
	}
	return nil
}
