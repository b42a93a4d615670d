// Package excel genera el libro .xlsx con los snapshots completos de las tres
// relaciones (entradas, salidas, posiciones) para render en hoja de cálculo.
// Lectura pura: ninguna lógica del libro de inventario corre aquí.
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/kardex-api/internal/application/report"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
)

// ContentType MIME del formato xlsx, para el header Content-Type.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Tablas exportables individualmente con WriteTable.
const (
	TableReceipts  = "receipts"
	TableShipments = "shipments"
	TablePositions = "positions"
)

// ErrUnknownTable tabla pedida que no existe en el snapshot.
var ErrUnknownTable = errors.New("tabla de exportación desconocida")

const dateLayout = "2006-01-02 15:04:05"

// Exporter escribe snapshots como libro Excel.
type Exporter struct {
	moneyDigits int32
}

// NewExporter construye el exportador con los dígitos de presentación.
func NewExporter(moneyDigits int32) *Exporter {
	return &Exporter{moneyDigits: moneyDigits}
}

// WriteSnapshot escribe un libro con tres hojas: Entradas, Salidas, Posiciones.
func (e *Exporter) WriteSnapshot(w io.Writer, snap *report.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeReceipts(f, snap); err != nil {
		return err
	}
	if err := e.writeShipments(f, snap); err != nil {
		return err
	}
	if err := e.writePositions(f, snap); err != nil {
		return err
	}
	// La hoja por defecto sobra una vez creadas las tres.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("excel: delete default sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel: write workbook: %w", err)
	}
	return nil
}

// WriteTable escribe un libro con la hoja de una sola relación (receipts,
// shipments o positions). ErrUnknownTable si la tabla no existe.
func (e *Exporter) WriteTable(w io.Writer, snap *report.Snapshot, table string) error {
	f := excelize.NewFile()
	defer f.Close()

	var err error
	switch table {
	case TableReceipts:
		err = e.writeReceipts(f, snap)
	case TableShipments:
		err = e.writeShipments(f, snap)
	case TablePositions:
		err = e.writePositions(f, snap)
	default:
		return ErrUnknownTable
	}
	if err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("excel: delete default sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel: write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeReceipts(f *excelize.File, snap *report.Snapshot) error {
	const sheet = "Entradas"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel: new sheet %s: %w", sheet, err)
	}
	headers := []string{"ID", "Tienda", "Código", "Nombre", "Cantidad", "Precio", "Impuesto %", "Precio c/Imp", "Fecha"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, r := range snap.Receipts {
		row := i + 2
		values := []any{
			r.ID, r.Store, r.ItemNo, r.ItemName, r.Quantity,
			ledger.RoundMoney(r.UnitPrice, e.moneyDigits).StringFixed(e.moneyDigits),
			r.TaxRatePct.String(),
			ledger.RoundMoney(r.UnitPriceAfterTax, e.moneyDigits).StringFixed(e.moneyDigits),
			r.EntryDate.Format(dateLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) writeShipments(f *excelize.File, snap *report.Snapshot) error {
	const sheet = "Salidas"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel: new sheet %s: %w", sheet, err)
	}
	headers := []string{"ID", "Tienda", "Código", "Nombre", "Cantidad", "Costo foto", "Costo foto c/Imp", "Responsable", "Fecha"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, s := range snap.Shipments {
		row := i + 2
		values := []any{
			s.ID, s.Store, s.ItemNo, s.ItemName, s.Quantity,
			ledger.RoundMoney(s.CostBeforeTax, e.moneyDigits).StringFixed(e.moneyDigits),
			ledger.RoundMoney(s.CostAfterTax, e.moneyDigits).StringFixed(e.moneyDigits),
			s.Personnel,
			s.EntryDate.Format(dateLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) writePositions(f *excelize.File, snap *report.Snapshot) error {
	const sheet = "Posiciones"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("excel: new sheet %s: %w", sheet, err)
	}
	headers := []string{"Tienda", "Código", "Nombre", "Cantidad", "Costo promedio", "Costo promedio c/Imp", "Actualizado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, p := range snap.Positions {
		row := i + 2
		values := []any{
			p.Key.Store, p.Key.ItemNo, p.Key.ItemName, p.TotalQuantity,
			ledger.RoundMoney(p.AvgPriceBeforeTax, e.moneyDigits).StringFixed(e.moneyDigits),
			ledger.RoundMoney(p.AvgPriceAfterTax, e.moneyDigits).StringFixed(e.moneyDigits),
			p.UpdatedAt.Format(dateLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
