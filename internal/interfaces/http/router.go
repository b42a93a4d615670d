package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/auth"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/application/report"
	"github.com/jhoicas/kardex-api/internal/infrastructure/excel"
	"github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *ledger.UseCase
	ReportUC    *report.UseCase
	AuthUC      *auth.UseCase
	PDFGen      *pdf.ReportPDFGenerator
	Exporter    *excel.Exporter
	JWTSecret   string
	MoneyDigits int32
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.MoneyDigits)

	// Entradas (protegido)
	receipts := protected.Group("/receipts")
	receipts.Post("/", ledgerHandler.CreateReceipt)
	receipts.Get("/", ledgerHandler.ListReceipts)
	receipts.Delete("/:id", ledgerHandler.DeleteReceipt)

	// Salidas (protegido)
	shipments := protected.Group("/shipments")
	shipments.Post("/", ledgerHandler.CreateShipment)
	shipments.Get("/", ledgerHandler.ListShipments)
	shipments.Delete("/:id", ledgerHandler.DeleteShipment)

	// Posiciones (protegido, solo lectura)
	positions := protected.Group("/positions")
	positions.Get("/", ledgerHandler.ListPositions)
	positions.Get("/one", ledgerHandler.GetPosition)

	// Reportes y exportación (protegido)
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFGen, deps.Exporter, deps.MoneyDigits)
	reports := protected.Group("/reports")
	reports.Get("/shipments", reportHandler.ShipmentReport)
	reports.Get("/shipments/pdf", reportHandler.ShipmentReportPDF)
	reports.Get("/personnel", reportHandler.Personnel)
	reports.Get("/items", reportHandler.Items)

	protected.Get("/export", reportHandler.Export)
	protected.Get("/export/:table", reportHandler.ExportTable)
}
