package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin base de datos; el TxRunner pasa los mismos repos)
// ──────────────────────────────────────────────────────────────────────────────

type memReceipts struct {
	items map[string]entity.Receipt
}

func newMemReceipts() *memReceipts { return &memReceipts{items: map[string]entity.Receipt{}} }

func (m *memReceipts) Create(r *entity.Receipt) error {
	m.items[r.ID] = *r
	return nil
}

func (m *memReceipts) GetByID(id string) (*entity.Receipt, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := r
	return &cp, nil
}

func (m *memReceipts) Delete(id string) error {
	delete(m.items, id)
	return nil
}

func (m *memReceipts) List(_, _ int) ([]*entity.Receipt, error) {
	out := make([]*entity.Receipt, 0, len(m.items))
	for id := range m.items {
		cp := m.items[id]
		out = append(out, &cp)
	}
	return out, nil
}

type memShipments struct {
	items map[string]entity.Shipment
}

func newMemShipments() *memShipments { return &memShipments{items: map[string]entity.Shipment{}} }

func (m *memShipments) Create(s *entity.Shipment) error {
	m.items[s.ID] = *s
	return nil
}

func (m *memShipments) GetByID(id string) (*entity.Shipment, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (m *memShipments) Delete(id string) error {
	delete(m.items, id)
	return nil
}

func (m *memShipments) List(_, _ int) ([]*entity.Shipment, error) {
	out := make([]*entity.Shipment, 0, len(m.items))
	for id := range m.items {
		cp := m.items[id]
		out = append(out, &cp)
	}
	return out, nil
}

type memPositions struct {
	items map[entity.PositionKey]entity.Position
}

func newMemPositions() *memPositions {
	return &memPositions{items: map[entity.PositionKey]entity.Position{}}
}

func (m *memPositions) Get(key entity.PositionKey) (*entity.Position, error) {
	p, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (m *memPositions) GetForUpdate(key entity.PositionKey) (*entity.Position, error) {
	return m.Get(key)
}

func (m *memPositions) Upsert(pos *entity.Position) error {
	m.items[pos.Key] = *pos
	return nil
}

func (m *memPositions) Delete(key entity.PositionKey) error {
	delete(m.items, key)
	return nil
}

func (m *memPositions) List() ([]*entity.Position, error) {
	out := make([]*entity.Position, 0, len(m.items))
	for key := range m.items {
		cp := m.items[key]
		out = append(out, &cp)
	}
	return out, nil
}

type memTxRunner struct {
	receipts  *memReceipts
	shipments *memShipments
	positions *memPositions
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	repository.ReceiptRepository,
	repository.ShipmentRepository,
	repository.PositionRepository,
) error) error {
	return fn(t.receipts, t.shipments, t.positions)
}

type fixture struct {
	uc        *ledger.UseCase
	receipts  *memReceipts
	shipments *memShipments
	positions *memPositions
}

func newFixture() *fixture {
	receipts := newMemReceipts()
	shipments := newMemShipments()
	positions := newMemPositions()
	tx := &memTxRunner{receipts: receipts, shipments: shipments, positions: positions}
	return &fixture{
		uc:        ledger.NewUseCase(tx, receipts, shipments, positions),
		receipts:  receipts,
		shipments: shipments,
		positions: positions,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func receiptInput(qty int64, price, tax string) ledger.ReceiptInput {
	return ledger.ReceiptInput{
		Store:      "central",
		ItemNo:     "A-100",
		ItemName:   "Tornillo",
		Quantity:   qty,
		UnitPrice:  dec(price),
		TaxRatePct: dec(tax),
	}
}

func shipmentInput(qty int64) ledger.ShipmentInput {
	return ledger.ShipmentInput{
		Store:     "central",
		ItemNo:    "A-100",
		ItemName:  "Tornillo",
		Quantity:  qty,
		Personnel: "Bekir",
	}
}

func assertDecEqual(t *testing.T, want, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordReceipt
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordReceipt_CreaPosicionYBlendea(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	pos, err := f.uc.RecordReceipt(ctx, receiptInput(100, "10.00", "10"))
	require.NoError(t, err)
	assert.EqualValues(t, 100, pos.TotalQuantity)
	assertDecEqual(t, dec("10.00"), pos.AvgPriceBeforeTax, "promedio antes de impuesto")
	assertDecEqual(t, dec("11.00"), pos.AvgPriceAfterTax, "promedio después de impuesto")

	pos, err = f.uc.RecordReceipt(ctx, receiptInput(50, "13.00", "10"))
	require.NoError(t, err)
	assert.EqualValues(t, 150, pos.TotalQuantity)
	assertDecEqual(t, dec("11.00"), pos.AvgPriceBeforeTax, "blend de la segunda entrada")
	assertDecEqual(t, dec("12.10"), pos.AvgPriceAfterTax, "blend con impuesto")

	receipts, _ := f.receipts.List(0, 0)
	assert.Len(t, receipts, 2, "las dos entradas quedan en el log")
}

func TestRecordReceipt_NormalizaIdentificadores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := receiptInput(10, "5.00", "0")
	in.Store = "  Central "
	in.ItemNo = "a-100"
	in.ItemName = " tornillo  "
	_, err := f.uc.RecordReceipt(ctx, in)
	require.NoError(t, err)

	// La lectura con otra caja/espacios encuentra la misma posición.
	pos, err := f.uc.GetPosition(ctx, "CENTRAL", " A-100", "Tornillo ")
	require.NoError(t, err)
	assert.EqualValues(t, 10, pos.TotalQuantity)
	assert.Equal(t, "CENTRAL", pos.Key.Store)
	assert.Equal(t, "A-100", pos.Key.ItemNo)
	assert.Equal(t, "TORNILLO", pos.Key.ItemName)
}

func TestRecordReceipt_MismoCodigoOtroNombreEsOtraPosicion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(10, "5.00", "0"))
	require.NoError(t, err)

	otro := receiptInput(4, "9.00", "0")
	otro.ItemName = "Tornillo largo"
	_, err = f.uc.RecordReceipt(ctx, otro)
	require.NoError(t, err)

	positions, _ := f.positions.List()
	assert.Len(t, positions, 2, "el nombre forma parte de la identidad")
}

func TestRecordReceipt_Validacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := receiptInput(0, "5.00", "0")
	_, err := f.uc.RecordReceipt(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad cero se rechaza, nunca se ajusta")

	in = receiptInput(-3, "5.00", "0")
	_, err = f.uc.RecordReceipt(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad negativa se rechaza")

	in = receiptInput(5, "-1.00", "0")
	_, err = f.uc.RecordReceipt(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "precio negativo se rechaza")

	in = receiptInput(5, "1.00", "-10")
	_, err = f.uc.RecordReceipt(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "tasa negativa se rechaza")

	in = receiptInput(5, "1.00", "0")
	in.ItemName = "   "
	_, err = f.uc.RecordReceipt(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation, "identificador vacío tras normalizar se rechaza")

	receipts, _ := f.receipts.List(0, 0)
	assert.Empty(t, receipts, "ninguna validación fallida escribe en el log")
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordShipment
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordShipment_CongelaFotoYDescuenta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(100, "10.00", "10"))
	require.NoError(t, err)
	_, err = f.uc.RecordReceipt(ctx, receiptInput(50, "13.00", "10"))
	require.NoError(t, err)

	pos, err := f.uc.RecordShipment(ctx, shipmentInput(120))
	require.NoError(t, err)
	assert.EqualValues(t, 30, pos.TotalQuantity)
	assertDecEqual(t, dec("11.00"), pos.AvgPriceBeforeTax, "la salida no mueve el promedio")
	assertDecEqual(t, dec("12.10"), pos.AvgPriceAfterTax, "la salida no mueve el promedio con impuesto")

	shipments, _ := f.shipments.List(0, 0)
	require.Len(t, shipments, 1)
	assertDecEqual(t, dec("11.00"), shipments[0].CostBeforeTax, "foto del costo antes de impuesto")
	assertDecEqual(t, dec("12.10"), shipments[0].CostAfterTax, "foto del costo con impuesto")
	assert.Equal(t, "BEKIR", shipments[0].Personnel, "responsable normalizado")
}

func TestRecordShipment_FotoInmutableAnteEntradasPosteriores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(10, "10.00", "0"))
	require.NoError(t, err)
	_, err = f.uc.RecordShipment(ctx, shipmentInput(4))
	require.NoError(t, err)

	// Una entrada posterior a otro precio mueve el promedio de la posición...
	_, err = f.uc.RecordReceipt(ctx, receiptInput(10, "40.00", "0"))
	require.NoError(t, err)

	// ...pero la foto de la salida ya registrada no cambia.
	shipments, _ := f.shipments.List(0, 0)
	require.Len(t, shipments, 1)
	assertDecEqual(t, dec("10.00"), shipments[0].CostBeforeTax, "la foto nunca se recalcula")
}

func TestRecordShipment_StockInsuficienteNoEscribeNada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(30, "11.00", "10"))
	require.NoError(t, err)

	_, err = f.uc.RecordShipment(ctx, shipmentInput(50))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	pos, err := f.uc.GetPosition(ctx, "central", "A-100", "Tornillo")
	require.NoError(t, err)
	assert.EqualValues(t, 30, pos.TotalQuantity, "la posición queda intacta")
	shipments, _ := f.shipments.List(0, 0)
	assert.Empty(t, shipments, "el log de salidas queda intacto")
}

func TestRecordShipment_ArticuloInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordShipment(context.Background(), shipmentInput(1))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRecordShipment_AgotarStockConservaLaFila(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(20, "7.50", "0"))
	require.NoError(t, err)
	pos, err := f.uc.RecordShipment(ctx, shipmentInput(20))
	require.NoError(t, err)

	// Posición en cero pero viva: el costo histórico sigue consultable.
	assert.EqualValues(t, 0, pos.TotalQuantity)
	got, err := f.uc.GetPosition(ctx, "central", "A-100", "Tornillo")
	require.NoError(t, err)
	assertDecEqual(t, dec("7.50"), got.AvgPriceBeforeTax, "promedio conservado en fila agotada")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteReceipt
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteReceipt_RestauraElEstadoAnterior(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(100, "10.00", "10"))
	require.NoError(t, err)
	_, err = f.uc.RecordReceipt(ctx, receiptInput(50, "13.00", "10"))
	require.NoError(t, err)

	var second *entity.Receipt
	receipts, _ := f.receipts.List(0, 0)
	for _, r := range receipts {
		if r.Quantity == 50 {
			second = r
		}
	}
	require.NotNil(t, second)

	pos, err := f.uc.DeleteReceipt(ctx, second.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, pos.TotalQuantity)
	assertDecEqual(t, dec("10.00"), pos.AvgPriceBeforeTax, "promedio restaurado al estado previo")
	assertDecEqual(t, dec("11.00"), pos.AvgPriceAfterTax, "promedio con impuesto restaurado")

	receipts, _ = f.receipts.List(0, 0)
	assert.Len(t, receipts, 1, "la entrada revertida sale del log")
}

func TestDeleteReceipt_UnicaEntradaEliminaLaPosicion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(10, "5.00", "0"))
	require.NoError(t, err)
	receipts, _ := f.receipts.List(0, 0)
	require.Len(t, receipts, 1)

	pos, err := f.uc.DeleteReceipt(ctx, receipts[0].ID)
	require.NoError(t, err)
	assert.Nil(t, pos, "no queda posición tras revertir la única entrada")

	_, err = f.uc.GetPosition(ctx, "central", "A-100", "Tornillo")
	assert.ErrorIs(t, err, domain.ErrItemNotFound, "la fila desaparece, no queda en cero")
}

func TestDeleteReceipt_BloqueadaPorSalidasDependientes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(100, "10.00", "0"))
	require.NoError(t, err)
	_, err = f.uc.RecordShipment(ctx, shipmentInput(40))
	require.NoError(t, err)

	// Quedan 60 en stock; revertir una entrada de 100 dejaría la cantidad
	// negativa: las salidas ya consumieron parte de ese stock.
	receipts, _ := f.receipts.List(0, 0)
	require.Len(t, receipts, 1)
	_, err = f.uc.DeleteReceipt(ctx, receipts[0].ID)
	assert.ErrorIs(t, err, domain.ErrStillShipped)

	pos, err := f.uc.GetPosition(ctx, "central", "A-100", "Tornillo")
	require.NoError(t, err)
	assert.EqualValues(t, 60, pos.TotalQuantity, "nada cambió al rechazar la reversión")
	receipts, _ = f.receipts.List(0, 0)
	assert.Len(t, receipts, 1, "la entrada sigue en el log")
}

func TestDeleteReceipt_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.DeleteReceipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteShipment
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteShipment_ReincorporaAlCostoDeLaFoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordReceipt(ctx, receiptInput(100, "10.00", "10"))
	require.NoError(t, err)
	_, err = f.uc.RecordReceipt(ctx, receiptInput(50, "13.00", "10"))
	require.NoError(t, err)
	_, err = f.uc.RecordShipment(ctx, shipmentInput(120))
	require.NoError(t, err)

	shipments, _ := f.shipments.List(0, 0)
	require.Len(t, shipments, 1)

	pos, err := f.uc.DeleteShipment(ctx, shipments[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 150, pos.TotalQuantity)
	assertDecEqual(t, dec("11.00"), pos.AvgPriceBeforeTax, "base de costo restaurada, no blend al promedio de hoy")
	assertDecEqual(t, dec("12.10"), pos.AvgPriceAfterTax, "base con impuesto restaurada")

	shipments, _ = f.shipments.List(0, 0)
	assert.Empty(t, shipments, "la salida revertida sale del log")
}

func TestDeleteShipment_RecreaPosicionAusente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Entrada → salida parcial → reversión de la entrada restante imposible
	// (quedan 6 < 10); en su lugar: salida total y reversión de la salida tras
	// eliminar la fila a mano no es reproducible vía API, así que simulamos el
	// estado "posición ausente con salida viva" directamente.
	_, err := f.uc.RecordReceipt(ctx, receiptInput(10, "4.25", "0"))
	require.NoError(t, err)
	_, err = f.uc.RecordShipment(ctx, shipmentInput(10))
	require.NoError(t, err)
	require.NoError(t, f.positions.Delete(entity.NewPositionKey("central", "A-100", "Tornillo")))

	shipments, _ := f.shipments.List(0, 0)
	require.Len(t, shipments, 1)

	pos, err := f.uc.DeleteShipment(ctx, shipments[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, pos.TotalQuantity, "la fila se recrea desde la foto")
	assertDecEqual(t, dec("4.25"), pos.AvgPriceBeforeTax, "costo de la foto")
}

func TestDeleteShipment_Inexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.DeleteShipment(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
