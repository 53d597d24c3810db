package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loudbaby/easyops-api/internal/application/inventory"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
	"github.com/loudbaby/easyops-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato que los adaptadores de PostgreSQL, con
// snapshot/restore para simular el rollback de la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items     map[string]*entity.Item
	stock     map[string]map[string]decimal.Decimal // itemID -> locationID -> qty
	ledger    []*entity.LedgerEntry
	sales     []*entity.Sale
	locations []*entity.Location
}

func newMemStore() *memStore {
	return &memStore{
		items: map[string]*entity.Item{},
		stock: map[string]map[string]decimal.Decimal{},
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for id, it := range s.items {
		c := *it
		cp.items[id] = &c
	}
	for itemID, rows := range s.stock {
		cp.stock[itemID] = map[string]decimal.Decimal{}
		for locID, q := range rows {
			cp.stock[itemID][locID] = q
		}
	}
	cp.ledger = append(cp.ledger, s.ledger...)
	cp.sales = append(cp.sales, s.sales...)
	cp.locations = append(cp.locations, s.locations...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.items = from.items
	s.stock = from.stock
	s.ledger = from.ledger
	s.sales = from.sales
	s.locations = from.locations
}

func (s *memStore) addLocation(name string, isDefault bool) *entity.Location {
	loc := &entity.Location{ID: uuid.New().String(), Name: name, IsDefault: isDefault}
	s.locations = append(s.locations, loc)
	return loc
}

func (s *memStore) addItem(name string, cost decimal.Decimal) *entity.Item {
	it := &entity.Item{
		ID:          uuid.New().String(),
		Name:        name,
		Unit:        "unidad",
		CostPerUnit: cost,
		Quantity:    decimal.Zero,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.items[it.ID] = it
	return it
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }

func (r *memItemRepo) Update(item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.s.items, id)
	return nil
}

func (r *memItemRepo) ApplyQuantityDelta(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	it := r.s.items[id]
	it.Quantity = it.Quantity.Add(delta)
	return it.Quantity, nil
}

func (r *memItemRepo) FindAutoDeductByBarcode(barcode string) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.Barcode == barcode && it.AutoDeduct {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) rows(itemID string) map[string]decimal.Decimal {
	if r.s.stock[itemID] == nil {
		r.s.stock[itemID] = map[string]decimal.Decimal{}
	}
	return r.s.stock[itemID]
}

func (r *memStockRepo) Get(itemID, locationID string) (*entity.ItemLocationStock, error) {
	return &entity.ItemLocationStock{ItemID: itemID, LocationID: locationID, Quantity: r.rows(itemID)[locationID]}, nil
}

func (r *memStockRepo) GetForUpdate(itemID, locationID string) (*entity.ItemLocationStock, error) {
	return r.Get(itemID, locationID)
}

func (r *memStockRepo) ListByItemForUpdate(itemID string) ([]*entity.ItemLocationStock, error) {
	// Predeterminada primero, luego por cantidad descendente (como el SQL real).
	var out []*entity.ItemLocationStock
	rows := r.rows(itemID)
	for _, loc := range r.s.locations {
		if q, ok := rows[loc.ID]; ok && loc.IsDefault {
			out = append(out, &entity.ItemLocationStock{ItemID: itemID, LocationID: loc.ID, Quantity: q})
		}
	}
	rest := []*entity.ItemLocationStock{}
	for _, loc := range r.s.locations {
		if q, ok := rows[loc.ID]; ok && !loc.IsDefault {
			rest = append(rest, &entity.ItemLocationStock{ItemID: itemID, LocationID: loc.ID, Quantity: q})
		}
	}
	for i := 0; i < len(rest); i++ {
		for j := i + 1; j < len(rest); j++ {
			if rest[j].Quantity.GreaterThan(rest[i].Quantity) {
				rest[i], rest[j] = rest[j], rest[i]
			}
		}
	}
	return append(out, rest...), nil
}

func (r *memStockRepo) ApplyDelta(itemID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	rows := r.rows(itemID)
	rows[locationID] = rows[locationID].Add(delta)
	return rows[locationID], nil
}

func (r *memStockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, q := range r.rows(itemID) {
		sum = sum.Add(q)
	}
	return sum, nil
}

func (r *memStockRepo) DeleteByItem(itemID string) error {
	delete(r.s.stock, itemID)
	return nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Append(entry *entity.LedgerEntry) error {
	if entry.QuantityDelta.IsZero() {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.s.ledger = append(r.s.ledger, entry)
	return nil
}

func (r *memLedgerRepo) ListByItem(itemID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) SumDeltaByItem(itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.s.ledger {
		if e.ItemID == itemID {
			sum = sum.Add(e.QuantityDelta)
		}
	}
	return sum, nil
}

func (r *memLedgerRepo) DeleteByItem(itemID string) error { return nil }

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	r.s.sales = append(r.s.sales, sale)
	return nil
}

func (r *memSaleRepo) ListRecent(limit, offset int) ([]*entity.Sale, error) { return r.s.sales, nil }

func (r *memSaleRepo) DeleteByItem(itemID string) error { return nil }

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(location *entity.Location) error {
	r.s.locations = append(r.s.locations, location)
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) GetDefault() (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.IsDefault {
			return l, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) List() ([]*entity.Location, error) { return r.s.locations, nil }

func (r *memLocationRepo) Update(location *entity.Location) error { return nil }

func (r *memLocationRepo) SetDefault(id string) error {
	for _, l := range r.s.locations {
		l.IsDefault = l.ID == id
	}
	return nil
}

func (r *memLocationRepo) Delete(id string) error { return nil }

// memTxRunner simula la transacción: snapshot al entrar, restore si fn falla.
type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
) error) error {
	before := tr.s.snapshot()
	err := fn(&memLedgerRepo{tr.s}, &memStockRepo{tr.s}, &memItemRepo{tr.s}, &memSaleRepo{tr.s})
	if err != nil {
		tr.s.restore(before)
	}
	return err
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newTestEngine(s *memStore) *inventory.ReconciliationEngine {
	return inventory.NewReconciliationEngine(&memTxRunner{s}, &memLocationRepo{s}, testLogger())
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// requireConserved verifica la invariante de conservación del artículo:
// agregado == suma por ubicación == suma de deltas del libro.
func requireConserved(t *testing.T, s *memStore, itemID string) {
	t.Helper()
	item := s.items[itemID]
	locSum, _ := (&memStockRepo{s}).SumByItem(itemID)
	ledgerSum, _ := (&memLedgerRepo{s}).SumDeltaByItem(itemID)
	require.True(t, item.Quantity.Equal(locSum),
		"agregado %s != suma por ubicación %s", item.Quantity, locSum)
	require.True(t, item.Quantity.Equal(ledgerSum),
		"agregado %s != suma del libro %s", item.Quantity, ledgerSum)
}

// ──────────────────────────────────────────────────────────────────────────────
// RECEIVE / CONSUME
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_SumaStockYRegistra(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Bodega", true)
	item := s.addItem("Leche entera", dec("1.50"))
	engine := newTestEngine(s)

	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:       inventory.MovementReceive,
		ItemID:     item.ID,
		LocationID: loc.ID,
		Quantity:   dec("10"),
		UserID:     "user-1",
	})
	require.NoError(t, err)
	assert.True(t, res.NewAggregate.Equal(dec("10")))
	assert.True(t, res.AppliedDelta.Equal(dec("10")))

	require.Len(t, s.ledger, 1)
	assert.Equal(t, entity.ChangeTypeReceive, s.ledger[0].ChangeType)
	assert.True(t, s.ledger[0].UnitCost.Equal(dec("1.50")), "el costo queda como foto histórica")
	requireConserved(t, s, item.ID)
}

func TestConsume_RecortaACero(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Nevera", true)
	item := s.addItem("Mantequilla", dec("3.00"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("10"),
	})
	require.NoError(t, err)

	// Consumir 100 con 10 disponibles: se aplica -10, nunca negativo.
	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:       inventory.MovementConsume,
		ItemID:     item.ID,
		LocationID: loc.ID,
		Quantity:   dec("100"),
		Reason:     entity.ReasonConsumed,
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.Equal(dec("-10")), "el delta aplicado se recorta al stock real")
	assert.True(t, res.NewAggregate.IsZero())

	last := s.ledger[len(s.ledger)-1]
	assert.Equal(t, entity.ChangeTypeConsume, last.ChangeType)
	assert.True(t, last.QuantityDelta.Equal(dec("-10")), "el libro registra lo aplicado, no lo pedido")
	requireConserved(t, s, item.ID)
}

func TestConsume_SinStockEsNoOp(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Nevera", true)
	item := s.addItem("Crema", dec("2.00"))
	engine := newTestEngine(s)

	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementConsume, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.IsZero())
	assert.Empty(t, s.ledger, "un no-op no deja entrada en el libro")
}

func TestConsume_RazonWastedRegistraWaste(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Nevera", true)
	item := s.addItem("Yogur", dec("1.00"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("6"),
	})
	require.NoError(t, err)

	_, err = engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:       inventory.MovementConsume,
		ItemID:     item.ID,
		LocationID: loc.ID,
		Quantity:   dec("2"),
		Reason:     entity.ReasonExpired,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeTypeWaste, s.ledger[len(s.ledger)-1].ChangeType)
}

// ──────────────────────────────────────────────────────────────────────────────
// SELL
// ──────────────────────────────────────────────────────────────────────────────

func TestSell_RegistraVentaYLibroCruzados(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Mostrador", true)
	item := s.addItem("Body de bebé", dec("4.00"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("5"),
	})
	require.NoError(t, err)

	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:      inventory.MovementSell,
		ItemID:    item.ID,
		Quantity:  dec("2"),
		UnitPrice: dec("12.99"),
		UserID:    "user-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.SaleID)
	assert.True(t, res.NewAggregate.Equal(dec("3")))

	require.Len(t, s.sales, 1)
	sale := s.sales[0]
	assert.Equal(t, entity.SaleSourceManual, sale.Source)
	assert.True(t, sale.Total().Equal(dec("25.98")))

	last := s.ledger[len(s.ledger)-1]
	assert.Equal(t, entity.ChangeTypeSale, last.ChangeType)
	assert.True(t, last.QuantityDelta.Equal(dec("-2")))
	assert.Contains(t, last.Notes, sale.ID, "la entrada del libro referencia la venta")
	requireConserved(t, s, item.ID)
}

func TestSell_StockInsuficienteRechazaSinEscribir(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Mostrador", true)
	item := s.addItem("Gorro", dec("2.50"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("3"),
	})
	require.NoError(t, err)
	ledgerBefore := len(s.ledger)

	_, err = engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementSell, ItemID: item.ID, Quantity: dec("4"), UnitPrice: dec("9.99"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Len(t, s.ledger, ledgerBefore, "una venta rechazada no escribe nada")
	assert.Empty(t, s.sales)
	assert.True(t, s.items[item.ID].Quantity.Equal(dec("3")))
	requireConserved(t, s, item.ID)
}

func TestSell_DeduceVariasUbicaciones(t *testing.T) {
	s := newMemStore()
	def := s.addLocation("Mostrador", true)
	back := s.addLocation("Bodega", false)
	item := s.addItem("Pañales", dec("0.30"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: def.ID, Quantity: dec("2"),
	})
	require.NoError(t, err)
	_, err = engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: back.ID, Quantity: dec("8"),
	})
	require.NoError(t, err)

	// Vende 5: agota el mostrador (2) y toma 3 de bodega.
	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementSell, ItemID: item.ID, Quantity: dec("5"), UnitPrice: dec("0.50"),
	})
	require.NoError(t, err)
	assert.True(t, res.NewAggregate.Equal(dec("5")))
	assert.True(t, s.stock[item.ID][def.ID].IsZero(), "la predeterminada se agota primero")
	assert.True(t, s.stock[item.ID][back.ID].Equal(dec("5")))
	requireConserved(t, s, item.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ADJUST
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ReconciliaContraConteoFisico(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Bodega", true)
	item := s.addItem("Toallitas", dec("1.20"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("10"),
	})
	require.NoError(t, err)

	// Conteo físico: 7. El delta del libro es -3.
	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:     inventory.MovementAdjust,
		ItemID:   item.ID,
		Quantity: dec("7"),
	})
	require.NoError(t, err)
	assert.True(t, res.NewAggregate.Equal(dec("7")))
	assert.True(t, res.AppliedDelta.Equal(dec("-3")))
	assert.Equal(t, entity.ChangeTypeAdjust, s.ledger[len(s.ledger)-1].ChangeType)
	requireConserved(t, s, item.ID)

	// Conteo hacia arriba sin ubicación explícita: entra a la predeterminada.
	res, err = engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:     inventory.MovementAdjust,
		ItemID:   item.ID,
		Quantity: dec("9"),
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.Equal(dec("2")))
	assert.True(t, s.stock[item.ID][loc.ID].Equal(dec("9")))
	requireConserved(t, s, item.ID)
}

func TestAdjust_ConteoIgualEsNoOp(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Bodega", true)
	item := s.addItem("Biberones", dec("5.00"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("4"),
	})
	require.NoError(t, err)
	ledgerBefore := len(s.ledger)

	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementAdjust, ItemID: item.ID, Quantity: dec("4"),
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.IsZero())
	assert.Len(t, s.ledger, ledgerBefore, "delta cero no deja entrada en el libro")
}

func TestAdjust_CantidadNegativaRechazada(t *testing.T) {
	s := newMemStore()
	s.addLocation("Bodega", true)
	item := s.addItem("Chupetes", dec("1.00"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementAdjust, ItemID: item.ID, Quantity: dec("-1"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// AUTO_DEDUCT
// ──────────────────────────────────────────────────────────────────────────────

func TestAutoDeduct_CreaVentaDelSistema(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Mostrador", true)
	item := s.addItem("Café", dec("0.80"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("20"),
	})
	require.NoError(t, err)

	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:             inventory.MovementAutoDeduct,
		ItemID:           item.ID,
		Quantity:         dec("3"),
		UnitPrice:        dec("2.50"),
		ExternalOrderRef: "order-abc",
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.Equal(dec("-3")))
	require.NotEmpty(t, res.SaleID)

	sale := s.sales[len(s.sales)-1]
	assert.Equal(t, entity.SaleSourceSquare, sale.Source)
	assert.Empty(t, sale.UserID, "venta del POS atribuida al sistema")

	last := s.ledger[len(s.ledger)-1]
	assert.Equal(t, entity.ChangeTypeSale, last.ChangeType)
	assert.Empty(t, last.UserID)
	assert.Contains(t, last.Notes, "order-abc")
	requireConserved(t, s, item.ID)
}

func TestAutoDeduct_RecortaYNoFallaConPoco(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Mostrador", true)
	item := s.addItem("Muffin", dec("0.60"))
	engine := newTestEngine(s)

	_, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("2"),
	})
	require.NoError(t, err)

	// La orden pide 5 pero hay 2: se deducen 2, sin error (la orden ya se cobró).
	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:             inventory.MovementAutoDeduct,
		ItemID:           item.ID,
		Quantity:         dec("5"),
		UnitPrice:        dec("1.75"),
		ExternalOrderRef: "order-xyz",
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.Equal(dec("-2")))
	assert.True(t, res.NewAggregate.IsZero())
	requireConserved(t, s, item.ID)
}

func TestAutoDeduct_SinStockEsNoOpSinVenta(t *testing.T) {
	s := newMemStore()
	s.addLocation("Mostrador", true)
	item := s.addItem("Galleta", dec("0.40"))
	engine := newTestEngine(s)

	res, err := engine.ApplyMovement(context.Background(), inventory.MovementInput{
		Kind:             inventory.MovementAutoDeduct,
		ItemID:           item.ID,
		Quantity:         dec("1"),
		ExternalOrderRef: "order-0",
	})
	require.NoError(t, err)
	assert.True(t, res.AppliedDelta.IsZero())
	assert.Empty(t, s.sales, "sin stock no se registra venta")
	assert.Empty(t, s.ledger)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y conservación
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_Validaciones(t *testing.T) {
	s := newMemStore()
	loc := s.addLocation("Bodega", true)
	item := s.addItem("Algo", dec("1.00"))
	engine := newTestEngine(s)
	ctx := context.Background()

	_, err := engine.ApplyMovement(ctx, inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: "", LocationID: loc.ID, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "item requerido")

	_, err = engine.ApplyMovement(ctx, inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: loc.ID, Quantity: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad debe ser positiva")

	_, err = engine.ApplyMovement(ctx, inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: "no-existe", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	_, err = engine.ApplyMovement(ctx, inventory.MovementInput{
		Kind: inventory.MovementReceive, ItemID: "no-existe", LocationID: loc.ID, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = engine.ApplyMovement(ctx, inventory.MovementInput{
		Kind: "TELEPORT", ItemID: item.ID, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de movimiento desconocido")
}

func TestConservacion_SerieDeMovimientos(t *testing.T) {
	s := newMemStore()
	def := s.addLocation("Mostrador", true)
	back := s.addLocation("Bodega", false)
	item := s.addItem("Leche de fórmula", dec("8.00"))
	engine := newTestEngine(s)
	ctx := context.Background()

	steps := []inventory.MovementInput{
		{Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: back.ID, Quantity: dec("24")},
		{Kind: inventory.MovementReceive, ItemID: item.ID, LocationID: def.ID, Quantity: dec("6")},
		{Kind: inventory.MovementSell, ItemID: item.ID, Quantity: dec("4"), UnitPrice: dec("15.00")},
		{Kind: inventory.MovementConsume, ItemID: item.ID, LocationID: back.ID, Quantity: dec("2"), Reason: entity.ReasonDamaged},
		{Kind: inventory.MovementAdjust, ItemID: item.ID, Quantity: dec("20")},
		{Kind: inventory.MovementAutoDeduct, ItemID: item.ID, Quantity: dec("3"), UnitPrice: dec("15.00"), ExternalOrderRef: "ord-1"},
	}
	for i, in := range steps {
		_, err := engine.ApplyMovement(ctx, in)
		require.NoError(t, err, "paso %d", i)
		requireConserved(t, s, item.ID)
	}
	assert.True(t, s.items[item.ID].Quantity.Equal(dec("17")))
}
