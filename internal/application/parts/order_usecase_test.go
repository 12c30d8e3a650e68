package parts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/parts"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// Fakes en memoria con la forma de los puertos de persistencia.

type fakeOrderRepo struct {
	orders map[string]*entity.SparePartOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.SparePartOrder)}
}

func (r *fakeOrderRepo) Create(o *entity.SparePartOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Update(o *entity.SparePartOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.SparePartOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByDealership(dealershipID string) ([]*entity.SparePartOrder, error) {
	var out []*entity.SparePartOrder
	for _, o := range r.orders {
		if o.DealershipID == dealershipID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByStatus(status entity.OrderStatus) ([]*entity.SparePartOrder, error) {
	var out []*entity.SparePartOrder
	for _, o := range r.orders {
		if o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByDateRange(from, to time.Time) ([]*entity.SparePartOrder, error) {
	var out []*entity.SparePartOrder
	for _, o := range r.orders {
		if !o.OrderedAt.Before(from) && !o.OrderedAt.After(to) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetOrderStats(_ context.Context, dealershipID string) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{ByStatus: make(map[entity.OrderStatus]int), TotalSpent: decimal.Zero}
	for _, o := range r.orders {
		if o.DealershipID != dealershipID {
			continue
		}
		stats.TotalOrders++
		stats.ByStatus[o.Status]++
		if o.Status != entity.OrderCancelled {
			stats.TotalSpent = stats.TotalSpent.Add(o.TotalCost())
		}
	}
	return stats, nil
}

type fakeDealershipRepo struct {
	dealerships map[string]*entity.Dealership
	stocks      map[string]*entity.DealershipSparePartsStock
}

func newFakeDealershipRepo() *fakeDealershipRepo {
	return &fakeDealershipRepo{
		dealerships: make(map[string]*entity.Dealership),
		stocks:      make(map[string]*entity.DealershipSparePartsStock),
	}
}

func (r *fakeDealershipRepo) Create(d *entity.Dealership) error {
	cp := *d
	r.dealerships[d.ID] = &cp
	return nil
}

func (r *fakeDealershipRepo) Update(d *entity.Dealership) error {
	cp := *d
	r.dealerships[d.ID] = &cp
	return nil
}

func (r *fakeDealershipRepo) GetByID(id string) (*entity.Dealership, error) {
	d, ok := r.dealerships[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDealershipRepo) GetByName(string) (*entity.Dealership, error) { return nil, nil }

func (r *fakeDealershipRepo) FindByEmployeeID(string) (*entity.Dealership, error) { return nil, nil }

func (r *fakeDealershipRepo) List(int, int) ([]*entity.Dealership, error) { return nil, nil }

func (r *fakeDealershipRepo) ListActive() ([]*entity.Dealership, error) { return nil, nil }

func (r *fakeDealershipRepo) GetSparePartsStock(dealershipID string) (*entity.DealershipSparePartsStock, error) {
	s, ok := r.stocks[dealershipID]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeDealershipRepo) UpdateSparePartsStock(stock *entity.DealershipSparePartsStock) error {
	r.stocks[stock.DealershipID] = stock
	return nil
}

func (r *fakeDealershipRepo) GetStockStatistics(context.Context, string) (*repository.StockStatistics, error) {
	return &repository.StockStatistics{}, nil
}

type fakeSparePartRepo struct {
	parts map[string]*entity.SparePart
}

func newFakeSparePartRepo() *fakeSparePartRepo {
	return &fakeSparePartRepo{parts: make(map[string]*entity.SparePart)}
}

func (r *fakeSparePartRepo) Create(p *entity.SparePart) error {
	cp := *p
	r.parts[p.Reference] = &cp
	return nil
}

func (r *fakeSparePartRepo) Update(p *entity.SparePart) error {
	cp := *p
	r.parts[p.Reference] = &cp
	return nil
}

func (r *fakeSparePartRepo) GetByReference(reference string) (*entity.SparePart, error) {
	p, ok := r.parts[reference]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeSparePartRepo) Exists(reference string) (bool, error) {
	_, ok := r.parts[reference]
	return ok, nil
}

func (r *fakeSparePartRepo) List(repository.SparePartFilter) ([]*entity.SparePart, error) {
	return nil, nil
}

func (r *fakeSparePartRepo) Delete(reference string) error {
	delete(r.parts, reference)
	return nil
}

type fakePartsTx struct {
	orderRepo      *fakeOrderRepo
	dealershipRepo *fakeDealershipRepo
}

func (t *fakePartsTx) RunParts(_ context.Context, fn func(repository.OrderRepository, repository.DealershipRepository) error) error {
	return fn(t.orderRepo, t.dealershipRepo)
}

type fakePDF struct{}

func (fakePDF) Generate(*entity.SparePartOrder) ([]byte, error) { return []byte("%PDF-"), nil }

// ──────────────────────────────────────────────────────────────────────────────

func newOrderFixture(t *testing.T) (*parts.OrderUseCase, *fakeOrderRepo, *fakeDealershipRepo, *fakeSparePartRepo) {
	t.Helper()
	orderRepo := newFakeOrderRepo()
	dealershipRepo := newFakeDealershipRepo()
	partRepo := newFakeSparePartRepo()
	tx := &fakePartsTx{orderRepo: orderRepo, dealershipRepo: dealershipRepo}

	d, err := entity.NewDealership("d-1", "Triumph Bogotá Norte", "", "", "", "", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, dealershipRepo.Create(d))

	now := time.Now()
	brake, err := entity.NewSparePart("BRK-001", "Pastillas de freno", "frenos", "Brembo", nil, 5, now)
	require.NoError(t, err)
	require.NoError(t, brake.SetPrice(decimal.RequireFromString("42.50"), now))
	require.NoError(t, partRepo.Create(brake))

	filter, err := entity.NewSparePart("FLT-010", "Filtro de aceite", "motor", "K&N", nil, 10, now)
	require.NoError(t, err)
	require.NoError(t, filter.SetPrice(decimal.RequireFromString("15.00"), now))
	require.NoError(t, partRepo.Create(filter))

	return parts.NewOrderUseCase(tx, orderRepo, dealershipRepo, partRepo, fakePDF{}), orderRepo, dealershipRepo, partRepo
}

func stockManagerActor() authz.Context {
	return authz.Context{ActorID: "u-stock", Role: authz.RoleDealershipStockManager, DealershipID: "d-1"}
}

func adminActor() authz.Context {
	return authz.Context{ActorID: "u-admin", Role: authz.RoleTriumphAdmin}
}

// La confirmación abona el stock exactamente una vez; reconfirmar falla sin
// volver a abonar.
func TestConfirmOrder_AbonaStockUnaVez(t *testing.T) {
	uc, _, dealershipRepo, _ := newOrderFixture(t)

	placed, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items: []dto.OrderItemRequest{
			{Reference: "BRK-001", Quantity: 3},
			{Reference: "FLT-010", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderPending), placed.Status)
	require.Len(t, placed.Items, 2)
	assert.True(t, placed.Items[0].Subtotal.Equal(decimal.RequireFromString("127.50")))
	assert.True(t, placed.TotalCost.Equal(decimal.RequireFromString("157.50")))

	confirmed, err := uc.ConfirmOrder(context.Background(), adminActor(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderConfirmed), confirmed.Status)

	stock := dealershipRepo.stocks["d-1"]
	require.NotNil(t, stock)
	assert.Equal(t, 3, stock.Quantity("BRK-001"))
	assert.Equal(t, 2, stock.Quantity("FLT-010"))
	assert.Equal(t, []string{placed.ID}, stock.OrderLog)

	_, err = uc.ConfirmOrder(context.Background(), adminActor(), placed.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 3, stock.Quantity("BRK-001"), "el stock no debe abonarse dos veces")
}

// El stock manager puede pedir pero no validar: VALIDATE_ORDERS es solo de la
// plataforma.
func TestConfirmOrder_AsimetriaDePermisos(t *testing.T) {
	uc, _, _, _ := newOrderFixture(t)

	placed, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "BRK-001", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.ConfirmOrder(context.Background(), stockManagerActor(), placed.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPlaceOrder_CongelaPrecio(t *testing.T) {
	uc, _, _, partRepo := newOrderFixture(t)

	placed, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "BRK-001", Quantity: 1}},
	})
	require.NoError(t, err)

	// Subida de precio posterior: el pedido conserva el precio al pedir
	part, _ := partRepo.GetByReference("BRK-001")
	require.NoError(t, part.SetPrice(decimal.RequireFromString("60.00"), time.Now()))
	require.NoError(t, partRepo.Update(part))

	got, err := uc.GetByID(stockManagerActor(), placed.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("42.50")))
}

func TestPlaceOrder_Errores(t *testing.T) {
	uc, _, _, partRepo := newOrderFixture(t)

	// Sin líneas
	_, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{DealershipID: "d-1"})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	// Referencia desconocida
	_, err = uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "NO-EXISTE", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Repuesto sin precio definido
	now := time.Now()
	noPrice, err := entity.NewSparePart("CHN-020", "Kit de cadena", "transmisión", "DID", nil, 2, now)
	require.NoError(t, err)
	require.NoError(t, partRepo.Create(noPrice))
	_, err = uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "CHN-020", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrPriceNotSet)

	// Concesionario ajeno
	other := authz.Context{ActorID: "u-2", Role: authz.RoleDealershipStockManager, DealershipID: "d-2"}
	_, err = uc.PlaceOrder(other, dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "BRK-001", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelOrder_NoTocaStock(t *testing.T) {
	uc, _, dealershipRepo, _ := newOrderFixture(t)

	placed, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "BRK-001", Quantity: 3}},
	})
	require.NoError(t, err)

	cancelled, err := uc.CancelOrder(stockManagerActor(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderCancelled), cancelled.Status)
	assert.Nil(t, dealershipRepo.stocks["d-1"], "cancelar nunca toca el stock")

	// Cancelado es terminal: no se puede confirmar
	_, err = uc.ConfirmOrder(context.Background(), adminActor(), placed.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderLifecycle_ShipYDeliver(t *testing.T) {
	uc, _, _, _ := newOrderFixture(t)

	placed, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "FLT-010", Quantity: 4}},
	})
	require.NoError(t, err)

	// SHIPPED solo desde CONFIRMED
	_, err = uc.ShipOrder(adminActor(), placed.ID, dto.ShipOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.ConfirmOrder(context.Background(), adminActor(), placed.ID)
	require.NoError(t, err)

	eta := time.Now().Add(72 * time.Hour)
	shipped, err := uc.ShipOrder(adminActor(), placed.ID, dto.ShipOrderRequest{EstimatedDeliveryAt: &eta})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderShipped), shipped.Status)
	require.NotNil(t, shipped.EstimatedDeliveryAt)

	delivered, err := uc.DeliverOrder(stockManagerActor(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderDelivered), delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
}

func TestGetStats_IgnoraCancelados(t *testing.T) {
	uc, _, _, _ := newOrderFixture(t)

	first, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "BRK-001", Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = uc.ConfirmOrder(context.Background(), adminActor(), first.ID)
	require.NoError(t, err)

	second, err := uc.PlaceOrder(stockManagerActor(), dto.PlaceOrderRequest{
		DealershipID: "d-1",
		Items:        []dto.OrderItemRequest{{Reference: "FLT-010", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.CancelOrder(stockManagerActor(), second.ID)
	require.NoError(t, err)

	stats, err := uc.GetStats(context.Background(), stockManagerActor(), "d-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.ByStatus[string(entity.OrderConfirmed)])
	assert.Equal(t, 1, stats.ByStatus[string(entity.OrderCancelled)])
	assert.True(t, stats.TotalSpent.Equal(decimal.RequireFromString("85.00")))
}
