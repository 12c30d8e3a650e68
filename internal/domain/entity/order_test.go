package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

func newTestPart(t *testing.T, ref string, price float64) *entity.SparePart {
	t.Helper()
	now := time.Now()
	p, err := entity.NewSparePart(ref, "Pastillas de freno", "frenos", "Brembo", []string{"Street Triple 765"}, 2, now)
	require.NoError(t, err)
	require.NoError(t, p.SetPrice(decimal.NewFromFloat(price), now))
	return p
}

func TestNewOrder_NacePendingConPrecioDelMomento(t *testing.T) {
	now := time.Now()
	p := newTestPart(t, "BRK-001", 42.50)

	o, err := entity.NewSparePartOrder("ord-1", "deal-1", []*entity.SparePart{p}, []int{3}, now)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "BRK-001", o.Items[0].SparePartReference)
	assert.Equal(t, 3, o.Items[0].Quantity)
	// 42.50 × 3 = 127.50
	assert.True(t, o.TotalCost().Equal(decimal.NewFromFloat(127.50)),
		"TotalCost debe ser 127.50, fue %s", o.TotalCost())
}

func TestNewOrder_SinItemsFalla(t *testing.T) {
	_, err := entity.NewSparePartOrder("ord-1", "deal-1", nil, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestNewOrder_RepuestoSinPrecioFalla(t *testing.T) {
	now := time.Now()
	p, err := entity.NewSparePart("CHN-002", "Cadena", "transmisión", "DID", nil, 1, now)
	require.NoError(t, err)

	_, err = entity.NewSparePartOrder("ord-1", "deal-1", []*entity.SparePart{p}, []int{1}, now)
	assert.ErrorIs(t, err, domain.ErrPriceNotSet)
}

func TestOrder_CicloCompleto(t *testing.T) {
	now := time.Now()
	p := newTestPart(t, "BRK-001", 42.50)
	o, err := entity.NewSparePartOrder("ord-1", "deal-1", []*entity.SparePart{p}, []int{3}, now)
	require.NoError(t, err)

	require.NoError(t, o.Confirm(now))
	assert.Equal(t, entity.OrderConfirmed, o.Status)

	eta := now.Add(72 * time.Hour)
	require.NoError(t, o.Ship(&eta, now))
	assert.Equal(t, entity.OrderShipped, o.Status)
	require.NotNil(t, o.EstimatedDeliveryAt)

	require.NoError(t, o.Deliver(now))
	assert.Equal(t, entity.OrderDelivered, o.Status)
	require.NotNil(t, o.DeliveredAt)
}

// El ciclo es monótono: todo salto fuera del grafo falla.
func TestOrder_TransicionesInvalidas(t *testing.T) {
	now := time.Now()
	p := newTestPart(t, "BRK-001", 42.50)

	// ship() sobre PENDING
	o, err := entity.NewSparePartOrder("ord-1", "deal-1", []*entity.SparePart{p}, []int{1}, now)
	require.NoError(t, err)
	assert.ErrorIs(t, o.Ship(nil, now), domain.ErrInvalidTransition)

	// cancel() sobre CONFIRMED
	require.NoError(t, o.Confirm(now))
	assert.ErrorIs(t, o.Cancel(now), domain.ErrInvalidTransition)

	// deliver() sobre CONFIRMED (debe pasar por SHIPPED)
	assert.ErrorIs(t, o.Deliver(now), domain.ErrInvalidTransition)

	// ship() sobre CANCELLED
	o2, err := entity.NewSparePartOrder("ord-2", "deal-1", []*entity.SparePart{p}, []int{1}, now)
	require.NoError(t, err)
	require.NoError(t, o2.Cancel(now))
	assert.ErrorIs(t, o2.Ship(nil, now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, o2.Confirm(now), domain.ErrInvalidTransition)
}
