package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/flota-pro/internal/domain"
)

// OrderStatus estado del ciclo de vida de un pedido de repuestos.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// orderTransitions grafo unidireccional del ciclo de vida del pedido.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

// OrderItem línea de pedido: snapshot del repuesto con el precio al momento
// de pedir.
type OrderItem struct {
	SparePartReference string
	SparePartName      string
	Quantity           int
	UnitPrice          decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (it OrderItem) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// SparePartOrder pedido de repuestos de un concesionario. Nace PENDING con
// ítems no vacíos; la confirmación alimenta el stock del concesionario una
// única vez (a cargo del caso de uso, en una sola transacción).
type SparePartOrder struct {
	ID                  string
	DealershipID        string
	OrderedAt           time.Time
	Items               []OrderItem
	Status              OrderStatus
	EstimatedDeliveryAt *time.Time
	DeliveredAt         *time.Time
	UpdatedAt           time.Time
}

// NewSparePartOrder crea un pedido PENDING. Cada ítem toma el precio del
// repuesto referenciado; repuesto sin precio → error.
func NewSparePartOrder(id, dealershipID string, parts []*SparePart, quantities []int, now time.Time) (*SparePartOrder, error) {
	if id == "" || dealershipID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(parts) == 0 || len(parts) != len(quantities) {
		return nil, domain.ErrEmptyOrder
	}
	items := make([]OrderItem, 0, len(parts))
	for i, p := range parts {
		if p == nil || quantities[i] <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if !p.PriceSet {
			return nil, domain.ErrPriceNotSet
		}
		items = append(items, OrderItem{
			SparePartReference: p.Reference,
			SparePartName:      p.Name,
			Quantity:           quantities[i],
			UnitPrice:          p.UnitPrice,
		})
	}
	return &SparePartOrder{
		ID:           id,
		DealershipID: dealershipID,
		OrderedAt:    now,
		Items:        items,
		Status:       OrderPending,
		UpdatedAt:    now,
	}, nil
}

// canTransition informa si el cambio de estado está en el grafo.
func (o *SparePartOrder) canTransition(to OrderStatus) bool {
	for _, s := range orderTransitions[o.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// Confirm pasa el pedido a CONFIRMED (solo desde PENDING). El abono al stock
// lo hace el caso de uso en la misma transacción.
func (o *SparePartOrder) Confirm(now time.Time) error {
	if !o.canTransition(OrderConfirmed) {
		return domain.ErrInvalidTransition
	}
	o.Status = OrderConfirmed
	o.UpdatedAt = now
	return nil
}

// Ship pasa el pedido a SHIPPED (solo desde CONFIRMED).
func (o *SparePartOrder) Ship(estimatedDelivery *time.Time, now time.Time) error {
	if !o.canTransition(OrderShipped) {
		return domain.ErrInvalidTransition
	}
	o.Status = OrderShipped
	if estimatedDelivery != nil {
		o.EstimatedDeliveryAt = estimatedDelivery
	}
	o.UpdatedAt = now
	return nil
}

// Deliver pasa el pedido a DELIVERED (solo desde SHIPPED) y sella DeliveredAt.
func (o *SparePartOrder) Deliver(now time.Time) error {
	if !o.canTransition(OrderDelivered) {
		return domain.ErrInvalidTransition
	}
	o.Status = OrderDelivered
	t := now
	o.DeliveredAt = &t
	o.UpdatedAt = now
	return nil
}

// Cancel anula el pedido (solo desde PENDING). Nunca toca el stock.
func (o *SparePartOrder) Cancel(now time.Time) error {
	if !o.canTransition(OrderCancelled) {
		return domain.ErrInvalidTransition
	}
	o.Status = OrderCancelled
	o.UpdatedAt = now
	return nil
}

// TotalCost suma de los subtotales de los ítems.
func (o *SparePartOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
