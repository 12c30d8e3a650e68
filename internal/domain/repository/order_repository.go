package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

// OrderStats resumen de pedidos de un concesionario.
type OrderStats struct {
	TotalOrders int
	ByStatus    map[entity.OrderStatus]int
	TotalSpent  decimal.Decimal // suma de pedidos no cancelados
}

// OrderRepository puerto de persistencia para SparePartOrder.
type OrderRepository interface {
	Create(order *entity.SparePartOrder) error
	Update(order *entity.SparePartOrder) error
	GetByID(id string) (*entity.SparePartOrder, error)
	ListByDealership(dealershipID string) ([]*entity.SparePartOrder, error)
	ListByStatus(status entity.OrderStatus) ([]*entity.SparePartOrder, error)
	ListByDateRange(from, to time.Time) ([]*entity.SparePartOrder, error)
	GetOrderStats(ctx context.Context, dealershipID string) (*OrderStats, error)
}
