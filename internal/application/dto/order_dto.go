package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido por referencia de repuesto.
type OrderItemRequest struct {
	Reference string `json:"reference"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest pedido de repuestos para un concesionario.
type PlaceOrderRequest struct {
	DealershipID string             `json:"dealership_id"`
	Items        []OrderItemRequest `json:"items"`
}

// ShipOrderRequest despacho con fecha estimada de entrega opcional.
type ShipOrderRequest struct {
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at,omitempty"`
}

// OrderItemResponse línea de pedido con el precio congelado al pedir.
type OrderItemResponse struct {
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido de repuestos.
type OrderResponse struct {
	ID                  string              `json:"id"`
	DealershipID        string              `json:"dealership_id"`
	OrderedAt           time.Time           `json:"ordered_at"`
	Status              string              `json:"status"`
	Items               []OrderItemResponse `json:"items"`
	TotalCost           decimal.Decimal     `json:"total_cost"`
	EstimatedDeliveryAt *time.Time          `json:"estimated_delivery_at,omitempty"`
	DeliveredAt         *time.Time          `json:"delivered_at,omitempty"`
}

// OrderListResponse listado de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}

// OrderStatsResponse resumen de pedidos de un concesionario.
type OrderStatsResponse struct {
	DealershipID string          `json:"dealership_id"`
	TotalOrders  int             `json:"total_orders"`
	ByStatus     map[string]int  `json:"by_status"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}
