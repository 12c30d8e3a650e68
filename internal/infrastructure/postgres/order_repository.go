package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con
// pool o tx). Las líneas viven en order_items con el precio congelado al pedir.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, dealership_id, ordered_at, status, estimated_delivery_at, delivered_at, updated_at`

func scanOrder(row pgx.Row) (*entity.SparePartOrder, error) {
	var o entity.SparePartOrder
	err := row.Scan(
		&o.ID, &o.DealershipID, &o.OrderedAt, &o.Status,
		&o.EstimatedDeliveryAt, &o.DeliveredAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) loadItems(o *entity.SparePartOrder) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT reference, name, quantity, unit_price
		 FROM order_items WHERE order_id = $1 ORDER BY position`, o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.SparePartReference, &it.SparePartName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

// Create persiste el pedido con sus líneas.
func (r *OrderRepo) Create(order *entity.SparePartOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO spare_part_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.DealershipID, order.OrderedAt, order.Status,
		order.EstimatedDeliveryAt, order.DeliveredAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i, it := range order.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (order_id, position, reference, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, i, it.SparePartReference, it.SparePartName, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// Update actualiza el estado del pedido. Las líneas son inmutables.
func (r *OrderRepo) Update(order *entity.SparePartOrder) error {
	query := `
		UPDATE spare_part_orders
		SET status = $2, estimated_delivery_at = $3, delivered_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.EstimatedDeliveryAt, order.DeliveredAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas. Dentro de una tx bloquea la fila
// (FOR UPDATE) para serializar confirmaciones concurrentes.
func (r *OrderRepo) GetByID(id string) (*entity.SparePartOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM spare_part_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) listWhere(where string, args ...any) ([]*entity.SparePartOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM spare_part_orders WHERE ` + where + ` ORDER BY ordered_at DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.SparePartOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListByDealership pedidos del concesionario, más recientes primero.
func (r *OrderRepo) ListByDealership(dealershipID string) ([]*entity.SparePartOrder, error) {
	return r.listWhere("dealership_id = $1", dealershipID)
}

// ListByStatus pedidos en un estado dado.
func (r *OrderRepo) ListByStatus(status entity.OrderStatus) ([]*entity.SparePartOrder, error) {
	return r.listWhere("status = $1", status)
}

// ListByDateRange pedidos dentro del rango [from, to].
func (r *OrderRepo) ListByDateRange(from, to time.Time) ([]*entity.SparePartOrder, error) {
	return r.listWhere("ordered_at BETWEEN $1 AND $2", from, to)
}

// GetOrderStats resumen de pedidos del concesionario; el gasto total excluye
// los cancelados.
func (r *OrderRepo) GetOrderStats(ctx context.Context, dealershipID string) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{
		ByStatus:   make(map[entity.OrderStatus]int),
		TotalSpent: decimal.Zero,
	}

	rows, err := r.q.Query(ctx,
		`SELECT status, COUNT(*) FROM spare_part_orders WHERE dealership_id = $1 GROUP BY status`,
		dealershipID)
	if err != nil {
		return nil, fmt.Errorf("order stats by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status entity.OrderStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan order stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM spare_part_orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.dealership_id = $1 AND o.status <> $2`,
		dealershipID, entity.OrderCancelled,
	).Scan(&stats.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("order stats total spent: %w", err)
	}
	return stats, nil
}
