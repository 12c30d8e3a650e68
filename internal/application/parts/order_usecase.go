package parts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// OrderUseCase ciclo de vida de pedidos de repuestos. Pedir y cancelar es del
// concesionario (ORDER_SPARE_PARTS); confirmar y despachar queda reservado a
// la plataforma (VALIDATE_ORDERS). La confirmación abona el stock del
// concesionario en la misma transacción, exactamente una vez.
type OrderUseCase struct {
	txRunner       PartsTxRunner
	orderRepo      repository.OrderRepository
	dealershipRepo repository.DealershipRepository
	partRepo       repository.SparePartRepository
	pdf            OrderPDFGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner PartsTxRunner, orderRepo repository.OrderRepository, dealershipRepo repository.DealershipRepository, partRepo repository.SparePartRepository, pdf OrderPDFGenerator) *OrderUseCase {
	return &OrderUseCase{
		txRunner:       txRunner,
		orderRepo:      orderRepo,
		dealershipRepo: dealershipRepo,
		partRepo:       partRepo,
		pdf:            pdf,
	}
}

// checkDealershipScope el personal de concesionario solo opera pedidos propios.
func checkDealershipScope(actor authz.Context, dealershipID string) error {
	if actor.Role == authz.RoleTriumphAdmin {
		return nil
	}
	if authz.IsDealershipRole(actor.Role) && actor.DealershipID == dealershipID {
		return nil
	}
	return domain.ErrForbidden
}

// PlaceOrder crea un pedido PENDING. Cada línea congela el precio vigente del
// repuesto; referencia desconocida → domain.ErrNotFound, sin precio →
// domain.ErrPriceNotSet, sin líneas → domain.ErrEmptyOrder.
func (uc *OrderUseCase) PlaceOrder(actor authz.Context, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if !actor.Can(authz.PermOrderSpareParts) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, in.DealershipID); err != nil {
		return nil, err
	}
	d, err := uc.dealershipRepo.GetByID(in.DealershipID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	partsList := make([]*entity.SparePart, 0, len(in.Items))
	quantities := make([]int, 0, len(in.Items))
	for _, item := range in.Items {
		part, err := uc.partRepo.GetByReference(item.Reference)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, domain.ErrNotFound
		}
		partsList = append(partsList, part)
		quantities = append(quantities, item.Quantity)
	}
	order, err := entity.NewSparePartOrder(uuid.New().String(), in.DealershipID, partsList, quantities, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ConfirmOrder valida el pedido (solo plataforma). Dentro de la tx: relee el
// pedido, lo pasa a CONFIRMED y abona cada línea al stock del concesionario,
// registrando el pedido en el log del libro. Reintentar una confirmación ya
// hecha falla en la transición, por lo que el stock nunca se abona dos veces.
func (uc *OrderUseCase) ConfirmOrder(ctx context.Context, actor authz.Context, orderID string) (*dto.OrderResponse, error) {
	if !actor.Can(authz.PermValidateOrders) {
		return nil, domain.ErrUnauthorized
	}
	var confirmed *entity.SparePartOrder
	err := uc.txRunner.RunParts(ctx, func(orderRepo repository.OrderRepository, dealershipRepo repository.DealershipRepository) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if err := order.Confirm(now); err != nil {
			return err
		}
		stock, err := dealershipRepo.GetSparePartsStock(order.DealershipID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = entity.NewDealershipSparePartsStock(order.DealershipID)
		}
		for _, item := range order.Items {
			if err := stock.AddStock(item.SparePartReference, item.Quantity, now); err != nil {
				return err
			}
		}
		stock.LogOrder(order.ID)
		if err := dealershipRepo.UpdateSparePartsStock(stock); err != nil {
			return err
		}
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(confirmed), nil
}

// ShipOrder despacha un pedido confirmado (solo plataforma).
func (uc *OrderUseCase) ShipOrder(actor authz.Context, orderID string, in dto.ShipOrderRequest) (*dto.OrderResponse, error) {
	if !actor.Can(authz.PermValidateOrders) {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Ship(in.EstimatedDeliveryAt, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// DeliverOrder el concesionario confirma la recepción del pedido despachado.
func (uc *OrderUseCase) DeliverOrder(actor authz.Context, orderID string) (*dto.OrderResponse, error) {
	if !actor.Can(authz.PermOrderSpareParts) {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := checkDealershipScope(actor, order.DealershipID); err != nil {
		return nil, err
	}
	if err := order.Deliver(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// CancelOrder anula un pedido PENDING. Nunca toca el stock.
func (uc *OrderUseCase) CancelOrder(actor authz.Context, orderID string) (*dto.OrderResponse, error) {
	if !actor.Can(authz.PermOrderSpareParts) {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := checkDealershipScope(actor, order.DealershipID); err != nil {
		return nil, err
	}
	if err := order.Cancel(time.Now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetByID consulta un pedido, con alcance de concesionario.
func (uc *OrderUseCase) GetByID(actor authz.Context, orderID string) (*dto.OrderResponse, error) {
	if !actor.Can(authz.PermViewOrders) {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := checkDealershipScope(actor, order.DealershipID); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ListByDealership pedidos de un concesionario.
func (uc *OrderUseCase) ListByDealership(actor authz.Context, dealershipID string) (*dto.OrderListResponse, error) {
	if !actor.Can(authz.PermViewOrders) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.ListByDealership(dealershipID)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// ListByStatus vista de plataforma: pedidos en un estado dado.
func (uc *OrderUseCase) ListByStatus(actor authz.Context, status entity.OrderStatus) (*dto.OrderListResponse, error) {
	if !actor.Can(authz.PermValidateOrders) {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.orderRepo.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// ListByDateRange vista de plataforma: pedidos dentro del rango [from, to].
func (uc *OrderUseCase) ListByDateRange(actor authz.Context, from, to time.Time) (*dto.OrderListResponse, error) {
	if !actor.Can(authz.PermValidateOrders) {
		return nil, domain.ErrUnauthorized
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return toOrderList(list), nil
}

// GetStats resumen de pedidos de un concesionario.
func (uc *OrderUseCase) GetStats(ctx context.Context, actor authz.Context, dealershipID string) (*dto.OrderStatsResponse, error) {
	if !actor.Can(authz.PermViewOrders) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	stats, err := uc.orderRepo.GetOrderStats(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &repository.OrderStats{ByStatus: map[entity.OrderStatus]int{}}
	}
	byStatus := make(map[string]int, len(stats.ByStatus))
	for s, n := range stats.ByStatus {
		byStatus[string(s)] = n
	}
	return &dto.OrderStatsResponse{
		DealershipID: dealershipID,
		TotalOrders:  stats.TotalOrders,
		ByStatus:     byStatus,
		TotalSpent:   stats.TotalSpent,
	}, nil
}

// GeneratePDF comprobante PDF del pedido, con alcance de concesionario.
func (uc *OrderUseCase) GeneratePDF(actor authz.Context, orderID string) ([]byte, error) {
	if !actor.Can(authz.PermViewOrders) {
		return nil, domain.ErrUnauthorized
	}
	order, err := uc.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if err := checkDealershipScope(actor, order.DealershipID); err != nil {
		return nil, err
	}
	return uc.pdf.Generate(order)
}

func (uc *OrderUseCase) loadOrder(orderID string) (*entity.SparePartOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toOrderList(list []*entity.SparePartOrder) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items}
}

// ToOrderResponse mapea la entidad al DTO de respuesta.
func ToOrderResponse(o *entity.SparePartOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			Reference: it.SparePartReference,
			Name:      it.SparePartName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.OrderResponse{
		ID:                  o.ID,
		DealershipID:        o.DealershipID,
		OrderedAt:           o.OrderedAt,
		Status:              string(o.Status),
		Items:               items,
		TotalCost:           o.TotalCost(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt,
		DeliveredAt:         o.DeliveredAt,
	}
}
