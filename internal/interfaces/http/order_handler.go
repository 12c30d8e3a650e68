package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/parts"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

// OrderHandler maneja los pedidos de repuestos entre concesionario y central.
type OrderHandler struct {
	orderUC *parts.OrderUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(orderUC *parts.OrderUseCase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// PlaceOrder godoc
// @Summary      Realizar pedido de repuestos
// @Description  Congela el precio unitario de cada línea al momento de pedir
// @Tags         orders
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "Concesionario y líneas"
// @Success      201 {object} dto.OrderResponse
// @Failure      400 {object} dto.ErrorResponse "Pedido sin líneas"
// @Failure      409 {object} dto.ErrorResponse "Referencia sin precio"
// @Router       /api/orders [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.PlaceOrder(Actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// Confirm godoc
// @Summary      Confirmar pedido
// @Description  Valida el pedido y abona el stock del concesionario exactamente una vez (solo admin de plataforma)
// @Tags         orders
// @Security     BearerAuth
// @Param        id path string true "ID del pedido"
// @Success      200 {object} dto.OrderResponse
// @Failure      409 {object} dto.ErrorResponse "Transición inválida"
// @Router       /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	order, err := h.orderUC.ConfirmOrder(c.Context(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Ship despacha el pedido con fecha estimada de entrega opcional.
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var req dto.ShipOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.ShipOrder(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Deliver registra la recepción del pedido en el concesionario.
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	order, err := h.orderUC.DeliverOrder(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Solo pedidos PENDING; nunca toca el stock
// @Tags         orders
// @Security     BearerAuth
// @Param        id path string true "ID del pedido"
// @Success      200 {object} dto.OrderResponse
// @Failure      409 {object} dto.ErrorResponse "Transición inválida"
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.orderUC.CancelOrder(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// GetByID detalle de un pedido con sus líneas.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderUC.GetByID(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ListByDealership pedidos de un concesionario, más recientes primero.
func (h *OrderHandler) ListByDealership(c *fiber.Ctx) error {
	list, err := h.orderUC.ListByDealership(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// List vista de la central: por estado, o por rango de fechas si se pasan
// from/to (RFC 3339).
func (h *OrderHandler) List(c *fiber.Ctx) error {
	if c.Query("from") != "" || c.Query("to") != "" {
		from, err := time.Parse(time.RFC3339, c.Query("from"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
		}
		list, err := h.orderUC.ListByDateRange(Actor(c), from, to)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
	status := entity.OrderStatus(c.Query("status", string(entity.OrderPending)))
	list, err := h.orderUC.ListByStatus(Actor(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetStats resumen de pedidos de un concesionario.
func (h *OrderHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.orderUC.GetStats(c.Context(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GeneratePDF godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id path string true "ID del pedido"
// @Success      200 {file} binary
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) GeneratePDF(c *fiber.Ctx) error {
	data, err := h.orderUC.GeneratePDF(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="pedido-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}
