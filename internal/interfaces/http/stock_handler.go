package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
)

// StockHandler maneja el libro de stock de repuestos por concesionario.
type StockHandler struct {
	stockUC *usecase.StockUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(stockUC *usecase.StockUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC}
}

// GetStock godoc
// @Summary      Consultar stock de un concesionario
// @Description  Cantidades, umbrales y referencias con stock bajo
// @Tags         stock
// @Security     BearerAuth
// @Param        id path string true "ID del concesionario"
// @Success      200 {object} dto.StockResponse
// @Failure      403 {object} dto.ErrorResponse "Stock de otro concesionario"
// @Router       /api/dealerships/{id}/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.stockUC.GetStock(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// AddStock godoc
// @Summary      Entrada manual de stock
// @Tags         stock
// @Security     BearerAuth
// @Param        id path string true "ID del concesionario"
// @Param        request body dto.StockMovementRequest true "Referencia y cantidad"
// @Success      200 {object} dto.StockResponse
// @Router       /api/dealerships/{id}/stock/add [post]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var req dto.StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.stockUC.AddStock(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// RemoveStock godoc
// @Summary      Salida manual de stock
// @Description  Rechazada sin mutar si no hay cantidad suficiente
// @Tags         stock
// @Security     BearerAuth
// @Param        id path string true "ID del concesionario"
// @Param        request body dto.StockMovementRequest true "Referencia y cantidad"
// @Success      200 {object} dto.StockResponse
// @Failure      409 {object} dto.ErrorResponse "Stock insuficiente"
// @Router       /api/dealerships/{id}/stock/remove [post]
func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	var req dto.StockMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.stockUC.RemoveStock(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// SetThreshold fija el umbral de stock bajo de una referencia.
func (h *StockHandler) SetThreshold(c *fiber.Ctx) error {
	var req dto.ThresholdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.stockUC.SetThreshold(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// GetStatistics resumen agregado del stock de un concesionario.
func (h *StockHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.stockUC.GetStatistics(c.Context(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
