package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// SparePartHandler maneja el catálogo central de repuestos.
type SparePartHandler struct {
	partUC *usecase.SparePartUseCase
}

// NewSparePartHandler construye el handler del catálogo.
func NewSparePartHandler(partUC *usecase.SparePartUseCase) *SparePartHandler {
	return &SparePartHandler{partUC: partUC}
}

// Create godoc
// @Summary      Crear repuesto
// @Description  Alta en el catálogo central; la referencia es única
// @Tags         spare-parts
// @Security     BearerAuth
// @Param        request body dto.SparePartRequest true "Datos del repuesto"
// @Success      201 {object} dto.SparePartResponse
// @Failure      409 {object} dto.ErrorResponse "Referencia duplicada"
// @Router       /api/spare-parts [post]
func (h *SparePartHandler) Create(c *fiber.Ctx) error {
	var req dto.SparePartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.partUC.Create(Actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(part)
}

// Update reemplazo completo de un repuesto del catálogo.
func (h *SparePartHandler) Update(c *fiber.Ctx) error {
	var req dto.SparePartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.partUC.Update(Actor(c), c.Params("reference"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

// SetPrice godoc
// @Summary      Fijar precio unitario
// @Description  Sin precio fijado la referencia no se puede pedir
// @Tags         spare-parts
// @Security     BearerAuth
// @Param        reference path string true "Referencia del repuesto"
// @Param        request body dto.SetPriceRequest true "Precio unitario"
// @Success      200 {object} dto.SparePartResponse
// @Router       /api/spare-parts/{reference}/price [put]
func (h *SparePartHandler) SetPrice(c *fiber.Ctx) error {
	var req dto.SetPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	part, err := h.partUC.SetPrice(Actor(c), c.Params("reference"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

// GetByReference detalle de un repuesto.
func (h *SparePartHandler) GetByReference(c *fiber.Ctx) error {
	part, err := h.partUC.GetByReference(Actor(c), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(part)
}

// List godoc
// @Summary      Listar repuestos
// @Tags         spare-parts
// @Security     BearerAuth
// @Param        category query string false "Filtrar por categoría"
// @Param        manufacturer query string false "Filtrar por fabricante"
// @Param        compatible_model query string false "Filtrar por modelo compatible"
// @Success      200 {object} dto.SparePartListResponse
// @Router       /api/spare-parts [get]
func (h *SparePartHandler) List(c *fiber.Ctx) error {
	filter := repository.SparePartFilter{
		Category:        c.Query("category"),
		Manufacturer:    c.Query("manufacturer"),
		CompatibleModel: c.Query("compatible_model"),
	}
	list, err := h.partUC.List(Actor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Delete baja lógica de un repuesto del catálogo.
func (h *SparePartHandler) Delete(c *fiber.Ctx) error {
	if err := h.partUC.Delete(Actor(c), c.Params("reference")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
