package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
)

// DealershipHandler maneja los concesionarios de la red.
type DealershipHandler struct {
	dealershipUC *usecase.DealershipUseCase
}

// NewDealershipHandler construye el handler de concesionarios.
func NewDealershipHandler(dealershipUC *usecase.DealershipUseCase) *DealershipHandler {
	return &DealershipHandler{dealershipUC: dealershipUC}
}

// Create godoc
// @Summary      Crear concesionario
// @Description  El nombre es único ignorando mayúsculas y acentos (solo admin de plataforma)
// @Tags         dealerships
// @Security     BearerAuth
// @Param        request body dto.CreateDealershipRequest true "Datos del concesionario"
// @Success      201 {object} dto.DealershipResponse
// @Failure      409 {object} dto.ErrorResponse "Nombre duplicado"
// @Router       /api/dealerships [post]
func (h *DealershipHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDealershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.dealershipUC.Create(Actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// GetByID detalle de un concesionario.
func (h *DealershipHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.dealershipUC.GetByID(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// List listado paginado de concesionarios.
func (h *DealershipHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	list, err := h.dealershipUC.List(Actor(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AddEmployee incorpora un usuario con rol de concesionario a la plantilla.
func (h *DealershipHandler) AddEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.dealershipUC.AddEmployee(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// RemoveEmployee retira un empleado de la plantilla.
func (h *DealershipHandler) RemoveEmployee(c *fiber.Ctx) error {
	d, err := h.dealershipUC.RemoveEmployee(Actor(c), c.Params("id"), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// Deactivate da de baja lógica un concesionario.
func (h *DealershipHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.dealershipUC.Deactivate(Actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
