package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
)

// AssignmentHandler maneja las asignaciones de motos a empresas.
type AssignmentHandler struct {
	assignUC *usecase.AssignmentUseCase
}

// NewAssignmentHandler construye el handler de asignaciones.
func NewAssignmentHandler(assignUC *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{assignUC: assignUC}
}

// Assign godoc
// @Summary      Asignar moto a empresa
// @Description  Solo una asignación activa por moto; la moto debe estar AVAILABLE y la empresa activa
// @Tags         assignments
// @Security     BearerAuth
// @Param        request body dto.AssignMotorcycleRequest true "Empresa y moto"
// @Success      201 {object} dto.AssignmentResponse
// @Failure      409 {object} dto.ErrorResponse "Moto no disponible"
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignMotorcycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.assignUC.Assign(c.Context(), Actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// End godoc
// @Summary      Terminar asignación
// @Description  Cierra la asignación activa y devuelve la moto a AVAILABLE
// @Tags         assignments
// @Security     BearerAuth
// @Param        id path string true "ID de la asignación"
// @Success      200 {object} dto.AssignmentResponse
// @Failure      409 {object} dto.ErrorResponse "Asignación ya terminada"
// @Router       /api/assignments/{id}/end [post]
func (h *AssignmentHandler) End(c *fiber.Ctx) error {
	a, err := h.assignUC.End(c.Context(), Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// ListByCompany historial de asignaciones de una empresa.
func (h *AssignmentHandler) ListByCompany(c *fiber.Ctx) error {
	list, err := h.assignUC.ListByCompany(Actor(c), c.Params("companyId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByMotorcycle historial de asignaciones de una moto.
func (h *AssignmentHandler) ListByMotorcycle(c *fiber.Ctx) error {
	list, err := h.assignUC.ListByMotorcycle(Actor(c), c.Params("motorcycleId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
