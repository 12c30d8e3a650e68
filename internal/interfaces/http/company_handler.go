package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
)

// CompanyHandler maneja las empresas asociadas.
type CompanyHandler struct {
	companyUC *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(companyUC *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{companyUC: companyUC}
}

// Register godoc
// @Summary      Registrar empresa asociada
// @Description  El número de registro es único ignorando mayúsculas y acentos
// @Tags         companies
// @Security     BearerAuth
// @Param        request body dto.RegisterCompanyRequest true "Datos de la empresa"
// @Success      201 {object} dto.CompanyResponse
// @Failure      409 {object} dto.ErrorResponse "Número de registro duplicado"
// @Router       /api/companies [post]
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.companyUC.Register(Actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// GetByID detalle de una empresa.
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.companyUC.GetByID(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     BearerAuth
// @Param        limit query int false "Máximo de resultados (default 20)"
// @Param        offset query int false "Desplazamiento"
// @Success      200 {object} dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	list, err := h.companyUC.List(Actor(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AddEmployee incorpora un usuario con rol de empresa a la plantilla.
func (h *CompanyHandler) AddEmployee(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.companyUC.AddEmployee(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// RemoveEmployee retira un empleado de la plantilla.
func (h *CompanyHandler) RemoveEmployee(c *fiber.Ctx) error {
	company, err := h.companyUC.RemoveEmployee(Actor(c), c.Params("id"), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// Deactivate godoc
// @Summary      Dar de baja una empresa
// @Description  Rechazado mientras la empresa tenga asignaciones activas
// @Tags         companies
// @Security     BearerAuth
// @Param        id path string true "ID de la empresa"
// @Success      204
// @Failure      409 {object} dto.ErrorResponse "Empresa con asignaciones activas"
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.companyUC.Deactivate(Actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
