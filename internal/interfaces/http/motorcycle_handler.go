package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
)

// MotorcycleHandler maneja el ciclo de vida de la flota.
type MotorcycleHandler struct {
	motoUC *usecase.MotorcycleUseCase
}

// NewMotorcycleHandler construye el handler de motocicletas.
func NewMotorcycleHandler(motoUC *usecase.MotorcycleUseCase) *MotorcycleHandler {
	return &MotorcycleHandler{motoUC: motoUC}
}

// Create godoc
// @Summary      Registrar motocicleta
// @Description  Alta de una moto en un concesionario (solo admin de plataforma)
// @Tags         motorcycles
// @Security     BearerAuth
// @Param        request body dto.CreateMotorcycleRequest true "Datos de la moto"
// @Success      201 {object} dto.MotorcycleResponse
// @Failure      409 {object} dto.ErrorResponse "VIN duplicado"
// @Router       /api/motorcycles [post]
func (h *MotorcycleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMotorcycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	moto, err := h.motoUC.Create(Actor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(moto)
}

// List godoc
// @Summary      Listar motocicletas
// @Description  Lista según el scope del actor: el admin ve todas, los roles de concesionario/empresa solo las propias
// @Tags         motorcycles
// @Security     BearerAuth
// @Success      200 {object} dto.MotorcycleListResponse
// @Router       /api/motorcycles [get]
func (h *MotorcycleHandler) List(c *fiber.Ctx) error {
	list, err := h.motoUC.List(Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByVIN godoc
// @Summary      Buscar moto por VIN
// @Tags         motorcycles
// @Security     BearerAuth
// @Param        vin path string true "VIN de 17 caracteres"
// @Success      200 {object} dto.MotorcycleResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /api/motorcycles/vin/{vin} [get]
func (h *MotorcycleHandler) GetByVIN(c *fiber.Ctx) error {
	moto, err := h.motoUC.GetByVIN(Actor(c), c.Params("vin"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// ListDueForMaintenance godoc
// @Summary      Motos con mantenimiento vencido
// @Description  Motos cuyo kilometraje alcanzó el próximo servicio programado
// @Tags         motorcycles
// @Security     BearerAuth
// @Success      200 {object} dto.MotorcycleListResponse
// @Router       /api/motorcycles/due-for-maintenance [get]
func (h *MotorcycleHandler) ListDueForMaintenance(c *fiber.Ctx) error {
	list, err := h.motoUC.ListDueForMaintenance(Actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// UpdateMileage godoc
// @Summary      Actualizar kilometraje
// @Description  El kilometraje solo puede crecer salvo corrección explícita
// @Tags         motorcycles
// @Security     BearerAuth
// @Param        id path string true "ID de la moto"
// @Param        request body dto.UpdateMileageRequest true "Nuevo kilometraje"
// @Success      200 {object} dto.MotorcycleResponse
// @Router       /api/motorcycles/{id}/mileage [put]
func (h *MotorcycleHandler) UpdateMileage(c *fiber.Ctx) error {
	var req dto.UpdateMileageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	moto, err := h.motoUC.UpdateMileage(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// MarkAsInMaintenance pasa la moto a MAINTENANCE (rechazado si está asignada).
func (h *MotorcycleHandler) MarkAsInMaintenance(c *fiber.Ctx) error {
	moto, err := h.motoUC.MarkAsInMaintenance(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// MarkAsAvailable devuelve la moto a AVAILABLE.
func (h *MotorcycleHandler) MarkAsAvailable(c *fiber.Ctx) error {
	moto, err := h.motoUC.MarkAsAvailable(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// MarkAsOutOfService retira la moto de servicio.
func (h *MotorcycleHandler) MarkAsOutOfService(c *fiber.Ctx) error {
	moto, err := h.motoUC.MarkAsOutOfService(Actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// ScheduleService programa el próximo mantenimiento por kilometraje.
func (h *MotorcycleHandler) ScheduleService(c *fiber.Ctx) error {
	var req dto.ScheduleServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	moto, err := h.motoUC.ScheduleService(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// Transfer godoc
// @Summary      Trasladar moto a otro concesionario
// @Description  Rechazado mientras la moto tenga una asignación activa
// @Tags         motorcycles
// @Security     BearerAuth
// @Param        id path string true "ID de la moto"
// @Param        request body dto.TransferMotorcycleRequest true "Concesionario destino"
// @Success      200 {object} dto.MotorcycleResponse
// @Failure      409 {object} dto.ErrorResponse "Moto en uso"
// @Router       /api/motorcycles/{id}/transfer [post]
func (h *MotorcycleHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferMotorcycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	moto, err := h.motoUC.Transfer(Actor(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moto)
}

// Deactivate da de baja lógica la moto (rechazado si tiene asignación activa).
func (h *MotorcycleHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.motoUC.Deactivate(Actor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
