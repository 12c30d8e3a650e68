package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrMotorcycleNotAvailable = errors.New("la motocicleta no está disponible")
	ErrMotorcycleInUse        = errors.New("la motocicleta tiene una asignación activa")
	ErrAssignmentNotActive    = errors.New("la asignación ya no está activa")
	ErrCompanyHasAssignments  = errors.New("la empresa tiene asignaciones activas")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrEmptyOrder             = errors.New("el pedido no tiene ítems")
	ErrPriceNotSet            = errors.New("el repuesto no tiene precio definido")
)
