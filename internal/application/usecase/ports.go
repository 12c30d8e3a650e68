package usecase

import (
	"context"

	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// FleetTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el chequeo "a lo sumo una
// asignación activa por moto" y la escritura posterior sean atómicos.
type FleetTxRunner interface {
	Run(ctx context.Context, fn func(
		motoRepo repository.MotorcycleRepository,
		assignRepo repository.AssignmentRepository,
	) error) error
}
