package repository

import "github.com/tu-usuario/flota-pro/internal/domain/entity"

// AssignmentRepository puerto de persistencia para Assignment (CompanyMotorcycle).
// FindActiveByMotorcycleID sostiene la regla "a lo sumo una asignación activa
// por moto": el caso de uso la consulta dentro de la misma unidad transaccional.
type AssignmentRepository interface {
	Create(a *entity.Assignment) error
	Update(a *entity.Assignment) error
	GetByID(id string) (*entity.Assignment, error)
	ListByCompany(companyID string) ([]*entity.Assignment, error)
	ListByMotorcycle(motorcycleID string) ([]*entity.Assignment, error)
	FindActiveByCompanyID(companyID string) ([]*entity.Assignment, error)
	FindActiveByMotorcycleID(motorcycleID string) (*entity.Assignment, error)
	Exists(companyID, motorcycleID string) (bool, error)
}
