package repository

import "github.com/tu-usuario/flota-pro/internal/domain/entity"

// MotorcycleRepository define el puerto de persistencia para Motorcycle (DIP).
// La implementación vive en infrastructure.
type MotorcycleRepository interface {
	Create(moto *entity.Motorcycle) error
	Update(moto *entity.Motorcycle) error
	GetByID(id string) (*entity.Motorcycle, error)
	GetByVIN(vin string) (*entity.Motorcycle, error)
	ExistsVIN(vin string) (bool, error)
	ListByDealership(dealershipID string) ([]*entity.Motorcycle, error)
	ListByCompany(companyID string) ([]*entity.Motorcycle, error)
	ListByStatus(status entity.MotorcycleStatus) ([]*entity.Motorcycle, error)
	ListActive() ([]*entity.Motorcycle, error)
	ListDueForMaintenance() ([]*entity.Motorcycle, error)
}
