package repository

import "github.com/tu-usuario/flota-pro/internal/domain/entity"

// CompanyRepository puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	Update(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByRegistrationNumber(registrationNumber string) (*entity.Company, error)
	FindByEmployeeID(userID string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	ListActive() ([]*entity.Company, error)
}
