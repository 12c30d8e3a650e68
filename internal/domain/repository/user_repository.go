package repository

import "github.com/tu-usuario/flota-pro/internal/domain/entity"

// UserRepository puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	Update(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByDealership(dealershipID string) ([]*entity.User, error)
	ListByCompany(companyID string) ([]*entity.User, error)
	Delete(id string) error
}
