package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// DealershipUseCase alta y gestión de concesionarios y de su plantilla.
type DealershipUseCase struct {
	dealershipRepo repository.DealershipRepository
	userRepo       repository.UserRepository
}

// NewDealershipUseCase construye el caso de uso.
func NewDealershipUseCase(dealershipRepo repository.DealershipRepository, userRepo repository.UserRepository) *DealershipUseCase {
	return &DealershipUseCase{dealershipRepo: dealershipRepo, userRepo: userRepo}
}

// Create da de alta un concesionario. El nombre es único con comparación
// normalizada ("Bogotá  Norte" choca con "bogota norte").
func (uc *DealershipUseCase) Create(actor authz.Context, in dto.CreateDealershipRequest) (*dto.DealershipResponse, error) {
	if !actor.Can(authz.PermManageDealerships) {
		return nil, domain.ErrUnauthorized
	}
	existing, err := uc.dealershipRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	d, err := entity.NewDealership(uuid.New().String(), in.Name, in.Address, in.City, in.PostalCode, in.Phone, in.Email, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.dealershipRepo.Create(d); err != nil {
		return nil, err
	}
	return ToDealershipResponse(d), nil
}

// GetByID consulta un concesionario. El personal de concesionario solo ve el propio.
func (uc *DealershipUseCase) GetByID(actor authz.Context, dealershipID string) (*dto.DealershipResponse, error) {
	if authz.IsDealershipRole(actor.Role) {
		if actor.DealershipID != dealershipID {
			return nil, domain.ErrForbidden
		}
	} else if !actor.Can(authz.PermManageDealerships) {
		return nil, domain.ErrUnauthorized
	}
	d, err := uc.dealershipRepo.GetByID(dealershipID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return ToDealershipResponse(d), nil
}

// List lista concesionarios con paginación.
func (uc *DealershipUseCase) List(actor authz.Context, page dto.PageRequest) (*dto.DealershipListResponse, error) {
	if !actor.Can(authz.PermManageDealerships) {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.dealershipRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DealershipResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *ToDealershipResponse(d))
	}
	return &dto.DealershipListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AddEmployee añade un usuario a la plantilla. El rol del usuario debe ser de
// concesionario; duplicados → domain.ErrDuplicate.
func (uc *DealershipUseCase) AddEmployee(actor authz.Context, dealershipID string, in dto.EmployeeRequest) (*dto.DealershipResponse, error) {
	d, err := uc.loadManaged(actor, dealershipID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := d.Employees.AddEmployee(user); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	if err := uc.dealershipRepo.Update(d); err != nil {
		return nil, err
	}
	if user.DealershipID != d.ID {
		user.DealershipID = d.ID
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return ToDealershipResponse(d), nil
}

// RemoveEmployee quita un usuario de la plantilla.
func (uc *DealershipUseCase) RemoveEmployee(actor authz.Context, dealershipID, userID string) (*dto.DealershipResponse, error) {
	d, err := uc.loadManaged(actor, dealershipID)
	if err != nil {
		return nil, err
	}
	if err := d.Employees.RemoveEmployee(userID); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	if err := uc.dealershipRepo.Update(d); err != nil {
		return nil, err
	}
	return ToDealershipResponse(d), nil
}

func (uc *DealershipUseCase) loadManaged(actor authz.Context, dealershipID string) (*entity.Dealership, error) {
	if !actor.Can(authz.PermManageUsers) {
		return nil, domain.ErrUnauthorized
	}
	if authz.IsDealershipRole(actor.Role) && actor.DealershipID != dealershipID {
		return nil, domain.ErrForbidden
	}
	d, err := uc.dealershipRepo.GetByID(dealershipID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// Deactivate da de baja el concesionario.
func (uc *DealershipUseCase) Deactivate(actor authz.Context, dealershipID string) error {
	if !actor.Can(authz.PermManageDealerships) {
		return domain.ErrUnauthorized
	}
	d, err := uc.dealershipRepo.GetByID(dealershipID)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	d.Deactivate(time.Now())
	return uc.dealershipRepo.Update(d)
}

// ToDealershipResponse mapea la entidad al DTO de respuesta.
func ToDealershipResponse(d *entity.Dealership) *dto.DealershipResponse {
	if d == nil {
		return nil
	}
	return &dto.DealershipResponse{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		City:        d.City,
		PostalCode:  d.PostalCode,
		Phone:       d.Phone,
		Email:       d.Email,
		IsActive:    d.IsActive,
		EmployeeIDs: d.Employees.GetAll(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
