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

// CompanyUseCase alta y gestión de empresas asociadas y de su plantilla.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	assignRepo  repository.AssignmentRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, userRepo repository.UserRepository, assignRepo repository.AssignmentRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, userRepo: userRepo, assignRepo: assignRepo}
}

// Register da de alta una empresa. El número de registro es único (comparación
// normalizada en el repositorio); si ya existe no se intenta persistir nada.
func (uc *CompanyUseCase) Register(actor authz.Context, in dto.RegisterCompanyRequest) (*dto.CompanyResponse, error) {
	if !actor.Can(authz.PermManageCompanies) {
		return nil, domain.ErrUnauthorized
	}
	existing, err := uc.companyRepo.GetByRegistrationNumber(in.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	// Si la crea personal de concesionario, queda registrado quién la dio de alta.
	createdBy := ""
	if authz.IsDealershipRole(actor.Role) {
		createdBy = actor.DealershipID
	}
	company, err := entity.NewCompany(uuid.New().String(), in.Name, in.RegistrationNumber, in.Address, in.Phone, in.Email, createdBy, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// GetByID consulta una empresa. Los roles de empresa solo ven la propia.
func (uc *CompanyUseCase) GetByID(actor authz.Context, companyID string) (*dto.CompanyResponse, error) {
	if authz.IsCompanyRole(actor.Role) {
		if actor.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	} else if !actor.Can(authz.PermManageCompanies) {
		return nil, domain.ErrUnauthorized
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return ToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(actor authz.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if !actor.Can(authz.PermManageCompanies) {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.companyRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AddEmployee añade un usuario a la plantilla de la empresa. El rol del
// usuario debe ser de empresa; duplicados → domain.ErrDuplicate.
func (uc *CompanyUseCase) AddEmployee(actor authz.Context, companyID string, in dto.EmployeeRequest) (*dto.CompanyResponse, error) {
	company, err := uc.loadManaged(actor, companyID)
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
	if err := company.Employees.AddEmployee(user); err != nil {
		return nil, err
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	if user.CompanyID != company.ID {
		user.CompanyID = company.ID
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return ToCompanyResponse(company), nil
}

// RemoveEmployee quita un usuario de la plantilla de la empresa.
func (uc *CompanyUseCase) RemoveEmployee(actor authz.Context, companyID, userID string) (*dto.CompanyResponse, error) {
	company, err := uc.loadManaged(actor, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.Employees.RemoveEmployee(userID); err != nil {
		return nil, err
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// loadManaged carga la empresa verificando permiso de gestión de plantilla y
// alcance: el manager de empresa solo gestiona la propia.
func (uc *CompanyUseCase) loadManaged(actor authz.Context, companyID string) (*entity.Company, error) {
	if !actor.Can(authz.PermManageUsers) {
		return nil, domain.ErrUnauthorized
	}
	if authz.IsCompanyRole(actor.Role) && actor.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// Deactivate da de baja la empresa; bloqueada mientras tenga asignaciones activas.
func (uc *CompanyUseCase) Deactivate(actor authz.Context, companyID string) error {
	if !actor.Can(authz.PermManageCompanies) {
		return domain.ErrUnauthorized
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	active, err := uc.assignRepo.FindActiveByCompanyID(companyID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return domain.ErrCompanyHasAssignments
	}
	company.Deactivate(time.Now())
	return uc.companyRepo.Update(company)
}

// ToCompanyResponse mapea la entidad al DTO de respuesta.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		RegistrationNumber:    c.RegistrationNumber,
		Address:               c.Address,
		Phone:                 c.Phone,
		Email:                 c.Email,
		IsActive:              c.IsActive,
		CreatedByDealershipID: c.CreatedByDealershipID,
		EmployeeIDs:           c.Employees.GetAll(),
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
