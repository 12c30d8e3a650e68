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

// MotorcycleUseCase casos de uso de flota: alta, kilometraje, ciclo de vida,
// traslado y listados con alcance por rol. Secuencia por operación:
// autorización → carga → mutación invariante-segura → persistencia.
type MotorcycleUseCase struct {
	motoRepo   repository.MotorcycleRepository
	assignRepo repository.AssignmentRepository
}

// NewMotorcycleUseCase construye el caso de uso.
func NewMotorcycleUseCase(motoRepo repository.MotorcycleRepository, assignRepo repository.AssignmentRepository) *MotorcycleUseCase {
	return &MotorcycleUseCase{motoRepo: motoRepo, assignRepo: assignRepo}
}

// Create da de alta una moto: solo el admin de plataforma (MANAGE_FLEET).
// Nace AVAILABLE, sin empresa. VIN duplicado → domain.ErrDuplicate.
func (uc *MotorcycleUseCase) Create(actor authz.Context, in dto.CreateMotorcycleRequest) (*dto.MotorcycleResponse, error) {
	if !actor.Can(authz.PermManageFleet) {
		return nil, domain.ErrUnauthorized
	}
	exists, err := uc.motoRepo.ExistsVIN(in.VIN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	moto, err := entity.NewMotorcycle(uuid.New().String(), in.VIN, in.Model, in.Year, in.Displacement, in.DealershipID, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.motoRepo.Create(moto); err != nil {
		return nil, err
	}
	return ToMotorcycleResponse(moto), nil
}

// loadScoped carga la moto y verifica el alcance del actor sobre ella.
func (uc *MotorcycleUseCase) loadScoped(actor authz.Context, motoID string) (*entity.Motorcycle, error) {
	moto, err := uc.motoRepo.GetByID(motoID)
	if err != nil {
		return nil, err
	}
	if moto == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkMotorcycleScope(actor, moto); err != nil {
		return nil, err
	}
	return moto, nil
}

// checkMotorcycleScope compara el alcance reclamado por el actor con el
// holder de la moto. El admin de plataforma no tiene restricción.
func checkMotorcycleScope(actor authz.Context, moto *entity.Motorcycle) error {
	switch {
	case actor.Role == authz.RoleTriumphAdmin:
		return nil
	case authz.IsDealershipRole(actor.Role):
		if actor.DealershipID != moto.DealershipID {
			return domain.ErrForbidden
		}
	case authz.IsCompanyRole(actor.Role):
		if actor.CompanyID == "" || actor.CompanyID != moto.CompanyID {
			return domain.ErrForbidden
		}
	default:
		return domain.ErrForbidden
	}
	return nil
}

// GetByVIN consulta una moto por VIN, con alcance.
func (uc *MotorcycleUseCase) GetByVIN(actor authz.Context, vin string) (*dto.MotorcycleResponse, error) {
	if !actor.Can(authz.PermViewMotorcycleDetails) {
		return nil, domain.ErrUnauthorized
	}
	moto, err := uc.motoRepo.GetByVIN(vin)
	if err != nil {
		return nil, err
	}
	if moto == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkMotorcycleScope(actor, moto); err != nil {
		return nil, err
	}
	return ToMotorcycleResponse(moto), nil
}

// List lista la flota visible para el actor. El alcance es implícito por rol:
// sin organización reclamada la lista degrada a vacía, no a error.
func (uc *MotorcycleUseCase) List(actor authz.Context) (*dto.MotorcycleListResponse, error) {
	if !actor.Can(authz.PermViewMotorcycleDetails) {
		return nil, domain.ErrUnauthorized
	}
	var (
		motos []*entity.Motorcycle
		err   error
	)
	switch {
	case actor.Role == authz.RoleTriumphAdmin:
		motos, err = uc.motoRepo.ListActive()
	case authz.IsDealershipRole(actor.Role):
		if actor.DealershipID == "" {
			return &dto.MotorcycleListResponse{Items: []dto.MotorcycleResponse{}}, nil
		}
		motos, err = uc.motoRepo.ListByDealership(actor.DealershipID)
	case authz.IsCompanyRole(actor.Role):
		if actor.CompanyID == "" {
			return &dto.MotorcycleListResponse{Items: []dto.MotorcycleResponse{}}, nil
		}
		motos, err = uc.motoRepo.ListByCompany(actor.CompanyID)
	default:
		return &dto.MotorcycleListResponse{Items: []dto.MotorcycleResponse{}}, nil
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MotorcycleResponse, 0, len(motos))
	for _, m := range motos {
		items = append(items, *ToMotorcycleResponse(m))
	}
	return &dto.MotorcycleListResponse{Items: items}, nil
}

// ListDueForMaintenance motos que alcanzaron su kilometraje de servicio.
func (uc *MotorcycleUseCase) ListDueForMaintenance(actor authz.Context) (*dto.MotorcycleListResponse, error) {
	if !actor.Can(authz.PermManageMaintenance) {
		return nil, domain.ErrUnauthorized
	}
	motos, err := uc.motoRepo.ListDueForMaintenance()
	if err != nil {
		return nil, err
	}
	items := make([]dto.MotorcycleResponse, 0, len(motos))
	for _, m := range motos {
		if checkMotorcycleScope(actor, m) != nil {
			continue // fuera de alcance: se omite, no se falla
		}
		items = append(items, *ToMotorcycleResponse(m))
	}
	return &dto.MotorcycleListResponse{Items: items}, nil
}

// UpdateMileage actualiza kilometraje con la regla de monotonía.
func (uc *MotorcycleUseCase) UpdateMileage(actor authz.Context, motoID string, in dto.UpdateMileageRequest) (*dto.MotorcycleResponse, error) {
	if !actor.Can(authz.PermUpdateMileage) {
		return nil, domain.ErrUnauthorized
	}
	moto, err := uc.loadScoped(actor, motoID)
	if err != nil {
		return nil, err
	}
	if err := moto.UpdateMileage(in.Mileage, in.Correction, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.motoRepo.Update(moto); err != nil {
		return nil, err
	}
	return ToMotorcycleResponse(moto), nil
}

// MarkAsInMaintenance pasa la moto a mantenimiento.
func (uc *MotorcycleUseCase) MarkAsInMaintenance(actor authz.Context, motoID string) (*dto.MotorcycleResponse, error) {
	return uc.mutateStatus(actor, motoID, (*entity.Motorcycle).MarkAsInMaintenance)
}

// MarkAsAvailable devuelve la moto a disponible.
func (uc *MotorcycleUseCase) MarkAsAvailable(actor authz.Context, motoID string) (*dto.MotorcycleResponse, error) {
	return uc.mutateStatus(actor, motoID, (*entity.Motorcycle).MarkAsAvailable)
}

// MarkAsOutOfService retira la moto de servicio.
func (uc *MotorcycleUseCase) MarkAsOutOfService(actor authz.Context, motoID string) (*dto.MotorcycleResponse, error) {
	return uc.mutateStatus(actor, motoID, (*entity.Motorcycle).MarkAsOutOfService)
}

func (uc *MotorcycleUseCase) mutateStatus(actor authz.Context, motoID string, op func(*entity.Motorcycle, time.Time) error) (*dto.MotorcycleResponse, error) {
	if !actor.Can(authz.PermManageMaintenance) {
		return nil, domain.ErrUnauthorized
	}
	moto, err := uc.loadScoped(actor, motoID)
	if err != nil {
		return nil, err
	}
	if err := op(moto, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.motoRepo.Update(moto); err != nil {
		return nil, err
	}
	return ToMotorcycleResponse(moto), nil
}

// ScheduleService programa el próximo mantenimiento por kilometraje.
func (uc *MotorcycleUseCase) ScheduleService(actor authz.Context, motoID string, in dto.ScheduleServiceRequest) (*dto.MotorcycleResponse, error) {
	if !actor.Can(authz.PermManageMaintenance) {
		return nil, domain.ErrUnauthorized
	}
	moto, err := uc.loadScoped(actor, motoID)
	if err != nil {
		return nil, err
	}
	if err := moto.ScheduleService(in.AtKM, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.motoRepo.Update(moto); err != nil {
		return nil, err
	}
	return ToMotorcycleResponse(moto), nil
}

// Transfer traslada la moto a otro concesionario (TRANSFER_MOTORCYCLES).
// La entidad rechaza el traslado mientras una empresa la retenga.
func (uc *MotorcycleUseCase) Transfer(actor authz.Context, motoID string, in dto.TransferMotorcycleRequest) (*dto.MotorcycleResponse, error) {
	if !actor.Can(authz.PermTransferMotorcycles) {
		return nil, domain.ErrUnauthorized
	}
	moto, err := uc.motoRepo.GetByID(motoID)
	if err != nil {
		return nil, err
	}
	if moto == nil {
		return nil, domain.ErrNotFound
	}
	active, err := uc.assignRepo.FindActiveByMotorcycleID(motoID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrMotorcycleInUse
	}
	if err := moto.TransferToDealership(in.NewDealershipID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.motoRepo.Update(moto); err != nil {
		return nil, err
	}
	return ToMotorcycleResponse(moto), nil
}

// Deactivate da de baja la moto; bloqueada mientras exista asignación activa.
func (uc *MotorcycleUseCase) Deactivate(actor authz.Context, motoID string) error {
	if !actor.Can(authz.PermManageFleet) {
		return domain.ErrUnauthorized
	}
	moto, err := uc.motoRepo.GetByID(motoID)
	if err != nil {
		return err
	}
	if moto == nil {
		return domain.ErrNotFound
	}
	active, err := uc.assignRepo.FindActiveByMotorcycleID(motoID)
	if err != nil {
		return err
	}
	if active != nil {
		return domain.ErrMotorcycleInUse
	}
	if err := moto.Deactivate(time.Now()); err != nil {
		return err
	}
	return uc.motoRepo.Update(moto)
}

// ToMotorcycleResponse mapea la entidad al DTO de respuesta.
func ToMotorcycleResponse(m *entity.Motorcycle) *dto.MotorcycleResponse {
	if m == nil {
		return nil
	}
	return &dto.MotorcycleResponse{
		ID:            m.ID,
		VIN:           m.VIN,
		Model:         m.Model,
		Year:          m.Year,
		Displacement:  m.Displacement,
		Mileage:       m.Mileage,
		Status:        string(m.Status),
		IsActive:      m.IsActive,
		DealershipID:  m.DealershipID,
		CompanyID:     m.CompanyID,
		NextServiceKM: m.NextServiceKM,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
