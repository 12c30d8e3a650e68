package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// AssignmentUseCase asigna motos a empresas y termina asignaciones. Las dos
// escrituras (moto + registro de asignación) van dentro de la misma
// transacción vía FleetTxRunner.
type AssignmentUseCase struct {
	txRunner    FleetTxRunner
	companyRepo repository.CompanyRepository
	assignRepo  repository.AssignmentRepository
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(txRunner FleetTxRunner, companyRepo repository.CompanyRepository, assignRepo repository.AssignmentRepository) *AssignmentUseCase {
	return &AssignmentUseCase{txRunner: txRunner, companyRepo: companyRepo, assignRepo: assignRepo}
}

// Assign asigna una moto disponible a una empresa activa. Dentro de la tx:
// relee la moto, verifica que no tenga asignación activa, la pasa a IN_USE
// con la empresa y crea el registro activo.
func (uc *AssignmentUseCase) Assign(ctx context.Context, actor authz.Context, in dto.AssignMotorcycleRequest) (*dto.AssignmentResponse, error) {
	if !actor.Can(authz.PermAssignMotorcycles) {
		return nil, domain.ErrUnauthorized
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.IsActive {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Assignment
	err = uc.txRunner.Run(ctx, func(motoRepo repository.MotorcycleRepository, assignRepo repository.AssignmentRepository) error {
		moto, err := motoRepo.GetByID(in.MotorcycleID)
		if err != nil {
			return err
		}
		if moto == nil {
			return domain.ErrNotFound
		}
		if err := checkMotorcycleScope(actor, moto); err != nil {
			return err
		}
		active, err := assignRepo.FindActiveByMotorcycleID(moto.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrMotorcycleNotAvailable
		}
		a, err := entity.NewAssignment(uuid.New().String(), company.ID, moto, time.Now())
		if err != nil {
			return err
		}
		if err := motoRepo.Update(moto); err != nil {
			return err
		}
		if err := assignRepo.Create(a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponse(created), nil
}

// End termina una asignación activa: la moto vuelve a AVAILABLE sin empresa
// y el registro queda cerrado, todo en la misma tx.
func (uc *AssignmentUseCase) End(ctx context.Context, actor authz.Context, assignmentID string) (*dto.AssignmentResponse, error) {
	if !actor.Can(authz.PermAssignMotorcycles) {
		return nil, domain.ErrUnauthorized
	}
	var ended *entity.Assignment
	err := uc.txRunner.Run(ctx, func(motoRepo repository.MotorcycleRepository, assignRepo repository.AssignmentRepository) error {
		a, err := assignRepo.GetByID(assignmentID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		moto, err := motoRepo.GetByID(a.MotorcycleID)
		if err != nil {
			return err
		}
		if moto == nil {
			return domain.ErrNotFound
		}
		if err := checkMotorcycleScope(actor, moto); err != nil {
			return err
		}
		if err := a.End(moto, time.Now()); err != nil {
			return err
		}
		if err := motoRepo.Update(moto); err != nil {
			return err
		}
		if err := assignRepo.Update(a); err != nil {
			return err
		}
		ended = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponse(ended), nil
}

// ListByCompany historial de asignaciones de una empresa. Los roles de empresa
// solo ven la propia.
func (uc *AssignmentUseCase) ListByCompany(actor authz.Context, companyID string) (*dto.AssignmentListResponse, error) {
	if !actor.Can(authz.PermViewMotorcycleDetails) {
		return nil, domain.ErrUnauthorized
	}
	if authz.IsCompanyRole(actor.Role) && actor.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.assignRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return toAssignmentList(list), nil
}

// ListByMotorcycle historial de asignaciones de una moto.
func (uc *AssignmentUseCase) ListByMotorcycle(actor authz.Context, motorcycleID string) (*dto.AssignmentListResponse, error) {
	if !actor.Can(authz.PermAssignMotorcycles) {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.assignRepo.ListByMotorcycle(motorcycleID)
	if err != nil {
		return nil, err
	}
	return toAssignmentList(list), nil
}

func toAssignmentList(list []*entity.Assignment) *dto.AssignmentListResponse {
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAssignmentResponse(a))
	}
	return &dto.AssignmentListResponse{Items: items}
}

// ToAssignmentResponse mapea la entidad al DTO de respuesta.
func ToAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AssignmentResponse{
		ID:           a.ID,
		CompanyID:    a.CompanyID,
		MotorcycleID: a.MotorcycleID,
		AssignedAt:   a.AssignedAt,
		EndedAt:      a.EndedAt,
		IsActive:     a.IsActive,
	}
}
