package usecase

import (
	"time"

	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// SparePartUseCase catálogo de repuestos: alta, reemplazo completo, precio,
// consulta y baja.
type SparePartUseCase struct {
	partRepo repository.SparePartRepository
}

// NewSparePartUseCase construye el caso de uso.
func NewSparePartUseCase(partRepo repository.SparePartRepository) *SparePartUseCase {
	return &SparePartUseCase{partRepo: partRepo}
}

// Create da de alta un repuesto. Referencia duplicada → domain.ErrDuplicate.
func (uc *SparePartUseCase) Create(actor authz.Context, in dto.SparePartRequest) (*dto.SparePartResponse, error) {
	if !actor.Can(authz.PermManageSpareParts) {
		return nil, domain.ErrUnauthorized
	}
	exists, err := uc.partRepo.Exists(in.Reference)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part, err := entity.NewSparePart(in.Reference, in.Name, in.Category, in.Manufacturer, in.CompatibleModels, in.MinStockThreshold, now)
	if err != nil {
		return nil, err
	}
	if in.UnitPrice != nil {
		if err := part.SetPrice(*in.UnitPrice, now); err != nil {
			return nil, err
		}
	}
	if err := uc.partRepo.Create(part); err != nil {
		return nil, err
	}
	return ToSparePartResponse(part), nil
}

// Update reemplaza el valor completo del repuesto manteniendo la referencia.
func (uc *SparePartUseCase) Update(actor authz.Context, reference string, in dto.SparePartRequest) (*dto.SparePartResponse, error) {
	if !actor.Can(authz.PermManageSpareParts) {
		return nil, domain.ErrUnauthorized
	}
	part, err := uc.partRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.MinStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	part.Name = in.Name
	part.Category = in.Category
	part.Manufacturer = in.Manufacturer
	part.CompatibleModels = in.CompatibleModels
	part.MinStockThreshold = in.MinStockThreshold
	part.UpdatedAt = now
	if in.UnitPrice != nil {
		if err := part.SetPrice(*in.UnitPrice, now); err != nil {
			return nil, err
		}
	}
	if err := uc.partRepo.Update(part); err != nil {
		return nil, err
	}
	return ToSparePartResponse(part), nil
}

// SetPrice fija el precio unitario del repuesto.
func (uc *SparePartUseCase) SetPrice(actor authz.Context, reference string, in dto.SetPriceRequest) (*dto.SparePartResponse, error) {
	if !actor.Can(authz.PermManageSpareParts) {
		return nil, domain.ErrUnauthorized
	}
	part, err := uc.partRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if err := part.SetPrice(in.UnitPrice, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.partRepo.Update(part); err != nil {
		return nil, err
	}
	return ToSparePartResponse(part), nil
}

// GetByReference consulta un repuesto del catálogo.
func (uc *SparePartUseCase) GetByReference(actor authz.Context, reference string) (*dto.SparePartResponse, error) {
	if !actor.Can(authz.PermViewStock) {
		return nil, domain.ErrUnauthorized
	}
	part, err := uc.partRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return ToSparePartResponse(part), nil
}

// List lista el catálogo con filtros opcionales.
func (uc *SparePartUseCase) List(actor authz.Context, filter repository.SparePartFilter) (*dto.SparePartListResponse, error) {
	if !actor.Can(authz.PermViewStock) {
		return nil, domain.ErrUnauthorized
	}
	parts, err := uc.partRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SparePartResponse, 0, len(parts))
	for _, p := range parts {
		items = append(items, *ToSparePartResponse(p))
	}
	return &dto.SparePartListResponse{Items: items}, nil
}

// Delete elimina un repuesto del catálogo.
func (uc *SparePartUseCase) Delete(actor authz.Context, reference string) error {
	if !actor.Can(authz.PermManageSpareParts) {
		return domain.ErrUnauthorized
	}
	exists, err := uc.partRepo.Exists(reference)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return uc.partRepo.Delete(reference)
}

// ToSparePartResponse mapea la entidad al DTO; el precio solo viaja si está fijado.
func ToSparePartResponse(p *entity.SparePart) *dto.SparePartResponse {
	if p == nil {
		return nil
	}
	resp := &dto.SparePartResponse{
		Reference:         p.Reference,
		Name:              p.Name,
		Category:          p.Category,
		Manufacturer:      p.Manufacturer,
		CompatibleModels:  p.CompatibleModels,
		MinStockThreshold: p.MinStockThreshold,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.PriceSet {
		price := p.UnitPrice
		resp.UnitPrice = &price
	}
	return resp
}
