package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// StockUseCase lecturas y movimientos manuales del stock de repuestos de un
// concesionario. El crédito por pedido confirmado vive en el caso de uso de
// pedidos; aquí solo entra movimiento manual (recuento, merma, consumo).
type StockUseCase struct {
	dealershipRepo repository.DealershipRepository
	partRepo       repository.SparePartRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(dealershipRepo repository.DealershipRepository, partRepo repository.SparePartRepository) *StockUseCase {
	return &StockUseCase{dealershipRepo: dealershipRepo, partRepo: partRepo}
}

// checkDealershipScope el personal de concesionario solo opera el propio.
func checkDealershipScope(actor authz.Context, dealershipID string) error {
	if actor.Role == authz.RoleTriumphAdmin {
		return nil
	}
	if authz.IsDealershipRole(actor.Role) && actor.DealershipID == dealershipID {
		return nil
	}
	return domain.ErrForbidden
}

// GetStock libro de stock del concesionario. Sin permiso VIEW_STOCK no se
// consulta el repositorio.
func (uc *StockUseCase) GetStock(actor authz.Context, dealershipID string) (*dto.StockResponse, error) {
	if !actor.Can(authz.PermViewStock) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	stock, err := uc.loadStock(dealershipID)
	if err != nil {
		return nil, err
	}
	return ToStockResponse(stock), nil
}

// AddStock entrada manual de stock para una referencia del catálogo.
func (uc *StockUseCase) AddStock(actor authz.Context, dealershipID string, in dto.StockMovementRequest) (*dto.StockResponse, error) {
	if !actor.Can(authz.PermManageStock) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	exists, err := uc.partRepo.Exists(in.Reference)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.loadStock(dealershipID)
	if err != nil {
		return nil, err
	}
	if err := stock.AddStock(in.Reference, in.Quantity, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.dealershipRepo.UpdateSparePartsStock(stock); err != nil {
		return nil, err
	}
	return ToStockResponse(stock), nil
}

// RemoveStock salida manual de stock. Nunca deja cantidades negativas: si la
// salida excede la existencia devuelve domain.ErrInsufficientStock sin mutar.
func (uc *StockUseCase) RemoveStock(actor authz.Context, dealershipID string, in dto.StockMovementRequest) (*dto.StockResponse, error) {
	if !actor.Can(authz.PermManageStock) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	stock, err := uc.loadStock(dealershipID)
	if err != nil {
		return nil, err
	}
	if err := stock.RemoveStock(in.Reference, in.Quantity, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.dealershipRepo.UpdateSparePartsStock(stock); err != nil {
		return nil, err
	}
	return ToStockResponse(stock), nil
}

// SetThreshold fija el umbral de stock bajo de una referencia.
func (uc *StockUseCase) SetThreshold(actor authz.Context, dealershipID string, in dto.ThresholdRequest) (*dto.StockResponse, error) {
	if !actor.Can(authz.PermManageStock) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	stock, err := uc.loadStock(dealershipID)
	if err != nil {
		return nil, err
	}
	if err := stock.SetThreshold(in.Reference, in.Threshold, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.dealershipRepo.UpdateSparePartsStock(stock); err != nil {
		return nil, err
	}
	return ToStockResponse(stock), nil
}

// GetStatistics resumen de stock del concesionario.
func (uc *StockUseCase) GetStatistics(ctx context.Context, actor authz.Context, dealershipID string) (*dto.StockStatsResponse, error) {
	if !actor.Can(authz.PermViewStock) {
		return nil, domain.ErrUnauthorized
	}
	if err := checkDealershipScope(actor, dealershipID); err != nil {
		return nil, err
	}
	stats, err := uc.dealershipRepo.GetStockStatistics(ctx, dealershipID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &repository.StockStatistics{}
	}
	return &dto.StockStatsResponse{
		DealershipID:    dealershipID,
		TotalReferences: stats.TotalReferences,
		TotalUnits:      stats.TotalUnits,
		LowStockCount:   stats.LowStockCount,
	}, nil
}

// loadStock carga el libro de stock, creando uno vacío si el concesionario
// existe pero aún no registró movimientos.
func (uc *StockUseCase) loadStock(dealershipID string) (*entity.DealershipSparePartsStock, error) {
	d, err := uc.dealershipRepo.GetByID(dealershipID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.dealershipRepo.GetSparePartsStock(dealershipID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = entity.NewDealershipSparePartsStock(dealershipID)
	}
	return stock, nil
}

// ToStockResponse mapea el libro de stock al DTO de respuesta.
func ToStockResponse(s *entity.DealershipSparePartsStock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		DealershipID: s.DealershipID,
		Quantities:   s.Quantities,
		Thresholds:   s.Thresholds,
		LowStock:     s.LowStockReferences(),
		UpdatedAt:    s.UpdatedAt,
	}
}
