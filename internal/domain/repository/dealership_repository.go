package repository

import (
	"context"

	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

// StockStatistics resumen del stock de un concesionario.
type StockStatistics struct {
	TotalReferences int
	TotalUnits      int
	LowStockCount   int
}

// DealershipRepository puerto de persistencia para Dealership y su libro de
// stock de repuestos (propiedad exclusiva del concesionario).
type DealershipRepository interface {
	Create(dealership *entity.Dealership) error
	Update(dealership *entity.Dealership) error
	GetByID(id string) (*entity.Dealership, error)
	GetByName(name string) (*entity.Dealership, error)
	FindByEmployeeID(userID string) (*entity.Dealership, error)
	List(limit, offset int) ([]*entity.Dealership, error)
	ListActive() ([]*entity.Dealership, error)

	GetSparePartsStock(dealershipID string) (*entity.DealershipSparePartsStock, error)
	UpdateSparePartsStock(stock *entity.DealershipSparePartsStock) error
	GetStockStatistics(ctx context.Context, dealershipID string) (*StockStatistics, error)
}
