package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SparePartRequest alta o reemplazo completo de un repuesto del catálogo.
type SparePartRequest struct {
	Reference         string           `json:"reference"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Manufacturer      string           `json:"manufacturer"`
	CompatibleModels  []string         `json:"compatible_models"`
	MinStockThreshold int              `json:"min_stock_threshold"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
}

// SetPriceRequest fija el precio unitario de un repuesto.
type SetPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SparePartResponse repuesto del catálogo.
type SparePartResponse struct {
	Reference         string           `json:"reference"`
	Name              string           `json:"name"`
	Category          string           `json:"category,omitempty"`
	Manufacturer      string           `json:"manufacturer,omitempty"`
	CompatibleModels  []string         `json:"compatible_models,omitempty"`
	MinStockThreshold int              `json:"min_stock_threshold"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	IsActive          bool             `json:"is_active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// SparePartListResponse listado de repuestos.
type SparePartListResponse struct {
	Items []SparePartResponse `json:"items"`
}
