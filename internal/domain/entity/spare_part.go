package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/flota-pro/internal/domain"
)

// SparePart repuesto del catálogo. La referencia es la clave única; una vez
// referenciado por un stock solo se modifica reemplazando el valor completo
// vía Update.
type SparePart struct {
	Reference         string
	Name              string
	Category          string
	Manufacturer      string
	CompatibleModels  []string
	MinStockThreshold int
	UnitPrice         decimal.Decimal
	PriceSet          bool // false = sin precio definido (no se puede pedir)
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewSparePart crea un repuesto activo.
func NewSparePart(reference, name, category, manufacturer string, compatibleModels []string, minThreshold int, now time.Time) (*SparePart, error) {
	if reference == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if minThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	return &SparePart{
		Reference:         reference,
		Name:              name,
		Category:          category,
		Manufacturer:      manufacturer,
		CompatibleModels:  compatibleModels,
		MinStockThreshold: minThreshold,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// SetPrice fija el precio unitario (no negativo).
func (p *SparePart) SetPrice(price decimal.Decimal, now time.Time) error {
	if price.IsNegative() {
		return domain.ErrInvalidInput
	}
	p.UnitPrice = price
	p.PriceSet = true
	p.UpdatedAt = now
	return nil
}

// IsCompatibleWith informa si el repuesto sirve para el modelo dado.
func (p *SparePart) IsCompatibleWith(model string) bool {
	for _, m := range p.CompatibleModels {
		if m == model {
			return true
		}
	}
	return false
}
