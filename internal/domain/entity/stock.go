package entity

import (
	"sort"
	"time"

	"github.com/tu-usuario/flota-pro/internal/domain"
)

// DealershipSparePartsStock libro de stock de repuestos de un concesionario:
// referencia → cantidad, más umbrales de stock bajo y el log de pedidos que
// lo alimentaron. La cantidad nunca es negativa.
type DealershipSparePartsStock struct {
	DealershipID string
	Quantities   map[string]int
	Thresholds   map[string]int
	OrderLog     []string // IDs de pedidos confirmados contra este stock
	UpdatedAt    time.Time
}

// NewDealershipSparePartsStock crea un libro vacío para el concesionario.
func NewDealershipSparePartsStock(dealershipID string) *DealershipSparePartsStock {
	return &DealershipSparePartsStock{
		DealershipID: dealershipID,
		Quantities:   make(map[string]int),
		Thresholds:   make(map[string]int),
	}
}

// Quantity cantidad actual de la referencia (0 si nunca se registró).
func (s *DealershipSparePartsStock) Quantity(reference string) int {
	return s.Quantities[reference]
}

// AddStock suma cantidad a la referencia.
func (s *DealershipSparePartsStock) AddStock(reference string, qty int, now time.Time) error {
	if reference == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	if s.Quantities == nil {
		s.Quantities = make(map[string]int)
	}
	s.Quantities[reference] += qty
	s.UpdatedAt = now
	return nil
}

// RemoveStock consume cantidad. Falla sin mutar si excede la existencia.
func (s *DealershipSparePartsStock) RemoveStock(reference string, qty int, now time.Time) error {
	if reference == "" || qty <= 0 {
		return domain.ErrInvalidInput
	}
	current := s.Quantities[reference]
	if qty > current {
		return domain.ErrInsufficientStock
	}
	s.Quantities[reference] = current - qty
	s.UpdatedAt = now
	return nil
}

// SetThreshold fija el umbral de stock bajo para la referencia.
func (s *DealershipSparePartsStock) SetThreshold(reference string, threshold int, now time.Time) error {
	if reference == "" || threshold < 0 {
		return domain.ErrInvalidInput
	}
	if s.Thresholds == nil {
		s.Thresholds = make(map[string]int)
	}
	s.Thresholds[reference] = threshold
	s.UpdatedAt = now
	return nil
}

// IsStockLow verdadero sii hay umbral definido y la cantidad es ≤ umbral.
func (s *DealershipSparePartsStock) IsStockLow(reference string) bool {
	threshold, ok := s.Thresholds[reference]
	if !ok {
		return false
	}
	return s.Quantities[reference] <= threshold
}

// LowStockReferences referencias bajo umbral, ordenadas para salida estable.
func (s *DealershipSparePartsStock) LowStockReferences() []string {
	var out []string
	for ref := range s.Thresholds {
		if s.IsStockLow(ref) {
			out = append(out, ref)
		}
	}
	sort.Strings(out)
	return out
}

// LogOrder registra el pedido confirmado que alimentó este stock.
func (s *DealershipSparePartsStock) LogOrder(orderID string) {
	s.OrderLog = append(s.OrderLog, orderID)
}
