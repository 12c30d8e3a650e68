package parts

import (
	"context"

	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

// PartsTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La confirmación de un pedido muta pedido y
// stock del concesionario como una sola unidad atómica.
type PartsTxRunner interface {
	RunParts(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		dealershipRepo repository.DealershipRepository,
	) error) error
}

// OrderPDFGenerator genera el comprobante PDF de un pedido.
type OrderPDFGenerator interface {
	Generate(order *entity.SparePartOrder) ([]byte, error)
}
