package repository

import "github.com/tu-usuario/flota-pro/internal/domain/entity"

// SparePartFilter filtros opcionales para listar repuestos (vacío = sin filtro).
type SparePartFilter struct {
	Category        string
	Manufacturer    string
	CompatibleModel string
}

// SparePartRepository puerto de persistencia para el catálogo de repuestos.
type SparePartRepository interface {
	Create(part *entity.SparePart) error
	Update(part *entity.SparePart) error
	GetByReference(reference string) (*entity.SparePart, error)
	Exists(reference string) (bool, error)
	List(filter SparePartFilter) ([]*entity.SparePart, error)
	Delete(reference string) error
}
