package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

var _ repository.SparePartRepository = (*SparePartRepo)(nil)

// SparePartRepo implementación de SparePartRepository sobre PostgreSQL
// (usable con pool o tx). unit_price NULL significa precio sin definir.
type SparePartRepo struct {
	q Querier
}

// NewSparePartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSparePartRepository(q Querier) *SparePartRepo {
	return &SparePartRepo{q: q}
}

const sparePartColumns = `reference, name, category, manufacturer, compatible_models, min_stock_threshold, unit_price, is_active, created_at, updated_at`

func scanSparePart(row pgx.Row) (*entity.SparePart, error) {
	var p entity.SparePart
	var price *decimal.Decimal
	err := row.Scan(
		&p.Reference, &p.Name, &p.Category, &p.Manufacturer, &p.CompatibleModels,
		&p.MinStockThreshold, &price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if price != nil {
		p.UnitPrice = *price
		p.PriceSet = true
	}
	return &p, nil
}

func priceArg(p *entity.SparePart) *decimal.Decimal {
	if !p.PriceSet {
		return nil
	}
	price := p.UnitPrice
	return &price
}

// Create persiste un repuesto. Referencia duplicada → domain.ErrDuplicate.
func (r *SparePartRepo) Create(part *entity.SparePart) error {
	query := `
		INSERT INTO spare_parts (` + sparePartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		part.Reference, part.Name, part.Category, part.Manufacturer, part.CompatibleModels,
		part.MinStockThreshold, priceArg(part), part.IsActive, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert spare part: %w", err)
	}
	return nil
}

// Update reemplaza el valor completo del repuesto.
func (r *SparePartRepo) Update(part *entity.SparePart) error {
	query := `
		UPDATE spare_parts
		SET name = $2, category = $3, manufacturer = $4, compatible_models = $5,
		    min_stock_threshold = $6, unit_price = $7, is_active = $8, updated_at = $9
		WHERE reference = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.Reference, part.Name, part.Category, part.Manufacturer, part.CompatibleModels,
		part.MinStockThreshold, priceArg(part), part.IsActive, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update spare part: %w", err)
	}
	return nil
}

// GetByReference obtiene un repuesto. Devuelve (nil, nil) si no existe.
func (r *SparePartRepo) GetByReference(reference string) (*entity.SparePart, error) {
	query := `SELECT ` + sparePartColumns + ` FROM spare_parts WHERE reference = $1`
	p, err := scanSparePart(r.q.QueryRow(context.Background(), query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spare part: %w", err)
	}
	return p, nil
}

// Exists informa si la referencia está en el catálogo.
func (r *SparePartRepo) Exists(reference string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM spare_parts WHERE reference = $1)`, reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists spare part: %w", err)
	}
	return exists, nil
}

// List lista el catálogo con filtros opcionales.
func (r *SparePartRepo) List(filter repository.SparePartFilter) ([]*entity.SparePart, error) {
	query := `SELECT ` + sparePartColumns + ` FROM spare_parts WHERE is_active`
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Manufacturer != "" {
		args = append(args, filter.Manufacturer)
		query += fmt.Sprintf(" AND manufacturer = $%d", len(args))
	}
	if filter.CompatibleModel != "" {
		args = append(args, filter.CompatibleModel)
		query += fmt.Sprintf(" AND $%d = ANY(compatible_models)", len(args))
	}
	query += " ORDER BY reference"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spare parts: %w", err)
	}
	defer rows.Close()

	var out []*entity.SparePart
	for rows.Next() {
		p, err := scanSparePart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spare part: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete elimina un repuesto del catálogo.
func (r *SparePartRepo) Delete(reference string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM spare_parts WHERE reference = $1`, reference)
	if err != nil {
		return fmt.Errorf("delete spare part: %w", err)
	}
	return nil
}
