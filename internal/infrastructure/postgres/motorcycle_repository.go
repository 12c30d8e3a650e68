package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

var _ repository.MotorcycleRepository = (*MotorcycleRepo)(nil)

// MotorcycleRepo implementación de MotorcycleRepository sobre PostgreSQL
// (usable con pool o tx).
type MotorcycleRepo struct {
	q Querier
}

// NewMotorcycleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMotorcycleRepository(q Querier) *MotorcycleRepo {
	return &MotorcycleRepo{q: q}
}

const motorcycleColumns = `id, vin, model, year, displacement, mileage, status, is_active, dealership_id, company_id, next_service_km, created_at, updated_at`

func scanMotorcycle(row pgx.Row) (*entity.Motorcycle, error) {
	var m entity.Motorcycle
	err := row.Scan(
		&m.ID, &m.VIN, &m.Model, &m.Year, &m.Displacement, &m.Mileage, &m.Status,
		&m.IsActive, &m.DealershipID, &m.CompanyID, &m.NextServiceKM, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una moto nueva. VIN duplicado → domain.ErrDuplicate.
func (r *MotorcycleRepo) Create(moto *entity.Motorcycle) error {
	query := `
		INSERT INTO motorcycles (` + motorcycleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		moto.ID, moto.VIN, moto.Model, moto.Year, moto.Displacement, moto.Mileage, moto.Status,
		moto.IsActive, moto.DealershipID, moto.CompanyID, moto.NextServiceKM, moto.CreatedAt, moto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert motorcycle: %w", err)
	}
	return nil
}

// Update actualiza una moto existente (el VIN nunca cambia).
func (r *MotorcycleRepo) Update(moto *entity.Motorcycle) error {
	query := `
		UPDATE motorcycles
		SET model = $2, year = $3, displacement = $4, mileage = $5, status = $6,
		    is_active = $7, dealership_id = $8, company_id = $9, next_service_km = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		moto.ID, moto.Model, moto.Year, moto.Displacement, moto.Mileage, moto.Status,
		moto.IsActive, moto.DealershipID, moto.CompanyID, moto.NextServiceKM, moto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update motorcycle: %w", err)
	}
	return nil
}

// GetByID obtiene una moto por ID. Devuelve (nil, nil) si no existe.
func (r *MotorcycleRepo) GetByID(id string) (*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE id = $1`
	m, err := scanMotorcycle(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motorcycle: %w", err)
	}
	return m, nil
}

// GetByVIN obtiene una moto por VIN.
func (r *MotorcycleRepo) GetByVIN(vin string) (*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE vin = $1`
	m, err := scanMotorcycle(r.q.QueryRow(context.Background(), query, vin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motorcycle by vin: %w", err)
	}
	return m, nil
}

// ExistsVIN informa si ya hay una moto con ese VIN.
func (r *MotorcycleRepo) ExistsVIN(vin string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM motorcycles WHERE vin = $1)`, vin,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists vin: %w", err)
	}
	return exists, nil
}

func (r *MotorcycleRepo) listWhere(where string, args ...any) ([]*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE ` + where + ` ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list motorcycles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Motorcycle
	for rows.Next() {
		m, err := scanMotorcycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan motorcycle: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByDealership flota activa del concesionario.
func (r *MotorcycleRepo) ListByDealership(dealershipID string) ([]*entity.Motorcycle, error) {
	return r.listWhere("dealership_id = $1 AND is_active", dealershipID)
}

// ListByCompany motos retenidas actualmente por la empresa.
func (r *MotorcycleRepo) ListByCompany(companyID string) ([]*entity.Motorcycle, error) {
	return r.listWhere("company_id = $1 AND is_active", companyID)
}

// ListByStatus motos en un estado dado.
func (r *MotorcycleRepo) ListByStatus(status entity.MotorcycleStatus) ([]*entity.Motorcycle, error) {
	return r.listWhere("status = $1", status)
}

// ListActive toda la flota activa.
func (r *MotorcycleRepo) ListActive() ([]*entity.Motorcycle, error) {
	return r.listWhere("is_active")
}

// ListDueForMaintenance motos activas que alcanzaron su kilometraje de servicio.
func (r *MotorcycleRepo) ListDueForMaintenance() ([]*entity.Motorcycle, error) {
	return r.listWhere("is_active AND next_service_km > 0 AND mileage >= next_service_km")
}
