package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL
// (usable con pool o tx). El índice parcial único sobre (motorcycle_id) WHERE
// is_active respalda en BD la regla "a lo sumo una asignación activa por moto".
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, company_id, motorcycle_id, assigned_at, ended_at, is_active`

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	err := row.Scan(&a.ID, &a.CompanyID, &a.MotorcycleID, &a.AssignedAt, &a.EndedAt, &a.IsActive)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un registro de asignación.
func (r *AssignmentRepo) Create(a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.MotorcycleID, a.AssignedAt, a.EndedAt, a.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// Update actualiza un registro (cierre de asignación).
func (r *AssignmentRepo) Update(a *entity.Assignment) error {
	query := `
		UPDATE assignments SET ended_at = $2, is_active = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.EndedAt, a.IsActive)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID. Devuelve (nil, nil) si no existe.
func (r *AssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`
	a, err := scanAssignment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (r *AssignmentRepo) listWhere(where string, args ...any) ([]*entity.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE ` + where + ` ORDER BY assigned_at DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListByCompany historial de la empresa.
func (r *AssignmentRepo) ListByCompany(companyID string) ([]*entity.Assignment, error) {
	return r.listWhere("company_id = $1", companyID)
}

// ListByMotorcycle historial de la moto.
func (r *AssignmentRepo) ListByMotorcycle(motorcycleID string) ([]*entity.Assignment, error) {
	return r.listWhere("motorcycle_id = $1", motorcycleID)
}

// FindActiveByCompanyID asignaciones activas de la empresa.
func (r *AssignmentRepo) FindActiveByCompanyID(companyID string) ([]*entity.Assignment, error) {
	return r.listWhere("company_id = $1 AND is_active", companyID)
}

// FindActiveByMotorcycleID asignación activa de la moto, si la hay.
// Dentro de una tx bloquea la fila (FOR UPDATE) para serializar asignaciones
// concurrentes sobre la misma moto.
func (r *AssignmentRepo) FindActiveByMotorcycleID(motorcycleID string) (*entity.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments WHERE motorcycle_id = $1 AND is_active
		FOR UPDATE`
	a, err := scanAssignment(r.q.QueryRow(context.Background(), query, motorcycleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active assignment: %w", err)
	}
	return a, nil
}

// Exists informa si la empresa tuvo o tiene la moto asignada.
func (r *AssignmentRepo) Exists(companyID, motorcycleID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM assignments WHERE company_id = $1 AND motorcycle_id = $2)`,
		companyID, motorcycleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists assignment: %w", err)
	}
	return exists, nil
}
