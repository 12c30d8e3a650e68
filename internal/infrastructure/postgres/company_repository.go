package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
	"github.com/tu-usuario/flota-pro/pkg/normalize"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL (usable con
// pool o tx). La unicidad del número de registro se respalda con la columna
// registration_key (clave normalizada, índice único).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, registration_number, address, phone, email, is_active, created_by_dealership_id, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.RegistrationNumber, &c.Address, &c.Phone, &c.Email,
		&c.IsActive, &c.CreatedByDealershipID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Employees = entity.NewMembership(entity.OrgCompany)
	return &c, nil
}

func (r *CompanyRepo) loadEmployees(c *entity.Company) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT user_id, role FROM company_employees WHERE company_id = $1 ORDER BY position`, c.ID)
	if err != nil {
		return fmt.Errorf("load company employees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.UserID, &m.Role); err != nil {
			return fmt.Errorf("scan company employee: %w", err)
		}
		c.Employees.Members = append(c.Employees.Members, m)
	}
	return rows.Err()
}

func (r *CompanyRepo) saveEmployees(c *entity.Company) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM company_employees WHERE company_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear company employees: %w", err)
	}
	for i, m := range c.Employees.Members {
		_, err := r.q.Exec(ctx,
			`INSERT INTO company_employees (company_id, user_id, role, position) VALUES ($1, $2, $3, $4)`,
			c.ID, m.UserID, m.Role, i,
		)
		if err != nil {
			return fmt.Errorf("insert company employee: %w", err)
		}
	}
	return nil
}

// Create persiste una empresa. Número de registro duplicado → domain.ErrDuplicate.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `, registration_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.RegistrationNumber, company.Address, company.Phone,
		company.Email, company.IsActive, company.CreatedByDealershipID, company.CreatedAt, company.UpdatedAt,
		normalize.Key(company.RegistrationNumber),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return r.saveEmployees(company)
}

// Update actualiza la empresa y reemplaza su plantilla.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Address, company.Phone, company.Email,
		company.IsActive, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return r.saveEmployees(company)
}

// GetByID obtiene una empresa con su plantilla. Devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	if err := r.loadEmployees(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByRegistrationNumber busca por número de registro con comparación
// normalizada ("900.111.222-3" y "900111222-3" no chocan, pero mayúsculas,
// tildes y espacios repetidos sí se pliegan).
func (r *CompanyRepo) GetByRegistrationNumber(registrationNumber string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE registration_key = $1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, normalize.Key(registrationNumber)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by registration: %w", err)
	}
	if err := r.loadEmployees(c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByEmployeeID empresa a la que pertenece el usuario, si alguna.
func (r *CompanyRepo) FindByEmployeeID(userID string) (*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies c
		JOIN company_employees ce ON ce.company_id = c.id
		WHERE ce.user_id = $1`
	c, err := scanCompany(r.q.QueryRow(context.Background(), query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find company by employee: %w", err)
	}
	if err := r.loadEmployees(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CompanyRepo) listWhere(where string, args ...any) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ` + where + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		if err := r.loadEmployees(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// List lista empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		if err := r.loadEmployees(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListActive empresas activas.
func (r *CompanyRepo) ListActive() ([]*entity.Company, error) {
	return r.listWhere("is_active")
}
