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

var _ repository.DealershipRepository = (*DealershipRepo)(nil)

// DealershipRepo implementación de DealershipRepository sobre PostgreSQL
// (usable con pool o tx). El nombre es único vía name_key (clave normalizada).
// El libro de stock vive en dealership_stock (una fila por referencia, umbral
// NULL = sin umbral) más stock_order_log para los pedidos abonados.
type DealershipRepo struct {
	q Querier
}

// NewDealershipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealershipRepository(q Querier) *DealershipRepo {
	return &DealershipRepo{q: q}
}

const dealershipColumns = `id, name, address, city, postal_code, phone, email, is_active, created_at, updated_at`

func scanDealership(row pgx.Row) (*entity.Dealership, error) {
	var d entity.Dealership
	err := row.Scan(
		&d.ID, &d.Name, &d.Address, &d.City, &d.PostalCode, &d.Phone, &d.Email,
		&d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Employees = entity.NewMembership(entity.OrgDealership)
	return &d, nil
}

func (r *DealershipRepo) loadEmployees(d *entity.Dealership) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT user_id, role FROM dealership_employees WHERE dealership_id = $1 ORDER BY position`, d.ID)
	if err != nil {
		return fmt.Errorf("load dealership employees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.UserID, &m.Role); err != nil {
			return fmt.Errorf("scan dealership employee: %w", err)
		}
		d.Employees.Members = append(d.Employees.Members, m)
	}
	return rows.Err()
}

func (r *DealershipRepo) saveEmployees(d *entity.Dealership) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM dealership_employees WHERE dealership_id = $1`, d.ID); err != nil {
		return fmt.Errorf("clear dealership employees: %w", err)
	}
	for i, m := range d.Employees.Members {
		_, err := r.q.Exec(ctx,
			`INSERT INTO dealership_employees (dealership_id, user_id, role, position) VALUES ($1, $2, $3, $4)`,
			d.ID, m.UserID, m.Role, i,
		)
		if err != nil {
			return fmt.Errorf("insert dealership employee: %w", err)
		}
	}
	return nil
}

// Create persiste un concesionario. Nombre duplicado → domain.ErrDuplicate.
func (r *DealershipRepo) Create(dealership *entity.Dealership) error {
	query := `
		INSERT INTO dealerships (` + dealershipColumns + `, name_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		dealership.ID, dealership.Name, dealership.Address, dealership.City, dealership.PostalCode,
		dealership.Phone, dealership.Email, dealership.IsActive, dealership.CreatedAt, dealership.UpdatedAt,
		normalize.Key(dealership.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert dealership: %w", err)
	}
	return r.saveEmployees(dealership)
}

// Update actualiza el concesionario y reemplaza su plantilla.
func (r *DealershipRepo) Update(dealership *entity.Dealership) error {
	query := `
		UPDATE dealerships
		SET name = $2, name_key = $3, address = $4, city = $5, postal_code = $6,
		    phone = $7, email = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		dealership.ID, dealership.Name, normalize.Key(dealership.Name), dealership.Address,
		dealership.City, dealership.PostalCode, dealership.Phone, dealership.Email,
		dealership.IsActive, dealership.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update dealership: %w", err)
	}
	return r.saveEmployees(dealership)
}

// GetByID obtiene un concesionario con su plantilla. (nil, nil) si no existe.
func (r *DealershipRepo) GetByID(id string) (*entity.Dealership, error) {
	query := `SELECT ` + dealershipColumns + ` FROM dealerships WHERE id = $1`
	d, err := scanDealership(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dealership: %w", err)
	}
	if err := r.loadEmployees(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByName busca por nombre con comparación normalizada.
func (r *DealershipRepo) GetByName(name string) (*entity.Dealership, error) {
	query := `SELECT ` + dealershipColumns + ` FROM dealerships WHERE name_key = $1`
	d, err := scanDealership(r.q.QueryRow(context.Background(), query, normalize.Key(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dealership by name: %w", err)
	}
	if err := r.loadEmployees(d); err != nil {
		return nil, err
	}
	return d, nil
}

// FindByEmployeeID concesionario al que pertenece el usuario, si alguno.
func (r *DealershipRepo) FindByEmployeeID(userID string) (*entity.Dealership, error) {
	query := `
		SELECT ` + dealershipColumns + `
		FROM dealerships d
		JOIN dealership_employees de ON de.dealership_id = d.id
		WHERE de.user_id = $1`
	d, err := scanDealership(r.q.QueryRow(context.Background(), query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find dealership by employee: %w", err)
	}
	if err := r.loadEmployees(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealershipRepo) list(query string, args ...any) ([]*entity.Dealership, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dealerships: %w", err)
	}
	defer rows.Close()

	var out []*entity.Dealership
	for rows.Next() {
		d, err := scanDealership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dealership: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range out {
		if err := r.loadEmployees(d); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// List lista concesionarios con paginación.
func (r *DealershipRepo) List(limit, offset int) ([]*entity.Dealership, error) {
	return r.list(`SELECT `+dealershipColumns+` FROM dealerships ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListActive concesionarios activos.
func (r *DealershipRepo) ListActive() ([]*entity.Dealership, error) {
	return r.list(`SELECT ` + dealershipColumns + ` FROM dealerships WHERE is_active ORDER BY created_at DESC`)
}

// GetSparePartsStock carga el libro de stock del concesionario. Devuelve
// (nil, nil) si nunca registró movimientos.
func (r *DealershipRepo) GetSparePartsStock(dealershipID string) (*entity.DealershipSparePartsStock, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT reference, quantity, threshold, updated_at
		 FROM dealership_stock WHERE dealership_id = $1
		 FOR UPDATE`, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	defer rows.Close()

	stock := entity.NewDealershipSparePartsStock(dealershipID)
	found := false
	for rows.Next() {
		var (
			reference string
			quantity  int
			threshold *int
		)
		if err := rows.Scan(&reference, &quantity, &threshold, &stock.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		found = true
		stock.Quantities[reference] = quantity
		if threshold != nil {
			stock.Thresholds[reference] = *threshold
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logRows, err := r.q.Query(ctx,
		`SELECT order_id FROM stock_order_log WHERE dealership_id = $1 ORDER BY logged_at`, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("get stock order log: %w", err)
	}
	defer logRows.Close()
	for logRows.Next() {
		var orderID string
		if err := logRows.Scan(&orderID); err != nil {
			return nil, fmt.Errorf("scan stock order log: %w", err)
		}
		found = true
		stock.OrderLog = append(stock.OrderLog, orderID)
	}
	if err := logRows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return stock, nil
}

// UpdateSparePartsStock persiste el libro completo: upsert por referencia y
// alta idempotente de los pedidos del log.
func (r *DealershipRepo) UpdateSparePartsStock(stock *entity.DealershipSparePartsStock) error {
	ctx := context.Background()
	for reference, quantity := range stock.Quantities {
		var threshold *int
		if t, ok := stock.Thresholds[reference]; ok {
			threshold = &t
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO dealership_stock (dealership_id, reference, quantity, threshold, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (dealership_id, reference)
			DO UPDATE SET quantity = EXCLUDED.quantity, threshold = EXCLUDED.threshold, updated_at = EXCLUDED.updated_at`,
			stock.DealershipID, reference, quantity, threshold, stock.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert stock row: %w", err)
		}
	}
	// Umbrales de referencias aún sin existencias
	for reference, threshold := range stock.Thresholds {
		if _, ok := stock.Quantities[reference]; ok {
			continue
		}
		t := threshold
		_, err := r.q.Exec(ctx, `
			INSERT INTO dealership_stock (dealership_id, reference, quantity, threshold, updated_at)
			VALUES ($1, $2, 0, $3, $4)
			ON CONFLICT (dealership_id, reference)
			DO UPDATE SET threshold = EXCLUDED.threshold, updated_at = EXCLUDED.updated_at`,
			stock.DealershipID, reference, &t, stock.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert stock threshold: %w", err)
		}
	}
	for _, orderID := range stock.OrderLog {
		_, err := r.q.Exec(ctx, `
			INSERT INTO stock_order_log (dealership_id, order_id, logged_at)
			VALUES ($1, $2, now())
			ON CONFLICT (dealership_id, order_id) DO NOTHING`,
			stock.DealershipID, orderID,
		)
		if err != nil {
			return fmt.Errorf("insert stock order log: %w", err)
		}
	}
	return nil
}

// GetStockStatistics resumen agregado del libro de stock.
func (r *DealershipRepo) GetStockStatistics(ctx context.Context, dealershipID string) (*repository.StockStatistics, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*) FILTER (WHERE threshold IS NOT NULL AND quantity <= threshold)
		FROM dealership_stock WHERE dealership_id = $1`
	var stats repository.StockStatistics
	err := r.q.QueryRow(ctx, query, dealershipID).Scan(
		&stats.TotalReferences, &stats.TotalUnits, &stats.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock statistics: %w", err)
	}
	return &stats, nil
}
