package usecase_test

import (
	"context"
	"time"

	"github.com/tu-usuario/flota-pro/internal/application/usecase"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
	"github.com/tu-usuario/flota-pro/internal/domain/repository"
	"github.com/tu-usuario/flota-pro/pkg/normalize"
)

// Fakes en memoria para los casos de uso. Los contadores de consultas
// permiten verificar que las operaciones no autorizadas no tocan el
// repositorio.

type fakeMotoRepo struct {
	motos   map[string]*entity.Motorcycle
	queries int
	writes  int
}

func newFakeMotoRepo() *fakeMotoRepo {
	return &fakeMotoRepo{motos: make(map[string]*entity.Motorcycle)}
}

func (r *fakeMotoRepo) Create(m *entity.Motorcycle) error {
	r.writes++
	cp := *m
	r.motos[m.ID] = &cp
	return nil
}

func (r *fakeMotoRepo) Update(m *entity.Motorcycle) error {
	r.writes++
	cp := *m
	r.motos[m.ID] = &cp
	return nil
}

func (r *fakeMotoRepo) GetByID(id string) (*entity.Motorcycle, error) {
	r.queries++
	m, ok := r.motos[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMotoRepo) GetByVIN(vin string) (*entity.Motorcycle, error) {
	r.queries++
	for _, m := range r.motos {
		if m.VIN == vin {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMotoRepo) ExistsVIN(vin string) (bool, error) {
	r.queries++
	for _, m := range r.motos {
		if m.VIN == vin {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMotoRepo) list(pred func(*entity.Motorcycle) bool) []*entity.Motorcycle {
	r.queries++
	var out []*entity.Motorcycle
	for _, m := range r.motos {
		if pred(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeMotoRepo) ListByDealership(dealershipID string) ([]*entity.Motorcycle, error) {
	return r.list(func(m *entity.Motorcycle) bool { return m.DealershipID == dealershipID && m.IsActive }), nil
}

func (r *fakeMotoRepo) ListByCompany(companyID string) ([]*entity.Motorcycle, error) {
	return r.list(func(m *entity.Motorcycle) bool { return m.CompanyID == companyID && m.IsActive }), nil
}

func (r *fakeMotoRepo) ListByStatus(status entity.MotorcycleStatus) ([]*entity.Motorcycle, error) {
	return r.list(func(m *entity.Motorcycle) bool { return m.Status == status }), nil
}

func (r *fakeMotoRepo) ListActive() ([]*entity.Motorcycle, error) {
	return r.list(func(m *entity.Motorcycle) bool { return m.IsActive }), nil
}

func (r *fakeMotoRepo) ListDueForMaintenance() ([]*entity.Motorcycle, error) {
	return r.list(func(m *entity.Motorcycle) bool { return m.IsDueForService() }), nil
}

type fakeAssignRepo struct {
	assignments map[string]*entity.Assignment
	queries     int
}

func newFakeAssignRepo() *fakeAssignRepo {
	return &fakeAssignRepo{assignments: make(map[string]*entity.Assignment)}
}

func (r *fakeAssignRepo) Create(a *entity.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignRepo) Update(a *entity.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignRepo) GetByID(id string) (*entity.Assignment, error) {
	r.queries++
	a, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignRepo) ListByCompany(companyID string) ([]*entity.Assignment, error) {
	r.queries++
	var out []*entity.Assignment
	for _, a := range r.assignments {
		if a.CompanyID == companyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssignRepo) ListByMotorcycle(motorcycleID string) ([]*entity.Assignment, error) {
	r.queries++
	var out []*entity.Assignment
	for _, a := range r.assignments {
		if a.MotorcycleID == motorcycleID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssignRepo) FindActiveByCompanyID(companyID string) ([]*entity.Assignment, error) {
	r.queries++
	var out []*entity.Assignment
	for _, a := range r.assignments {
		if a.CompanyID == companyID && a.IsActive {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssignRepo) FindActiveByMotorcycleID(motorcycleID string) (*entity.Assignment, error) {
	r.queries++
	for _, a := range r.assignments {
		if a.MotorcycleID == motorcycleID && a.IsActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignRepo) Exists(companyID, motorcycleID string) (bool, error) {
	r.queries++
	for _, a := range r.assignments {
		if a.CompanyID == companyID && a.MotorcycleID == motorcycleID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
	creates   int
	queries   int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.creates++
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.queries++
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) GetByRegistrationNumber(registrationNumber string) (*entity.Company, error) {
	r.queries++
	for _, c := range r.companies {
		if c.RegistrationNumber == registrationNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) FindByEmployeeID(userID string) (*entity.Company, error) {
	r.queries++
	for _, c := range r.companies {
		if c.Employees.HasEmployee(userID) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.queries++
	var out []*entity.Company
	for _, c := range r.companies {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCompanyRepo) ListActive() ([]*entity.Company, error) {
	r.queries++
	var out []*entity.Company
	for _, c := range r.companies {
		if c.IsActive {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByDealership(dealershipID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.DealershipID == dealershipID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

type fakeDealershipRepo struct {
	dealerships map[string]*entity.Dealership
	stocks      map[string]*entity.DealershipSparePartsStock
	queries     int
}

func newFakeDealershipRepo() *fakeDealershipRepo {
	return &fakeDealershipRepo{
		dealerships: make(map[string]*entity.Dealership),
		stocks:      make(map[string]*entity.DealershipSparePartsStock),
	}
}

func (r *fakeDealershipRepo) Create(d *entity.Dealership) error {
	cp := *d
	r.dealerships[d.ID] = &cp
	return nil
}

func (r *fakeDealershipRepo) Update(d *entity.Dealership) error {
	cp := *d
	r.dealerships[d.ID] = &cp
	return nil
}

func (r *fakeDealershipRepo) GetByID(id string) (*entity.Dealership, error) {
	r.queries++
	d, ok := r.dealerships[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDealershipRepo) GetByName(name string) (*entity.Dealership, error) {
	r.queries++
	key := normalize.Key(name)
	for _, d := range r.dealerships {
		if normalize.Key(d.Name) == key {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDealershipRepo) FindByEmployeeID(userID string) (*entity.Dealership, error) {
	r.queries++
	for _, d := range r.dealerships {
		if d.Employees.HasEmployee(userID) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDealershipRepo) List(limit, offset int) ([]*entity.Dealership, error) {
	r.queries++
	var out []*entity.Dealership
	for _, d := range r.dealerships {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDealershipRepo) ListActive() ([]*entity.Dealership, error) {
	r.queries++
	var out []*entity.Dealership
	for _, d := range r.dealerships {
		if d.IsActive {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDealershipRepo) GetSparePartsStock(dealershipID string) (*entity.DealershipSparePartsStock, error) {
	r.queries++
	s, ok := r.stocks[dealershipID]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeDealershipRepo) UpdateSparePartsStock(stock *entity.DealershipSparePartsStock) error {
	r.stocks[stock.DealershipID] = stock
	return nil
}

func (r *fakeDealershipRepo) GetStockStatistics(_ context.Context, dealershipID string) (*repository.StockStatistics, error) {
	r.queries++
	s, ok := r.stocks[dealershipID]
	if !ok {
		return &repository.StockStatistics{}, nil
	}
	stats := &repository.StockStatistics{TotalReferences: len(s.Quantities)}
	for _, q := range s.Quantities {
		stats.TotalUnits += q
	}
	stats.LowStockCount = len(s.LowStockReferences())
	return stats, nil
}

type fakeSparePartRepo struct {
	parts map[string]*entity.SparePart
}

func newFakeSparePartRepo() *fakeSparePartRepo {
	return &fakeSparePartRepo{parts: make(map[string]*entity.SparePart)}
}

func (r *fakeSparePartRepo) Create(p *entity.SparePart) error {
	cp := *p
	r.parts[p.Reference] = &cp
	return nil
}

func (r *fakeSparePartRepo) Update(p *entity.SparePart) error {
	cp := *p
	r.parts[p.Reference] = &cp
	return nil
}

func (r *fakeSparePartRepo) GetByReference(reference string) (*entity.SparePart, error) {
	p, ok := r.parts[reference]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeSparePartRepo) Exists(reference string) (bool, error) {
	_, ok := r.parts[reference]
	return ok, nil
}

func (r *fakeSparePartRepo) List(filter repository.SparePartFilter) ([]*entity.SparePart, error) {
	var out []*entity.SparePart
	for _, p := range r.parts {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Manufacturer != "" && p.Manufacturer != filter.Manufacturer {
			continue
		}
		if filter.CompatibleModel != "" && !p.IsCompatibleWith(filter.CompatibleModel) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSparePartRepo) Delete(reference string) error {
	delete(r.parts, reference)
	return nil
}

// fakeFleetTx ejecuta el callback directamente sobre los fakes: sin tx real,
// pero con la misma forma que el runner de PostgreSQL.
type fakeFleetTx struct {
	motoRepo   *fakeMotoRepo
	assignRepo *fakeAssignRepo
}

func (t *fakeFleetTx) Run(_ context.Context, fn func(repository.MotorcycleRepository, repository.AssignmentRepository) error) error {
	return fn(t.motoRepo, t.assignRepo)
}

var _ usecase.FleetTxRunner = (*fakeFleetTx)(nil)

// mustMoto alta directa de una moto para fixtures.
func mustMoto(repo *fakeMotoRepo, id, vin, dealershipID string) *entity.Motorcycle {
	m, err := entity.NewMotorcycle(id, vin, "Street Triple 765", 2024, 765, dealershipID, time.Now())
	if err != nil {
		panic(err)
	}
	if err := repo.Create(m); err != nil {
		panic(err)
	}
	return m
}
