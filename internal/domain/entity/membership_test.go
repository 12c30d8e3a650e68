package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

func newTestUser(id string, role authz.Role) *entity.User {
	now := time.Now()
	return &entity.User{
		ID:        id,
		Email:     id + "@flota.test",
		Name:      id,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMembership_AddRemove(t *testing.T) {
	ms := entity.NewMembership(entity.OrgDealership)
	tech := newTestUser("u1", authz.RoleDealershipTechnician)

	require.NoError(t, ms.AddEmployee(tech))
	assert.True(t, ms.HasEmployee("u1"))

	require.NoError(t, ms.RemoveEmployee("u1"))
	assert.False(t, ms.HasEmployee("u1"))
}

func TestMembership_DuplicadoFalla(t *testing.T) {
	ms := entity.NewMembership(entity.OrgDealership)
	mgr := newTestUser("u1", authz.RoleDealershipManager)

	require.NoError(t, ms.AddEmployee(mgr))
	assert.ErrorIs(t, ms.AddEmployee(mgr), domain.ErrDuplicate)
	assert.Len(t, ms.GetAll(), 1)
}

// Solo roles DEALERSHIP_* entran a un concesionario; COMPANY_* a una empresa.
func TestMembership_RolNoElegible(t *testing.T) {
	dealershipMs := entity.NewMembership(entity.OrgDealership)
	driver := newTestUser("u1", authz.RoleCompanyDriver)
	assert.ErrorIs(t, dealershipMs.AddEmployee(driver), domain.ErrInvalidInput)

	companyMs := entity.NewMembership(entity.OrgCompany)
	tech := newTestUser("u2", authz.RoleDealershipTechnician)
	assert.ErrorIs(t, companyMs.AddEmployee(tech), domain.ErrInvalidInput)

	admin := newTestUser("u3", authz.RoleTriumphAdmin)
	assert.ErrorIs(t, dealershipMs.AddEmployee(admin), domain.ErrInvalidInput)
}

func TestMembership_RemoveNoMiembroFalla(t *testing.T) {
	ms := entity.NewMembership(entity.OrgCompany)
	assert.ErrorIs(t, ms.RemoveEmployee("nadie"), domain.ErrNotFound)
}

func TestMembership_GetByRoleConservaOrden(t *testing.T) {
	ms := entity.NewMembership(entity.OrgDealership)
	require.NoError(t, ms.AddEmployee(newTestUser("u1", authz.RoleDealershipTechnician)))
	require.NoError(t, ms.AddEmployee(newTestUser("u2", authz.RoleDealershipManager)))
	require.NoError(t, ms.AddEmployee(newTestUser("u3", authz.RoleDealershipTechnician)))

	assert.Equal(t, []string{"u1", "u3"}, ms.GetByRole(authz.RoleDealershipTechnician))
	assert.Equal(t, []string{"u1", "u2", "u3"}, ms.GetAll())
}
