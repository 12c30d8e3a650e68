package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
)

func TestHasPermission_AdminTieneTodo(t *testing.T) {
	for _, p := range []authz.Permission{
		authz.PermManageFleet, authz.PermValidateOrders,
		authz.PermManageDealerships, authz.PermTransferMotorcycles,
	} {
		assert.True(t, authz.HasPermission(authz.RoleTriumphAdmin, p), string(p))
	}
}

// Asimetría intencional: el stock manager pide repuestos pero no valida pedidos.
func TestHasPermission_AsimetriaPedidoValidacion(t *testing.T) {
	assert.True(t, authz.HasPermission(authz.RoleDealershipStockManager, authz.PermOrderSpareParts))
	assert.False(t, authz.HasPermission(authz.RoleDealershipStockManager, authz.PermValidateOrders))
	assert.False(t, authz.HasPermission(authz.RoleDealershipManager, authz.PermValidateOrders))
	assert.True(t, authz.HasPermission(authz.RoleTriumphAdmin, authz.PermValidateOrders))
}

func TestHasPermission_RolesLimitados(t *testing.T) {
	assert.False(t, authz.HasPermission(authz.RoleCompanyDriver, authz.PermManageFleet))
	assert.False(t, authz.HasPermission(authz.RoleClient, authz.PermViewMotorcycleDetails))
	assert.False(t, authz.HasPermission(authz.RoleDealershipEmployee, authz.PermManageStock))
	assert.True(t, authz.HasPermission(authz.RoleDealershipTechnician, authz.PermManageStock))
}

func TestHasPermission_RolDesconocido(t *testing.T) {
	assert.False(t, authz.HasPermission(authz.Role("SUPERUSER"), authz.PermManageFleet))
}

func TestContext_Can(t *testing.T) {
	ctx := authz.Context{ActorID: "u1", Role: authz.RoleDealershipManager, DealershipID: "deal-1"}
	assert.True(t, ctx.Can(authz.PermAssignMotorcycles))
	assert.False(t, ctx.Can(authz.PermValidateOrders))
}

func TestClasificacionDeRoles(t *testing.T) {
	assert.True(t, authz.IsDealershipRole(authz.RoleDealershipStockManager))
	assert.False(t, authz.IsDealershipRole(authz.RoleCompanyManager))
	assert.True(t, authz.IsCompanyRole(authz.RoleCompanyDriver))
	assert.False(t, authz.IsCompanyRole(authz.RoleTriumphAdmin))
	assert.False(t, authz.IsCompanyRole(authz.RoleClient))
}
