// Package authz define los roles, permisos y la tabla estática rol→permisos.
// La tabla se construye una sola vez al cargar el paquete y nunca se muta,
// por lo que las lecturas concurrentes son seguras sin sincronización.
package authz

// Role rol de un actor del sistema. Se asigna al crear el usuario y solo
// cambia mediante la operación explícita de cambio de rol.
type Role string

const (
	RoleTriumphAdmin           Role = "TRIUMPH_ADMIN"
	RoleDealershipManager      Role = "DEALERSHIP_MANAGER"
	RoleDealershipEmployee     Role = "DEALERSHIP_EMPLOYEE"
	RoleDealershipTechnician   Role = "DEALERSHIP_TECHNICIAN"
	RoleDealershipStockManager Role = "DEALERSHIP_STOCK_MANAGER"
	RoleCompanyManager         Role = "COMPANY_MANAGER"
	RoleCompanyDriver          Role = "COMPANY_DRIVER"
	RoleClient                 Role = "CLIENT"
)

// Permission capacidad concreta que un rol puede tener o no.
type Permission string

const (
	PermManageFleet           Permission = "MANAGE_FLEET"
	PermViewMotorcycleDetails Permission = "VIEW_MOTORCYCLE_DETAILS"
	PermUpdateMileage         Permission = "UPDATE_MILEAGE"
	PermAssignMotorcycles     Permission = "ASSIGN_MOTORCYCLES"
	PermManageMaintenance     Permission = "MANAGE_MAINTENANCE"
	PermTransferMotorcycles   Permission = "TRANSFER_MOTORCYCLES"
	PermManageDealerships     Permission = "MANAGE_DEALERSHIPS"
	PermManageCompanies       Permission = "MANAGE_COMPANIES"
	PermManageUsers           Permission = "MANAGE_USERS"
	PermViewStock             Permission = "VIEW_STOCK"
	PermManageStock           Permission = "MANAGE_STOCK"
	PermManageSpareParts      Permission = "MANAGE_SPARE_PARTS"
	PermOrderSpareParts       Permission = "ORDER_SPARE_PARTS"
	PermValidateOrders        Permission = "VALIDATE_ORDERS"
	PermViewOrders            Permission = "VIEW_ORDERS"
)

// ValidRoles conjunto de roles conocidos.
var ValidRoles = map[Role]bool{
	RoleTriumphAdmin:           true,
	RoleDealershipManager:      true,
	RoleDealershipEmployee:     true,
	RoleDealershipTechnician:   true,
	RoleDealershipStockManager: true,
	RoleCompanyManager:         true,
	RoleCompanyDriver:          true,
	RoleClient:                 true,
}

// permissions tabla estática rol → permisos. VALIDATE_ORDERS queda reservado
// a TRIUMPH_ADMIN aunque el stock manager pueda pedir repuestos: la asimetría
// es intencional.
var permissions = map[Role]map[Permission]bool{
	RoleTriumphAdmin: setOf(
		PermManageFleet, PermViewMotorcycleDetails, PermUpdateMileage,
		PermAssignMotorcycles, PermManageMaintenance, PermTransferMotorcycles,
		PermManageDealerships, PermManageCompanies, PermManageUsers,
		PermViewStock, PermManageStock, PermManageSpareParts,
		PermOrderSpareParts, PermValidateOrders, PermViewOrders,
	),
	RoleDealershipManager: setOf(
		PermViewMotorcycleDetails, PermUpdateMileage, PermAssignMotorcycles,
		PermManageMaintenance, PermManageCompanies, PermManageUsers,
		PermViewStock, PermManageStock, PermOrderSpareParts, PermViewOrders,
	),
	RoleDealershipEmployee: setOf(
		PermViewMotorcycleDetails, PermUpdateMileage, PermViewStock,
	),
	RoleDealershipTechnician: setOf(
		PermViewMotorcycleDetails, PermUpdateMileage, PermManageMaintenance,
		PermViewStock, PermManageStock,
	),
	RoleDealershipStockManager: setOf(
		PermViewStock, PermManageStock, PermManageSpareParts,
		PermOrderSpareParts, PermViewOrders,
	),
	RoleCompanyManager: setOf(
		PermViewMotorcycleDetails, PermUpdateMileage, PermManageUsers,
	),
	RoleCompanyDriver: setOf(
		PermViewMotorcycleDetails, PermUpdateMileage,
	),
	RoleClient: setOf(),
}

func setOf(perms ...Permission) map[Permission]bool {
	m := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return m
}

// HasPermission responde si el rol posee el permiso. Chequeo de capacidad;
// el chequeo de alcance (concesionario/empresa) lo hacen los casos de uso.
func HasPermission(role Role, perm Permission) bool {
	set, ok := permissions[role]
	if !ok {
		return false
	}
	return set[perm]
}

// PermissionsOf devuelve una copia de los permisos del rol.
func PermissionsOf(role Role) []Permission {
	set := permissions[role]
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// Context identidad y alcance del actor que ejecuta un caso de uso.
// Se construye a partir de los claims del token, nunca del body.
type Context struct {
	ActorID      string
	Role         Role
	DealershipID string
	CompanyID    string
}

// Can azúcar sobre HasPermission con el rol del contexto.
func (c Context) Can(perm Permission) bool {
	return HasPermission(c.Role, perm)
}

// IsDealershipRole informa si el rol pertenece al personal de concesionario.
func IsDealershipRole(role Role) bool {
	switch role {
	case RoleDealershipManager, RoleDealershipEmployee,
		RoleDealershipTechnician, RoleDealershipStockManager:
		return true
	}
	return false
}

// IsCompanyRole informa si el rol pertenece al personal de empresa asociada.
func IsCompanyRole(role Role) bool {
	return role == RoleCompanyManager || role == RoleCompanyDriver
}
