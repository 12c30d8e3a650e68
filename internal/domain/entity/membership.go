package entity

import (
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
)

// OrganizationKind tipo de unidad organizativa dueña de una membresía.
type OrganizationKind string

const (
	OrgDealership OrganizationKind = "DEALERSHIP"
	OrgCompany    OrganizationKind = "COMPANY"
)

// Member referencia a un usuario miembro con su rol al momento de unirse.
type Member struct {
	UserID string
	Role   authz.Role
}

// Membership conjunto ordenado de empleados de una unidad organizativa.
// Invariantes: unicidad por UserID y rol válido para el tipo de organización.
// Se muta en sitio; la entidad dueña siempre retiene el snapshot vigente.
type Membership struct {
	Kind    OrganizationKind
	Members []Member
}

// NewMembership crea una membresía vacía para el tipo de organización.
func NewMembership(kind OrganizationKind) Membership {
	return Membership{Kind: kind}
}

// roleEligible informa si el rol puede pertenecer a este tipo de organización.
func (ms *Membership) roleEligible(role authz.Role) bool {
	switch ms.Kind {
	case OrgDealership:
		return authz.IsDealershipRole(role)
	case OrgCompany:
		return authz.IsCompanyRole(role)
	}
	return false
}

// AddEmployee añade un usuario. Falla si el rol no es elegible o ya es miembro.
func (ms *Membership) AddEmployee(user *User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidInput
	}
	if !ms.roleEligible(user.Role) {
		return domain.ErrInvalidInput
	}
	if ms.HasEmployee(user.ID) {
		return domain.ErrDuplicate
	}
	ms.Members = append(ms.Members, Member{UserID: user.ID, Role: user.Role})
	return nil
}

// RemoveEmployee quita un usuario. Falla si no es miembro.
func (ms *Membership) RemoveEmployee(userID string) error {
	for i, m := range ms.Members {
		if m.UserID == userID {
			ms.Members = append(ms.Members[:i], ms.Members[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// HasEmployee informa si el usuario es miembro.
func (ms *Membership) HasEmployee(userID string) bool {
	for _, m := range ms.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// GetByRole devuelve los IDs de miembros con el rol dado, en orden de ingreso.
func (ms *Membership) GetByRole(role authz.Role) []string {
	var out []string
	for _, m := range ms.Members {
		if m.Role == role {
			out = append(out, m.UserID)
		}
	}
	return out
}

// GetAll devuelve los IDs de todos los miembros, en orden de ingreso.
func (ms *Membership) GetAll() []string {
	out := make([]string, 0, len(ms.Members))
	for _, m := range ms.Members {
		out = append(out, m.UserID)
	}
	return out
}
