package entity

import (
	"time"

	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
)

// User representa un usuario del sistema. El rol se asigna al crear y solo
// cambia vía ChangeRole; el alcance (concesionario o empresa) depende del rol.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         authz.Role
	DealershipID string // vacío si el rol no es de concesionario
	CompanyID    string // vacío si el rol no es de empresa
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChangeRole operación explícita de cambio de rol.
func (u *User) ChangeRole(role authz.Role, now time.Time) error {
	if !authz.ValidRoles[role] {
		return domain.ErrInvalidInput
	}
	u.Role = role
	u.UpdatedAt = now
	return nil
}
