package entity

import (
	"time"

	"github.com/tu-usuario/flota-pro/internal/domain"
)

// Company empresa asociada que usa motos de la flota. El número de registro
// es único. CreatedByDealershipID es opcional: concesionario que la dio de alta.
type Company struct {
	ID                    string
	Name                  string
	RegistrationNumber    string
	Address               string
	Phone                 string
	Email                 string
	IsActive              bool
	CreatedByDealershipID string // vacío si la creó la plataforma
	Employees             Membership
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewCompany crea una empresa activa con membresía vacía.
func NewCompany(id, name, registrationNumber, address, phone, email, createdByDealershipID string, now time.Time) (*Company, error) {
	if id == "" || name == "" || registrationNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	return &Company{
		ID:                    id,
		Name:                  name,
		RegistrationNumber:    registrationNumber,
		Address:               address,
		Phone:                 phone,
		Email:                 email,
		IsActive:              true,
		CreatedByDealershipID: createdByDealershipID,
		Employees:             NewMembership(OrgCompany),
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// Deactivate da de baja la empresa. El caso de uso verifica antes que no
// existan asignaciones activas (invariante entre agregados).
func (c *Company) Deactivate(now time.Time) {
	c.IsActive = false
	c.UpdatedAt = now
}
