package entity

import (
	"time"

	"github.com/tu-usuario/flota-pro/internal/domain"
)

// Dealership concesionario: dueño de una flota de motos y de un stock de
// repuestos. El nombre es único (comparación normalizada).
type Dealership struct {
	ID         string
	Name       string
	Address    string
	City       string
	PostalCode string
	Phone      string
	Email      string
	IsActive   bool
	Employees  Membership
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDealership crea un concesionario activo con membresía vacía.
func NewDealership(id, name, address, city, postalCode, phone, email string, now time.Time) (*Dealership, error) {
	if id == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	return &Dealership{
		ID:         id,
		Name:       name,
		Address:    address,
		City:       city,
		PostalCode: postalCode,
		Phone:      phone,
		Email:      email,
		IsActive:   true,
		Employees:  NewMembership(OrgDealership),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Deactivate da de baja el concesionario.
func (d *Dealership) Deactivate(now time.Time) {
	d.IsActive = false
	d.UpdatedAt = now
}
