package entity

import (
	"time"

	"github.com/tu-usuario/flota-pro/internal/domain"
)

// Assignment (CompanyMotorcycle) registra el uso actual o pasado de una moto
// por una empresa. Una vez terminada es historia inmutable.
type Assignment struct {
	ID           string
	CompanyID    string
	MotorcycleID string
	AssignedAt   time.Time
	EndedAt      *time.Time
	IsActive     bool
}

// NewAssignment único punto de entrada que pasa una moto a IN_USE con empresa:
// exige moto AVAILABLE, la muta en sitio y construye el registro activo.
// La regla "a lo sumo una asignación activa por moto" la garantiza el caso de
// uso consultando FindActiveByMotorcycleID dentro de la misma transacción.
func NewAssignment(id, companyID string, moto *Motorcycle, now time.Time) (*Assignment, error) {
	if id == "" || companyID == "" || moto == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := moto.assignToCompany(companyID, now); err != nil {
		return nil, err
	}
	return &Assignment{
		ID:           id,
		CompanyID:    companyID,
		MotorcycleID: moto.ID,
		AssignedAt:   now,
		IsActive:     true,
	}, nil
}

// End termina la asignación: la moto vuelve a AVAILABLE sin empresa y el
// registro queda inactivo con fecha de fin.
func (a *Assignment) End(moto *Motorcycle, now time.Time) error {
	if !a.IsActive {
		return domain.ErrAssignmentNotActive
	}
	if moto == nil || moto.ID != a.MotorcycleID {
		return domain.ErrInvalidInput
	}
	if err := moto.releaseFromCompany(now); err != nil {
		return err
	}
	a.IsActive = false
	t := now
	a.EndedAt = &t
	return nil
}
