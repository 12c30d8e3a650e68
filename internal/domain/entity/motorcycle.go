package entity

import (
	"regexp"
	"time"

	"github.com/tu-usuario/flota-pro/internal/domain"
)

// MotorcycleStatus estado del ciclo de vida de una motocicleta.
type MotorcycleStatus string

const (
	StatusAvailable    MotorcycleStatus = "AVAILABLE"
	StatusInUse        MotorcycleStatus = "IN_USE"
	StatusMaintenance  MotorcycleStatus = "MAINTENANCE"
	StatusInTransit    MotorcycleStatus = "IN_TRANSIT"
	StatusOutOfService MotorcycleStatus = "OUT_OF_SERVICE"
)

// allowedTransitions define el grafo de transiciones permitido.
// IN_USE solo se alcanza/abandona vía asignación (Assignment).
var allowedTransitions = map[MotorcycleStatus][]MotorcycleStatus{
	StatusAvailable:    {StatusInUse, StatusMaintenance, StatusInTransit, StatusOutOfService},
	StatusInUse:        {StatusAvailable, StatusMaintenance, StatusOutOfService},
	StatusMaintenance:  {StatusAvailable, StatusOutOfService},
	StatusInTransit:    {StatusAvailable, StatusOutOfService},
	StatusOutOfService: {StatusMaintenance, StatusOutOfService},
}

// vinPattern VIN de 17 caracteres sin I, O ni Q (ISO 3779).
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// ValidateVIN valida el formato del VIN.
func ValidateVIN(vin string) error {
	if !vinPattern.MatchString(vin) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Motorcycle motocicleta de la flota. El "holder" es el concesionario
// propietario (siempre presente mientras está activa) más, opcionalmente,
// la empresa que la usa.
type Motorcycle struct {
	ID             string
	VIN            string
	Model          string
	Year           int
	Displacement   int // cilindrada en cc
	Mileage        int // kilometraje, monótono salvo corrección explícita
	Status         MotorcycleStatus
	IsActive       bool
	DealershipID   string
	CompanyID      string // vacío = sin empresa; no vacío ⇔ Status == IN_USE
	NextServiceKM  int    // kilometraje del próximo mantenimiento programado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewMotorcycle crea una motocicleta: siempre AVAILABLE, sin empresa.
func NewMotorcycle(id, vin, model string, year, displacement int, dealershipID string, now time.Time) (*Motorcycle, error) {
	if id == "" || dealershipID == "" || model == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ValidateVIN(vin); err != nil {
		return nil, err
	}
	return &Motorcycle{
		ID:           id,
		VIN:          vin,
		Model:        model,
		Year:         year,
		Displacement: displacement,
		Status:       StatusAvailable,
		IsActive:     true,
		DealershipID: dealershipID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsAvailable informa si la moto puede asignarse a una empresa.
func (m *Motorcycle) IsAvailable() bool {
	return m.IsActive && m.Status == StatusAvailable
}

// IsInUse informa si la moto está asignada a una empresa.
func (m *Motorcycle) IsInUse() bool {
	return m.Status == StatusInUse
}

// canTransition informa si from→to está en el grafo.
func (m *Motorcycle) canTransition(to MotorcycleStatus) bool {
	for _, s := range allowedTransitions[m.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// assignToCompany pasa la moto a IN_USE en manos de la empresa.
// Único punto de entrada: NewAssignment (mismo paquete).
func (m *Motorcycle) assignToCompany(companyID string, now time.Time) error {
	if !m.IsAvailable() {
		return domain.ErrMotorcycleNotAvailable
	}
	m.Status = StatusInUse
	m.CompanyID = companyID
	m.UpdatedAt = now
	return nil
}

// releaseFromCompany devuelve la moto a AVAILABLE sin empresa.
// Único punto de entrada: Assignment.End (mismo paquete).
func (m *Motorcycle) releaseFromCompany(now time.Time) error {
	if m.Status != StatusInUse {
		return domain.ErrInvalidTransition
	}
	m.Status = StatusAvailable
	m.CompanyID = ""
	m.UpdatedAt = now
	return nil
}

// MarkAsInMaintenance pasa la moto a MAINTENANCE. Mientras una empresa la
// retiene hay que terminar la asignación primero: la invariante
// "CompanyID ⇔ IN_USE" debe sostenerse tras cada mutación de estado.
func (m *Motorcycle) MarkAsInMaintenance(now time.Time) error {
	if m.CompanyID != "" {
		return domain.ErrMotorcycleInUse
	}
	if !m.canTransition(StatusMaintenance) {
		return domain.ErrInvalidTransition
	}
	m.Status = StatusMaintenance
	m.UpdatedAt = now
	return nil
}

// MarkAsAvailable vuelve la moto a AVAILABLE (tras mantenimiento o tránsito).
func (m *Motorcycle) MarkAsAvailable(now time.Time) error {
	if m.Status == StatusInUse {
		return domain.ErrInvalidTransition // salir de IN_USE es asunto de la asignación
	}
	if !m.canTransition(StatusAvailable) {
		return domain.ErrInvalidTransition
	}
	m.Status = StatusAvailable
	m.UpdatedAt = now
	return nil
}

// MarkAsOutOfService retira la moto de servicio desde cualquier estado,
// salvo que una empresa la retenga (terminar la asignación primero).
func (m *Motorcycle) MarkAsOutOfService(now time.Time) error {
	if m.CompanyID != "" {
		return domain.ErrMotorcycleInUse
	}
	m.Status = StatusOutOfService
	m.UpdatedAt = now
	return nil
}

// MarkAsInTransit marca la moto en tránsito entre concesionarios.
func (m *Motorcycle) MarkAsInTransit(now time.Time) error {
	if m.CompanyID != "" {
		return domain.ErrMotorcycleInUse
	}
	if !m.canTransition(StatusInTransit) {
		return domain.ErrInvalidTransition
	}
	m.Status = StatusInTransit
	m.UpdatedAt = now
	return nil
}

// TransferToDealership cambia el concesionario propietario. Solo válida sin
// asignación activa; el estado no cambia. El chequeo vive aquí, no en el
// agregado del concesionario.
func (m *Motorcycle) TransferToDealership(newDealershipID string, now time.Time) error {
	if newDealershipID == "" {
		return domain.ErrInvalidInput
	}
	if m.CompanyID != "" || m.Status == StatusInUse {
		return domain.ErrMotorcycleInUse
	}
	m.DealershipID = newDealershipID
	m.UpdatedAt = now
	return nil
}

// UpdateMileage actualiza el kilometraje. Decrecer solo con corrección explícita.
func (m *Motorcycle) UpdateMileage(km int, correction bool, now time.Time) error {
	if km < 0 {
		return domain.ErrInvalidInput
	}
	if km < m.Mileage && !correction {
		return domain.ErrInvalidInput
	}
	m.Mileage = km
	m.UpdatedAt = now
	return nil
}

// ScheduleService fija el kilometraje del próximo mantenimiento.
func (m *Motorcycle) ScheduleService(atKM int, now time.Time) error {
	if atKM <= m.Mileage {
		return domain.ErrInvalidInput
	}
	m.NextServiceKM = atKM
	m.UpdatedAt = now
	return nil
}

// IsDueForService informa si la moto alcanzó el kilometraje de mantenimiento.
func (m *Motorcycle) IsDueForService() bool {
	return m.NextServiceKM > 0 && m.Mileage >= m.NextServiceKM
}

// Deactivate da de baja la moto. Bloqueada mientras exista asignación activa.
func (m *Motorcycle) Deactivate(now time.Time) error {
	if m.CompanyID != "" || m.Status == StatusInUse {
		return domain.ErrMotorcycleInUse
	}
	m.IsActive = false
	m.UpdatedAt = now
	return nil
}
