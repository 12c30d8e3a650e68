package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

const (
	testVIN          = "SMTTRPLE765M12345"
	testDealershipID = "deal-1"
	testCompanyID    = "comp-1"
)

func newTestMoto(t *testing.T) *entity.Motorcycle {
	t.Helper()
	m, err := entity.NewMotorcycle("moto-1", testVIN, "Street Triple 765", 2024, 765, testDealershipID, time.Now())
	require.NoError(t, err)
	return m
}

func TestNewMotorcycle_SiempreDisponibleSinEmpresa(t *testing.T) {
	m := newTestMoto(t)

	assert.Equal(t, entity.StatusAvailable, m.Status)
	assert.Empty(t, m.CompanyID)
	assert.True(t, m.IsActive)
	assert.True(t, m.IsAvailable())
}

func TestNewMotorcycle_VINInvalido(t *testing.T) {
	// 16 caracteres
	_, err := entity.NewMotorcycle("moto-1", "SMTTRPLE765M1234", "Tiger 900", 2023, 900, testDealershipID, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// contiene 'O' prohibida por ISO 3779
	_, err = entity.NewMotorcycle("moto-1", "SMTTRPLE765O12345", "Tiger 900", 2023, 900, testDealershipID, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Invariante: CompanyID asignado ⇔ Status == IN_USE, tras cada mutación.
func TestAsignacion_InvarianteEmpresaEnUso(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)

	a, err := entity.NewAssignment("asg-1", testCompanyID, m, now)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInUse, m.Status)
	assert.Equal(t, testCompanyID, m.CompanyID)
	assert.True(t, a.IsActive)

	require.NoError(t, a.End(m, now))
	assert.Equal(t, entity.StatusAvailable, m.Status)
	assert.Empty(t, m.CompanyID)
	assert.False(t, a.IsActive)
	require.NotNil(t, a.EndedAt)
}

func TestAsignacion_MotoNoDisponible(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)
	require.NoError(t, m.MarkAsInMaintenance(now))

	_, err := entity.NewAssignment("asg-1", testCompanyID, m, now)
	assert.ErrorIs(t, err, domain.ErrMotorcycleNotAvailable)
	// sin mutación parcial
	assert.Equal(t, entity.StatusMaintenance, m.Status)
	assert.Empty(t, m.CompanyID)
}

func TestAsignacion_EndDosVecesFalla(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)
	a, err := entity.NewAssignment("asg-1", testCompanyID, m, now)
	require.NoError(t, err)

	require.NoError(t, a.End(m, now))
	assert.ErrorIs(t, a.End(m, now), domain.ErrAssignmentNotActive)
}

func TestTransiciones_Mantenimiento(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)

	require.NoError(t, m.MarkAsInMaintenance(now))
	assert.Equal(t, entity.StatusMaintenance, m.Status)

	require.NoError(t, m.MarkAsAvailable(now))
	assert.Equal(t, entity.StatusAvailable, m.Status)

	require.NoError(t, m.MarkAsOutOfService(now))
	assert.Equal(t, entity.StatusOutOfService, m.Status)

	// OUT_OF_SERVICE → MAINTENANCE permitido
	require.NoError(t, m.MarkAsInMaintenance(now))
	// MAINTENANCE → IN_TRANSIT no está en el grafo
	assert.ErrorIs(t, m.MarkAsInTransit(now), domain.ErrInvalidTransition)
}

func TestTransiciones_BloqueadasConEmpresa(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)
	_, err := entity.NewAssignment("asg-1", testCompanyID, m, now)
	require.NoError(t, err)

	assert.ErrorIs(t, m.MarkAsInMaintenance(now), domain.ErrMotorcycleInUse)
	assert.ErrorIs(t, m.MarkAsOutOfService(now), domain.ErrMotorcycleInUse)
	assert.ErrorIs(t, m.Deactivate(now), domain.ErrMotorcycleInUse)
	// el invariante se mantiene
	assert.Equal(t, entity.StatusInUse, m.Status)
	assert.Equal(t, testCompanyID, m.CompanyID)
}

func TestTransfer_SoloSinAsignacionActiva(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)

	require.NoError(t, m.TransferToDealership("deal-2", now))
	assert.Equal(t, "deal-2", m.DealershipID)
	assert.Equal(t, entity.StatusAvailable, m.Status) // el estado no cambia

	_, err := entity.NewAssignment("asg-1", testCompanyID, m, now)
	require.NoError(t, err)
	assert.ErrorIs(t, m.TransferToDealership("deal-3", now), domain.ErrMotorcycleInUse)
	assert.Equal(t, "deal-2", m.DealershipID)
}

func TestUpdateMileage_MonotonoSalvoCorreccion(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)

	require.NoError(t, m.UpdateMileage(1200, false, now))
	assert.Equal(t, 1200, m.Mileage)

	assert.ErrorIs(t, m.UpdateMileage(900, false, now), domain.ErrInvalidInput)
	assert.Equal(t, 1200, m.Mileage)

	require.NoError(t, m.UpdateMileage(900, true, now)) // corrección explícita
	assert.Equal(t, 900, m.Mileage)
}

func TestScheduleService_YVencimiento(t *testing.T) {
	now := time.Now()
	m := newTestMoto(t)
	require.NoError(t, m.UpdateMileage(9000, false, now))

	assert.ErrorIs(t, m.ScheduleService(8000, now), domain.ErrInvalidInput)
	require.NoError(t, m.ScheduleService(10000, now))
	assert.False(t, m.IsDueForService())

	require.NoError(t, m.UpdateMileage(10050, false, now))
	assert.True(t, m.IsDueForService())
}
