package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/flota-pro/internal/application/dto"
	"github.com/tu-usuario/flota-pro/internal/application/usecase"
	"github.com/tu-usuario/flota-pro/internal/domain"
	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	"github.com/tu-usuario/flota-pro/internal/domain/entity"
)

func newMotorcycleFixture(t *testing.T) (*usecase.MotorcycleUseCase, *fakeMotoRepo, *fakeAssignRepo) {
	t.Helper()
	motoRepo := newFakeMotoRepo()
	assignRepo := newFakeAssignRepo()
	return usecase.NewMotorcycleUseCase(motoRepo, assignRepo), motoRepo, assignRepo
}

func TestCreateMotorcycle_VINDuplicado(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)
	mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	writesBefore := motoRepo.writes
	_, err := uc.Create(adminActor(), dto.CreateMotorcycleRequest{
		VIN:          "SMTTRPLE765M12345",
		Model:        "Tiger 900",
		Year:         2024,
		Displacement: 888,
		DealershipID: "d-2",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, writesBefore, motoRepo.writes, "no debe persistirse nada")
}

func TestCreateMotorcycle_SoloAdmin(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)

	manager := authz.Context{ActorID: "u-1", Role: authz.RoleDealershipManager, DealershipID: "d-1"}
	_, err := uc.Create(manager, dto.CreateMotorcycleRequest{VIN: "SMTTRPLE765M12345", Model: "Trident 660", Year: 2024, Displacement: 660, DealershipID: "d-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, motoRepo.queries)
}

// Sin el permiso de lectura, el listado falla antes de tocar el repositorio.
func TestListMotorcycles_SinPermisoNoConsulta(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)
	mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	client := authz.Context{ActorID: "u-client", Role: authz.RoleClient}
	_, err := uc.List(client)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, motoRepo.queries, "ninguna consulta debe llegar al repositorio")
}

// Rol con permiso pero sin organización en el token: lista vacía, no error.
func TestListMotorcycles_SinScopeListaVacia(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)
	mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	driver := authz.Context{ActorID: "u-driver", Role: authz.RoleCompanyDriver}
	resp, err := uc.List(driver)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Zero(t, motoRepo.queries)
}

func TestListMotorcycles_ScopePorRol(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)
	mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")
	mustMoto(motoRepo, "m-2", "SMTTRPLE765M12346", "d-2")

	employee := authz.Context{ActorID: "u-emp", Role: authz.RoleDealershipEmployee, DealershipID: "d-1"}
	resp, err := uc.List(employee)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "m-1", resp.Items[0].ID)

	all, err := uc.List(adminActor())
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestUpdateMileage_ScopeDeEmpresa(t *testing.T) {
	uc, motoRepo, assignRepo := newMotorcycleFixture(t)
	moto := mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	// La empresa c-1 retiene la moto
	a, err := entity.NewAssignment("a-1", "c-1", moto, time.Now())
	require.NoError(t, err)
	require.NoError(t, motoRepo.Update(moto))
	require.NoError(t, assignRepo.Create(a))

	driver := authz.Context{ActorID: "u-driver", Role: authz.RoleCompanyDriver, CompanyID: "c-1"}
	resp, err := uc.UpdateMileage(driver, "m-1", dto.UpdateMileageRequest{Mileage: 1200})
	require.NoError(t, err)
	assert.Equal(t, 1200, resp.Mileage)

	// Conductor de otra empresa: fuera de alcance
	other := authz.Context{ActorID: "u-x", Role: authz.RoleCompanyDriver, CompanyID: "c-2"}
	_, err = uc.UpdateMileage(other, "m-1", dto.UpdateMileageRequest{Mileage: 1300})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Retroceso sin bandera de corrección
	_, err = uc.UpdateMileage(driver, "m-1", dto.UpdateMileageRequest{Mileage: 800})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkAsInMaintenance_RechazadaConEmpresa(t *testing.T) {
	uc, motoRepo, assignRepo := newMotorcycleFixture(t)
	moto := mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	a, err := entity.NewAssignment("a-1", "c-1", moto, time.Now())
	require.NoError(t, err)
	require.NoError(t, motoRepo.Update(moto))
	require.NoError(t, assignRepo.Create(a))

	_, err = uc.MarkAsInMaintenance(adminActor(), "m-1")
	assert.ErrorIs(t, err, domain.ErrMotorcycleInUse)

	got, _ := motoRepo.GetByID("m-1")
	assert.Equal(t, entity.StatusInUse, got.Status, "el estado no debe cambiar")
}

func TestTransfer_BloqueadoConAsignacionActiva(t *testing.T) {
	uc, motoRepo, assignRepo := newMotorcycleFixture(t)
	moto := mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	a, err := entity.NewAssignment("a-1", "c-1", moto, time.Now())
	require.NoError(t, err)
	require.NoError(t, motoRepo.Update(moto))
	require.NoError(t, assignRepo.Create(a))

	_, err = uc.Transfer(adminActor(), "m-1", dto.TransferMotorcycleRequest{NewDealershipID: "d-2"})
	assert.ErrorIs(t, err, domain.ErrMotorcycleInUse)
}

func TestTransfer_CambiaConcesionario(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)
	mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	resp, err := uc.Transfer(adminActor(), "m-1", dto.TransferMotorcycleRequest{NewDealershipID: "d-2"})
	require.NoError(t, err)
	assert.Equal(t, "d-2", resp.DealershipID)
}

func TestDeactivate_BloqueadaConAsignacionActiva(t *testing.T) {
	uc, motoRepo, assignRepo := newMotorcycleFixture(t)
	moto := mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	a, err := entity.NewAssignment("a-1", "c-1", moto, time.Now())
	require.NoError(t, err)
	require.NoError(t, motoRepo.Update(moto))
	require.NoError(t, assignRepo.Create(a))

	err = uc.Deactivate(adminActor(), "m-1")
	assert.ErrorIs(t, err, domain.ErrMotorcycleInUse)
}

func TestScheduleService_YListDueForMaintenance(t *testing.T) {
	uc, motoRepo, _ := newMotorcycleFixture(t)
	mustMoto(motoRepo, "m-1", "SMTTRPLE765M12345", "d-1")

	tech := authz.Context{ActorID: "u-tech", Role: authz.RoleDealershipTechnician, DealershipID: "d-1"}
	_, err := uc.ScheduleService(tech, "m-1", dto.ScheduleServiceRequest{AtKM: 1000})
	require.NoError(t, err)

	_, err = uc.UpdateMileage(tech, "m-1", dto.UpdateMileageRequest{Mileage: 1500})
	require.NoError(t, err)

	due, err := uc.ListDueForMaintenance(tech)
	require.NoError(t, err)
	require.Len(t, due.Items, 1)
	assert.Equal(t, "m-1", due.Items[0].ID)
}
