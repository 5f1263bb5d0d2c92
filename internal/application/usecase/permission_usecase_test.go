package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/internal/application/usecase"
	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/internal/domain/permission"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

func newPermissionService(store *fakeStore, obs ports.PermissionObserver) *usecase.PermissionService {
	return usecase.NewPermissionService(store, store, store, permission.Resolver{}, obs, zerolog.Nop())
}

func TestLoadPermissions_PlanPro(t *testing.T) {
	store := newFakeStore()
	store.subscribe(testCompanyID, "pro", modules.StatusActive)
	svc := newPermissionService(store, nil)

	perms, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, testCompanyID, perms.CompanyID)
	assert.Equal(t, modules.StatusActive, perms.Subscription.Status)
	assert.True(t, perms.Modules[modules.Analytics])
	assert.False(t, perms.Modules[modules.MultiLocation])
	assert.Len(t, perms.Modules, len(modules.AllModules()))
}

func TestLoadPermissions_OverrideDeshabilitaStarter(t *testing.T) {
	store := newFakeStore()
	store.subscribe(testCompanyID, "starter", modules.StatusActive)
	store.addOverride(testCompanyID, modules.EmployeeManagement, false)
	svc := newPermissionService(store, nil)

	perms, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.False(t, perms.Modules[modules.EmployeeManagement])
}

func TestLoadPermissions_PastDue(t *testing.T) {
	store := newFakeStore()
	store.subscribe(testCompanyID, "pro", modules.StatusPastDue)
	store.addOverride(testCompanyID, modules.Analytics, true)
	svc := newPermissionService(store, nil)

	perms, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, modules.StatusPastDue, perms.Subscription.Status)
	assert.Empty(t, perms.Enabled(), "suscripción vencida: ningún módulo, ni siquiera por override")
}

// Empresa sin suscripción ⇒ inactive, todo en false, sin error.
func TestLoadPermissions_SinSuscripcion(t *testing.T) {
	store := newFakeStore()
	svc := newPermissionService(store, nil)

	perms, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, modules.StatusInactive, perms.Subscription.Status)
	assert.Equal(t, modules.Denied(testCompanyID), perms)
}

// Plan inexistente ⇒ sin módulos del plan; no es un error para el usuario.
func TestLoadPermissions_PlanInexistente(t *testing.T) {
	store := newFakeStore()
	store.subscribe(testCompanyID, "plan-borrado", modules.StatusActive)
	store.addOverride(testCompanyID, modules.Analytics, true)
	svc := newPermissionService(store, nil)

	perms, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.True(t, perms.Active())
	assert.Empty(t, perms.Enabled())
}

func TestLoadPermissions_Idempotente(t *testing.T) {
	store := newFakeStore()
	store.subscribe(testCompanyID, "pro", modules.StatusActive)
	store.addOverride(testCompanyID, modules.APIAccess, true)
	svc := newPermissionService(store, nil)

	first, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	second, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, first.Equal(second))
}

// Cada llamada lee de nuevo: un cambio en los registros se ve en la siguiente carga.
func TestLoadPermissions_SinCache(t *testing.T) {
	store := newFakeStore()
	store.subscribe(testCompanyID, "pro", modules.StatusActive)
	svc := newPermissionService(store, nil)

	before, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.True(t, before.Has(modules.Analytics))

	store.subscribe(testCompanyID, "pro", modules.StatusCancelled)
	after, err := svc.LoadPermissions(context.Background(), testCompanyID)
	require.NoError(t, err)
	assert.False(t, after.Has(modules.Analytics))
	assert.True(t, before.Has(modules.Analytics), "la instantánea anterior no se modifica")
}

func TestLoadPermissions_EmpresaInexistente(t *testing.T) {
	obs := &recordingObserver{}
	svc := newPermissionService(newFakeStore(), obs)

	_, err := svc.LoadPermissions(context.Background(), "00000000-0000-0000-0000-0000000000ff")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{ports.LoadOutcomeNotFound}, obs.loads)
}

func TestLoadPermissions_CompanyIDVacio(t *testing.T) {
	svc := newPermissionService(newFakeStore(), nil)
	_, err := svc.LoadPermissions(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadPermissions_FallosDeAlmacenamiento(t *testing.T) {
	cases := map[string]func(*fakeStore){
		"empresa":      func(s *fakeStore) { s.companyErr = errStoreDown },
		"suscripción":  func(s *fakeStore) { s.subErr = errStoreDown },
		"plan":         func(s *fakeStore) { s.planErr = errStoreDown },
		"overrides":    func(s *fakeStore) { s.overrideErr = errStoreDown },
	}
	for name, breakStore := range cases {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			store.subscribe(testCompanyID, "pro", modules.StatusActive)
			breakStore(store)
			obs := &recordingObserver{}
			svc := newPermissionService(store, obs)

			_, err := svc.LoadPermissions(context.Background(), testCompanyID)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrPermissionsUnavailable)
			assert.ErrorIs(t, err, errStoreDown, "la causa original debe seguir en la cadena")
			assert.Equal(t, []string{ports.LoadOutcomeUnavailable}, obs.loads)
		})
	}
}
