package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/internal/application/usecase"
	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/internal/domain/permission"
	apphttp "github.com/jhoicas/Agenda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Agenda-api/pkg/jwt"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

const otherCompanyID = "00000000-0000-0000-0000-000000000003"

var errDBDown = errors.New("dial tcp: connection refused")

// memStore repositorios en memoria para los tests de handlers.
type memStore struct {
	mu        sync.Mutex
	companies map[string]bool
	subs      map[string]*entity.CompanySubscription
	plans     map[string]*entity.SubscriptionPlan
	overrides map[string][]entity.CompanyModuleOverride
	err       error
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[string]bool{testCompanyID: true, otherCompanyID: true},
		subs:      map[string]*entity.CompanySubscription{},
		plans: map[string]*entity.SubscriptionPlan{
			"pro": {ID: "pro", Name: "Pro", Tier: modules.TierPro, MonthlyPrice: decimal.RequireFromString("29"), Currency: "USD",
				ModuleGrants: map[modules.ModuleName]bool{
					modules.EmployeeManagement: true, modules.EmployeeSchedules: true,
					modules.OnlinePayments: true, modules.Analytics: true,
				}},
		},
		overrides: map[string][]entity.CompanyModuleOverride{},
	}
}

func (s *memStore) subscribe(companyID, planID string, status modules.SubscriptionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[companyID] = &entity.CompanySubscription{CompanyID: companyID, PlanID: planID, Status: status}
}

func (s *memStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *memStore) GetByID(_ context.Context, id string) (*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if !s.companies[id] {
		return nil, nil
	}
	return &entity.Company{ID: id, Name: "Empresa " + id[len(id)-1:]}, nil
}

func (s *memStore) GetCurrentByCompany(_ context.Context, companyID string) (*entity.CompanySubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs[companyID], s.err
}

func (s *memStore) GetPlan(_ context.Context, planID string) (*entity.SubscriptionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans[planID], s.err
}

func (s *memStore) ListPlans(context.Context) ([]*entity.SubscriptionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []*entity.SubscriptionPlan{s.plans["pro"]}, nil
}

func (s *memStore) ListByCompany(_ context.Context, companyID string) ([]entity.CompanyModuleOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.CompanyModuleOverride(nil), s.overrides[companyID]...), s.err
}

func (s *memStore) Upsert(_ context.Context, o *entity.CompanyModuleOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	kept := []entity.CompanyModuleOverride{}
	for _, cur := range s.overrides[o.CompanyID] {
		if cur.Module != o.Module {
			kept = append(kept, cur)
		}
	}
	s.overrides[o.CompanyID] = append(kept, *o)
	return nil
}

func (s *memStore) Delete(_ context.Context, companyID string, m modules.ModuleName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	list := s.overrides[companyID]
	for i, cur := range list {
		if cur.Module == m {
			s.overrides[companyID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type notifierFunc func(ctx context.Context, companyID string) error

func (f notifierFunc) PermissionsChanged(ctx context.Context, companyID string) error {
	return f(ctx, companyID)
}

type testEnv struct {
	app      *fiber.App
	store    *memStore
	guard    *usecase.ModuleGuard
	notified []string
}

// newTestEnv arma el router completo sobre memStore.
func newTestEnv(t *testing.T, routes ...apphttp.ModuleRoute) *testEnv {
	t.Helper()
	env := &testEnv{store: newMemStore()}
	log := zerolog.Nop()

	perms := usecase.NewPermissionService(env.store, env.store, env.store, permission.Resolver{}, ports.NopObserver{}, log)
	env.guard = usecase.NewModuleGuard(perms, "", ports.NopObserver{})
	notifier := notifierFunc(func(_ context.Context, companyID string) error {
		env.notified = append(env.notified, companyID)
		return nil
	})

	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		PermissionUC: perms,
		Guard:        env.guard,
		CatalogUC:    usecase.NewCatalogUseCase(env.store),
		OverrideUC:   usecase.NewOverrideUseCase(env.store, env.store, notifier, log),
		ModuleRoutes: routes,
		JWTSecret:    testJWTSecret,
		Log:          log,
	})
	return env
}

func bearer(t *testing.T, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, auth, body string, headers ...string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
