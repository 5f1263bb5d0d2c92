package usecase_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

const (
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	otherCompany  = "00000000-0000-0000-0000-000000000003"
)

var errStoreDown = errors.New("conexión rechazada")

// fakeStore implementa CompanyRepository, SubscriptionRepository y OverrideRepository en memoria.
type fakeStore struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	subs      map[string]*entity.CompanySubscription
	plans     map[string]*entity.SubscriptionPlan
	overrides map[string][]entity.CompanyModuleOverride

	companyErr  error
	subErr      error
	planErr     error
	overrideErr error
	calls       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies: map[string]*entity.Company{
			testCompanyID: {ID: testCompanyID, Name: "Barbería Central", Status: "active"},
			otherCompany:  {ID: otherCompany, Name: "Spa Norte", Status: "active"},
		},
		subs: map[string]*entity.CompanySubscription{},
		plans: map[string]*entity.SubscriptionPlan{
			"starter": {ID: "starter", Name: "Starter", Tier: modules.TierStarter, MonthlyPrice: decimal.RequireFromString("9.9"), Currency: "USD",
				ModuleGrants: map[modules.ModuleName]bool{modules.EmployeeManagement: true}},
			"pro": {ID: "pro", Name: "Pro", Tier: modules.TierPro, MonthlyPrice: decimal.RequireFromString("29"), Currency: "USD",
				ModuleGrants: map[modules.ModuleName]bool{modules.Analytics: true, modules.MultiLocation: false}},
		},
		overrides: map[string][]entity.CompanyModuleOverride{},
	}
}

func (f *fakeStore) subscribe(companyID, planID string, status modules.SubscriptionStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[companyID] = &entity.CompanySubscription{ID: "sub-" + companyID, CompanyID: companyID, PlanID: planID, Status: status}
}

func (f *fakeStore) addOverride(companyID string, m modules.ModuleName, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[companyID] = append(f.overrides[companyID], entity.CompanyModuleOverride{
		CompanyID: companyID, Module: m, IsEnabled: enabled, UpdatedAt: time.Now(),
	})
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*entity.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return f.companies[id], nil
}

func (f *fakeStore) GetCurrentByCompany(_ context.Context, companyID string) (*entity.CompanySubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return nil, f.subErr
	}
	if s, ok := f.subs[companyID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) GetPlan(_ context.Context, planID string) (*entity.SubscriptionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plans[planID], nil
}

func (f *fakeStore) ListPlans(_ context.Context) ([]*entity.SubscriptionPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.planErr != nil {
		return nil, f.planErr
	}
	return []*entity.SubscriptionPlan{f.plans["starter"], f.plans["pro"]}, nil
}

func (f *fakeStore) ListByCompany(_ context.Context, companyID string) ([]entity.CompanyModuleOverride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overrideErr != nil {
		return nil, f.overrideErr
	}
	return append([]entity.CompanyModuleOverride(nil), f.overrides[companyID]...), nil
}

func (f *fakeStore) Upsert(_ context.Context, o *entity.CompanyModuleOverride) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overrideErr != nil {
		return f.overrideErr
	}
	list := f.overrides[o.CompanyID][:0]
	for _, cur := range f.overrides[o.CompanyID] {
		if cur.Module != o.Module {
			list = append(list, cur)
		}
	}
	f.overrides[o.CompanyID] = append(list, *o)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, companyID string, m modules.ModuleName) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overrideErr != nil {
		return f.overrideErr
	}
	list := f.overrides[companyID]
	for i, cur := range list {
		if cur.Module == m {
			f.overrides[companyID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// recordingObserver guarda lo observado por el gateway y el guard.
type recordingObserver struct {
	mu     sync.Mutex
	loads  []string
	checks map[modules.ModuleName][]bool
}

func (o *recordingObserver) ObserveLoad(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads = append(o.loads, outcome)
}

func (o *recordingObserver) ObserveCheck(m modules.ModuleName, allowed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.checks == nil {
		o.checks = map[modules.ModuleName][]bool{}
	}
	o.checks[m] = append(o.checks[m], allowed)
}

// recordingNotifier guarda las empresas notificadas.
type recordingNotifier struct {
	mu        sync.Mutex
	companies []string
	err       error
}

func (n *recordingNotifier) PermissionsChanged(_ context.Context, companyID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.companies = append(n.companies, companyID)
	return n.err
}
