package usecase

import (
	"context"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/internal/domain/repository"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// CatalogUseCase expone el catálogo de módulos y los planes de suscripción.
type CatalogUseCase struct {
	subRepo repository.SubscriptionRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(subRepo repository.SubscriptionRepository) *CatalogUseCase {
	return &CatalogUseCase{subRepo: subRepo}
}

// ListModules devuelve el catálogo estático con textos en el idioma dado.
func (uc *CatalogUseCase) ListModules(lang string) *dto.ModuleListResponse {
	all := modules.AllModules()
	items := make([]dto.ModuleResponse, 0, len(all))
	for _, m := range all {
		e := modules.Describe(m)
		tiers := make([]string, 0, len(e.MinimumTiers))
		for _, t := range e.MinimumTiers {
			tiers = append(tiers, t.String())
		}
		items = append(items, dto.ModuleResponse{
			Module:         m,
			DisplayName:    e.Name(lang),
			Description:    e.Summary(lang),
			MinimumTier:    modules.MinimumRequiredTier(m).String(),
			Tiers:          tiers,
			UpgradeMessage: modules.UpgradeMessage(m, lang),
		})
	}
	return &dto.ModuleListResponse{Items: items}
}

// ListPlans devuelve los planes con los módulos que concede cada uno.
func (uc *CatalogUseCase) ListPlans(ctx context.Context) (*dto.PlanListResponse, error) {
	plans, err := uc.subRepo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		granted := []modules.ModuleName{}
		for _, m := range modules.AllModules() {
			if p.ModuleGrants[m] {
				granted = append(granted, m)
			}
		}
		items = append(items, dto.PlanResponse{
			ID:           p.ID,
			Name:         p.Name,
			Tier:         p.Tier.String(),
			MonthlyPrice: p.MonthlyPrice.StringFixed(2),
			Currency:     p.Currency,
			Modules:      granted,
		})
	}
	return &dto.PlanListResponse{Items: items}, nil
}
