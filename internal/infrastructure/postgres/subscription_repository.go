package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/internal/domain/repository"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo lecturas de company_subscriptions, subscription_plans y plan_modules.
type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository construye el adaptador.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// GetCurrentByCompany devuelve la suscripción vigente: la activa si existe, si no la
// actualizada más recientemente (past_due, cancelled...). (nil, nil) si no hay ninguna.
func (r *SubscriptionRepo) GetCurrentByCompany(ctx context.Context, companyID string) (*entity.CompanySubscription, error) {
	const query = `
		SELECT id, company_id, plan_id, status, created_at, updated_at
		  FROM company_subscriptions
		 WHERE company_id = $1
		 ORDER BY (status = 'active') DESC, updated_at DESC
		 LIMIT 1`
	var s entity.CompanySubscription
	var status string
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current subscription: %w", err)
	}
	s.Status = modules.SubscriptionStatus(status)
	return &s, nil
}

// GetPlan devuelve el plan con sus concesiones; (nil, nil) si no existe.
func (r *SubscriptionRepo) GetPlan(ctx context.Context, planID string) (*entity.SubscriptionPlan, error) {
	const query = `
		SELECT id, name, tier, monthly_price, currency
		  FROM subscription_plans WHERE id = $1`
	var p entity.SubscriptionPlan
	var tier int
	err := r.pool.QueryRow(ctx, query, planID).Scan(&p.ID, &p.Name, &tier, &p.MonthlyPrice, &p.Currency)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	p.Tier = modules.PlanTier(tier)

	grants, err := r.grants(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.ModuleGrants = grants[p.ID]
	return &p, nil
}

// ListPlans devuelve todos los planes ordenados por nivel.
func (r *SubscriptionRepo) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	const query = `
		SELECT id, name, tier, monthly_price, currency
		  FROM subscription_plans ORDER BY tier, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubscriptionPlan
	var ids []string
	for rows.Next() {
		var p entity.SubscriptionPlan
		var tier int
		if err := rows.Scan(&p.ID, &p.Name, &tier, &p.MonthlyPrice, &p.Currency); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.Tier = modules.PlanTier(tier)
		list = append(list, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	grants, err := r.grants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.ModuleGrants = grants[p.ID]
	}
	return list, nil
}

// grants carga plan_modules para los planes dados. Los módulos que ya no están en el
// catálogo se ignoran.
func (r *SubscriptionRepo) grants(ctx context.Context, planIDs []string) (map[string]map[modules.ModuleName]bool, error) {
	out := make(map[string]map[modules.ModuleName]bool, len(planIDs))
	for _, id := range planIDs {
		out[id] = map[modules.ModuleName]bool{}
	}
	if len(planIDs) == 0 {
		return out, nil
	}
	const query = `
		SELECT plan_id, module_name, is_enabled
		  FROM plan_modules WHERE plan_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, planIDs)
	if err != nil {
		return nil, fmt.Errorf("list plan modules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var planID, name string
		var enabled bool
		if err := rows.Scan(&planID, &name, &enabled); err != nil {
			return nil, fmt.Errorf("scan plan module: %w", err)
		}
		m := modules.ModuleName(name)
		if !m.Valid() {
			continue
		}
		out[planID][m] = enabled
	}
	return out, rows.Err()
}
