package repository

import (
	"context"

	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// SubscriptionRepository lecturas de suscripciones y planes. Los datos los escribe el
// colaborador de facturación; aquí solo se consultan.
type SubscriptionRepository interface {
	// GetCurrentByCompany devuelve la suscripción vigente o (nil, nil) si la empresa no tiene.
	GetCurrentByCompany(ctx context.Context, companyID string) (*entity.CompanySubscription, error)

	// GetPlan devuelve el plan con sus concesiones de módulos o (nil, nil) si no existe.
	GetPlan(ctx context.Context, planID string) (*entity.SubscriptionPlan, error)

	// ListPlans devuelve el catálogo de planes ordenado por nivel.
	ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error)
}

// OverrideRepository persistencia de los overrides de módulos por empresa.
type OverrideRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]entity.CompanyModuleOverride, error)

	// Upsert crea o reemplaza la fila (company_id, module).
	Upsert(ctx context.Context, override *entity.CompanyModuleOverride) error

	// Delete elimina la fila; devuelve domain.ErrNotFound si no existía.
	Delete(ctx context.Context, companyID string, module modules.ModuleName) error
}
