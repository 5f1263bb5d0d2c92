package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// SubscriptionPlan representa un plan del catálogo de facturación. Solo lectura para el motor de permisos.
type SubscriptionPlan struct {
	ID           string
	Name         string
	Tier         modules.PlanTier
	MonthlyPrice decimal.Decimal
	Currency     string
	ModuleGrants map[modules.ModuleName]bool // ausente = false
}

// CompanySubscription suscripción vigente de una empresa (a lo sumo una).
// Su ciclo de vida lo maneja el webhook de pagos, no este servicio.
type CompanySubscription struct {
	ID        string
	CompanyID string
	PlanID    string
	Status    modules.SubscriptionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyModuleOverride excepción por empresa que reemplaza lo que concede el plan,
// en ambos sentidos. Cero o una fila por (empresa, módulo).
type CompanyModuleOverride struct {
	ID        string
	CompanyID string
	Module    modules.ModuleName
	IsEnabled bool
	Reason    string
	ExpiresAt *time.Time // nil = sin vencimiento
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired informa si el override ya venció en el instante dado.
func (o CompanyModuleOverride) Expired(at time.Time) bool {
	return o.ExpiresAt != nil && !o.ExpiresAt.After(at)
}
