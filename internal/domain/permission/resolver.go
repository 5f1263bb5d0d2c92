// Package permission calcula qué módulos tiene habilitados una empresa a partir de su
// suscripción, las concesiones del plan y los overrides por empresa.
// Funciones puras: no hace I/O ni guarda estado.
package permission

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// OverridePolicy decide qué pasa con un override cuando la suscripción no está activa.
type OverridePolicy string

const (
	// PolicyStrict: una suscripción no activa apaga todos los módulos, haya o no overrides.
	PolicyStrict OverridePolicy = "strict"
	// PolicyOverrideWins: un override sigue aplicando aunque la suscripción no esté activa.
	// Solo el dueño del sistema debería activarla (cortesías, migraciones de cuentas).
	PolicyOverrideWins OverridePolicy = "override_wins"
)

// ParsePolicy convierte el valor de configuración; vacío equivale a PolicyStrict.
func ParsePolicy(s string) (OverridePolicy, error) {
	switch OverridePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyOverrideWins:
		return PolicyOverrideWins, nil
	}
	return "", fmt.Errorf("política de overrides desconocida: %q", s)
}

// Resolver aplica las reglas de precedencia. El valor cero usa PolicyStrict y time.Now.
type Resolver struct {
	Policy OverridePolicy
	Now    func() time.Time
}

// Resolve es Resolver{}.Resolve: política estricta.
func Resolve(sub *entity.CompanySubscription, plan *entity.SubscriptionPlan, overrides []entity.CompanyModuleOverride) modules.Permissions {
	return Resolver{}.Resolve(sub, plan, overrides)
}

// Resolve calcula la instantánea de permisos.
//
//   - sub == nil equivale a estado inactive.
//   - Con suscripción no activa todos los módulos quedan en false (salvo PolicyOverrideWins,
//     donde los overrides vigentes aún aplican sobre una base en false).
//   - Con suscripción activa y plan nil (planId colgante) todos los módulos quedan en false,
//     también los que tengan override.
//   - Con suscripción activa: base = plan.ModuleGrants[m] (ausente = false) y el
//     override vigente de (empresa, módulo), si existe, reemplaza ese valor.
//   - El resultado trae una entrada por cada módulo del catálogo.
func (r Resolver) Resolve(sub *entity.CompanySubscription, plan *entity.SubscriptionPlan, overrides []entity.CompanyModuleOverride) modules.Permissions {
	companyID := ""
	status := modules.StatusInactive
	if sub != nil {
		companyID = sub.CompanyID
		if sub.Status.Valid() {
			status = sub.Status
		}
	}
	if companyID == "" && len(overrides) > 0 {
		companyID = overrides[0].CompanyID
	}

	out := modules.Denied(companyID)
	out.Subscription.Status = status

	active := status == modules.StatusActive
	if !active && r.policy() == PolicyStrict {
		return out
	}

	if active && plan == nil {
		return out
	}

	if active {
		for _, m := range modules.AllModules() {
			out.Modules[m] = plan.ModuleGrants[m]
		}
	}

	for m, o := range r.effectiveOverrides(companyID, overrides) {
		out.Modules[m] = o.IsEnabled
	}
	return out
}

func (r Resolver) policy() OverridePolicy {
	if r.Policy == "" {
		return PolicyStrict
	}
	return r.Policy
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// effectiveOverrides filtra overrides de otra empresa, vencidos o de módulos fuera del catálogo.
// Si llegaran dos filas para el mismo módulo gana la actualizada más recientemente.
func (r Resolver) effectiveOverrides(companyID string, overrides []entity.CompanyModuleOverride) map[modules.ModuleName]entity.CompanyModuleOverride {
	now := r.now()
	out := make(map[modules.ModuleName]entity.CompanyModuleOverride, len(overrides))
	for _, o := range overrides {
		if o.CompanyID != companyID || !o.Module.Valid() || o.Expired(now) {
			continue
		}
		if prev, ok := out[o.Module]; ok && prev.UpdatedAt.After(o.UpdatedAt) {
			continue
		}
		out[o.Module] = o
	}
	return out
}
