package dto

import (
	"time"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// ModuleResponse entrada del catálogo de módulos.
type ModuleResponse struct {
	Module         modules.ModuleName `json:"module"`
	DisplayName    string             `json:"display_name"`
	Description    string             `json:"description"`
	MinimumTier    string             `json:"minimum_tier"`
	Tiers          []string           `json:"tiers"`
	UpgradeMessage string             `json:"upgrade_message"`
}

// ModuleListResponse catálogo completo.
type ModuleListResponse struct {
	Items []ModuleResponse `json:"items"`
}

// ModuleCheckResponse decisión del guard para un módulo: lo consumen las páginas
// renderizadas en servidor para decidir si redirigen a la página de suscripción.
type ModuleCheckResponse struct {
	CompanyID      string             `json:"company_id"`
	Module         modules.ModuleName `json:"module"`
	Allowed        bool               `json:"allowed"`
	RedirectTo     string             `json:"redirect_to,omitempty"`
	UpgradeMessage string             `json:"upgrade_message,omitempty"`
}

// ModuleDeniedResponse cuerpo 403 del middleware RequireModule.
type ModuleDeniedResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	UpgradeMessage string `json:"upgrade_message"`
	RedirectTo     string `json:"redirect_to"`
}

// PlanResponse plan del catálogo de facturación.
type PlanResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Tier         string               `json:"tier"`
	MonthlyPrice string               `json:"monthly_price"`
	Currency     string               `json:"currency"`
	Modules      []modules.ModuleName `json:"modules"`
}

// PlanListResponse lista de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
}

// SetOverrideRequest entrada para crear o reemplazar un override.
// IsEnabled es puntero para distinguir false de ausente.
type SetOverrideRequest struct {
	IsEnabled *bool      `json:"is_enabled" validate:"required"`
	Reason    string     `json:"reason" validate:"max=500"`
	ExpiresAt *time.Time `json:"expires_at" validate:"omitempty"`
}

// OverrideResponse override persistido.
type OverrideResponse struct {
	ID        string             `json:"id"`
	CompanyID string             `json:"company_id"`
	Module    modules.ModuleName `json:"module"`
	IsEnabled bool               `json:"is_enabled"`
	Reason    string             `json:"reason,omitempty"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// OverrideListResponse overrides de una empresa.
type OverrideListResponse struct {
	Items []OverrideResponse `json:"items"`
}
