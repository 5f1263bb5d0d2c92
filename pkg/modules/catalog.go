// Package modules contiene el catálogo estático de módulos del producto
// (gestión de empleados, horarios, pagos en línea, analítica, multisede y API),
// los planes que los incluyen y la instantánea de permisos que comparten el
// servidor y los clientes.
package modules

import (
	"errors"
	"fmt"
	"strings"
)

// Errores del catálogo.
var (
	ErrUnknownModule = errors.New("módulo desconocido")
	ErrUnknownTier   = errors.New("nivel de plan desconocido")
)

// ModuleName identifica un módulo habilitable por empresa. Conjunto cerrado:
// agregar un módulo exige agregarlo también a catalog.
type ModuleName string

const (
	EmployeeManagement ModuleName = "employee_management"
	EmployeeSchedules  ModuleName = "employee_schedules"
	OnlinePayments     ModuleName = "online_payments"
	Analytics          ModuleName = "analytics"
	MultiLocation      ModuleName = "multi_location"
	APIAccess          ModuleName = "api_access"
)

// PlanTier es el nivel de un plan; el orden numérico es el orden comercial.
type PlanTier int

const (
	TierFree PlanTier = iota
	TierStarter
	TierPro
	TierEnterprise
)

var tierNames = map[PlanTier]string{
	TierFree:       "free",
	TierStarter:    "starter",
	TierPro:        "pro",
	TierEnterprise: "enterprise",
}

// String devuelve el identificador del nivel ("free", "starter", "pro", "enterprise").
func (t PlanTier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier convierte el identificador textual de un nivel.
func ParseTier(s string) (PlanTier, error) {
	for t, name := range tierNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return TierFree, fmt.Errorf("%q: %w", s, ErrUnknownTier)
}

// Entry describe un módulo del catálogo. Inmutable.
type Entry struct {
	Module       ModuleName
	DisplayName  map[string]string // por idioma: "es", "en"
	Description  map[string]string
	MinimumTiers []PlanTier // niveles que incluyen el módulo, de menor a mayor
}

// catalog se define al arrancar y nunca se modifica. El orden del slice es el orden de AllModules.
var catalog = []Entry{
	{
		Module:       EmployeeManagement,
		DisplayName:  map[string]string{"es": "Gestión de empleados", "en": "Employee management"},
		Description:  map[string]string{"es": "Alta de empleados y asignación de servicios", "en": "Add employees and assign them services"},
		MinimumTiers: []PlanTier{TierStarter, TierPro, TierEnterprise},
	},
	{
		Module:       EmployeeSchedules,
		DisplayName:  map[string]string{"es": "Horarios de empleados", "en": "Employee schedules"},
		Description:  map[string]string{"es": "Turnos, ausencias y disponibilidad por empleado", "en": "Shifts, time off and per-employee availability"},
		MinimumTiers: []PlanTier{TierPro, TierEnterprise},
	},
	{
		Module:       OnlinePayments,
		DisplayName:  map[string]string{"es": "Pagos en línea", "en": "Online payments"},
		Description:  map[string]string{"es": "Cobro de reservas con tarjeta al agendar", "en": "Charge bookings by card at checkout"},
		MinimumTiers: []PlanTier{TierPro, TierEnterprise},
	},
	{
		Module:       Analytics,
		DisplayName:  map[string]string{"es": "Analítica", "en": "Analytics"},
		Description:  map[string]string{"es": "Reportes de ocupación, ingresos y clientes", "en": "Occupancy, revenue and customer reports"},
		MinimumTiers: []PlanTier{TierPro, TierEnterprise},
	},
	{
		Module:       MultiLocation,
		DisplayName:  map[string]string{"es": "Multisede", "en": "Multiple locations"},
		Description:  map[string]string{"es": "Varias sedes bajo una misma empresa", "en": "Several locations under one company"},
		MinimumTiers: []PlanTier{TierEnterprise},
	},
	{
		Module:       APIAccess,
		DisplayName:  map[string]string{"es": "Acceso API", "en": "API access"},
		Description:  map[string]string{"es": "Integraciones mediante la API pública", "en": "Integrations through the public API"},
		MinimumTiers: []PlanTier{TierEnterprise},
	},
}

var byName = func() map[ModuleName]int {
	m := make(map[ModuleName]int, len(catalog))
	for i, e := range catalog {
		m[e.Module] = i
	}
	return m
}()

// AllModules devuelve los módulos del catálogo en orden fijo.
func AllModules() []ModuleName {
	out := make([]ModuleName, len(catalog))
	for i, e := range catalog {
		out[i] = e.Module
	}
	return out
}

// Valid informa si m pertenece al conjunto cerrado.
func (m ModuleName) Valid() bool {
	_, ok := byName[m]
	return ok
}

// ParseModule convierte un nombre recibido en la frontera (URL, JSON) en ModuleName.
// Es el único punto donde un string libre se vuelve ModuleName.
func ParseModule(s string) (ModuleName, error) {
	m := ModuleName(strings.TrimSpace(s))
	if !m.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownModule)
	}
	return m, nil
}

// Describe devuelve la entrada del catálogo. Un módulo desconocido es un defecto
// de programación y provoca panic.
func Describe(m ModuleName) Entry {
	i, ok := byName[m]
	if !ok {
		panic(fmt.Sprintf("modules: módulo fuera del catálogo: %q", string(m)))
	}
	return catalog[i]
}

// MinimumRequiredTier devuelve el nivel más bajo que incluye el módulo.
func MinimumRequiredTier(m ModuleName) PlanTier {
	return Describe(m).MinimumTiers[0]
}

// Name devuelve el nombre visible del módulo en el idioma dado (es por defecto).
func (e Entry) Name(lang string) string {
	if s, ok := e.DisplayName[lang]; ok {
		return s
	}
	return e.DisplayName[DefaultLanguage]
}

// Summary devuelve la descripción del módulo en el idioma dado (es por defecto).
func (e Entry) Summary(lang string) string {
	if s, ok := e.Description[lang]; ok {
		return s
	}
	return e.Description[DefaultLanguage]
}
