package modules

// SubscriptionStatus estado de la suscripción de una empresa, lo mantiene el webhook de facturación.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusInactive  SubscriptionStatus = "inactive"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// Valid informa si el estado es uno de los conocidos.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPastDue, StatusCancelled:
		return true
	}
	return false
}

// SubscriptionState es la parte de la suscripción expuesta en la instantánea.
type SubscriptionState struct {
	Status SubscriptionStatus `json:"status"`
}

// Permissions es la instantánea de permisos de una empresa (CompanyPermissions).
// Se calcula en cada consulta, nunca se persiste y no se modifica una vez construida:
// quien necesite otra versión construye una nueva.
//
// Modules siempre trae una entrada por cada módulo del catálogo.
type Permissions struct {
	CompanyID    string              `json:"companyId"`
	Subscription SubscriptionState   `json:"subscription"`
	Modules      map[ModuleName]bool `json:"modules"`
}

// Denied devuelve una instantánea sin suscripción activa y con todos los módulos apagados.
func Denied(companyID string) Permissions {
	mods := make(map[ModuleName]bool, len(catalog))
	for _, e := range catalog {
		mods[e.Module] = false
	}
	return Permissions{
		CompanyID:    companyID,
		Subscription: SubscriptionState{Status: StatusInactive},
		Modules:      mods,
	}
}

// Has informa si el módulo está habilitado en la instantánea.
func (p Permissions) Has(m ModuleName) bool {
	return p.Modules[m]
}

// Active informa si la suscripción está activa.
func (p Permissions) Active() bool {
	return p.Subscription.Status == StatusActive
}

// Enabled devuelve los módulos habilitados en orden de catálogo.
func (p Permissions) Enabled() []ModuleName {
	var out []ModuleName
	for _, e := range catalog {
		if p.Modules[e.Module] {
			out = append(out, e.Module)
		}
	}
	return out
}

// Clone devuelve una copia que no comparte el mapa de módulos.
func (p Permissions) Clone() Permissions {
	mods := make(map[ModuleName]bool, len(p.Modules))
	for k, v := range p.Modules {
		mods[k] = v
	}
	p.Modules = mods
	return p
}

// Complete devuelve una copia con exactamente una entrada por módulo del catálogo:
// descarta claves desconocidas y agrega en false las que falten.
// Se usa al decodificar instantáneas recibidas por la red.
func (p Permissions) Complete() Permissions {
	mods := make(map[ModuleName]bool, len(catalog))
	for _, e := range catalog {
		mods[e.Module] = p.Modules[e.Module]
	}
	p.Modules = mods
	if !p.Subscription.Status.Valid() {
		p.Subscription.Status = StatusInactive
	}
	return p
}

// Equal compara dos instantáneas campo a campo.
func (p Permissions) Equal(o Permissions) bool {
	if p.CompanyID != o.CompanyID || p.Subscription != o.Subscription || len(p.Modules) != len(o.Modules) {
		return false
	}
	for k, v := range p.Modules {
		ov, ok := o.Modules[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
