package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// DefaultUpgradeBasePath prefijo de la página de suscripción de una empresa.
const DefaultUpgradeBasePath = "/dashboard/companies"

// permissionLoader es lo que el guard necesita del gateway; lo implementa *PermissionService.
type permissionLoader interface {
	LoadPermissions(ctx context.Context, companyID string) (modules.Permissions, error)
}

// ModuleGuard decide si una empresa puede usar un módulo antes de renderizar contenido protegido.
// Solo decide: redirigir o responder 403 es responsabilidad de quien llama.
type ModuleGuard struct {
	perms           permissionLoader
	upgradeBasePath string
	observer        ports.PermissionObserver
}

// NewModuleGuard construye el guard. upgradeBasePath vacío usa DefaultUpgradeBasePath.
func NewModuleGuard(perms permissionLoader, upgradeBasePath string, observer ports.PermissionObserver) *ModuleGuard {
	if upgradeBasePath == "" {
		upgradeBasePath = DefaultUpgradeBasePath
	}
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &ModuleGuard{
		perms:           perms,
		upgradeBasePath: strings.TrimRight(upgradeBasePath, "/"),
		observer:        observer,
	}
}

// RequireModule informa si la empresa tiene el módulo habilitado.
// Devuelve false (sin error) si el módulo no está habilitado; error solo ante empresa
// inexistente o fallos de infraestructura, y quien llama decide si mostrar error o negar.
func (g *ModuleGuard) RequireModule(ctx context.Context, companyID string, module modules.ModuleName) (bool, error) {
	perms, err := g.perms.LoadPermissions(ctx, companyID)
	if err != nil {
		return false, err
	}
	allowed := perms.Has(module)
	g.observer.ObserveCheck(module, allowed)
	return allowed, nil
}

// UpgradePath devuelve la página de suscripción a la que redirigir cuando el módulo está negado.
func (g *ModuleGuard) UpgradePath(companyID string, module modules.ModuleName) string {
	return fmt.Sprintf("%s/%s/subscription?module=%s",
		g.upgradeBasePath, url.PathEscape(companyID), url.QueryEscape(string(module)))
}
