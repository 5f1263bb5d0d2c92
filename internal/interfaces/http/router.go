package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Agenda-api/internal/application/usecase"
	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// ModuleRoute ruta de otra funcionalidad que solo existe para empresas con el módulo habilitado.
type ModuleRoute struct {
	Module  modules.ModuleName
	Method  string
	Path    string
	Handler fiber.Handler
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PermissionUC *usecase.PermissionService
	Guard        *usecase.ModuleGuard
	CatalogUC    *usecase.CatalogUseCase
	OverrideUC   *usecase.OverrideUseCase
	ModuleRoutes []ModuleRoute
	JWTSecret    string
	Log          zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/modules", catalogHandler.ListModules)
	api.Get("/plans", catalogHandler.ListPlans)

	// Rutas protegidas (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret)
	permissionHandler := NewPermissionHandler(deps.PermissionUC, deps.Guard)
	api.Get("/permissions/:companyId?", auth, permissionHandler.Get)
	api.Get("/companies/:companyId/modules/:module/check", auth, permissionHandler.Check)

	// API pública para integraciones (plan con api_access)
	api.Get("/v1/permissions", auth, RequireModule(modules.APIAccess, deps.Guard, deps.Log), permissionHandler.Own)

	// Administración de overrides (solo admin)
	admin := api.Group("/admin", auth, RequireRole(entity.RoleAdmin))
	overrideHandler := NewOverrideHandler(deps.OverrideUC)
	overrides := admin.Group("/companies/:companyId/overrides")
	overrides.Get("/", overrideHandler.List)
	overrides.Put("/:module", overrideHandler.Set)
	overrides.Delete("/:module", overrideHandler.Clear)

	// Funcionalidades condicionadas a un módulo del plan
	for _, r := range deps.ModuleRoutes {
		api.Add(r.Method, r.Path, auth, RequireModule(r.Module, deps.Guard, deps.Log), r.Handler)
	}
}
