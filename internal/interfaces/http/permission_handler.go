package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/internal/application/usecase"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// PermissionHandler expone la instantánea de permisos y la decisión del guard.
type PermissionHandler struct {
	perms *usecase.PermissionService
	guard *usecase.ModuleGuard
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(perms *usecase.PermissionService, guard *usecase.ModuleGuard) *PermissionHandler {
	return &PermissionHandler{perms: perms, guard: guard}
}

// Get godoc
// @Summary      Permisos de una empresa
// @Description  Instantánea con el estado de la suscripción y un booleano por cada módulo del catálogo.
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa (UUID)"
// @Success      200  {object}  modules.Permissions
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/permissions/{companyId} [get]
func (h *PermissionHandler) Get(c *fiber.Ctx) error {
	companyID, err := companyIDParam(c)
	if err != nil {
		return badRequest(c, "INVALID_COMPANY_ID", err)
	}
	if !canAccessCompany(c, companyID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar los permisos de su empresa"})
	}
	perms, err := h.perms.LoadPermissions(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(perms)
}

// Check godoc
// @Summary      Verificar un módulo
// @Description  Decisión del guard para páginas renderizadas en servidor: si allowed es false, redirigir a redirect_to.
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa (UUID)"
// @Param        module     path  string  true  "Módulo"
// @Success      200  {object}  dto.ModuleCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/modules/{module}/check [get]
func (h *PermissionHandler) Check(c *fiber.Ctx) error {
	companyID, err := companyIDParam(c)
	if err != nil {
		return badRequest(c, "INVALID_COMPANY_ID", err)
	}
	module, err := moduleParam(c)
	if err != nil {
		return badRequest(c, "UNKNOWN_MODULE", err)
	}
	if !canAccessCompany(c, companyID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar los permisos de su empresa"})
	}

	allowed, err := h.guard.RequireModule(c.UserContext(), companyID, module)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ModuleCheckResponse{CompanyID: companyID, Module: module, Allowed: allowed}
	if !allowed {
		out.RedirectTo = h.guard.UpgradePath(companyID, module)
		out.UpgradeMessage = modules.UpgradeMessage(module, requestLanguage(c))
	}
	return c.JSON(out)
}

// Own godoc
// @Summary      Permisos de la empresa del token
// @Description  Para integraciones externas; requiere el módulo api_access.
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  modules.Permissions
// @Failure      403  {object}  dto.ModuleDeniedResponse
// @Router       /api/v1/permissions [get]
func (h *PermissionHandler) Own(c *fiber.Ctx) error {
	perms, err := h.perms.LoadPermissions(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(perms)
}
