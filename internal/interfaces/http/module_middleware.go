package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// moduleGuard es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleGuard; el uso de interfaz evita el import circular.
type moduleGuard interface {
	RequireModule(ctx context.Context, companyID string, module modules.ModuleName) (bool, error)
	UpgradePath(companyID string, module modules.ModuleName) string
}

// RequireModule devuelve un middleware Fiber que verifica si la empresa del token JWT
// tiene el módulo habilitado. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 403 MODULE_DISABLED → módulo no incluido en el plan, con upgrade_message y redirect_to.
//   - 503 MODULE_CHECK_FAILED → no se pudieron leer los permisos.
//   - Si no hay company_id en el contexto, responde 401.
func RequireModule(module modules.ModuleName, guard moduleGuard, log zerolog.Logger) fiber.Handler {
	// módulo desconocido: error de programación, falla al registrar la ruta
	entry := modules.Describe(module)
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		allowed, err := guard.RequireModule(c.UserContext(), companyID, module)
		if err != nil {
			log.Error().Err(err).Str("company_id", companyID).Str("module", string(module)).Msg("verificación de módulo falló")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !allowed {
			lang := requestLanguage(c)
			return c.Status(fiber.StatusForbidden).JSON(dto.ModuleDeniedResponse{
				Code:           "MODULE_DISABLED",
				Message:        "el módulo '" + entry.Name(lang) + "' no está activo para esta empresa",
				UpgradeMessage: modules.UpgradeMessage(module, lang),
				RedirectTo:     guard.UpgradePath(companyID, module),
			})
		}

		return c.Next()
	}
}

// requestLanguage idioma de los mensajes según Accept-Language (es por defecto).
func requestLanguage(c *fiber.Ctx) string {
	return modules.MatchLanguage(c.Get(fiber.HeaderAcceptLanguage))
}
