package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agenda-api/internal/application/usecase"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// CatalogHandler catálogo de módulos y planes.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListModules godoc
// @Summary      Catálogo de módulos
// @Tags         catalog
// @Produce      json
// @Param        lang  query  string  false  "Idioma (es, en); por defecto Accept-Language"
// @Success      200  {object}  dto.ModuleListResponse
// @Router       /api/modules [get]
func (h *CatalogHandler) ListModules(c *fiber.Ctx) error {
	lang := requestLanguage(c)
	if q := c.Query("lang"); q != "" {
		lang = modules.MatchLanguage(q)
	}
	return c.JSON(h.uc.ListModules(lang))
}

// ListPlans godoc
// @Summary      Planes de suscripción
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.PlanListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/plans [get]
func (h *CatalogHandler) ListPlans(c *fiber.Ctx) error {
	out, err := h.uc.ListPlans(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
