package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/internal/application/usecase"
)

// OverrideHandler administración de overrides por empresa (solo admin).
type OverrideHandler struct {
	uc *usecase.OverrideUseCase
}

// NewOverrideHandler construye el handler.
func NewOverrideHandler(uc *usecase.OverrideUseCase) *OverrideHandler {
	return &OverrideHandler{uc: uc}
}

// List godoc
// @Summary      Overrides de una empresa
// @Tags         overrides
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa (UUID)"
// @Success      200  {object}  dto.OverrideListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/companies/{companyId}/overrides [get]
func (h *OverrideHandler) List(c *fiber.Ctx) error {
	companyID, err := companyIDParam(c)
	if err != nil {
		return badRequest(c, "INVALID_COMPANY_ID", err)
	}
	out, err := h.uc.List(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Crear o reemplazar override
// @Tags         overrides
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa (UUID)"
// @Param        module     path  string  true  "Módulo"
// @Param        body  body  dto.SetOverrideRequest  true  "Override"
// @Success      200  {object}  dto.OverrideResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/companies/{companyId}/overrides/{module} [put]
func (h *OverrideHandler) Set(c *fiber.Ctx) error {
	companyID, err := companyIDParam(c)
	if err != nil {
		return badRequest(c, "INVALID_COMPANY_ID", err)
	}
	module, err := moduleParam(c)
	if err != nil {
		return badRequest(c, "UNKNOWN_MODULE", err)
	}
	var in dto.SetOverrideRequest
	if err := parseBody(c, &in); err != nil {
		return badRequest(c, "INVALID_BODY", err)
	}
	out, err := h.uc.Set(c.UserContext(), companyID, module, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Eliminar override
// @Tags         overrides
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa (UUID)"
// @Param        module     path  string  true  "Módulo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/companies/{companyId}/overrides/{module} [delete]
func (h *OverrideHandler) Clear(c *fiber.Ctx) error {
	companyID, err := companyIDParam(c)
	if err != nil {
		return badRequest(c, "INVALID_COMPANY_ID", err)
	}
	module, err := moduleParam(c)
	if err != nil {
		return badRequest(c, "UNKNOWN_MODULE", err)
	}
	if err := h.uc.Clear(c.UserContext(), companyID, module); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
