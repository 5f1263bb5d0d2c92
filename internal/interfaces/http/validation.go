package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

var validate = validator.New()

// parseBody decodifica el JSON del cuerpo y aplica las etiquetas validate.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return fmt.Errorf("cuerpo inválido: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("campos inválidos: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// companyIDParam lee :companyId y exige un UUID.
func companyIDParam(c *fiber.Ctx) (string, error) {
	raw := strings.TrimSpace(c.Params("companyId"))
	if raw == "" {
		return "", errors.New("companyId es requerido")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("companyId inválido: %q", raw)
	}
	return id.String(), nil
}

// moduleParam lee :module contra el catálogo cerrado.
func moduleParam(c *fiber.Ctx) (modules.ModuleName, error) {
	return modules.ParseModule(c.Params("module"))
}

func badRequest(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// writeError traduce los errores de dominio a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, modules.ErrUnknownModule):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrPermissionsUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERMISSIONS_UNAVAILABLE", Message: "permisos no disponibles, intente más tarde"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error inesperado"})
	}
}
