package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Agenda-api/internal/application/dto"
	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/internal/domain/repository"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// OverrideUseCase administración de overrides de módulos por empresa (acción de administrador).
// Cada cambio se publica para que los clientes refresquen sus permisos.
type OverrideUseCase struct {
	companyRepo  repository.CompanyRepository
	overrideRepo repository.OverrideRepository
	notifier     ports.ChangeNotifier
	log          zerolog.Logger
	now          func() time.Time
}

// NewOverrideUseCase construye el caso de uso. notifier nil equivale a no publicar.
func NewOverrideUseCase(
	companyRepo repository.CompanyRepository,
	overrideRepo repository.OverrideRepository,
	notifier ports.ChangeNotifier,
	log zerolog.Logger,
) *OverrideUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &OverrideUseCase{
		companyRepo:  companyRepo,
		overrideRepo: overrideRepo,
		notifier:     notifier,
		log:          log.With().Str("component", "overrides").Logger(),
		now:          time.Now,
	}
}

// List devuelve los overrides de la empresa. domain.ErrNotFound si la empresa no existe.
func (uc *OverrideUseCase) List(ctx context.Context, companyID string) (*dto.OverrideListResponse, error) {
	if err := uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	list, err := uc.overrideRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OverrideResponse, 0, len(list))
	for i := range list {
		items = append(items, toOverrideResponse(&list[i]))
	}
	return &dto.OverrideListResponse{Items: items}, nil
}

// Set crea o reemplaza el override (empresa, módulo).
func (uc *OverrideUseCase) Set(ctx context.Context, companyID string, module modules.ModuleName, in dto.SetOverrideRequest) (*dto.OverrideResponse, error) {
	if !module.Valid() || in.IsEnabled == nil {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return nil, fmt.Errorf("expires_at debe ser futuro: %w", domain.ErrInvalidInput)
	}
	if err := uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	o := &entity.CompanyModuleOverride{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Module:    module,
		IsEnabled: *in.IsEnabled,
		Reason:    in.Reason,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.overrideRepo.Upsert(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("module", string(module)).
		Bool("is_enabled", o.IsEnabled).
		Msg("override de módulo actualizado")
	uc.publish(ctx, companyID)
	out := toOverrideResponse(o)
	return &out, nil
}

// Clear elimina el override; la empresa vuelve a lo que concede su plan.
// domain.ErrNotFound si no había override.
func (uc *OverrideUseCase) Clear(ctx context.Context, companyID string, module modules.ModuleName) error {
	if !module.Valid() {
		return domain.ErrInvalidInput
	}
	if err := uc.overrideRepo.Delete(ctx, companyID, module); err != nil {
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("module", string(module)).Msg("override de módulo eliminado")
	uc.publish(ctx, companyID)
	return nil
}

func (uc *OverrideUseCase) ensureCompany(ctx context.Context, companyID string) error {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return nil
}

// publish no falla la operación: el cambio ya está persistido y los clientes lo verán en su próximo refresco.
func (uc *OverrideUseCase) publish(ctx context.Context, companyID string) {
	if err := uc.notifier.PermissionsChanged(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo publicar el cambio de permisos")
	}
}

func toOverrideResponse(o *entity.CompanyModuleOverride) dto.OverrideResponse {
	return dto.OverrideResponse{
		ID:        o.ID,
		CompanyID: o.CompanyID,
		Module:    o.Module,
		IsEnabled: o.IsEnabled,
		Reason:    o.Reason,
		ExpiresAt: o.ExpiresAt,
		UpdatedAt: o.UpdatedAt,
	}
}
