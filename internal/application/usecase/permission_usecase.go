package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/internal/domain"
	"github.com/jhoicas/Agenda-api/internal/domain/entity"
	"github.com/jhoicas/Agenda-api/internal/domain/permission"
	"github.com/jhoicas/Agenda-api/internal/domain/repository"
	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// PermissionService es el único punto que construye instantáneas de permisos:
// lee empresa, suscripción, plan y overrides y delega el cálculo en permission.Resolver.
// No cachea: cada llamada es una lectura nueva y sin efectos secundarios.
type PermissionService struct {
	companyRepo  repository.CompanyRepository
	subRepo      repository.SubscriptionRepository
	overrideRepo repository.OverrideRepository
	resolver     permission.Resolver
	observer     ports.PermissionObserver
	log          zerolog.Logger
}

// NewPermissionService construye el servicio. observer puede ser nil.
func NewPermissionService(
	companyRepo repository.CompanyRepository,
	subRepo repository.SubscriptionRepository,
	overrideRepo repository.OverrideRepository,
	resolver permission.Resolver,
	observer ports.PermissionObserver,
	log zerolog.Logger,
) *PermissionService {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &PermissionService{
		companyRepo:  companyRepo,
		subRepo:      subRepo,
		overrideRepo: overrideRepo,
		resolver:     resolver,
		observer:     observer,
		log:          log.With().Str("component", "permissions").Logger(),
	}
}

// LoadPermissions devuelve la instantánea de permisos de la empresa.
//
// Errores:
//   - domain.ErrInvalidInput si companyID está vacío.
//   - domain.ErrNotFound si la empresa no existe.
//   - domain.ErrPermissionsUnavailable (envolviendo la causa) ante fallos del almacenamiento.
//
// Una empresa sin suscripción se resuelve como inactive; un plan inexistente como
// "sin módulos" y solo se registra en el log.
func (s *PermissionService) LoadPermissions(ctx context.Context, companyID string) (modules.Permissions, error) {
	start := time.Now()
	perms, err := s.load(ctx, companyID)
	switch {
	case err == nil:
		s.observer.ObserveLoad(ports.LoadOutcomeOK, time.Since(start))
	case errors.Is(err, domain.ErrNotFound):
		s.observer.ObserveLoad(ports.LoadOutcomeNotFound, time.Since(start))
	case errors.Is(err, domain.ErrPermissionsUnavailable):
		s.observer.ObserveLoad(ports.LoadOutcomeUnavailable, time.Since(start))
		s.log.Error().Err(err).Str("company_id", companyID).Msg("no se pudieron cargar los permisos")
	}
	return perms, err
}

func (s *PermissionService) load(ctx context.Context, companyID string) (modules.Permissions, error) {
	if companyID == "" {
		return modules.Permissions{}, fmt.Errorf("permissions: companyID es obligatorio: %w", domain.ErrInvalidInput)
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return modules.Permissions{}, fmt.Errorf("%w: empresa: %w", domain.ErrPermissionsUnavailable, err)
	}
	if company == nil {
		return modules.Permissions{}, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}

	sub, err := s.subRepo.GetCurrentByCompany(ctx, companyID)
	if err != nil {
		return modules.Permissions{}, fmt.Errorf("%w: suscripción: %w", domain.ErrPermissionsUnavailable, err)
	}
	if sub == nil {
		sub = &entity.CompanySubscription{CompanyID: companyID, Status: modules.StatusInactive}
	}

	var plan *entity.SubscriptionPlan
	if sub.PlanID != "" {
		plan, err = s.subRepo.GetPlan(ctx, sub.PlanID)
		if err != nil {
			return modules.Permissions{}, fmt.Errorf("%w: plan: %w", domain.ErrPermissionsUnavailable, err)
		}
		if plan == nil {
			s.log.Warn().
				Str("company_id", companyID).
				Str("plan_id", sub.PlanID).
				Msg("la suscripción apunta a un plan inexistente; se deshabilitan todos los módulos")
		}
	}

	overrides, err := s.overrideRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return modules.Permissions{}, fmt.Errorf("%w: overrides: %w", domain.ErrPermissionsUnavailable, err)
	}

	perms := s.resolver.Resolve(sub, plan, overrides)
	perms.CompanyID = companyID
	return perms, nil
}
