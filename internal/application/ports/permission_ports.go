package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// Resultados de una carga de permisos, usados como etiqueta en métricas.
const (
	LoadOutcomeOK          = "ok"
	LoadOutcomeNotFound    = "not_found"
	LoadOutcomeUnavailable = "unavailable"
)

// PermissionObserver puerto de salida para métricas del motor de permisos.
// La implementación Prometheus vive en infrastructure/metrics.
type PermissionObserver interface {
	ObserveLoad(outcome string, elapsed time.Duration)
	ObserveCheck(module modules.ModuleName, allowed bool)
}

// ChangeNotifier avisa a los clientes que los permisos de una empresa cambiaron
// (override modificado) para que refresquen su instantánea.
type ChangeNotifier interface {
	PermissionsChanged(ctx context.Context, companyID string) error
}

// NopObserver descarta las observaciones.
type NopObserver struct{}

func (NopObserver) ObserveLoad(string, time.Duration)     {}
func (NopObserver) ObserveCheck(modules.ModuleName, bool)    {}

// NopNotifier no publica nada; se usa cuando no hay Redis configurado.
type NopNotifier struct{}

func (NopNotifier) PermissionsChanged(context.Context, string) error { return nil }
