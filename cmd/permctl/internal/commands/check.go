package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

var errModuleDisabled = errors.New("módulo deshabilitado")

type CheckCmd struct {
	Company string `help:"ID de la empresa" required:""`
	Module  string `help:"Módulo a verificar" required:"" enum:"employee_management,employee_schedules,online_payments,analytics,multi_location,api_access"`
}

func (c *CheckCmd) Run(ctx context.Context, globals *Globals) error {
	module, err := modules.ParseModule(c.Module)
	if err != nil {
		return err
	}
	store := globals.store(c.Company, globals.logger())
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("cargar permisos: %w", err)
	}

	if store.HasModule(module) {
		fmt.Printf("%s: habilitado\n", module)
		return nil
	}
	fmt.Printf("%s: deshabilitado\n%s\n", module, store.UpgradeMessage(module))
	return errModuleDisabled
}
