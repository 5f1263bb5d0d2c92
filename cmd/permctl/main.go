package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/Agenda-api/cmd/permctl/internal/commands"
	"github.com/jhoicas/Agenda-api/pkg/config"
)

var (
	version = "dev"
	cli     struct {
		commands.Globals `embed:""`

		Show    commands.ShowCmd  `cmd:"" help:"Muestra los permisos de una empresa"`
		Check   commands.CheckCmd `cmd:"" help:"Verifica un módulo (exit 1 si está deshabilitado)"`
		Watch   commands.WatchCmd `cmd:"" help:"Sigue los cambios de permisos de una empresa"`
		Token   commands.TokenCmd `cmd:"" help:"Genera un JWT de prueba"`
		Version kong.VersionFlag
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// los valores por defecto de reintentos salen de la misma configuración que la API
	fetchTimeout, fetchTries := 5*time.Second, uint(3)
	if cfg, err := config.Load(); err == nil {
		fetchTimeout, fetchTries = cfg.Permissions.FetchTimeout, cfg.Permissions.FetchMaxTries
	}

	cmd := kong.Parse(&cli,
		kong.Name("permctl"),
		kong.Description("Consulta de permisos por módulo de Agenda API."),
		kong.Vars{
			"version":       version,
			"fetch_timeout": fetchTimeout.String(),
			"fetch_tries":   strconv.FormatUint(uint64(fetchTries), 10),
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&cli.Globals)
	cmd.FatalIfErrorf(err)
}
