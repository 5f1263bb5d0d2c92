package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Agenda-api/pkg/logger"
	"github.com/jhoicas/Agenda-api/pkg/permclient"
)

// Globals flags comunes a todos los comandos.
type Globals struct {
	Server         string        `help:"URL base de la API" default:"http://localhost:8080" env:"PERMCTL_SERVER"`
	Token          string        `help:"JWT bearer" env:"PERMCTL_TOKEN"`
	Lang           string        `help:"Idioma de los mensajes (es, en)" default:"es"`
	AttemptTimeout time.Duration `help:"Timeout por intento" default:"${fetch_timeout}"`
	Retries        uint          `help:"Intentos ante 5xx o errores de red" default:"${fetch_tries}"`
	Debug          bool          `help:"Logs de depuración"`
}

func (g *Globals) logger() zerolog.Logger {
	level := "warn"
	if g.Debug {
		level = "debug"
	}
	return logger.New(logger.Config{Env: "development", Level: level, Service: "permctl", Output: os.Stderr}).Zerolog()
}

func (g *Globals) loader(log zerolog.Logger) *permclient.HTTPLoader {
	return permclient.NewHTTPLoader(g.Server,
		permclient.WithToken(g.Token),
		permclient.WithAttemptTimeout(g.AttemptTimeout),
		permclient.WithRetry(g.Retries, 0, 0),
		permclient.WithLoaderLogger(log),
	)
}

func (g *Globals) store(companyID string, log zerolog.Logger) *permclient.Store {
	return permclient.New(companyID, g.loader(log),
		permclient.WithLogger(log),
		permclient.WithLanguage(g.Lang),
	)
}
