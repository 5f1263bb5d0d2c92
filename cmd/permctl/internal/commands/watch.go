package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Agenda-api/pkg/modules"
	"github.com/jhoicas/Agenda-api/pkg/permclient"
)

type WatchCmd struct {
	Company   string        `help:"ID de la empresa" required:""`
	RedisAddr string        `help:"Redis donde la API publica los cambios (vacío = solo polling)" env:"REDIS_ADDR"`
	Interval  time.Duration `help:"Refresco periódico (0 = desactivado)" default:"30s"`
}

func (w *WatchCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()
	lang := modules.MatchLanguage(globals.Lang)
	reg := permclient.NewRegistry(globals.loader(log), 16, 0,
		permclient.WithLogger(log), permclient.WithLanguage(globals.Lang))

	store, err := reg.Get(ctx, w.Company)
	if err != nil {
		log.Warn().Err(err).Msg("primera carga fallida, se reintenta en el próximo refresco")
	} else {
		snap, _ := store.Snapshot()
		printSnapshot(snap, lang)
	}

	cancel := store.Subscribe(func(p modules.Permissions) {
		fmt.Printf("\n[%s] permisos actualizados\n", time.Now().Format(time.TimeOnly))
		printSnapshot(p, lang)
	})
	defer cancel()

	if w.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: w.RedisAddr})
		defer rdb.Close()
		go func() {
			if err := permclient.ListenInvalidations(ctx, rdb, reg, log); err != nil {
				log.Error().Err(err).Msg("escucha de cambios finalizada")
			}
		}()
	}

	var tick <-chan time.Time
	if w.Interval > 0 {
		t := time.NewTicker(w.Interval)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if err := store.Refresh(ctx); err != nil {
				log.Warn().Err(err).Msg("refresco periódico fallido")
			}
		}
	}
}
