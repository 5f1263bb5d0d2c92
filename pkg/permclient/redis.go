package permclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ChangesChannel canal Redis donde el servidor publica el id de la empresa
// cuyos permisos cambiaron.
const ChangesChannel = "permissions:changed"

// refreshTimeout límite de cada refresco disparado por una notificación.
const refreshTimeout = 30 * time.Second

// ListenInvalidations escucha ChangesChannel y refresca el Store de la empresa
// notificada. Bloquea hasta que ctx se cancele.
func ListenInvalidations(ctx context.Context, rdb *redis.Client, reg *Registry, log zerolog.Logger) error {
	sub := rdb.Subscribe(ctx, ChangesChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", ChangesChannel, err)
	}
	log.Info().Str("channel", ChangesChannel).Msg("escuchando cambios de permisos")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			companyID := msg.Payload
			if _, present := reg.Peek(companyID); !present {
				continue
			}
			rctx, cancel := context.WithTimeout(ctx, refreshTimeout)
			if err := reg.Invalidate(rctx, companyID); err != nil {
				log.Warn().Err(err).Str("company_id", companyID).Msg("refresco por notificación falló")
			} else {
				log.Debug().Str("company_id", companyID).Msg("permisos refrescados por notificación")
			}
			cancel()
		}
	}
}
