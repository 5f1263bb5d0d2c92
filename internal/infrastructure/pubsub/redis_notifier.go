package pubsub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Agenda-api/internal/application/ports"
	"github.com/jhoicas/Agenda-api/pkg/config"
	"github.com/jhoicas/Agenda-api/pkg/permclient"
)

var _ ports.ChangeNotifier = (*RedisNotifier)(nil)

// RedisNotifier publica el id de la empresa en permclient.ChangesChannel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier crea el notificador sobre un cliente ya conectado.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, channel: permclient.ChangesChannel}
}

// PermissionsChanged publica el cambio. No espera suscriptores.
func (n *RedisNotifier) PermissionsChanged(ctx context.Context, companyID string) error {
	if err := n.client.Publish(ctx, n.channel, companyID).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", n.channel, err)
	}
	return nil
}

// NewClient abre la conexión a Redis y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
