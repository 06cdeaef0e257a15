package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/quinielas/internal/domain"
)

// Sesiones guarda un token opaco por login de administrador con expiración.
type Sesiones struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewSesiones(client *redis.Client, prefix string, ttl time.Duration) *Sesiones {
	if prefix == "" {
		prefix = "sesion:admin"
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sesiones{client: client, prefix: prefix, ttl: ttl}
}

func (s *Sesiones) key(token string) string {
	return fmt.Sprintf("%s:%s", s.prefix, token)
}

func (s *Sesiones) Crear(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), time.Now().UTC().Format(time.RFC3339), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis sesiones: crear: %w", err)
	}
	return token, nil
}

// Validar rechaza tokens que no tienen forma de UUID sin consultar Redis.
func (s *Sesiones) Validar(ctx context.Context, token string) (bool, error) {
	if _, err := uuid.Parse(token); err != nil {
		return false, nil
	}
	err := s.client.Get(ctx, s.key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis sesiones: validar: %w", err)
	}
	return true, nil
}

func (s *Sesiones) Eliminar(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis sesiones: eliminar: %w", err)
	}
	return nil
}

var _ domain.Sesiones = (*Sesiones)(nil)
