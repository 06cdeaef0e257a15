// Paquete antifraude limita envíos públicos repetidos por quiniela, IP y user agent.
package antifraude

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/quinielas/internal/domain"
)

var ErrRateLimitExceeded = errors.New("demasiados envios, intenta mas tarde")

// RedisRateLimiter cuenta envíos en ventanas fijas con INCR + EXPIRE.
type RedisRateLimiter struct {
	client  *redis.Client
	limite  int
	ventana time.Duration
	prefijo string
}

func NewRedisRateLimiter(client *redis.Client, limite int, ventana time.Duration, prefijo string) *RedisRateLimiter {
	if prefijo == "" {
		prefijo = "ratelimit:envios"
	}
	return &RedisRateLimiter{client: client, limite: limite, ventana: ventana, prefijo: prefijo}
}

// Validar devuelve ErrRateLimitExceeded envuelto con el tiempo que falta para que la ventana se libere.
func (r *RedisRateLimiter) Validar(ctx context.Context, intento domain.Intento) error {
	if r.client == nil || r.limite <= 0 || r.ventana <= 0 {
		return nil
	}

	clave := r.clave(intento)
	envios, err := r.client.Incr(ctx, clave).Result()
	if err != nil {
		return fmt.Errorf("antifraude: incrementar %s: %w", clave, err)
	}
	if envios == 1 {
		if err := r.client.Expire(ctx, clave, r.ventana).Err(); err != nil {
			return fmt.Errorf("antifraude: definir expiracion: %w", err)
		}
	}
	if envios <= int64(r.limite) {
		return nil
	}

	restante, err := r.client.TTL(ctx, clave).Result()
	if err != nil || restante <= 0 {
		return ErrRateLimitExceeded
	}
	return fmt.Errorf("%w (reintenta en %s)", ErrRateLimitExceeded, restante.Round(time.Second))
}

// clave guarda solo el hash para no dejar IP ni user agent en claro.
func (r *RedisRateLimiter) clave(intento domain.Intento) string {
	hash := sha1.Sum([]byte(string(intento.QuinielaID) + "|" + intento.OrigenIP + "|" + intento.UserAgent))
	return r.prefijo + ":" + hex.EncodeToString(hash[:])
}

var _ domain.Antifraude = (*RedisRateLimiter)(nil)
