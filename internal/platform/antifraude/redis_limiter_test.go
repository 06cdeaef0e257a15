package antifraude

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/marcelojr/quinielas/internal/domain"
)

func TestRedisRateLimiter_DebeRespetarLimite(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisRateLimiter(client, 2, time.Minute, "rl")

	intento := domain.Intento{QuinielaID: "q-1", OrigenIP: "200.1.1.1", UserAgent: "test-agent"}

	ctx := context.Background()
	if err := limiter.Validar(ctx, intento); err != nil {
		t.Fatalf("primer envio deberia aceptarse: %v", err)
	}
	if err := limiter.Validar(ctx, intento); err != nil {
		t.Fatalf("segundo envio deberia aceptarse: %v", err)
	}
	err := limiter.Validar(ctx, intento)
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("tercer envio deberia bloquearse, vino: %v", err)
	}
	if !strings.Contains(err.Error(), "reintenta en 1m0s") {
		t.Fatalf("el error deberia indicar cuando reintentar: %v", err)
	}

	key := limiter.clave(intento)
	if ttl := mr.TTL(key); ttl <= 0 {
		t.Fatalf("esperaba TTL positivo para %s, vino %v", key, ttl)
	}
}

func TestRedisRateLimiter_DebeSepararPorQuiniela(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisRateLimiter(client, 1, time.Minute, "rl")
	ctx := context.Background()

	if err := limiter.Validar(ctx, domain.Intento{QuinielaID: "q-1", OrigenIP: "1.1.1.1"}); err != nil {
		t.Fatalf("envio inicial deberia aceptarse: %v", err)
	}
	if err := limiter.Validar(ctx, domain.Intento{QuinielaID: "q-2", OrigenIP: "1.1.1.1"}); err != nil {
		t.Fatalf("otra quiniela tiene su propio limite: %v", err)
	}
}

func TestRedisRateLimiter_DebeReiniciarTrasLaVentana(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	window := 30 * time.Second
	limiter := NewRedisRateLimiter(client, 1, window, "rl")

	intento := domain.Intento{QuinielaID: "q-2", OrigenIP: "200.2.2.2", UserAgent: "ua"}

	ctx := context.Background()
	if err := limiter.Validar(ctx, intento); err != nil {
		t.Fatalf("envio inicial deberia aceptarse: %v", err)
	}
	if err := limiter.Validar(ctx, intento); !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("segundo envio dentro de la ventana deberia fallar: %v", err)
	}

	mr.FastForward(window + time.Second)

	if err := limiter.Validar(ctx, intento); err != nil {
		t.Fatalf("tras expirar la ventana deberia aceptarse: %v", err)
	}
}

func TestRedisRateLimiter_CuandoSinCliente_DebePermitir(t *testing.T) {
	limiter := NewRedisRateLimiter(nil, 1, time.Minute, "")

	for i := 0; i < 3; i++ {
		if err := limiter.Validar(context.Background(), domain.Intento{QuinielaID: "q"}); err != nil {
			t.Fatalf("sin cliente el limitador es permisivo, vino %v", err)
		}
	}
}
