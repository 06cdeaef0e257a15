// Ejecutable principal de la API: carga la configuración, conecta el almacén elegido y sirve HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcelojr/quinielas/internal/app/acceso"
	"github.com/marcelojr/quinielas/internal/app/conciliacion"
	"github.com/marcelojr/quinielas/internal/app/estadisticas"
	"github.com/marcelojr/quinielas/internal/app/httpapi"
	"github.com/marcelojr/quinielas/internal/app/pagos"
	"github.com/marcelojr/quinielas/internal/app/quinielas"
	"github.com/marcelojr/quinielas/internal/app/reportes"
	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/antifraude"
	"github.com/marcelojr/quinielas/internal/platform/clock"
	"github.com/marcelojr/quinielas/internal/platform/config"
	"github.com/marcelojr/quinielas/internal/platform/fixtures"
	"github.com/marcelojr/quinielas/internal/platform/health"
	"github.com/marcelojr/quinielas/internal/platform/ids"
	"github.com/marcelojr/quinielas/internal/platform/logger"
	"github.com/marcelojr/quinielas/internal/platform/storage"
	redisstorage "github.com/marcelojr/quinielas/internal/platform/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuracion invalida", "err", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	repos, err := storage.Abrir(ctx, cfg)
	if err != nil {
		logger.Fatal("fallo al abrir el almacen", "backend", cfg.StoreBackend, "err", err)
	}
	defer repos.Close(context.Background())

	// Redis guarda las sesiones de administrador y el límite de envíos.
	redisClient, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("fallo al conectar a redis", "err", err)
	}
	defer redisClient.Close()

	clockSystem := clock.NewSystemClock()
	idGen := ids.NewGenerator(clockSystem, nil)
	sesiones := redisstorage.NewSesiones(redisClient, cfg.SesionPrefix, cfg.SesionTTL)

	var antifraudeSvc domain.Antifraude = antifraude.NewNoop()
	if cfg.RateLimitEnabled {
		window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
		antifraudeSvc = antifraude.NewRedisRateLimiter(redisClient, cfg.RateLimitMaxActions, window, cfg.RateLimitKeyPrefix)
	}

	var principal domain.FuenteFixtures
	if cfg.APIFootballKey != "" {
		principal = fixtures.NewAPIFootball(fixtures.APIConfig{
			BaseURL:    cfg.APIFootballURL,
			APIKey:     cfg.APIFootballKey,
			Liga:       cfg.APIFootballLiga,
			Timeout:    cfg.APIFootballTimeout,
			PorSegundo: cfg.APIFootballPorSegundo,
			Zona:       cfg.ZonaHoraria,
		}, clockSystem)
	} else {
		logger.Info("sin API_FOOTBALL_KEY, los partidos se simulan")
	}
	fuente := fixtures.NewConRespaldo(principal, fixtures.NewSimulada(clockSystem, cfg.ZonaHoraria, nil))

	quinielasSvc := quinielas.NewService(repos.Quinielas, repos.Respuestas, fuente, clockSystem, idGen, nil)
	quinielasSvc.UsarZonaHoraria(cfg.ZonaHoraria)
	reportes.UsarZonaHoraria(cfg.ZonaHoraria)
	pagosSvc := pagos.NewService(repos.Pagos, clockSystem, idGen)
	estadisticasSvc := estadisticas.NewService(repos.Quinielas, repos.Respuestas, repos.Pagos, clockSystem)
	accesoSvc := acceso.NewService(repos.Config, sesiones)
	conciliador := conciliacion.NewConciliador(repos.Quinielas, repos.Respuestas)

	sembrado, err := accesoSvc.AsegurarPin(ctx, cfg.PinInicial)
	switch {
	case errors.Is(err, acceso.ErrSinConfiguracion):
		logger.Warn("no hay PIN de administrador; definir PIN_INICIAL para habilitar el panel")
	case err != nil:
		logger.Fatal("fallo al preparar el PIN de administrador", "err", err)
	case sembrado:
		logger.Info("PIN de administrador inicial guardado")
	}

	api := httpapi.New(httpapi.Dependencias{
		Quinielas:    quinielasSvc,
		Pagos:        pagosSvc,
		Acceso:       accesoSvc,
		Estadisticas: estadisticasSvc,
		Conciliador:  conciliador,
		Antifraude:   antifraudeSvc,
		Clock:        clockSystem,
		CookieSegura: cfg.SesionCookieSegura,
	}, logger.L())

	mux := http.NewServeMux()
	api.Register(mux)
	checker := health.NewChecker(repos.Salud, health.Redis(redisClient))
	mux.HandleFunc("GET /readyz", checker.ReadyHandler())
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("error al detener el servidor", "err", err)
		}
	}()

	logger.Info("api escuchando", "addr", cfg.HTTPAddress, "backend", cfg.StoreBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("error en el servidor", "err", err)
	}
	logger.Info("api detenida")
}
