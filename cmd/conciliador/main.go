// Proceso que corrige periódicamente el contador de respuestas de cada quiniela contra el conteo real.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcelojr/quinielas/internal/app/conciliacion"
	"github.com/marcelojr/quinielas/internal/platform/config"
	"github.com/marcelojr/quinielas/internal/platform/health"
	"github.com/marcelojr/quinielas/internal/platform/logger"
	"github.com/marcelojr/quinielas/internal/platform/storage"
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

	if cfg.ConciliadorMetricsAddress != "" {
		checker := health.NewChecker(repos.Salud)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/readyz", checker.ReadyHandler())
			logger.Info("metrics del conciliador escuchando", "addr", cfg.ConciliadorMetricsAddress)
			if err := http.ListenAndServe(cfg.ConciliadorMetricsAddress, mux); err != nil {
				logger.Error("error en el servidor de metrics del conciliador", "err", err)
			}
		}()
	}

	conciliador := conciliacion.NewConciliador(repos.Quinielas, repos.Respuestas)

	logger.Info("conciliador iniciado", "intervalo", cfg.ConciliadorIntervalo)
	conciliador.Periodico(ctx, cfg.ConciliadorIntervalo)
	logger.Info("conciliador finalizado")
}
