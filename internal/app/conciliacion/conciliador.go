// Paquete conciliacion recalcula el contador de respuestas de cada quiniela a partir del conteo real.
package conciliacion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marcelojr/quinielas/internal/app/quinielas"
	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/logger"
	"github.com/marcelojr/quinielas/internal/platform/metrics"
)

const (
	resultadoCorregida  = "corregida"
	resultadoSinCambios = "sin_cambios"
	resultadoError      = "error"
)

// Conciliador repara el contador cuando un incremento falló o se borró una respuesta.
type Conciliador struct {
	quinielas  domain.QuinielaRepository
	respuestas domain.RespuestaRepository
}

func NewConciliador(quinielasRepo domain.QuinielaRepository, respuestas domain.RespuestaRepository) *Conciliador {
	return &Conciliador{quinielas: quinielasRepo, respuestas: respuestas}
}

func (c *Conciliador) ConciliarQuiniela(ctx context.Context, id domain.QuinielaID) (domain.Conciliacion, error) {
	q, err := c.quinielas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Conciliacion{}, quinielas.ErrQuinielaNoEncontrada
		}
		return domain.Conciliacion{}, fmt.Errorf("%w: %w", quinielas.ErrAlmacenamiento, err)
	}
	return c.conciliar(ctx, q)
}

// conciliar sobrescribe con el conteo vivo; un envío que llegue entre el conteo y la escritura
// queda para la siguiente pasada.
func (c *Conciliador) conciliar(ctx context.Context, q domain.Quiniela) (domain.Conciliacion, error) {
	conteo, err := c.respuestas.CountByQuiniela(ctx, q.ID)
	if err != nil {
		metrics.IncConciliacion(resultadoError)
		return domain.Conciliacion{}, fmt.Errorf("%w: contar respuestas %s: %w", quinielas.ErrAlmacenamiento, q.ID, err)
	}

	res := domain.Conciliacion{QuinielaID: q.ID, Guardado: q.Respuestas, Real: conteo}
	if conteo == q.Respuestas {
		metrics.IncConciliacion(resultadoSinCambios)
		return res, nil
	}

	if err := c.quinielas.DefinirRespuestas(ctx, q.ID, conteo); err != nil {
		metrics.IncConciliacion(resultadoError)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Conciliacion{}, quinielas.ErrQuinielaNoEncontrada
		}
		return domain.Conciliacion{}, fmt.Errorf("%w: definir respuestas %s: %w", quinielas.ErrAlmacenamiento, q.ID, err)
	}
	res.Corregida = true
	metrics.IncConciliacion(resultadoCorregida)
	logger.Info("contador de respuestas corregido",
		"quiniela_id", q.ID,
		"guardado", q.Respuestas,
		"real", conteo,
	)
	return res, nil
}

// ConciliarTodas sigue con las demás quinielas si una falla y devuelve los errores juntos.
func (c *Conciliador) ConciliarTodas(ctx context.Context) ([]domain.Conciliacion, error) {
	start := time.Now()
	defer func() {
		metrics.ObserveConciliacion(time.Since(start).Seconds())
	}()

	lista, err := c.quinielas.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quinielas.ErrAlmacenamiento, err)
	}

	resultados := make([]domain.Conciliacion, 0, len(lista))
	var errs []error
	for _, q := range lista {
		if err := ctx.Err(); err != nil {
			return resultados, err
		}
		res, err := c.conciliar(ctx, q)
		if err != nil {
			logger.Error("error al conciliar quiniela", "quiniela_id", q.ID, "err", err)
			errs = append(errs, err)
			continue
		}
		resultados = append(resultados, res)
	}
	return resultados, errors.Join(errs...)
}

// Periodico concilia al arrancar y luego cada intervalo hasta que se cancele el contexto.
func (c *Conciliador) Periodico(ctx context.Context, intervalo time.Duration) {
	ticker := time.NewTicker(intervalo)
	defer ticker.Stop()

	for {
		resultados, err := c.ConciliarTodas(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Error("pasada de conciliacion con errores", "err", err)
		}
		corregidas := 0
		for _, r := range resultados {
			if r.Corregida {
				corregidas++
			}
		}
		logger.Info("pasada de conciliacion terminada", "quinielas", len(resultados), "corregidas", corregidas)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

var _ domain.Conciliador = (*Conciliador)(nil)
