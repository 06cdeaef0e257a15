// Paquete estadisticas arma el tablero general del administrador.
package estadisticas

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/marcelojr/quinielas/internal/app/pagos"
	"github.com/marcelojr/quinielas/internal/domain"
)

var ErrAlmacenamiento = errors.New("no se pudieron calcular las estadisticas, intenta de nuevo")

type Service struct {
	quinielas  domain.QuinielaRepository
	respuestas domain.RespuestaRepository
	pagos      domain.PagoRepository
	clock      domain.Clock
}

func NewService(quinielas domain.QuinielaRepository, respuestas domain.RespuestaRepository, pagosRepo domain.PagoRepository, clock domain.Clock) *Service {
	return &Service{quinielas: quinielas, respuestas: respuestas, pagos: pagosRepo, clock: clock}
}

// Calcular usa el conteo real de respuestas; el promedio de monto se toma sobre todos los pagos.
func (s *Service) Calcular(ctx context.Context) (domain.Estadisticas, error) {
	lista, err := s.quinielas.ListAll(ctx)
	if err != nil {
		return domain.Estadisticas{}, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	totalRespuestas, err := s.respuestas.CountAll(ctx)
	if err != nil {
		return domain.Estadisticas{}, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	listaPagos, err := s.pagos.ListAll(ctx)
	if err != nil {
		return domain.Estadisticas{}, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}

	return Resumir(lista, totalRespuestas, listaPagos, s.clock), nil
}

// Resumir es puro: la quiniela más popular es la primera con más respuestas según el orden recibido.
func Resumir(quinielas []domain.Quiniela, totalRespuestas int64, listaPagos []domain.Pago, clock domain.Clock) domain.Estadisticas {
	ahora := clock.Ahora()
	e := domain.Estadisticas{
		TotalQuinielas:  len(quinielas),
		TotalRespuestas: totalRespuestas,
		TotalPagos:      len(listaPagos),
		TotalRecaudado:  decimal.Zero,
		PromedioMonto:   decimal.Zero,
	}

	for _, q := range quinielas {
		if q.Abierta(ahora) {
			e.QuinielasAbiertas++
		}
		e.TotalPartidos += len(q.Partidos)
		if e.MasPopular == nil || q.Respuestas > e.MasPopularRespuestas {
			id := q.ID
			e.MasPopular = &id
			e.MasPopularNombre = q.Nombre
			e.MasPopularRespuestas = q.Respuestas
		}
	}
	if e.TotalQuinielas > 0 {
		e.PromedioRespuestas = math.Round(float64(totalRespuestas)/float64(e.TotalQuinielas)*10) / 10
	}

	resumen := pagos.Resumir(listaPagos)
	e.TotalRecaudado = resumen.TotalRecaudado
	if e.TotalPagos > 0 {
		e.PromedioMonto = e.TotalRecaudado.Div(decimal.NewFromInt(int64(e.TotalPagos))).Round(2)
	}
	return e
}

var _ domain.EstadisticasService = (*Service)(nil)
