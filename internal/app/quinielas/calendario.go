package quinielas

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
)

// MaxPartidos acota cuántos partidos se piden a la fuente de fixtures.
const MaxPartidos = 20

var meses = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func (s *Service) ProximosPartidos(ctx context.Context, cantidad int) (domain.Calendario, error) {
	if cantidad <= 0 || cantidad > MaxPartidos {
		return domain.Calendario{}, fmt.Errorf("%w: cantidad de partidos debe estar entre 1 y %d", ErrValidacion, MaxPartidos)
	}
	return s.fixtures.ProximosPartidos(ctx, cantidad)
}

// CrearDesdeCalendario arma una quiniela con los próximos partidos y devuelve también la fuente usada.
// La fecha límite queda una hora antes del primer partido.
func (s *Service) CrearDesdeCalendario(ctx context.Context, cantidad int) (domain.Quiniela, string, error) {
	cal, err := s.ProximosPartidos(ctx, cantidad)
	if err != nil {
		return domain.Quiniela{}, "", err
	}
	if len(cal.Partidos) == 0 {
		return domain.Quiniela{}, cal.Fuente, fmt.Errorf("%w: no hay partidos proximos", ErrValidacion)
	}

	var primero *time.Time
	for _, p := range cal.Partidos {
		inicio, err := time.ParseInLocation("2006-01-02 15:04", p.Fecha+" "+p.Hora, s.zona)
		if err != nil {
			return domain.Quiniela{}, cal.Fuente, fmt.Errorf("%w: fecha de partido invalida %q", ErrValidacion, p.Fecha+" "+p.Hora)
		}
		if primero == nil || inicio.Before(*primero) {
			primero = &inicio
		}
	}
	limite := primero.Add(-time.Hour)

	activa := true
	q, err := s.CrearQuiniela(ctx, domain.NuevaQuiniela{
		Nombre:            fmt.Sprintf("Quiniela %s - Liga MX", cal.Jornada),
		Descripcion:       fmt.Sprintf("%s - Partidos del %s", cal.Torneo, fechaLarga(*primero)),
		Partidos:          cal.Partidos,
		Activa:            &activa,
		FechaLimite:       &limite,
		PermitirEdicion:   false,
		MostrarResultados: false,
	})
	if err != nil {
		return domain.Quiniela{}, cal.Fuente, err
	}
	return q, cal.Fuente, nil
}

func fechaLarga(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), meses[t.Month()-1])
}
