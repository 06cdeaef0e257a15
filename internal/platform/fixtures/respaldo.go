package fixtures

import (
	"context"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/logger"
	"github.com/marcelojr/quinielas/internal/platform/metrics"
)

// ConRespaldo intenta la fuente principal y cae en la simulada ante cualquier error o lista vacía.
type ConRespaldo struct {
	principal domain.FuenteFixtures
	respaldo  domain.FuenteFixtures
}

// NewConRespaldo acepta principal nil cuando no hay credenciales de API.
func NewConRespaldo(principal, respaldo domain.FuenteFixtures) *ConRespaldo {
	return &ConRespaldo{principal: principal, respaldo: respaldo}
}

func (c *ConRespaldo) ProximosPartidos(ctx context.Context, cantidad int) (domain.Calendario, error) {
	if c.principal != nil {
		cal, err := c.principal.ProximosPartidos(ctx, cantidad)
		if err == nil && len(cal.Partidos) > 0 {
			metrics.IncFixtures(cal.Fuente)
			return cal, nil
		}
		if err != nil {
			logger.Warn("fuente de partidos fallo, usando simulacion", "error", err)
		}
	}

	cal, err := c.respaldo.ProximosPartidos(ctx, cantidad)
	if err != nil {
		return domain.Calendario{}, err
	}
	metrics.IncFixtures(cal.Fuente)
	return cal, nil
}

var _ domain.FuenteFixtures = (*ConRespaldo)(nil)
