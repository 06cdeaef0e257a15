package quinielas

import (
	"context"

	"github.com/marcelojr/quinielas/internal/domain"
)

// ConteoPorPartido cuenta los pronósticos de cada partido en el orden de la quiniela.
// Los porcentajes son 100*conteo/total de respuestas, 0 cuando no hay respuestas.
func ConteoPorPartido(q domain.Quiniela, respuestas []domain.Respuesta) []domain.ConteoPartido {
	total := len(respuestas)
	resultado := make([]domain.ConteoPartido, len(q.Partidos))
	for i, p := range q.Partidos {
		c := domain.ConteoPartido{
			PartidoID: p.ID,
			Local:     p.Local,
			Visitante: p.Visitante,
		}
		for _, r := range respuestas {
			pred, ok := r.Prediccion(p.ID)
			if !ok {
				continue
			}
			switch pred.Resultado {
			case domain.ResultadoLocal:
				c.ConteoLocal++
			case domain.ResultadoEmpate:
				c.ConteoEmpate++
			case domain.ResultadoVisitante:
				c.ConteoVisitante++
			}
		}
		if total > 0 {
			c.PctLocal = porcentaje(c.ConteoLocal, total)
			c.PctEmpate = porcentaje(c.ConteoEmpate, total)
			c.PctVisitante = porcentaje(c.ConteoVisitante, total)
		}
		resultado[i] = c
	}
	return resultado
}

func porcentaje(conteo int64, total int) float64 {
	return (float64(conteo) / float64(total)) * 100
}

// Conteo recalcula los conteos leyendo todas las respuestas; no hay contadores por resultado.
func (s *Service) Conteo(ctx context.Context, id domain.QuinielaID) ([]domain.ConteoPartido, error) {
	q, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	respuestas, err := s.respuestas.ListByQuiniela(ctx, id)
	if err != nil {
		return nil, almacenamiento(err)
	}
	return ConteoPorPartido(q, respuestas), nil
}
