package quinielas

import (
	"context"
	"errors"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/marcelojr/quinielas/internal/domain"
)

// ListarRespuestas devuelve las respuestas de una quiniela, aunque la quiniela ya no exista.
// Con filtro, conserva las que coinciden de forma aproximada con el nombre o contienen el folio.
func (s *Service) ListarRespuestas(ctx context.Context, id domain.QuinielaID, filtro string) ([]domain.Respuesta, error) {
	lista, err := s.respuestas.ListByQuiniela(ctx, id)
	if err != nil {
		return nil, almacenamiento(err)
	}
	filtro = strings.TrimSpace(filtro)
	if filtro == "" {
		return lista, nil
	}

	filtradas := make([]domain.Respuesta, 0, len(lista))
	for _, r := range lista {
		if fuzzy.MatchNormalizedFold(filtro, r.Participante.Nombre) ||
			strings.Contains(strings.ToUpper(r.Folio), strings.ToUpper(filtro)) {
			filtradas = append(filtradas, r)
		}
	}
	return filtradas, nil
}

// ObtenerRespuestaPorFolio junta la respuesta con su quiniela para armar el comprobante.
func (s *Service) ObtenerRespuestaPorFolio(ctx context.Context, folio string) (domain.Respuesta, domain.Quiniela, error) {
	folio = strings.TrimSpace(folio)
	if folio == "" {
		return domain.Respuesta{}, domain.Quiniela{}, ErrRespuestaNoEncontrada
	}
	r, err := s.respuestas.FindByFolio(ctx, folio)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Respuesta{}, domain.Quiniela{}, ErrRespuestaNoEncontrada
		}
		return domain.Respuesta{}, domain.Quiniela{}, almacenamiento(err)
	}
	q, err := s.cargar(ctx, r.QuinielaID)
	if err != nil {
		return domain.Respuesta{}, domain.Quiniela{}, err
	}
	return r, q, nil
}

// EliminarRespuesta no decrementa el contador de la quiniela.
func (s *Service) EliminarRespuesta(ctx context.Context, id domain.RespuestaID) error {
	if err := s.respuestas.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRespuestaNoEncontrada
		}
		return almacenamiento(err)
	}
	return nil
}
