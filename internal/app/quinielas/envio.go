package quinielas

import (
	"context"
	"errors"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/logger"
	"github.com/marcelojr/quinielas/internal/platform/metrics"
)

// reintentosFolio es cuántas veces se regenera el folio si el índice único lo rechaza.
const reintentosFolio = 3

// Enviar valida y guarda los pronósticos de un participante e incrementa el contador de la quiniela.
func (s *Service) Enviar(ctx context.Context, id domain.QuinielaID, participante domain.Participante, predicciones []domain.Prediccion) (domain.Comprobante, error) {
	q, err := s.cargar(ctx, id)
	if err != nil {
		return domain.Comprobante{}, err
	}

	ahora := s.clock.Ahora()
	if !q.Abierta(ahora) {
		return domain.Comprobante{}, ErrQuinielaCerrada
	}

	participante, err = normalizarParticipante(participante)
	if err != nil {
		return domain.Comprobante{}, err
	}
	ordenadas, err := validarPredicciones(q, predicciones)
	if err != nil {
		return domain.Comprobante{}, err
	}

	r := domain.Respuesta{
		ID:           s.ids.Respuesta(),
		QuinielaID:   q.ID,
		Participante: participante,
		Predicciones: ordenadas,
		EnviadaEn:    ahora,
	}
	for intento := 0; ; intento++ {
		r.Folio = s.folios.Nuevo()
		err = s.respuestas.Create(ctx, r)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrFolioDuplicado) && intento < reintentosFolio {
			logger.Warn("folio duplicado, regenerando", "quiniela_id", q.ID, "folio", r.Folio)
			continue
		}
		return domain.Comprobante{}, almacenamiento(err)
	}

	// El envío ya quedó guardado; un contador desfasado lo repara el conciliador.
	if err := s.quinielas.IncrementarRespuestas(ctx, q.ID, 1); err != nil {
		metrics.IncContadorFalla()
		logger.Warn("no se pudo incrementar el contador de respuestas",
			"quiniela_id", q.ID,
			"folio", r.Folio,
			"error", err,
		)
	}

	return domain.Comprobante{ID: r.ID, Folio: r.Folio, EnviadaEn: r.EnviadaEn}, nil
}
