package quinielas

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/marcelojr/quinielas/internal/domain"
)

const maxNombreParticipante = 30

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func normalizarParticipante(p domain.Participante) (domain.Participante, error) {
	p.Nombre = strings.TrimSpace(p.Nombre)
	p.Email = strings.TrimSpace(p.Email)
	p.Telefono = strings.TrimSpace(p.Telefono)

	if p.Nombre == "" {
		return domain.Participante{}, fmt.Errorf("%w: el nombre es obligatorio", ErrValidacion)
	}
	if utf8.RuneCountInString(p.Nombre) > maxNombreParticipante {
		return domain.Participante{}, fmt.Errorf("%w: el nombre admite maximo %d caracteres", ErrValidacion, maxNombreParticipante)
	}
	if p.Email != "" && !emailRegexp.MatchString(p.Email) {
		return domain.Participante{}, fmt.Errorf("%w: email invalido", ErrValidacion)
	}
	return p, nil
}

// validarPredicciones exige un pronóstico por partido y devuelve la lista en el orden de la quiniela.
func validarPredicciones(q domain.Quiniela, predicciones []domain.Prediccion) ([]domain.Prediccion, error) {
	porPartido := make(map[domain.PartidoID]domain.Prediccion, len(predicciones))
	for _, pred := range predicciones {
		partido, ok := q.Partido(pred.PartidoID)
		if !ok {
			return nil, fmt.Errorf("%w: partido %q no pertenece a la quiniela", ErrValidacion, pred.PartidoID)
		}
		if _, dup := porPartido[pred.PartidoID]; dup {
			return nil, fmt.Errorf("%w: pronostico repetido para %s", ErrValidacion, partido.Etiqueta())
		}
		if !pred.Resultado.Valido() {
			return nil, fmt.Errorf("%w: pronostico %q invalido para %s", ErrValidacion, pred.Resultado, partido.Etiqueta())
		}
		if pred.EquipoLocal == "" {
			pred.EquipoLocal = partido.Local
		}
		if pred.EquipoVisitante == "" {
			pred.EquipoVisitante = partido.Visitante
		}
		porPartido[pred.PartidoID] = pred
	}

	if faltan := len(q.Partidos) - len(porPartido); faltan > 0 {
		return nil, fmt.Errorf("%w: faltan %d pronosticos", ErrValidacion, faltan)
	}

	ordenadas := make([]domain.Prediccion, len(q.Partidos))
	for i, p := range q.Partidos {
		ordenadas[i] = porPartido[p.ID]
	}
	return ordenadas, nil
}
