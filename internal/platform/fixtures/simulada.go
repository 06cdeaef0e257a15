package fixtures

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
)

var equiposLigaMX = []string{
	"América", "Chivas", "Cruz Azul", "Pumas UNAM",
	"Tigres UANL", "Monterrey", "Santos Laguna", "León",
	"Toluca", "Atlas", "Pachuca", "Necaxa",
	"Puebla", "Querétaro", "San Luis", "Tijuana",
	"Mazatlán", "Juárez",
}

var horasPartido = []string{"19:00", "19:05", "19:06", "21:00", "21:05", "21:06"}

const maxIntentosSimulacion = 100

// Simulada arma una jornada plausible cuando no hay API: sábado y domingo siguientes,
// sin repetir equipo hasta agotar la lista.
type Simulada struct {
	mu    sync.Mutex
	clock domain.Clock
	rnd   *rand.Rand
	zona  *time.Location
}

// NewSimulada acepta una fuente fija para tests; nil usa una sembrada con la hora.
func NewSimulada(clock domain.Clock, zona *time.Location, src rand.Source) *Simulada {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	if zona == nil {
		zona = time.UTC
	}
	return &Simulada{clock: clock, rnd: rand.New(src), zona: zona}
}

func (s *Simulada) ProximosPartidos(_ context.Context, cantidad int) (domain.Calendario, error) {
	ahora := s.clock.Ahora().In(s.zona)
	jornada := JornadaActual(ahora)
	return domain.Calendario{
		Fuente:   domain.FuenteMock,
		Torneo:   TorneoActual(ahora),
		Jornada:  etiquetaJornada(jornada),
		Partidos: s.generar(ahora, cantidad),
	}, nil
}

func (s *Simulada) generar(ahora time.Time, cantidad int) []domain.Partido {
	s.mu.Lock()
	defer s.mu.Unlock()

	sabado := proximoSabado(ahora)
	usados := make(map[string]bool, len(equiposLigaMX))
	partidos := make([]domain.Partido, 0, max(0, min(cantidad, maxIntentosSimulacion)))

	for intentos := 0; len(partidos) < cantidad && intentos < maxIntentosSimulacion; intentos++ {
		disponibles := make([]string, 0, len(equiposLigaMX))
		for _, e := range equiposLigaMX {
			if !usados[e] {
				disponibles = append(disponibles, e)
			}
		}
		if len(disponibles) < 2 {
			clear(usados)
			continue
		}

		i := s.rnd.Intn(len(disponibles))
		local := disponibles[i]
		disponibles = append(disponibles[:i], disponibles[i+1:]...)
		visitante := disponibles[s.rnd.Intn(len(disponibles))]
		usados[local] = true
		usados[visitante] = true

		fecha := sabado
		if len(partidos)%2 == 1 {
			fecha = fecha.AddDate(0, 0, 1)
		}

		partidos = append(partidos, domain.Partido{
			ID:        domain.PartidoID(fmt.Sprintf("mock-%d-%d", ahora.UnixMilli(), len(partidos))),
			Local:     local,
			Visitante: visitante,
			Fecha:     fecha.Format("2006-01-02"),
			Hora:      horasPartido[s.rnd.Intn(len(horasPartido))],
			Estadio:   "Estadio " + local,
		})
	}
	return partidos
}

// proximoSabado nunca devuelve el mismo día: un sábado salta al siguiente.
func proximoSabado(t time.Time) time.Time {
	dias := (int(time.Saturday) - int(t.Weekday()) + 7) % 7
	if dias == 0 {
		dias = 7
	}
	return t.AddDate(0, 0, dias)
}

var _ domain.FuenteFixtures = (*Simulada)(nil)
