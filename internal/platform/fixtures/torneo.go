// Paquete fixtures obtiene los próximos partidos de Liga MX desde API-Football o los simula.
package fixtures

import (
	"fmt"
	"time"
)

const jornadasPorTorneo = 17

// TorneoActual devuelve "Apertura <año>" de julio a diciembre y "Clausura <año>" el resto.
func TorneoActual(t time.Time) string {
	if t.Month() >= time.July {
		return fmt.Sprintf("Apertura %d", t.Year())
	}
	return fmt.Sprintf("Clausura %d", t.Year())
}

// JornadaActual estima la jornada a partir del mes y la semana del mes, acotada a 1..17.
func JornadaActual(t time.Time) int {
	mes := int(t.Month())
	semana := t.Day() / 7
	var jornada int
	if mes >= 7 {
		jornada = (mes-7)*4 + semana + 1
	} else {
		jornada = mes*3 + semana
	}
	return min(jornadasPorTorneo, max(1, jornada))
}

func etiquetaJornada(n int) string {
	return fmt.Sprintf("Jornada %d", n)
}
