package reportes

import (
	"strconv"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
)

const anchoUtilHorizontal = 267.0

// ReporteDetallado arma la matriz participantes x partidos con L, E, V o "-" si falta el pronóstico.
func ReporteDetallado(q domain.Quiniela, respuestas []domain.Respuesta) ([]byte, error) {
	inicio := time.Now()
	d := nuevoDocumento("L", "Reporte detallado "+q.Nombre, q.CreadaEn)
	d.encabezado("REPORTE DETALLADO DE PRONÓSTICOS")
	d.campo("Quiniela:", q.Nombre)
	d.campo("Participantes:", strconv.Itoa(len(respuestas)))
	d.pdf.Ln(4)

	anchoNumero, anchoNombre := 10.0, 50.0
	anchoPartido := 0.0
	if n := len(q.Partidos); n > 0 {
		anchoPartido = (anchoUtilHorizontal - anchoNumero - anchoNombre) / float64(n)
	}

	anchos := []float64{anchoNumero, anchoNombre}
	cabecera := []string{"#", "Participante"}
	for _, p := range q.Partidos {
		anchos = append(anchos, anchoPartido)
		cabecera = append(cabecera, abreviar(p.Local, 3)+"-"+abreviar(p.Visitante, 3))
	}
	d.filaEncabezado(anchos, cabecera)

	for i, r := range respuestas {
		celdas := []string{strconv.Itoa(i + 1), r.Participante.Nombre}
		for _, p := range q.Partidos {
			letra := "-"
			if pred, ok := r.Prediccion(p.ID); ok {
				letra = letraResultado(pred.Resultado)
			}
			celdas = append(celdas, letra)
		}
		d.fila(anchos, celdas, "C", i%2 == 1)
	}

	d.pdf.Ln(6)
	d.pdf.SetFont("Helvetica", "I", 8)
	d.pdf.CellFormat(0, 5, d.tr("Leyenda: L = Local, E = Empate, V = Visitante"), "", 1, "L", false, 0, "")
	for _, p := range q.Partidos {
		d.pdf.CellFormat(0, 4, d.tr(abreviar(p.Local, 3)+"-"+abreviar(p.Visitante, 3)+": "+p.Etiqueta()+" ("+p.Fecha+" "+p.Hora+")"), "", 1, "L", false, 0, "")
	}

	return d.terminar("detallado", inicio)
}
