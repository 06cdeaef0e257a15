package reportes

import (
	"strconv"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
)

// ReporteResumen lista los datos de la quiniela y a cada participante con su fecha y folio.
func ReporteResumen(q domain.Quiniela, respuestas []domain.Respuesta) ([]byte, error) {
	inicio := time.Now()
	d := nuevoDocumento("P", "Reporte "+q.Nombre, q.CreadaEn)
	d.encabezado("REPORTE DE QUINIELA")

	d.campo("Quiniela:", q.Nombre)
	if q.Descripcion != "" {
		d.campo("Descripción:", q.Descripcion)
	}
	d.campo("Respuestas:", strconv.Itoa(len(respuestas)))
	d.campo("Partidos:", strconv.Itoa(len(q.Partidos)))
	if q.Activa {
		d.campo("Estado:", "Activa")
	} else {
		d.campo("Estado:", "Inactiva")
	}
	if q.FechaLimite != nil {
		d.campo("Fecha límite:", formatearFecha(*q.FechaLimite))
	} else {
		d.campo("Fecha límite:", "Sin fecha límite")
	}
	d.campo("Creada:", formatearFecha(q.CreadaEn))

	d.pdf.Ln(6)
	anchos := []float64{12, 70, 45, 53}
	d.filaEncabezado(anchos, []string{"#", "Participante", "Fecha Registro", "Folio"})
	if len(respuestas) == 0 {
		d.pdf.CellFormat(180, 7, d.tr("Sin respuestas registradas"), "1", 1, "C", false, 0, "")
	}
	for i, r := range respuestas {
		d.fila(anchos, []string{
			strconv.Itoa(i + 1),
			r.Participante.Nombre,
			formatearFecha(r.EnviadaEn),
			r.Folio,
		}, "L", i%2 == 1)
	}

	return d.terminar("resumen", inicio)
}
