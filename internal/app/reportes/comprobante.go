package reportes

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/marcelojr/quinielas/internal/domain"
)

// Comprobante genera el PDF que recibe el participante con su folio en texto y en QR.
func Comprobante(r domain.Respuesta, q domain.Quiniela) ([]byte, error) {
	return ComprobanteConQR(r, q, qrPorDefecto)
}

// ComprobanteConQR permite otro generador de QR; si el QR falla el documento sale sin imagen.
func ComprobanteConQR(r domain.Respuesta, q domain.Quiniela, qr GeneradorQR) ([]byte, error) {
	inicio := time.Now()
	d := nuevoDocumento("P", "Comprobante "+r.Folio, r.EnviadaEn)
	d.encabezado("COMPROBANTE DE QUINIELA")

	arriba := d.pdf.GetY()
	d.campo("Quiniela:", q.Nombre)
	d.campo("Folio:", r.Folio)
	d.campo("Fecha de envío:", formatearFecha(r.EnviadaEn))
	// solo el nombre: el folio es público y no debe exponer datos de contacto.
	d.campo("Participante:", r.Participante.Nombre)

	if qr != nil {
		if png, err := qr(r.Folio); err == nil {
			opciones := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
			d.pdf.RegisterImageOptionsReader("qr-folio", opciones, bytes.NewReader(png))
			if !d.pdf.Ok() {
				// Imagen ilegible: se limpia el error para no perder el documento.
				d.pdf.ClearError()
			} else {
				d.pdf.ImageOptions("qr-folio", 155, arriba, 40, 40, false, opciones, 0, "")
				d.pdf.SetXY(145, arriba+41)
				d.pdf.SetFont("Helvetica", "", 7)
				d.pdf.MultiCell(60, 3.5, d.tr("Escanea este código para verificar tu folio"), "", "C", false)
				d.pdf.SetY(arriba + 50)
			}
		}
	}

	d.pdf.Ln(4)
	anchos := []float64{10, 110, 60}
	d.filaEncabezado(anchos, []string{"#", "Partido", "Pronóstico"})
	for i, p := range q.Partidos {
		etiqueta := "-"
		if pred, ok := r.Prediccion(p.ID); ok {
			etiqueta = EtiquetaResultado(pred.Resultado)
		}
		d.fila(anchos, []string{strconv.Itoa(i + 1), p.Etiqueta(), etiqueta}, "L", i%2 == 1)
	}

	d.pdf.Ln(8)
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.CellFormat(0, 6, d.tr("Conserva este comprobante para verificar tus predicciones"), "", 1, "C", false, 0, "")

	return d.terminar("comprobante", inicio)
}
