// Paquete reportes genera los documentos de la quiniela: comprobante individual, reportes PDF y códigos QR.
// Son funciones puras: mismas entradas, mismos bytes.
package reportes

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/metrics"
)

var ErrRender = errors.New("no se pudo generar el documento")

const (
	formatoFecha     = "02/01/2006 15:04"
	tamanoQRDefault  = 256
	subtituloSistema = "Sistema de Quinielas - Liga MX"
)

// comprimir se apaga en tests para leer el texto del PDF.
var comprimir = true

var (
	zonaMu sync.RWMutex
	zona   = time.UTC
)

// UsarZonaHoraria fija la zona en que los documentos muestran fechas y horas.
func UsarZonaHoraria(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	zonaMu.Lock()
	zona = loc
	zonaMu.Unlock()
}

func zonaActual() *time.Location {
	zonaMu.RLock()
	defer zonaMu.RUnlock()
	return zona
}

// GeneradorQR convierte un texto en un PNG.
type GeneradorQR func(texto string) ([]byte, error)

// CodigoQR codifica texto en un PNG cuadrado de tamano pixeles.
func CodigoQR(texto string, tamano int) ([]byte, error) {
	if tamano <= 0 {
		tamano = tamanoQRDefault
	}
	png, err := qrcode.Encode(texto, qrcode.Medium, tamano)
	if err != nil {
		return nil, fmt.Errorf("%w: qr: %w", ErrRender, err)
	}
	return png, nil
}

func qrPorDefecto(texto string) ([]byte, error) {
	return CodigoQR(texto, tamanoQRDefault)
}

func EtiquetaResultado(r domain.Resultado) string {
	switch r {
	case domain.ResultadoLocal:
		return "Gana Local"
	case domain.ResultadoEmpate:
		return "Empate"
	case domain.ResultadoVisitante:
		return "Gana Visitante"
	default:
		return "-"
	}
}

func letraResultado(r domain.Resultado) string {
	switch r {
	case domain.ResultadoLocal:
		return "L"
	case domain.ResultadoEmpate:
		return "E"
	case domain.ResultadoVisitante:
		return "V"
	default:
		return "-"
	}
}

type documento struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func nuevoDocumento(orientacion, titulo string, creado time.Time) documento {
	pdf := fpdf.New(orientacion, "mm", "A4", "")
	pdf.SetCompression(comprimir)
	pdf.SetCreationDate(creado)
	pdf.SetModificationDate(creado)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(titulo, true)
	pdf.SetAuthor(subtituloSistema, true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return documento{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d documento) encabezado(titulo string) {
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.CellFormat(0, 9, d.tr(titulo), "", 1, "C", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(90, 90, 90)
	d.pdf.CellFormat(0, 6, d.tr(subtituloSistema), "", 1, "C", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(4)
}

func (d documento) campo(etiqueta, valor string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(40, 6, d.tr(etiqueta), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, 6, d.tr(valor), "", 1, "L", false, 0, "")
}

func (d documento) filaEncabezado(anchos []float64, textos []string) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(33, 37, 41)
	d.pdf.SetTextColor(255, 255, 255)
	for i, texto := range textos {
		d.pdf.CellFormat(anchos[i], 7, d.tr(texto), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont("Helvetica", "", 9)
}

func (d documento) fila(anchos []float64, textos []string, alineacion string, sombreada bool) {
	d.pdf.SetFillColor(242, 242, 242)
	for i, texto := range textos {
		d.pdf.CellFormat(anchos[i], 6, d.tr(texto), "1", 0, alineacion, sombreada, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d documento) terminar(tipo string, inicio time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, tipo, err)
	}
	metrics.ObserveRender(tipo, time.Since(inicio).Seconds())
	return buf.Bytes(), nil
}

func abreviar(equipo string, n int) string {
	equipo = strings.TrimSpace(equipo)
	if utf8.RuneCountInString(equipo) <= n {
		return strings.ToUpper(equipo)
	}
	return strings.ToUpper(string([]rune(equipo)[:n]))
}

func formatearFecha(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(zonaActual()).Format(formatoFecha)
}
