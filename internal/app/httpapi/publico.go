package httpapi

import (
	"net/http"
	"time"

	"github.com/marcelojr/quinielas/internal/app/reportes"
	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/metrics"
)

type quinielaPublica struct {
	domain.Quiniela
	Estado domain.EstadoParticipacion `json:"estado"`
}

type envioRequest struct {
	Participante domain.Participante `json:"participante"`
	Predicciones []domain.Prediccion `json:"predicciones"`
}

// comprobanteJSON es la vista pública de un folio; email y teléfono quedan fuera.
type comprobanteJSON struct {
	Folio        string              `json:"folio"`
	Quiniela     string              `json:"quiniela"`
	Participante string              `json:"participante"`
	EnviadaEn    time.Time           `json:"enviadaEn"`
	Predicciones []domain.Prediccion `json:"predicciones"`
}

func (a *API) obtenerQuinielaPublica(w http.ResponseWriter, r *http.Request) {
	q, err := a.deps.Quinielas.ObtenerQuiniela(r.Context(), domain.QuinielaID(r.PathValue("id")))
	if err != nil {
		a.falla(w, "error al obtener quiniela", err)
		return
	}
	responderJSON(w, http.StatusOK, quinielaPublica{Quiniela: q, Estado: q.Estado(a.ahora())})
}

func (a *API) enviarRespuesta(w http.ResponseWriter, r *http.Request) {
	id := domain.QuinielaID(r.PathValue("id"))

	var req envioRequest
	if err := decodificar(w, r, &req); err != nil {
		metrics.ObserveEnvioRequest("invalid_payload")
		responderErro(w, err)
		return
	}

	intento := domain.Intento{QuinielaID: id, OrigenIP: origenIP(r), UserAgent: r.UserAgent()}
	if err := a.deps.Antifraude.Validar(r.Context(), intento); err != nil {
		metrics.ObserveEnvioRequest(statusEnvio(err))
		a.logger.Warn("envio bloqueado por antifraude", "quiniela", id, "ip", intento.OrigenIP, "err", err)
		responderErro(w, err)
		return
	}

	comprobante, err := a.deps.Quinielas.Enviar(r.Context(), id, req.Participante, req.Predicciones)
	if err != nil {
		metrics.ObserveEnvioRequest(statusEnvio(err))
		a.falla(w, "error al registrar respuesta", err)
		return
	}

	metrics.ObserveEnvioRequest("accepted")
	responderJSON(w, http.StatusCreated, comprobante)
}

func (a *API) conteoPublico(w http.ResponseWriter, r *http.Request) {
	id := domain.QuinielaID(r.PathValue("id"))
	q, err := a.deps.Quinielas.ObtenerQuiniela(r.Context(), id)
	if err != nil {
		a.falla(w, "error al obtener quiniela", err)
		return
	}
	if !q.MostrarResultados {
		responderErro(w, errResultadosOcultos)
		return
	}
	conteo, err := a.deps.Quinielas.Conteo(r.Context(), id)
	if err != nil {
		a.falla(w, "error al calcular conteo", err)
		return
	}
	responderJSON(w, http.StatusOK, conteo)
}

// comprobante entrega el PDF del folio; con ?formato=json devuelve los datos para verificarlo.
func (a *API) comprobante(w http.ResponseWriter, r *http.Request) {
	folio := r.PathValue("folio")
	respuesta, q, err := a.deps.Quinielas.ObtenerRespuestaPorFolio(r.Context(), folio)
	if err != nil {
		a.falla(w, "error al buscar folio", err)
		return
	}

	if r.URL.Query().Get("formato") == "json" {
		responderJSON(w, http.StatusOK, comprobanteJSON{
			Folio:        respuesta.Folio,
			Quiniela:     q.Nombre,
			Participante: respuesta.Participante.Nombre,
			EnviadaEn:    respuesta.EnviadaEn,
			Predicciones: respuesta.Predicciones,
		})
		return
	}

	pdf, err := reportes.Comprobante(respuesta, q)
	if err != nil {
		a.falla(w, "error al generar comprobante", err)
		return
	}
	responderArchivo(w, "application/pdf", "comprobante-"+respuesta.Folio+".pdf", pdf)
}

// falla registra los errores del servidor y responde con el status mapeado.
func (a *API) falla(w http.ResponseWriter, msg string, err error) {
	if statusHTTP(err) >= http.StatusInternalServerError {
		a.logger.Error(msg, "err", err)
	}
	responderErro(w, err)
}
