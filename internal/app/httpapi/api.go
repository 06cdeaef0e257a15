// Paquete httpapi expone los handlers REST y traduce peticiones HTTP a los servicios de la quiniela.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/marcelojr/quinielas/internal/app/acceso"
	"github.com/marcelojr/quinielas/internal/app/estadisticas"
	"github.com/marcelojr/quinielas/internal/app/pagos"
	"github.com/marcelojr/quinielas/internal/app/quinielas"
	"github.com/marcelojr/quinielas/internal/app/reportes"
	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/antifraude"
	"github.com/marcelojr/quinielas/internal/platform/clock"
)

const (
	cookieSesion    = "quiniela_sesion"
	maxCuerpoBytes  = 1 << 20
	tamanoQRDefault = 256
)

var (
	errPayload           = errors.New("payload invalido")
	errParametro         = errors.New("parametro invalido")
	errSesionInvalida    = errors.New("sesion invalida o expirada")
	errResultadosOcultos = errors.New("los resultados de esta quiniela no son publicos")
)

// Dependencias agrupa los servicios que la API traduce a HTTP.
type Dependencias struct {
	Quinielas    domain.QuinielaService
	Pagos        domain.PagoService
	Acceso       domain.AccesoService
	Estadisticas domain.EstadisticasService
	Conciliador  domain.Conciliador
	Antifraude   domain.Antifraude
	Clock        domain.Clock
	// CookieSegura marca la cookie de sesión como Secure; activar detrás de HTTPS.
	CookieSegura bool
}

type API struct {
	deps   Dependencias
	logger *slog.Logger
}

func New(deps Dependencias, logger *slog.Logger) *API {
	if deps.Antifraude == nil {
		deps.Antifraude = antifraude.NewNoop()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewSystemClock()
	}
	return &API{deps: deps, logger: logger}
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", a.handleHealthz)

	mux.HandleFunc("GET /api/quinielas/{id}", a.obtenerQuinielaPublica)
	mux.HandleFunc("POST /api/quinielas/{id}/respuestas", a.enviarRespuesta)
	mux.HandleFunc("GET /api/quinielas/{id}/conteo", a.conteoPublico)
	mux.HandleFunc("GET /api/comprobantes/{folio}", a.comprobante)

	mux.HandleFunc("POST /api/admin/login", a.login)
	mux.HandleFunc("POST /api/admin/logout", a.logout)
	mux.Handle("GET /api/admin/sesion", a.soloAdmin(a.sesion))

	mux.Handle("GET /api/admin/quinielas", a.soloAdmin(a.listarQuinielas))
	mux.Handle("POST /api/admin/quinielas", a.soloAdmin(a.crearQuiniela))
	mux.Handle("POST /api/admin/quinielas/automatica", a.soloAdmin(a.crearAutomatica))
	mux.Handle("GET /api/admin/quinielas/{id}", a.soloAdmin(a.obtenerQuiniela))
	mux.Handle("PATCH /api/admin/quinielas/{id}", a.soloAdmin(a.actualizarQuiniela))
	mux.Handle("DELETE /api/admin/quinielas/{id}", a.soloAdmin(a.eliminarQuiniela))
	mux.Handle("PUT /api/admin/quinielas/{id}/activa", a.soloAdmin(a.alternarActiva))
	mux.Handle("POST /api/admin/quinielas/{id}/partidos", a.soloAdmin(a.agregarPartido))
	mux.Handle("DELETE /api/admin/quinielas/{id}/partidos/{partidoId}", a.soloAdmin(a.quitarPartido))
	mux.Handle("GET /api/admin/quinielas/{id}/respuestas", a.soloAdmin(a.listarRespuestas))
	mux.Handle("GET /api/admin/quinielas/{id}/conteo", a.soloAdmin(a.conteoAdmin))
	mux.Handle("GET /api/admin/quinielas/{id}/reportes/resumen", a.soloAdmin(a.reporteResumen))
	mux.Handle("GET /api/admin/quinielas/{id}/reportes/detallado", a.soloAdmin(a.reporteDetallado))
	mux.Handle("GET /api/admin/quinielas/{id}/qr", a.soloAdmin(a.codigoQR))
	mux.Handle("POST /api/admin/quinielas/{id}/conciliar", a.soloAdmin(a.conciliarQuiniela))
	mux.Handle("POST /api/admin/conciliar", a.soloAdmin(a.conciliarTodas))
	mux.Handle("DELETE /api/admin/respuestas/{id}", a.soloAdmin(a.eliminarRespuesta))
	mux.Handle("GET /api/admin/partidos/proximos", a.soloAdmin(a.proximosPartidos))

	mux.Handle("GET /api/admin/pagos", a.soloAdmin(a.listarPagos))
	mux.Handle("POST /api/admin/pagos", a.soloAdmin(a.registrarPago))
	mux.Handle("GET /api/admin/pagos/resumen", a.soloAdmin(a.resumenPagos))
	mux.Handle("GET /api/admin/pagos/{id}", a.soloAdmin(a.obtenerPago))
	mux.Handle("PATCH /api/admin/pagos/{id}", a.soloAdmin(a.actualizarPago))
	mux.Handle("DELETE /api/admin/pagos/{id}", a.soloAdmin(a.eliminarPago))

	mux.Handle("GET /api/admin/estadisticas", a.soloAdmin(a.estadisticas))
	mux.Handle("GET /api/admin/config/general", a.soloAdmin(a.obtenerConfigGeneral))
	mux.Handle("PUT /api/admin/config/general", a.soloAdmin(a.guardarConfigGeneral))
	mux.Handle("PUT /api/admin/config/pin", a.soloAdmin(a.cambiarPin))
}

func (a *API) ahora() time.Time {
	return a.deps.Clock.Ahora()
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// soloAdmin exige una cookie de sesión vigente antes de llegar al handler.
func (a *API) soloAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieSesion)
		if err != nil || cookie.Value == "" {
			responderErro(w, errSesionInvalida)
			return
		}
		ok, err := a.deps.Acceso.Validar(r.Context(), cookie.Value)
		if err != nil {
			a.logger.Error("error al validar sesion", "err", err)
			responderErro(w, err)
			return
		}
		if !ok {
			responderErro(w, errSesionInvalida)
			return
		}
		next(w, r)
	})
}

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type envelopeError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func responderJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: body})
}

func responderArchivo(w http.ResponseWriter, contentType, nombre string, contenido []byte) {
	w.Header().Set("Content-Type", contentType)
	if nombre != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", nombre))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(contenido)
}

func responderErro(w http.ResponseWriter, err error) {
	status := statusHTTP(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelopeError{Success: false, Error: mensajeError(err, status)})
}

func statusHTTP(err error) int {
	switch {
	case errors.Is(err, errPayload),
		errors.Is(err, errParametro),
		errors.Is(err, quinielas.ErrValidacion),
		errors.Is(err, pagos.ErrValidacion),
		errors.Is(err, acceso.ErrValidacion):
		return http.StatusBadRequest
	case errors.Is(err, acceso.ErrPinIncorrecto),
		errors.Is(err, errSesionInvalida):
		return http.StatusUnauthorized
	case errors.Is(err, errResultadosOcultos):
		return http.StatusForbidden
	case errors.Is(err, quinielas.ErrQuinielaNoEncontrada),
		errors.Is(err, quinielas.ErrRespuestaNoEncontrada),
		errors.Is(err, pagos.ErrPagoNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, quinielas.ErrQuinielaCerrada):
		return http.StatusConflict
	case errors.Is(err, antifraude.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, quinielas.ErrAlmacenamiento),
		errors.Is(err, pagos.ErrAlmacenamiento),
		errors.Is(err, acceso.ErrAlmacenamiento),
		errors.Is(err, acceso.ErrSinConfiguracion),
		errors.Is(err, estadisticas.ErrAlmacenamiento):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// mensajeError nunca expone el detalle del almacén ni de errores internos.
func mensajeError(err error, status int) string {
	switch {
	case errors.Is(err, quinielas.ErrAlmacenamiento):
		return quinielas.ErrAlmacenamiento.Error()
	case errors.Is(err, pagos.ErrAlmacenamiento):
		return pagos.ErrAlmacenamiento.Error()
	case errors.Is(err, acceso.ErrAlmacenamiento):
		return acceso.ErrAlmacenamiento.Error()
	case errors.Is(err, estadisticas.ErrAlmacenamiento):
		return estadisticas.ErrAlmacenamiento.Error()
	case errors.Is(err, reportes.ErrRender):
		return reportes.ErrRender.Error()
	case status == http.StatusInternalServerError:
		return "error interno"
	default:
		return err.Error()
	}
}

func statusEnvio(err error) string {
	switch {
	case errors.Is(err, antifraude.ErrRateLimitExceeded):
		return "rate_limited"
	case errors.Is(err, quinielas.ErrQuinielaCerrada):
		return "closed"
	case errors.Is(err, quinielas.ErrValidacion):
		return "invalid"
	case errors.Is(err, quinielas.ErrQuinielaNoEncontrada):
		return "not_found"
	case errors.Is(err, quinielas.ErrAlmacenamiento):
		return "unavailable"
	default:
		return "error"
	}
}

func decodificar(w http.ResponseWriter, r *http.Request, destino any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxCuerpoBytes)
	if err := json.NewDecoder(r.Body).Decode(destino); err != nil {
		return fmt.Errorf("%w: %v", errPayload, err)
	}
	return nil
}

// origenIP toma el primer salto de X-Forwarded-For y si no hay, la dirección remota.
func origenIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		primero, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(primero)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// urlPublica arma el enlace que el participante abre para llenar la quiniela.
func urlPublica(r *http.Request, id domain.QuinielaID) string {
	esquema := "http"
	if r.TLS != nil {
		esquema = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		esquema = proto
	}
	return fmt.Sprintf("%s://%s/quiniela/%s", esquema, r.Host, id)
}
