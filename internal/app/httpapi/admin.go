package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/marcelojr/quinielas/internal/app/reportes"
	"github.com/marcelojr/quinielas/internal/domain"
)

const (
	cantidadPartidosDefault = 9
	tamanoQRMin             = 64
	tamanoQRMax             = 1024
)

type loginRequest struct {
	Pin string `json:"pin"`
}

type cambioPinRequest struct {
	Actual       string `json:"actual"`
	Nuevo        string `json:"nuevo"`
	Confirmacion string `json:"confirmacion"`
}

type activaRequest struct {
	Activa *bool `json:"activa"`
}

type automaticaRequest struct {
	Cantidad int `json:"cantidad"`
}

type automaticaResponse struct {
	Quiniela domain.Quiniela `json:"quiniela"`
	Fuente   string          `json:"fuente"`
}

// === SESION ===

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodificar(w, r, &req); err != nil {
		responderErro(w, err)
		return
	}
	token, err := a.deps.Acceso.Login(r.Context(), req.Pin)
	if err != nil {
		a.falla(w, "error en login", err)
		return
	}
	// sin Max-Age: la sesión del navegador termina al cerrarlo.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSesion,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.deps.CookieSegura,
		SameSite: http.SameSiteLaxMode,
	})
	a.logger.Info("sesion de administrador iniciada", "ip", origenIP(r))
	responderJSON(w, http.StatusOK, map[string]bool{"autenticado": true})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieSesion); err == nil && cookie.Value != "" {
		if err := a.deps.Acceso.Logout(r.Context(), cookie.Value); err != nil {
			a.falla(w, "error en logout", err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSesion,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.deps.CookieSegura,
		SameSite: http.SameSiteLaxMode,
	})
	responderJSON(w, http.StatusOK, map[string]bool{"autenticado": false})
}

func (a *API) sesion(w http.ResponseWriter, r *http.Request) {
	responderJSON(w, http.StatusOK, map[string]bool{"autenticado": true})
}

func (a *API) cambiarPin(w http.ResponseWriter, r *http.Request) {
	var req cambioPinRequest
	if err := decodificar(w, r, &req); err != nil {
		responderErro(w, err)
		return
	}
	if err := a.deps.Acceso.CambiarPin(r.Context(), req.Actual, req.Nuevo, req.Confirmacion); err != nil {
		a.falla(w, "error al cambiar pin", err)
		return
	}
	a.logger.Info("pin de administrador actualizado")
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) obtenerConfigGeneral(w http.ResponseWriter, r *http.Request) {
	cfg, err := a.deps.Acceso.ObtenerGeneral(r.Context())
	if err != nil {
		a.falla(w, "error al leer configuracion", err)
		return
	}
	responderJSON(w, http.StatusOK, cfg)
}

func (a *API) guardarConfigGeneral(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ConfigGeneral
	if err := decodificar(w, r, &cfg); err != nil {
		responderErro(w, err)
		return
	}
	if err := a.deps.Acceso.GuardarGeneral(r.Context(), cfg); err != nil {
		a.falla(w, "error al guardar configuracion", err)
		return
	}
	responderJSON(w, http.StatusOK, cfg)
}

// === QUINIELAS ===

func (a *API) listarQuinielas(w http.ResponseWriter, r *http.Request) {
	lista, err := a.deps.Quinielas.ListarQuinielas(r.Context())
	if err != nil {
		a.falla(w, "error al listar quinielas", err)
		return
	}
	ahora := a.ahora()
	out := make([]quinielaPublica, 0, len(lista))
	for _, q := range lista {
		out = append(out, quinielaPublica{Quiniela: q, Estado: q.Estado(ahora)})
	}
	responderJSON(w, http.StatusOK, out)
}

func (a *API) crearQuiniela(w http.ResponseWriter, r *http.Request) {
	var req domain.NuevaQuiniela
	if err := decodificar(w, r, &req); err != nil {
		responderErro(w, err)
		return
	}
	q, err := a.deps.Quinielas.CrearQuiniela(r.Context(), req)
	if err != nil {
		a.falla(w, "error al crear quiniela", err)
		return
	}
	responderJSON(w, http.StatusCreated, q)
}

func (a *API) crearAutomatica(w http.ResponseWriter, r *http.Request) {
	req := automaticaRequest{Cantidad: cantidadPartidosDefault}
	if r.ContentLength > 0 {
		if err := decodificar(w, r, &req); err != nil {
			responderErro(w, err)
			return
		}
	}
	q, fuente, err := a.deps.Quinielas.CrearDesdeCalendario(r.Context(), req.Cantidad)
	if err != nil {
		a.falla(w, "error al crear quiniela automatica", err)
		return
	}
	responderJSON(w, http.StatusCreated, automaticaResponse{Quiniela: q, Fuente: fuente})
}

func (a *API) obtenerQuiniela(w http.ResponseWriter, r *http.Request) {
	q, err := a.deps.Quinielas.ObtenerQuiniela(r.Context(), domain.QuinielaID(r.PathValue("id")))
	if err != nil {
		a.falla(w, "error al obtener quiniela", err)
		return
	}
	responderJSON(w, http.StatusOK, quinielaPublica{Quiniela: q, Estado: q.Estado(a.ahora())})
}

func (a *API) actualizarQuiniela(w http.ResponseWriter, r *http.Request) {
	var cambios domain.CambiosQuiniela
	if err := decodificar(w, r, &cambios); err != nil {
		responderErro(w, err)
		return
	}
	q, err := a.deps.Quinielas.ActualizarQuiniela(r.Context(), domain.QuinielaID(r.PathValue("id")), cambios)
	if err != nil {
		a.falla(w, "error al actualizar quiniela", err)
		return
	}
	responderJSON(w, http.StatusOK, q)
}

func (a *API) eliminarQuiniela(w http.ResponseWriter, r *http.Request) {
	if err := a.deps.Quinielas.EliminarQuiniela(r.Context(), domain.QuinielaID(r.PathValue("id"))); err != nil {
		a.falla(w, "error al eliminar quiniela", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) alternarActiva(w http.ResponseWriter, r *http.Request) {
	var req activaRequest
	if err := decodificar(w, r, &req); err != nil {
		responderErro(w, err)
		return
	}
	if req.Activa == nil {
		responderErro(w, fmt.Errorf("%w: activa es obligatorio", errPayload))
		return
	}
	if err := a.deps.Quinielas.AlternarActiva(r.Context(), domain.QuinielaID(r.PathValue("id")), *req.Activa); err != nil {
		a.falla(w, "error al cambiar estado", err)
		return
	}
	responderJSON(w, http.StatusOK, map[string]bool{"activa": *req.Activa})
}

func (a *API) agregarPartido(w http.ResponseWriter, r *http.Request) {
	var p domain.Partido
	if err := decodificar(w, r, &p); err != nil {
		responderErro(w, err)
		return
	}
	q, err := a.deps.Quinielas.AgregarPartido(r.Context(), domain.QuinielaID(r.PathValue("id")), p)
	if err != nil {
		a.falla(w, "error al agregar partido", err)
		return
	}
	responderJSON(w, http.StatusOK, q)
}

func (a *API) quitarPartido(w http.ResponseWriter, r *http.Request) {
	id := domain.QuinielaID(r.PathValue("id"))
	q, err := a.deps.Quinielas.QuitarPartido(r.Context(), id, domain.PartidoID(r.PathValue("partidoId")))
	if err != nil {
		a.falla(w, "error al quitar partido", err)
		return
	}
	responderJSON(w, http.StatusOK, q)
}

func (a *API) proximosPartidos(w http.ResponseWriter, r *http.Request) {
	cantidad, err := enteroQuery(r, "cantidad", cantidadPartidosDefault)
	if err != nil {
		responderErro(w, err)
		return
	}
	cal, err := a.deps.Quinielas.ProximosPartidos(r.Context(), cantidad)
	if err != nil {
		a.falla(w, "error al consultar calendario", err)
		return
	}
	responderJSON(w, http.StatusOK, cal)
}

// === RESPUESTAS Y CONTEO ===

func (a *API) listarRespuestas(w http.ResponseWriter, r *http.Request) {
	id := domain.QuinielaID(r.PathValue("id"))
	lista, err := a.deps.Quinielas.ListarRespuestas(r.Context(), id, r.URL.Query().Get("q"))
	if err != nil {
		a.falla(w, "error al listar respuestas", err)
		return
	}
	responderJSON(w, http.StatusOK, lista)
}

func (a *API) eliminarRespuesta(w http.ResponseWriter, r *http.Request) {
	if err := a.deps.Quinielas.EliminarRespuesta(r.Context(), domain.RespuestaID(r.PathValue("id"))); err != nil {
		a.falla(w, "error al eliminar respuesta", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) conteoAdmin(w http.ResponseWriter, r *http.Request) {
	conteo, err := a.deps.Quinielas.Conteo(r.Context(), domain.QuinielaID(r.PathValue("id")))
	if err != nil {
		a.falla(w, "error al calcular conteo", err)
		return
	}
	responderJSON(w, http.StatusOK, conteo)
}

func (a *API) reporteResumen(w http.ResponseWriter, r *http.Request) {
	a.reporte(w, r, "resumen", reportes.ReporteResumen)
}

func (a *API) reporteDetallado(w http.ResponseWriter, r *http.Request) {
	a.reporte(w, r, "detallado", reportes.ReporteDetallado)
}

func (a *API) reporte(w http.ResponseWriter, r *http.Request, tipo string, generar func(domain.Quiniela, []domain.Respuesta) ([]byte, error)) {
	id := domain.QuinielaID(r.PathValue("id"))
	q, err := a.deps.Quinielas.ObtenerQuiniela(r.Context(), id)
	if err != nil {
		a.falla(w, "error al obtener quiniela", err)
		return
	}
	respuestas, err := a.deps.Quinielas.ListarRespuestas(r.Context(), id, "")
	if err != nil {
		a.falla(w, "error al listar respuestas", err)
		return
	}
	pdf, err := generar(q, respuestas)
	if err != nil {
		a.falla(w, "error al generar reporte", err)
		return
	}
	responderArchivo(w, "application/pdf", fmt.Sprintf("reporte-%s-%s.pdf", tipo, id), pdf)
}

// codigoQR devuelve el PNG con el enlace público de la quiniela.
func (a *API) codigoQR(w http.ResponseWriter, r *http.Request) {
	id := domain.QuinielaID(r.PathValue("id"))
	tamano, err := enteroQuery(r, "tamano", tamanoQRDefault)
	if err != nil {
		responderErro(w, err)
		return
	}
	if tamano < tamanoQRMin || tamano > tamanoQRMax {
		responderErro(w, fmt.Errorf("%w: tamano fuera de rango (%d-%d)", errParametro, tamanoQRMin, tamanoQRMax))
		return
	}
	if _, err := a.deps.Quinielas.ObtenerQuiniela(r.Context(), id); err != nil {
		a.falla(w, "error al obtener quiniela", err)
		return
	}
	enlace := r.URL.Query().Get("url")
	if enlace == "" {
		enlace = urlPublica(r, id)
	}
	png, err := reportes.CodigoQR(enlace, tamano)
	if err != nil {
		a.falla(w, "error al generar qr", err)
		return
	}
	responderArchivo(w, "image/png", fmt.Sprintf("quiniela-%s.png", id), png)
}

func (a *API) conciliarQuiniela(w http.ResponseWriter, r *http.Request) {
	c, err := a.deps.Conciliador.ConciliarQuiniela(r.Context(), domain.QuinielaID(r.PathValue("id")))
	if err != nil {
		a.falla(w, "error al conciliar quiniela", err)
		return
	}
	responderJSON(w, http.StatusOK, c)
}

func (a *API) conciliarTodas(w http.ResponseWriter, r *http.Request) {
	resultados, err := a.deps.Conciliador.ConciliarTodas(r.Context())
	if err != nil {
		// los resultados parciales solo quedan en el log.
		a.logger.Warn("conciliacion parcial", "conciliadas", len(resultados), "err", err)
		a.falla(w, "error al conciliar quinielas", err)
		return
	}
	responderJSON(w, http.StatusOK, resultados)
}

func (a *API) estadisticas(w http.ResponseWriter, r *http.Request) {
	est, err := a.deps.Estadisticas.Calcular(r.Context())
	if err != nil {
		a.falla(w, "error al calcular estadisticas", err)
		return
	}
	responderJSON(w, http.StatusOK, est)
}

func enteroQuery(r *http.Request, nombre string, porDefecto int) (int, error) {
	valor := r.URL.Query().Get(nombre)
	if valor == "" {
		return porDefecto, nil
	}
	n, err := strconv.Atoi(valor)
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser numerico", errParametro, nombre)
	}
	return n, nil
}
