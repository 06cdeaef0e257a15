package httpapi

import (
	"net/http"

	"github.com/marcelojr/quinielas/internal/domain"
)

func (a *API) listarPagos(w http.ResponseWriter, r *http.Request) {
	lista, err := a.deps.Pagos.Listar(r.Context())
	if err != nil {
		a.falla(w, "error al listar pagos", err)
		return
	}
	responderJSON(w, http.StatusOK, lista)
}

func (a *API) registrarPago(w http.ResponseWriter, r *http.Request) {
	var p domain.Pago
	if err := decodificar(w, r, &p); err != nil {
		responderErro(w, err)
		return
	}
	creado, err := a.deps.Pagos.Registrar(r.Context(), p)
	if err != nil {
		a.falla(w, "error al registrar pago", err)
		return
	}
	responderJSON(w, http.StatusCreated, creado)
}

func (a *API) obtenerPago(w http.ResponseWriter, r *http.Request) {
	p, err := a.deps.Pagos.Obtener(r.Context(), domain.PagoID(r.PathValue("id")))
	if err != nil {
		a.falla(w, "error al obtener pago", err)
		return
	}
	responderJSON(w, http.StatusOK, p)
}

func (a *API) actualizarPago(w http.ResponseWriter, r *http.Request) {
	var cambios domain.CambiosPago
	if err := decodificar(w, r, &cambios); err != nil {
		responderErro(w, err)
		return
	}
	p, err := a.deps.Pagos.Actualizar(r.Context(), domain.PagoID(r.PathValue("id")), cambios)
	if err != nil {
		a.falla(w, "error al actualizar pago", err)
		return
	}
	responderJSON(w, http.StatusOK, p)
}

func (a *API) eliminarPago(w http.ResponseWriter, r *http.Request) {
	if err := a.deps.Pagos.Eliminar(r.Context(), domain.PagoID(r.PathValue("id"))); err != nil {
		a.falla(w, "error al eliminar pago", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resumenPagos(w http.ResponseWriter, r *http.Request) {
	resumen, err := a.deps.Pagos.Resumen(r.Context())
	if err != nil {
		a.falla(w, "error al resumir pagos", err)
		return
	}
	responderJSON(w, http.StatusOK, resumen)
}
