package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	QuinielaID  string
	PartidoID   string
	RespuestaID string
	PagoID      string
)

// Resultado es el pronóstico de un partido: gana local, empate o gana visitante.
type Resultado string

const (
	ResultadoLocal     Resultado = "local"
	ResultadoEmpate    Resultado = "empate"
	ResultadoVisitante Resultado = "visitante"
)

func (r Resultado) Valido() bool {
	switch r {
	case ResultadoLocal, ResultadoEmpate, ResultadoVisitante:
		return true
	default:
		return false
	}
}

type Quiniela struct {
	ID                QuinielaID `json:"id"`
	Nombre            string     `json:"nombre"`
	Descripcion       string     `json:"descripcion,omitempty"`
	Partidos          []Partido  `json:"partidos"`
	Activa            bool       `json:"activa"`
	FechaLimite       *time.Time `json:"fechaLimite,omitempty"`
	PermitirEdicion   bool       `json:"permitirEdicion"`
	MostrarResultados bool       `json:"mostrarResultados"`
	Respuestas        int64      `json:"respuestas"`
	CreadaEn          time.Time  `json:"creadaEn"`
	ActualizadaEn     time.Time  `json:"actualizadaEn"`
}

// EstadoParticipacion se deriva de Activa y FechaLimite; nunca se persiste.
type EstadoParticipacion string

const (
	EstadoAbierta EstadoParticipacion = "ABIERTA"
	EstadoCerrada EstadoParticipacion = "CERRADA"
)

// Estado aplica la regla de participación: abierta solo si está activa y el plazo no venció.
func (q Quiniela) Estado(ahora time.Time) EstadoParticipacion {
	if !q.Activa {
		return EstadoCerrada
	}
	if q.FechaLimite != nil && !ahora.Before(*q.FechaLimite) {
		return EstadoCerrada
	}
	return EstadoAbierta
}

func (q Quiniela) Abierta(ahora time.Time) bool {
	return q.Estado(ahora) == EstadoAbierta
}

func (q Quiniela) Partido(id PartidoID) (Partido, bool) {
	for _, p := range q.Partidos {
		if p.ID == id {
			return p, true
		}
	}
	return Partido{}, false
}

type Partido struct {
	ID        PartidoID `json:"id"`
	Local     string    `json:"local"`
	Visitante string    `json:"visitante"`
	Fecha     string    `json:"fecha"`
	Hora      string    `json:"hora"`
	Estadio   string    `json:"estadio,omitempty"`
}

func (p Partido) Etiqueta() string {
	return p.Local + " vs " + p.Visitante
}

type Participante struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email,omitempty"`
	Telefono string `json:"telefono,omitempty"`
}

type Prediccion struct {
	PartidoID       PartidoID `json:"partidoId"`
	EquipoLocal     string    `json:"equipoLocal"`
	EquipoVisitante string    `json:"equipoVisitante"`
	Resultado       Resultado `json:"prediccion"`
}

type Respuesta struct {
	ID           RespuestaID  `json:"id"`
	QuinielaID   QuinielaID   `json:"quinielaId"`
	Folio        string       `json:"folio"`
	Participante Participante `json:"participante"`
	Predicciones []Prediccion `json:"predicciones"`
	EnviadaEn    time.Time    `json:"enviadaEn"`
}

func (r Respuesta) Prediccion(id PartidoID) (Prediccion, bool) {
	for _, p := range r.Predicciones {
		if p.PartidoID == id {
			return p, true
		}
	}
	return Prediccion{}, false
}

// Comprobante es lo que el participante recibe al enviar sus pronósticos.
type Comprobante struct {
	ID        RespuestaID `json:"id"`
	Folio     string      `json:"folio"`
	EnviadaEn time.Time   `json:"enviadaEn"`
}

type ConteoPartido struct {
	PartidoID       PartidoID `json:"partidoId"`
	Local           string    `json:"local"`
	Visitante       string    `json:"visitante"`
	ConteoLocal     int64     `json:"conteoLocal"`
	ConteoEmpate    int64     `json:"conteoEmpate"`
	ConteoVisitante int64     `json:"conteoVisitante"`
	PctLocal        float64   `json:"pctLocal"`
	PctEmpate       float64   `json:"pctEmpate"`
	PctVisitante    float64   `json:"pctVisitante"`
}

type MetodoPago string

const (
	MetodoEfectivo      MetodoPago = "efectivo"
	MetodoTransferencia MetodoPago = "transferencia"
	MetodoTarjeta       MetodoPago = "tarjeta"
)

func (m MetodoPago) Valido() bool {
	switch m {
	case MetodoEfectivo, MetodoTransferencia, MetodoTarjeta:
		return true
	default:
		return false
	}
}

type EstadoPago string

const (
	EstadoPagado    EstadoPago = "pagado"
	EstadoPendiente EstadoPago = "pendiente"
)

func (e EstadoPago) Valido() bool {
	return e == EstadoPagado || e == EstadoPendiente
}

type Pago struct {
	ID         PagoID          `json:"id"`
	Usuario    string          `json:"usuario"`
	QuinielaID QuinielaID      `json:"quinielaId,omitempty"`
	Monto      decimal.Decimal `json:"monto"`
	Metodo     MetodoPago      `json:"metodo"`
	FechaPago  time.Time       `json:"fechaPago"`
	Estado     EstadoPago      `json:"estado"`
	Notas      string          `json:"notas,omitempty"`
}

type ResumenPagos struct {
	TotalRecaudado decimal.Decimal `json:"totalRecaudado"`
	Pagados        int             `json:"pagados"`
	Pendientes     int             `json:"pendientes"`
	Total          int             `json:"total"`
}

// Estadisticas resume el tablero general del administrador.
type Estadisticas struct {
	TotalQuinielas       int             `json:"totalQuinielas"`
	QuinielasAbiertas    int             `json:"quinielasAbiertas"`
	TotalRespuestas      int64           `json:"totalRespuestas"`
	PromedioRespuestas   float64         `json:"promedioRespuestas"`
	TotalPartidos        int             `json:"totalPartidos"`
	MasPopular           *QuinielaID     `json:"masPopular,omitempty"`
	MasPopularNombre     string          `json:"masPopularNombre,omitempty"`
	MasPopularRespuestas int64           `json:"masPopularRespuestas"`
	TotalPagos           int             `json:"totalPagos"`
	TotalRecaudado       decimal.Decimal `json:"totalRecaudado"`
	PromedioMonto        decimal.Decimal `json:"promedioMonto"`
}

// Conciliacion registra el contador guardado contra el conteo real de respuestas.
type Conciliacion struct {
	QuinielaID QuinielaID `json:"quinielaId"`
	Guardado   int64      `json:"guardado"`
	Real       int64      `json:"real"`
	Corregida  bool       `json:"corregida"`
}

type ConfigGeneral struct {
	JornadaActual string `json:"jornadaActual"`
}

type ConfigSeguridad struct {
	PinAdmin string `json:"pinAdmin"`
}

// Calendario es la lista de próximos partidos entregada por la fuente de fixtures.
type Calendario struct {
	Fuente   string    `json:"fuente"`
	Torneo   string    `json:"torneo"`
	Jornada  string    `json:"jornada"`
	Partidos []Partido `json:"partidos"`
}

const (
	FuenteAPI  = "api"
	FuenteMock = "mock"
)
