package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type QuinielaRepository interface {
	Create(ctx context.Context, q Quiniela) error
	// Update reescribe los campos editables; nunca toca Respuestas ni CreadaEn.
	Update(ctx context.Context, q Quiniela) error
	Delete(ctx context.Context, id QuinielaID) error
	FindByID(ctx context.Context, id QuinielaID) (Quiniela, error)
	// ListAll ordena por CreadaEn descendente.
	ListAll(ctx context.Context) ([]Quiniela, error)
	// IncrementarRespuestas debe ser atómico en el almacén; nunca leer y reescribir.
	IncrementarRespuestas(ctx context.Context, id QuinielaID, delta int64) error
	DefinirRespuestas(ctx context.Context, id QuinielaID, total int64) error
}

type RespuestaRepository interface {
	Create(ctx context.Context, r Respuesta) error
	FindByID(ctx context.Context, id RespuestaID) (Respuesta, error)
	FindByFolio(ctx context.Context, folio string) (Respuesta, error)
	// ListByQuiniela ordena por EnviadaEn descendente.
	ListByQuiniela(ctx context.Context, id QuinielaID) ([]Respuesta, error)
	CountByQuiniela(ctx context.Context, id QuinielaID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id RespuestaID) error
}

type PagoRepository interface {
	Create(ctx context.Context, p Pago) error
	Update(ctx context.Context, p Pago) error
	Delete(ctx context.Context, id PagoID) error
	FindByID(ctx context.Context, id PagoID) (Pago, error)
	// ListAll ordena por FechaPago descendente.
	ListAll(ctx context.Context) ([]Pago, error)
}

type ConfigRepository interface {
	ObtenerGeneral(ctx context.Context) (ConfigGeneral, error)
	GuardarGeneral(ctx context.Context, c ConfigGeneral) error
	ObtenerSeguridad(ctx context.Context) (ConfigSeguridad, error)
	GuardarSeguridad(ctx context.Context, c ConfigSeguridad) error
}

type Sesiones interface {
	Crear(ctx context.Context) (string, error)
	Validar(ctx context.Context, token string) (bool, error)
	Eliminar(ctx context.Context, token string) error
}

type FuenteFixtures interface {
	ProximosPartidos(ctx context.Context, cantidad int) (Calendario, error)
}

// Intento identifica el origen de un envío público para el antifraude.
type Intento struct {
	QuinielaID QuinielaID
	OrigenIP   string
	UserAgent  string
}

type Antifraude interface {
	Validar(ctx context.Context, intento Intento) error
}

type Clock interface {
	Ahora() time.Time
}

// NuevaQuiniela es la entrada de alta; Activa nil significa activa.
type NuevaQuiniela struct {
	Nombre            string     `json:"nombre"`
	Descripcion       string     `json:"descripcion"`
	Partidos          []Partido  `json:"partidos"`
	Activa            *bool      `json:"activa,omitempty"`
	FechaLimite       *time.Time `json:"fechaLimite,omitempty"`
	PermitirEdicion   bool       `json:"permitirEdicion"`
	MostrarResultados bool       `json:"mostrarResultados"`
}

// CambiosQuiniela lleva solo los campos presentes en una edición parcial.
type CambiosQuiniela struct {
	Nombre            *string    `json:"nombre,omitempty"`
	Descripcion       *string    `json:"descripcion,omitempty"`
	Partidos          []Partido  `json:"partidos,omitempty"`
	Activa            *bool      `json:"activa,omitempty"`
	FechaLimite       *time.Time `json:"fechaLimite,omitempty"`
	QuitarFechaLimite bool       `json:"quitarFechaLimite,omitempty"`
	PermitirEdicion   *bool      `json:"permitirEdicion,omitempty"`
	MostrarResultados *bool      `json:"mostrarResultados,omitempty"`
}

type CambiosPago struct {
	Usuario    *string          `json:"usuario,omitempty"`
	QuinielaID *QuinielaID      `json:"quinielaId,omitempty"`
	Monto      *decimal.Decimal `json:"monto,omitempty"`
	Metodo     *MetodoPago      `json:"metodo,omitempty"`
	FechaPago  *time.Time       `json:"fechaPago,omitempty"`
	Estado     *EstadoPago      `json:"estado,omitempty"`
	Notas      *string          `json:"notas,omitempty"`
}

type QuinielaService interface {
	CrearQuiniela(ctx context.Context, n NuevaQuiniela) (Quiniela, error)
	CrearDesdeCalendario(ctx context.Context, cantidad int) (Quiniela, string, error)
	ActualizarQuiniela(ctx context.Context, id QuinielaID, cambios CambiosQuiniela) (Quiniela, error)
	EliminarQuiniela(ctx context.Context, id QuinielaID) error
	AlternarActiva(ctx context.Context, id QuinielaID, activa bool) error
	AgregarPartido(ctx context.Context, id QuinielaID, p Partido) (Quiniela, error)
	QuitarPartido(ctx context.Context, id QuinielaID, partidoID PartidoID) (Quiniela, error)
	ObtenerQuiniela(ctx context.Context, id QuinielaID) (Quiniela, error)
	ListarQuinielas(ctx context.Context) ([]Quiniela, error)
	ProximosPartidos(ctx context.Context, cantidad int) (Calendario, error)
	Enviar(ctx context.Context, id QuinielaID, participante Participante, predicciones []Prediccion) (Comprobante, error)
	ListarRespuestas(ctx context.Context, id QuinielaID, filtro string) ([]Respuesta, error)
	ObtenerRespuestaPorFolio(ctx context.Context, folio string) (Respuesta, Quiniela, error)
	EliminarRespuesta(ctx context.Context, id RespuestaID) error
	Conteo(ctx context.Context, id QuinielaID) ([]ConteoPartido, error)
}

type PagoService interface {
	Registrar(ctx context.Context, p Pago) (Pago, error)
	Actualizar(ctx context.Context, id PagoID, cambios CambiosPago) (Pago, error)
	Eliminar(ctx context.Context, id PagoID) error
	Obtener(ctx context.Context, id PagoID) (Pago, error)
	Listar(ctx context.Context) ([]Pago, error)
	Resumen(ctx context.Context) (ResumenPagos, error)
}

type AccesoService interface {
	Login(ctx context.Context, pin string) (string, error)
	Logout(ctx context.Context, token string) error
	Validar(ctx context.Context, token string) (bool, error)
	CambiarPin(ctx context.Context, actual, nuevo, confirmacion string) error
	ObtenerGeneral(ctx context.Context) (ConfigGeneral, error)
	GuardarGeneral(ctx context.Context, c ConfigGeneral) error
}

type EstadisticasService interface {
	Calcular(ctx context.Context) (Estadisticas, error)
}

type Conciliador interface {
	ConciliarQuiniela(ctx context.Context, id QuinielaID) (Conciliacion, error)
	ConciliarTodas(ctx context.Context) ([]Conciliacion, error)
}
