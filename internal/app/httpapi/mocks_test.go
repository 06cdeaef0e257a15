package httpapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/marcelojr/quinielas/internal/domain"
)

type MockQuinielaService struct {
	mock.Mock
}

func (m *MockQuinielaService) CrearQuiniela(ctx context.Context, n domain.NuevaQuiniela) (domain.Quiniela, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(domain.Quiniela), args.Error(1)
}

func (m *MockQuinielaService) CrearDesdeCalendario(ctx context.Context, cantidad int) (domain.Quiniela, string, error) {
	args := m.Called(ctx, cantidad)
	return args.Get(0).(domain.Quiniela), args.String(1), args.Error(2)
}

func (m *MockQuinielaService) ActualizarQuiniela(ctx context.Context, id domain.QuinielaID, cambios domain.CambiosQuiniela) (domain.Quiniela, error) {
	args := m.Called(ctx, id, cambios)
	return args.Get(0).(domain.Quiniela), args.Error(1)
}

func (m *MockQuinielaService) EliminarQuiniela(ctx context.Context, id domain.QuinielaID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuinielaService) AlternarActiva(ctx context.Context, id domain.QuinielaID, activa bool) error {
	return m.Called(ctx, id, activa).Error(0)
}

func (m *MockQuinielaService) AgregarPartido(ctx context.Context, id domain.QuinielaID, p domain.Partido) (domain.Quiniela, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Quiniela), args.Error(1)
}

func (m *MockQuinielaService) QuitarPartido(ctx context.Context, id domain.QuinielaID, partidoID domain.PartidoID) (domain.Quiniela, error) {
	args := m.Called(ctx, id, partidoID)
	return args.Get(0).(domain.Quiniela), args.Error(1)
}

func (m *MockQuinielaService) ObtenerQuiniela(ctx context.Context, id domain.QuinielaID) (domain.Quiniela, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Quiniela), args.Error(1)
}

func (m *MockQuinielaService) ListarQuinielas(ctx context.Context) ([]domain.Quiniela, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Quiniela), args.Error(1)
}

func (m *MockQuinielaService) ProximosPartidos(ctx context.Context, cantidad int) (domain.Calendario, error) {
	args := m.Called(ctx, cantidad)
	return args.Get(0).(domain.Calendario), args.Error(1)
}

func (m *MockQuinielaService) Enviar(ctx context.Context, id domain.QuinielaID, participante domain.Participante, predicciones []domain.Prediccion) (domain.Comprobante, error) {
	args := m.Called(ctx, id, participante, predicciones)
	return args.Get(0).(domain.Comprobante), args.Error(1)
}

func (m *MockQuinielaService) ListarRespuestas(ctx context.Context, id domain.QuinielaID, filtro string) ([]domain.Respuesta, error) {
	args := m.Called(ctx, id, filtro)
	return args.Get(0).([]domain.Respuesta), args.Error(1)
}

func (m *MockQuinielaService) ObtenerRespuestaPorFolio(ctx context.Context, folio string) (domain.Respuesta, domain.Quiniela, error) {
	args := m.Called(ctx, folio)
	return args.Get(0).(domain.Respuesta), args.Get(1).(domain.Quiniela), args.Error(2)
}

func (m *MockQuinielaService) EliminarRespuesta(ctx context.Context, id domain.RespuestaID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuinielaService) Conteo(ctx context.Context, id domain.QuinielaID) ([]domain.ConteoPartido, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.ConteoPartido), args.Error(1)
}

type MockPagoService struct {
	mock.Mock
}

func (m *MockPagoService) Registrar(ctx context.Context, p domain.Pago) (domain.Pago, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Pago), args.Error(1)
}

func (m *MockPagoService) Actualizar(ctx context.Context, id domain.PagoID, cambios domain.CambiosPago) (domain.Pago, error) {
	args := m.Called(ctx, id, cambios)
	return args.Get(0).(domain.Pago), args.Error(1)
}

func (m *MockPagoService) Eliminar(ctx context.Context, id domain.PagoID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPagoService) Obtener(ctx context.Context, id domain.PagoID) (domain.Pago, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pago), args.Error(1)
}

func (m *MockPagoService) Listar(ctx context.Context) ([]domain.Pago, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Pago), args.Error(1)
}

func (m *MockPagoService) Resumen(ctx context.Context) (domain.ResumenPagos, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ResumenPagos), args.Error(1)
}

type MockAccesoService struct {
	mock.Mock
}

func (m *MockAccesoService) Login(ctx context.Context, pin string) (string, error) {
	args := m.Called(ctx, pin)
	return args.String(0), args.Error(1)
}

func (m *MockAccesoService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAccesoService) Validar(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccesoService) CambiarPin(ctx context.Context, actual, nuevo, confirmacion string) error {
	return m.Called(ctx, actual, nuevo, confirmacion).Error(0)
}

func (m *MockAccesoService) ObtenerGeneral(ctx context.Context) (domain.ConfigGeneral, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConfigGeneral), args.Error(1)
}

func (m *MockAccesoService) GuardarGeneral(ctx context.Context, c domain.ConfigGeneral) error {
	return m.Called(ctx, c).Error(0)
}

type MockEstadisticas struct {
	mock.Mock
}

func (m *MockEstadisticas) Calcular(ctx context.Context) (domain.Estadisticas, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Estadisticas), args.Error(1)
}

type MockConciliador struct {
	mock.Mock
}

func (m *MockConciliador) ConciliarQuiniela(ctx context.Context, id domain.QuinielaID) (domain.Conciliacion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Conciliacion), args.Error(1)
}

func (m *MockConciliador) ConciliarTodas(ctx context.Context) ([]domain.Conciliacion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Conciliacion), args.Error(1)
}

type MockAntifraude struct {
	mock.Mock
}

func (m *MockAntifraude) Validar(ctx context.Context, intento domain.Intento) error {
	return m.Called(ctx, intento).Error(0)
}
