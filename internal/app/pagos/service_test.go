package pagos

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/ids"
)

type staticClock struct {
	now time.Time
}

func (c staticClock) Ahora() time.Time {
	return c.now
}

type inMemoryPagoRepo struct {
	data       map[domain.PagoID]domain.Pago
	fallarTodo bool
}

func newInMemoryPagoRepo() *inMemoryPagoRepo {
	return &inMemoryPagoRepo{data: make(map[domain.PagoID]domain.Pago)}
}

var errAlmacen = errors.New("almacen caido")

func (r *inMemoryPagoRepo) Create(_ context.Context, p domain.Pago) error {
	if r.fallarTodo {
		return errAlmacen
	}
	r.data[p.ID] = p
	return nil
}

func (r *inMemoryPagoRepo) Update(_ context.Context, p domain.Pago) error {
	if _, ok := r.data[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[p.ID] = p
	return nil
}

func (r *inMemoryPagoRepo) Delete(_ context.Context, id domain.PagoID) error {
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryPagoRepo) FindByID(_ context.Context, id domain.PagoID) (domain.Pago, error) {
	p, ok := r.data[id]
	if !ok {
		return domain.Pago{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *inMemoryPagoRepo) ListAll(context.Context) ([]domain.Pago, error) {
	if r.fallarTodo {
		return nil, errAlmacen
	}
	lista := make([]domain.Pago, 0, len(r.data))
	for _, p := range r.data {
		lista = append(lista, p)
	}
	sort.Slice(lista, func(i, j int) bool { return lista[i].FechaPago.After(lista[j].FechaPago) })
	return lista, nil
}

var baseTime = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

func newService() (*Service, *inMemoryPagoRepo) {
	repo := newInMemoryPagoRepo()
	return NewService(repo, staticClock{now: baseTime}, ids.NewGenerator(nil, nil)), repo
}

func TestServicio_Registrar_DebeCompletarDefaults(t *testing.T) {
	service, repo := newService()

	p, err := service.Registrar(context.Background(), domain.Pago{
		Usuario: "  Ana  ",
		Monto:   decimal.RequireFromString("150.50"),
	})
	if err != nil {
		t.Fatalf("Registrar retorno error inesperado: %v", err)
	}

	if p.ID == "" {
		t.Fatal("pago deberia recibir ID")
	}
	if p.Usuario != "Ana" {
		t.Fatalf("usuario deberia venir recortado, vino %q", p.Usuario)
	}
	if p.Metodo != domain.MetodoEfectivo || p.Estado != domain.EstadoPagado {
		t.Fatalf("defaults esperados efectivo/pagado, vino %s/%s", p.Metodo, p.Estado)
	}
	if !p.FechaPago.Equal(baseTime) {
		t.Fatalf("fechaPago deberia ser el reloj, vino %v", p.FechaPago)
	}
	if _, ok := repo.data[p.ID]; !ok {
		t.Fatal("pago deberia quedar guardado")
	}
}

func TestServicio_Registrar_Validaciones(t *testing.T) {
	casos := map[string]domain.Pago{
		"usuario vacio":   {Usuario: "   ", Monto: decimal.NewFromInt(100)},
		"monto cero":      {Usuario: "Ana", Monto: decimal.Zero},
		"monto negativo":  {Usuario: "Ana", Monto: decimal.NewFromInt(-5)},
		"metodo invalido": {Usuario: "Ana", Monto: decimal.NewFromInt(100), Metodo: "cripto"},
		"estado invalido": {Usuario: "Ana", Monto: decimal.NewFromInt(100), Estado: "reembolsado"},
	}
	for nombre, pago := range casos {
		t.Run(nombre, func(t *testing.T) {
			service, repo := newService()
			_, err := service.Registrar(context.Background(), pago)
			if !errors.Is(err, ErrValidacion) {
				t.Fatalf("esperaba ErrValidacion, vino %v", err)
			}
			if len(repo.data) != 0 {
				t.Fatal("pago invalido no deberia guardarse")
			}
		})
	}
}

func TestServicio_Registrar_CuandoAlmacenFalla_DebeEnvolverError(t *testing.T) {
	service, repo := newService()
	repo.fallarTodo = true

	_, err := service.Registrar(context.Background(), domain.Pago{Usuario: "Ana", Monto: decimal.NewFromInt(100)})
	if !errors.Is(err, ErrAlmacenamiento) || !errors.Is(err, errAlmacen) {
		t.Fatalf("esperaba ErrAlmacenamiento envolviendo la causa, vino %v", err)
	}
}

func TestServicio_Actualizar_DebeMezclarCamposPresentes(t *testing.T) {
	service, _ := newService()
	p, err := service.Registrar(context.Background(), domain.Pago{
		Usuario: "Ana",
		Monto:   decimal.NewFromInt(100),
		Estado:  domain.EstadoPendiente,
		Notas:   "paga el viernes",
	})
	if err != nil {
		t.Fatalf("Registrar retorno error: %v", err)
	}

	pagado := domain.EstadoPagado
	metodo := domain.MetodoTransferencia
	actualizado, err := service.Actualizar(context.Background(), p.ID, domain.CambiosPago{Estado: &pagado, Metodo: &metodo})
	if err != nil {
		t.Fatalf("Actualizar retorno error: %v", err)
	}

	if actualizado.Estado != domain.EstadoPagado || actualizado.Metodo != domain.MetodoTransferencia {
		t.Fatalf("cambios no aplicados: %+v", actualizado)
	}
	if actualizado.Notas != "paga el viernes" || actualizado.Usuario != "Ana" {
		t.Fatalf("campos ausentes no deberian cambiar: %+v", actualizado)
	}

	cero := decimal.Zero
	if _, err := service.Actualizar(context.Background(), p.ID, domain.CambiosPago{Monto: &cero}); !errors.Is(err, ErrValidacion) {
		t.Fatalf("monto cero deberia ser invalido, vino %v", err)
	}
}

func TestServicio_Actualizar_Eliminar_Obtener_CuandoNoExiste(t *testing.T) {
	service, _ := newService()

	if _, err := service.Actualizar(context.Background(), "nada", domain.CambiosPago{}); !errors.Is(err, ErrPagoNoEncontrado) {
		t.Fatalf("Actualizar: esperaba ErrPagoNoEncontrado, vino %v", err)
	}
	if err := service.Eliminar(context.Background(), "nada"); !errors.Is(err, ErrPagoNoEncontrado) {
		t.Fatalf("Eliminar: esperaba ErrPagoNoEncontrado, vino %v", err)
	}
	if _, err := service.Obtener(context.Background(), ""); !errors.Is(err, ErrPagoNoEncontrado) {
		t.Fatalf("Obtener: esperaba ErrPagoNoEncontrado, vino %v", err)
	}
}

func TestServicio_Resumen_DebeSumarSoloPagados(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	registros := []domain.Pago{
		{Usuario: "Ana", Monto: decimal.RequireFromString("100.10"), Estado: domain.EstadoPagado},
		{Usuario: "Beto", Monto: decimal.RequireFromString("50.20"), Estado: domain.EstadoPagado},
		{Usuario: "Caro", Monto: decimal.RequireFromString("999"), Estado: domain.EstadoPendiente},
	}
	for _, p := range registros {
		if _, err := service.Registrar(ctx, p); err != nil {
			t.Fatalf("Registrar retorno error: %v", err)
		}
	}

	r, err := service.Resumen(ctx)
	if err != nil {
		t.Fatalf("Resumen retorno error: %v", err)
	}

	if !r.TotalRecaudado.Equal(decimal.RequireFromString("150.30")) {
		t.Fatalf("total recaudado esperado 150.30, vino %s", r.TotalRecaudado)
	}
	if r.Pagados != 2 || r.Pendientes != 1 || r.Total != 3 {
		t.Fatalf("conteos inesperados: %+v", r)
	}
}

func TestResumir_SinPagos(t *testing.T) {
	r := Resumir(nil)
	if !r.TotalRecaudado.IsZero() || r.Total != 0 {
		t.Fatalf("resumen vacio esperado, vino %+v", r)
	}
}
