package quinielas

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/ids"
)

type serviceDependencies struct {
	quinielaRepo  *inMemoryQuinielaRepo
	respuestaRepo *inMemoryRespuestaRepo
	fixtures      *fixturesFijos
	clock         *staticClock
	idGen         *ids.Generator
	baseTime      time.Time
}

func newServiceDeps() serviceDependencies {
	base := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	return serviceDependencies{
		quinielaRepo:  newInMemoryQuinielaRepo(),
		respuestaRepo: newInMemoryRespuestaRepo(),
		fixtures:      &fixturesFijos{},
		clock:         &staticClock{now: base},
		idGen:         ids.NewGenerator(nil, nil),
		baseTime:      base,
	}
}

func (d serviceDependencies) service() *Service {
	return NewService(d.quinielaRepo, d.respuestaRepo, d.fixtures, d.clock, d.idGen, nil)
}

type staticClock struct {
	now time.Time
}

func (c *staticClock) Ahora() time.Time {
	return c.now
}

type inMemoryQuinielaRepo struct {
	mu               sync.Mutex
	data             map[domain.QuinielaID]domain.Quiniela
	fallarIncremento bool
}

func newInMemoryQuinielaRepo() *inMemoryQuinielaRepo {
	return &inMemoryQuinielaRepo{data: make(map[domain.QuinielaID]domain.Quiniela)}
}

func copiar(q domain.Quiniela) domain.Quiniela {
	q.Partidos = append([]domain.Partido(nil), q.Partidos...)
	return q
}

func (r *inMemoryQuinielaRepo) Create(_ context.Context, q domain.Quiniela) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[q.ID] = copiar(q)
	return nil
}

func (r *inMemoryQuinielaRepo) Update(_ context.Context, q domain.Quiniela) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	actual, ok := r.data[q.ID]
	if !ok {
		return domain.ErrNotFound
	}
	q.Respuestas = actual.Respuestas
	q.CreadaEn = actual.CreadaEn
	r.data[q.ID] = copiar(q)
	return nil
}

func (r *inMemoryQuinielaRepo) Delete(_ context.Context, id domain.QuinielaID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *inMemoryQuinielaRepo) FindByID(_ context.Context, id domain.QuinielaID) (domain.Quiniela, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.data[id]
	if !ok {
		return domain.Quiniela{}, domain.ErrNotFound
	}
	return copiar(q), nil
}

func (r *inMemoryQuinielaRepo) ListAll(_ context.Context) ([]domain.Quiniela, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lista := make([]domain.Quiniela, 0, len(r.data))
	for _, q := range r.data {
		lista = append(lista, copiar(q))
	}
	sort.Slice(lista, func(i, j int) bool { return lista[i].CreadaEn.After(lista[j].CreadaEn) })
	return lista, nil
}

func (r *inMemoryQuinielaRepo) IncrementarRespuestas(_ context.Context, id domain.QuinielaID, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallarIncremento {
		return errors.New("almacen caido")
	}
	q, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Respuestas += delta
	r.data[id] = q
	return nil
}

func (r *inMemoryQuinielaRepo) DefinirRespuestas(_ context.Context, id domain.QuinielaID, total int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Respuestas = total
	r.data[id] = q
	return nil
}

type inMemoryRespuestaRepo struct {
	mu                  sync.Mutex
	lista               []domain.Respuesta
	duplicadosRestantes int
	errCreate           error
}

func newInMemoryRespuestaRepo() *inMemoryRespuestaRepo {
	return &inMemoryRespuestaRepo{}
}

func (r *inMemoryRespuestaRepo) Create(_ context.Context, resp domain.Respuesta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errCreate != nil {
		return r.errCreate
	}
	if r.duplicadosRestantes > 0 {
		r.duplicadosRestantes--
		return domain.ErrFolioDuplicado
	}
	for _, existente := range r.lista {
		if existente.Folio == resp.Folio {
			return domain.ErrFolioDuplicado
		}
	}
	r.lista = append(r.lista, resp)
	return nil
}

func (r *inMemoryRespuestaRepo) FindByID(_ context.Context, id domain.RespuestaID) (domain.Respuesta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.lista {
		if resp.ID == id {
			return resp, nil
		}
	}
	return domain.Respuesta{}, domain.ErrNotFound
}

func (r *inMemoryRespuestaRepo) FindByFolio(_ context.Context, folio string) (domain.Respuesta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.lista {
		if resp.Folio == folio {
			return resp, nil
		}
	}
	return domain.Respuesta{}, domain.ErrNotFound
}

func (r *inMemoryRespuestaRepo) ListByQuiniela(_ context.Context, id domain.QuinielaID) ([]domain.Respuesta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var resultado []domain.Respuesta
	for _, resp := range r.lista {
		if resp.QuinielaID == id {
			resultado = append(resultado, resp)
		}
	}
	sort.SliceStable(resultado, func(i, j int) bool { return resultado[i].EnviadaEn.After(resultado[j].EnviadaEn) })
	return resultado, nil
}

func (r *inMemoryRespuestaRepo) CountByQuiniela(ctx context.Context, id domain.QuinielaID) (int64, error) {
	lista, _ := r.ListByQuiniela(ctx, id)
	return int64(len(lista)), nil
}

func (r *inMemoryRespuestaRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.lista)), nil
}

func (r *inMemoryRespuestaRepo) Delete(_ context.Context, id domain.RespuestaID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, resp := range r.lista {
		if resp.ID == id {
			r.lista = append(r.lista[:i], r.lista[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *inMemoryRespuestaRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lista)
}

type fixturesFijos struct {
	calendario domain.Calendario
	err        error
	pedidos    []int
}

func (f *fixturesFijos) ProximosPartidos(_ context.Context, cantidad int) (domain.Calendario, error) {
	f.pedidos = append(f.pedidos, cantidad)
	return f.calendario, f.err
}
