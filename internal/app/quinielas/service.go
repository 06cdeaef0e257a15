// Paquete quinielas implementa las reglas de negocio de la quiniela: alta y edición, envío de pronósticos y conteos.
package quinielas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/ids"
)

var (
	ErrValidacion            = errors.New("datos invalidos")
	ErrQuinielaNoEncontrada  = errors.New("quiniela no encontrada")
	ErrRespuestaNoEncontrada = errors.New("respuesta no encontrada")
	ErrQuinielaCerrada       = errors.New("la quiniela esta inactiva o la fecha limite ya paso")
	ErrAlmacenamiento        = errors.New("no se pudo guardar, intenta de nuevo")
)

// Service concentra las reglas de la quiniela y delega la persistencia a los repositorios.
type Service struct {
	quinielas  domain.QuinielaRepository
	respuestas domain.RespuestaRepository
	fixtures   domain.FuenteFixtures
	clock      domain.Clock
	ids        *ids.Generator
	folios     *GeneradorFolio
	zona       *time.Location
}

func NewService(
	quinielas domain.QuinielaRepository,
	respuestas domain.RespuestaRepository,
	fixtures domain.FuenteFixtures,
	clock domain.Clock,
	idsGen *ids.Generator,
	folios *GeneradorFolio,
) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	if folios == nil {
		folios = NewGeneradorFolio(clock, nil)
	}
	return &Service{
		quinielas:  quinielas,
		respuestas: respuestas,
		fixtures:   fixtures,
		clock:      clock,
		ids:        idsGen,
		folios:     folios,
		zona:       time.UTC,
	}
}

// UsarZonaHoraria define en qué zona se interpretan fecha y hora de los partidos.
func (s *Service) UsarZonaHoraria(loc *time.Location) {
	if loc != nil {
		s.zona = loc
	}
}

func (s *Service) CrearQuiniela(ctx context.Context, n domain.NuevaQuiniela) (domain.Quiniela, error) {
	nombre := strings.TrimSpace(n.Nombre)
	if nombre == "" {
		return domain.Quiniela{}, fmt.Errorf("%w: nombre obligatorio", ErrValidacion)
	}
	partidos, err := s.prepararPartidos(n.Partidos)
	if err != nil {
		return domain.Quiniela{}, err
	}

	ahora := s.clock.Ahora()
	q := domain.Quiniela{
		ID:                s.ids.Quiniela(),
		Nombre:            nombre,
		Descripcion:       strings.TrimSpace(n.Descripcion),
		Partidos:          partidos,
		Activa:            true,
		FechaLimite:       n.FechaLimite,
		PermitirEdicion:   n.PermitirEdicion,
		MostrarResultados: n.MostrarResultados,
		Respuestas:        0,
		CreadaEn:          ahora,
		ActualizadaEn:     ahora,
	}
	if n.Activa != nil {
		q.Activa = *n.Activa
	}

	if err := s.quinielas.Create(ctx, q); err != nil {
		return domain.Quiniela{}, almacenamiento(err)
	}
	return q, nil
}

// ActualizarQuiniela mezcla solo los campos presentes; CreadaEn y Respuestas no se tocan.
func (s *Service) ActualizarQuiniela(ctx context.Context, id domain.QuinielaID, cambios domain.CambiosQuiniela) (domain.Quiniela, error) {
	q, err := s.cargar(ctx, id)
	if err != nil {
		return domain.Quiniela{}, err
	}

	if cambios.Nombre != nil {
		nombre := strings.TrimSpace(*cambios.Nombre)
		if nombre == "" {
			return domain.Quiniela{}, fmt.Errorf("%w: nombre obligatorio", ErrValidacion)
		}
		q.Nombre = nombre
	}
	if cambios.Descripcion != nil {
		q.Descripcion = strings.TrimSpace(*cambios.Descripcion)
	}
	if cambios.Partidos != nil {
		partidos, err := s.prepararPartidos(cambios.Partidos)
		if err != nil {
			return domain.Quiniela{}, err
		}
		q.Partidos = partidos
	}
	if cambios.Activa != nil {
		q.Activa = *cambios.Activa
	}
	if cambios.QuitarFechaLimite {
		q.FechaLimite = nil
	} else if cambios.FechaLimite != nil {
		q.FechaLimite = cambios.FechaLimite
	}
	if cambios.PermitirEdicion != nil {
		q.PermitirEdicion = *cambios.PermitirEdicion
	}
	if cambios.MostrarResultados != nil {
		q.MostrarResultados = *cambios.MostrarResultados
	}

	return s.guardar(ctx, q)
}

// EliminarQuiniela no borra las respuestas; quedan consultables por quinielaId.
func (s *Service) EliminarQuiniela(ctx context.Context, id domain.QuinielaID) error {
	if err := s.quinielas.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrQuinielaNoEncontrada
		}
		return almacenamiento(err)
	}
	return nil
}

func (s *Service) AlternarActiva(ctx context.Context, id domain.QuinielaID, activa bool) error {
	_, err := s.ActualizarQuiniela(ctx, id, domain.CambiosQuiniela{Activa: &activa})
	return err
}

func (s *Service) AgregarPartido(ctx context.Context, id domain.QuinielaID, p domain.Partido) (domain.Quiniela, error) {
	q, err := s.cargar(ctx, id)
	if err != nil {
		return domain.Quiniela{}, err
	}
	partidos, err := s.prepararPartidos(append(append([]domain.Partido(nil), q.Partidos...), p))
	if err != nil {
		return domain.Quiniela{}, err
	}
	q.Partidos = partidos
	return s.guardar(ctx, q)
}

func (s *Service) QuitarPartido(ctx context.Context, id domain.QuinielaID, partidoID domain.PartidoID) (domain.Quiniela, error) {
	q, err := s.cargar(ctx, id)
	if err != nil {
		return domain.Quiniela{}, err
	}
	if _, ok := q.Partido(partidoID); !ok {
		return domain.Quiniela{}, fmt.Errorf("%w: partido %s no pertenece a la quiniela", ErrValidacion, partidoID)
	}
	if len(q.Partidos) == 1 {
		return domain.Quiniela{}, fmt.Errorf("%w: la quiniela debe tener al menos un partido", ErrValidacion)
	}

	restantes := make([]domain.Partido, 0, len(q.Partidos)-1)
	for _, p := range q.Partidos {
		if p.ID != partidoID {
			restantes = append(restantes, p)
		}
	}
	q.Partidos = restantes
	return s.guardar(ctx, q)
}

func (s *Service) ObtenerQuiniela(ctx context.Context, id domain.QuinielaID) (domain.Quiniela, error) {
	return s.cargar(ctx, id)
}

func (s *Service) ListarQuinielas(ctx context.Context) ([]domain.Quiniela, error) {
	lista, err := s.quinielas.ListAll(ctx)
	if err != nil {
		return nil, almacenamiento(err)
	}
	return lista, nil
}

func (s *Service) cargar(ctx context.Context, id domain.QuinielaID) (domain.Quiniela, error) {
	if id == "" {
		return domain.Quiniela{}, ErrQuinielaNoEncontrada
	}
	q, err := s.quinielas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Quiniela{}, ErrQuinielaNoEncontrada
		}
		return domain.Quiniela{}, almacenamiento(err)
	}
	return q, nil
}

func (s *Service) guardar(ctx context.Context, q domain.Quiniela) (domain.Quiniela, error) {
	q.ActualizadaEn = s.clock.Ahora()
	if err := s.quinielas.Update(ctx, q); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Quiniela{}, ErrQuinielaNoEncontrada
		}
		return domain.Quiniela{}, almacenamiento(err)
	}
	return q, nil
}

// prepararPartidos valida cada partido, asigna IDs faltantes y rechaza IDs repetidos.
func (s *Service) prepararPartidos(partidos []domain.Partido) ([]domain.Partido, error) {
	if len(partidos) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un partido", ErrValidacion)
	}
	vistos := make(map[domain.PartidoID]struct{}, len(partidos))
	resultado := make([]domain.Partido, len(partidos))
	for i, p := range partidos {
		p.Local = strings.TrimSpace(p.Local)
		p.Visitante = strings.TrimSpace(p.Visitante)
		p.Fecha = strings.TrimSpace(p.Fecha)
		p.Hora = strings.TrimSpace(p.Hora)
		p.Estadio = strings.TrimSpace(p.Estadio)
		if p.Local == "" || p.Visitante == "" || p.Fecha == "" || p.Hora == "" {
			return nil, fmt.Errorf("%w: el partido %d requiere local, visitante, fecha y hora", ErrValidacion, i+1)
		}
		if p.ID == "" {
			p.ID = s.ids.Partido()
		}
		if _, dup := vistos[p.ID]; dup {
			return nil, fmt.Errorf("%w: partido %s repetido", ErrValidacion, p.ID)
		}
		vistos[p.ID] = struct{}{}
		resultado[i] = p
	}
	return resultado, nil
}

func almacenamiento(err error) error {
	return fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
}

var _ domain.QuinielaService = (*Service)(nil)
