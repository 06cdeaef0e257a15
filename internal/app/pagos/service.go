// Paquete pagos registra las cuotas de los participantes y resume lo recaudado.
package pagos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/ids"
)

var (
	ErrValidacion       = errors.New("datos de pago invalidos")
	ErrPagoNoEncontrado = errors.New("pago no encontrado")
	ErrAlmacenamiento   = errors.New("no se pudo guardar el pago, intenta de nuevo")
)

type Service struct {
	repo  domain.PagoRepository
	clock domain.Clock
	ids   *ids.Generator
}

func NewService(repo domain.PagoRepository, clock domain.Clock, idsGen *ids.Generator) *Service {
	if idsGen == nil {
		idsGen = ids.DefaultGenerator()
	}
	return &Service{repo: repo, clock: clock, ids: idsGen}
}

// Registrar completa método efectivo, estado pagado y fecha actual cuando vienen vacíos.
func (s *Service) Registrar(ctx context.Context, p domain.Pago) (domain.Pago, error) {
	p.ID = s.ids.Pago()
	if p.Metodo == "" {
		p.Metodo = domain.MetodoEfectivo
	}
	if p.Estado == "" {
		p.Estado = domain.EstadoPagado
	}
	if p.FechaPago.IsZero() {
		p.FechaPago = s.clock.Ahora()
	}

	p, err := normalizar(p)
	if err != nil {
		return domain.Pago{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Pago{}, almacenamiento(err)
	}
	return p, nil
}

func (s *Service) Actualizar(ctx context.Context, id domain.PagoID, cambios domain.CambiosPago) (domain.Pago, error) {
	p, err := s.Obtener(ctx, id)
	if err != nil {
		return domain.Pago{}, err
	}

	if cambios.Usuario != nil {
		p.Usuario = *cambios.Usuario
	}
	if cambios.QuinielaID != nil {
		p.QuinielaID = *cambios.QuinielaID
	}
	if cambios.Monto != nil {
		p.Monto = *cambios.Monto
	}
	if cambios.Metodo != nil {
		p.Metodo = *cambios.Metodo
	}
	if cambios.FechaPago != nil {
		p.FechaPago = *cambios.FechaPago
	}
	if cambios.Estado != nil {
		p.Estado = *cambios.Estado
	}
	if cambios.Notas != nil {
		p.Notas = *cambios.Notas
	}

	p, err = normalizar(p)
	if err != nil {
		return domain.Pago{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Pago{}, ErrPagoNoEncontrado
		}
		return domain.Pago{}, almacenamiento(err)
	}
	return p, nil
}

func (s *Service) Eliminar(ctx context.Context, id domain.PagoID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrPagoNoEncontrado
		}
		return almacenamiento(err)
	}
	return nil
}

func (s *Service) Obtener(ctx context.Context, id domain.PagoID) (domain.Pago, error) {
	if id == "" {
		return domain.Pago{}, ErrPagoNoEncontrado
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Pago{}, ErrPagoNoEncontrado
		}
		return domain.Pago{}, almacenamiento(err)
	}
	return p, nil
}

func (s *Service) Listar(ctx context.Context) ([]domain.Pago, error) {
	lista, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, almacenamiento(err)
	}
	return lista, nil
}

// Resumen suma solo los pagos en estado pagado.
func (s *Service) Resumen(ctx context.Context) (domain.ResumenPagos, error) {
	lista, err := s.Listar(ctx)
	if err != nil {
		return domain.ResumenPagos{}, err
	}
	return Resumir(lista), nil
}

func Resumir(pagos []domain.Pago) domain.ResumenPagos {
	r := domain.ResumenPagos{TotalRecaudado: decimal.Zero, Total: len(pagos)}
	for _, p := range pagos {
		switch p.Estado {
		case domain.EstadoPagado:
			r.Pagados++
			r.TotalRecaudado = r.TotalRecaudado.Add(p.Monto)
		case domain.EstadoPendiente:
			r.Pendientes++
		}
	}
	return r
}

func normalizar(p domain.Pago) (domain.Pago, error) {
	p.Usuario = strings.TrimSpace(p.Usuario)
	p.Notas = strings.TrimSpace(p.Notas)
	if p.Usuario == "" {
		return domain.Pago{}, fmt.Errorf("%w: el nombre del usuario es requerido", ErrValidacion)
	}
	if !p.Monto.IsPositive() {
		return domain.Pago{}, fmt.Errorf("%w: el monto debe ser mayor a 0", ErrValidacion)
	}
	if !p.Metodo.Valido() {
		return domain.Pago{}, fmt.Errorf("%w: metodo de pago %q desconocido", ErrValidacion, p.Metodo)
	}
	if !p.Estado.Valido() {
		return domain.Pago{}, fmt.Errorf("%w: estado de pago %q desconocido", ErrValidacion, p.Estado)
	}
	if p.FechaPago.IsZero() {
		return domain.Pago{}, fmt.Errorf("%w: la fecha de pago es requerida", ErrValidacion)
	}
	return p, nil
}

func almacenamiento(err error) error {
	return fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
}

var _ domain.PagoService = (*Service)(nil)
