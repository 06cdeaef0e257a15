// Paquete acceso protege la superficie de administración con el PIN guardado en config/security.
package acceso

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/marcelojr/quinielas/internal/domain"
	"github.com/marcelojr/quinielas/internal/platform/logger"
)

const LongitudPin = 6

var (
	ErrValidacion       = errors.New("datos invalidos")
	ErrPinIncorrecto    = errors.New("PIN incorrecto")
	ErrSinConfiguracion = errors.New("no se encontro la configuracion de seguridad")
	ErrAlmacenamiento   = errors.New("no se pudo leer la configuracion, intenta de nuevo")
)

type Service struct {
	config   domain.ConfigRepository
	sesiones domain.Sesiones
}

func NewService(config domain.ConfigRepository, sesiones domain.Sesiones) *Service {
	return &Service{config: config, sesiones: sesiones}
}

// Login compara sin distinguir mayúsculas y, si coincide, abre una sesión nueva.
func (s *Service) Login(ctx context.Context, pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return "", ErrPinIncorrecto
	}
	seg, err := s.seguridad(ctx)
	if err != nil {
		return "", err
	}
	if !pinIgual(pin, seg.PinAdmin) {
		return "", ErrPinIncorrecto
	}

	token, err := s.sesiones.Crear(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sesiones.Eliminar(ctx, token); err != nil {
		return fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return nil
}

func (s *Service) Validar(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	ok, err := s.sesiones.Validar(ctx, token)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return ok, nil
}

func (s *Service) CambiarPin(ctx context.Context, actual, nuevo, confirmacion string) error {
	actual = strings.TrimSpace(actual)
	nuevo = strings.TrimSpace(nuevo)
	confirmacion = strings.TrimSpace(confirmacion)
	if actual == "" || nuevo == "" || confirmacion == "" {
		return fmt.Errorf("%w: todos los campos son requeridos", ErrValidacion)
	}
	if utf8.RuneCountInString(nuevo) != LongitudPin {
		return fmt.Errorf("%w: el nuevo PIN debe tener %d caracteres", ErrValidacion, LongitudPin)
	}
	if nuevo != confirmacion {
		return fmt.Errorf("%w: los PINs nuevos no coinciden", ErrValidacion)
	}

	seg, err := s.seguridad(ctx)
	if err != nil {
		return err
	}
	if !pinIgual(actual, seg.PinAdmin) {
		return ErrPinIncorrecto
	}

	if err := s.config.GuardarSeguridad(ctx, domain.ConfigSeguridad{PinAdmin: strings.ToUpper(nuevo)}); err != nil {
		return fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	logger.Info("pin de administrador actualizado")
	return nil
}

// AsegurarPin siembra config/security al arrancar si todavía no existe; nunca pisa un PIN guardado.
func (s *Service) AsegurarPin(ctx context.Context, pinInicial string) (bool, error) {
	_, err := s.config.ObtenerSeguridad(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}

	pinInicial = strings.TrimSpace(pinInicial)
	if pinInicial == "" {
		return false, ErrSinConfiguracion
	}
	if utf8.RuneCountInString(pinInicial) != LongitudPin {
		return false, fmt.Errorf("%w: el PIN inicial debe tener %d caracteres", ErrValidacion, LongitudPin)
	}
	if err := s.config.GuardarSeguridad(ctx, domain.ConfigSeguridad{PinAdmin: strings.ToUpper(pinInicial)}); err != nil {
		return false, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return true, nil
}

// ObtenerGeneral devuelve una configuración vacía si el documento aún no existe.
func (s *Service) ObtenerGeneral(ctx context.Context) (domain.ConfigGeneral, error) {
	c, err := s.config.ObtenerGeneral(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ConfigGeneral{}, nil
	}
	if err != nil {
		return domain.ConfigGeneral{}, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return c, nil
}

func (s *Service) GuardarGeneral(ctx context.Context, c domain.ConfigGeneral) error {
	c.JornadaActual = strings.TrimSpace(c.JornadaActual)
	if c.JornadaActual == "" {
		return fmt.Errorf("%w: la jornada es requerida", ErrValidacion)
	}
	if err := s.config.GuardarGeneral(ctx, c); err != nil {
		return fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return nil
}

func (s *Service) seguridad(ctx context.Context) (domain.ConfigSeguridad, error) {
	seg, err := s.config.ObtenerSeguridad(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ConfigSeguridad{}, ErrSinConfiguracion
	}
	if err != nil {
		return domain.ConfigSeguridad{}, fmt.Errorf("%w: %w", ErrAlmacenamiento, err)
	}
	return seg, nil
}

func pinIgual(ingresado, guardado string) bool {
	a := []byte(strings.ToUpper(ingresado))
	b := []byte(strings.ToUpper(guardado))
	return subtle.ConstantTimeCompare(a, b) == 1
}

var _ domain.AccesoService = (*Service)(nil)
