// Paquete ids genera los identificadores ULID de quinielas, partidos, respuestas y pagos.
package ids

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/marcelojr/quinielas/internal/domain"
)

// Generator produce ULIDs ordenados por el reloj inyectado; dentro del mismo milisegundo la entropía es monótona.
type Generator struct {
	mu      sync.Mutex
	clock   domain.Clock
	entropy *ulid.MonotonicEntropy
}

// NewGenerator acepta clock y src nil: usa la hora del sistema y una fuente sembrada con ella.
func NewGenerator(clock domain.Clock, src io.Reader) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{clock: clock, entropy: ulid.Monotonic(src, 0)}
}

func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.ahora()), g.entropy).String()
}

func (g *Generator) Quiniela() domain.QuinielaID   { return domain.QuinielaID(g.New()) }
func (g *Generator) Partido() domain.PartidoID     { return domain.PartidoID(g.New()) }
func (g *Generator) Respuesta() domain.RespuestaID { return domain.RespuestaID(g.New()) }
func (g *Generator) Pago() domain.PagoID           { return domain.PagoID(g.New()) }

func (g *Generator) ahora() time.Time {
	if g.clock == nil {
		return time.Now().UTC()
	}
	return g.clock.Ahora()
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

func DefaultGenerator() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator(nil, nil)
	})
	return defaultGen
}
