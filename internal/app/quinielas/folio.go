package quinielas

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/marcelojr/quinielas/internal/domain"
)

// GeneradorFolio produce folios QUI-<epochMillis>-<000..999>.
type GeneradorFolio struct {
	mu    sync.Mutex
	clock domain.Clock
	rnd   *rand.Rand
}

// NewGeneradorFolio acepta una fuente fija para tests; nil usa una sembrada con la hora.
func NewGeneradorFolio(clock domain.Clock, src rand.Source) *GeneradorFolio {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &GeneradorFolio{clock: clock, rnd: rand.New(src)}
}

func (g *GeneradorFolio) Nuevo() string {
	g.mu.Lock()
	n := g.rnd.Intn(1000)
	g.mu.Unlock()
	return fmt.Sprintf("QUI-%d-%03d", g.clock.Ahora().UnixMilli(), n)
}
