// Paquete clock entrega la hora actual detrás de domain.Clock.
package clock

import (
	"sync"
	"time"
)

type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Ahora() time.Time {
	return time.Now().UTC()
}

// Fijo devuelve siempre el mismo instante hasta que se avance; sirve para pruebas y simulaciones.
type Fijo struct {
	mu    sync.Mutex
	ahora time.Time
}

func NewFijo(t time.Time) *Fijo {
	return &Fijo{ahora: t}
}

func (f *Fijo) Ahora() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ahora
}

func (f *Fijo) Avanzar(d time.Duration) {
	f.mu.Lock()
	f.ahora = f.ahora.Add(d)
	f.mu.Unlock()
}
