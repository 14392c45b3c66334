// Package clock provee la hora "ahora" inyectable para cálculos de ventana.
package clock

import (
	"sync"
	"time"
)

// Clock fuente de la hora actual.
type Clock interface {
	Now() time.Time
}

// System usa el reloj del servidor. Loc define el límite de día; nil = time.Local.
type System struct {
	Loc *time.Location
}

// Now devuelve la hora actual en Loc.
func (s System) Now() time.Time {
	if s.Loc != nil {
		return time.Now().In(s.Loc)
	}
	return time.Now()
}

// Fixed reloj manual para tests deterministas. Seguro para uso concurrente.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed crea un reloj detenido en t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set fija la hora.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Advance adelanta el reloj d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
