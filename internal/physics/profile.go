package physics

import (
	"sort"
	"sync"

	"github.com/san-kum/diffsim/internal/dynamo"
)

const (
	StepLow  = 0.0
	StepHigh = 1.0
	StepMid  = 0.5 * (StepLow + StepHigh)

	ThresholdLeft  = 500.0
	ThresholdRight = 0.0
)

// ProfileFunc builds an initial field over g.
type ProfileFunc func(g dynamo.Grid) dynamo.Field

// Profiles maps profile names to initializers.
type Profiles struct {
	mu    sync.RWMutex
	funcs map[string]ProfileFunc
}

func NewProfiles() *Profiles {
	return &Profiles{funcs: make(map[string]ProfileFunc)}
}

// DefaultProfiles returns a registry holding "step" and "threshold".
func DefaultProfiles() *Profiles {
	p := NewProfiles()
	p.Register("step", StepProfile)
	p.Register("threshold", ThresholdProfile)
	return p
}

func (p *Profiles) Register(name string, fn ProfileFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.funcs[name] = fn
}

func (p *Profiles) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.funcs[name]
	return ok
}

// New builds the named profile. Unknown names fail with *dynamo.ProfileError.
func (p *Profiles) New(name string, g dynamo.Grid) (dynamo.Field, error) {
	p.mu.RLock()
	fn, ok := p.funcs[name]
	p.mu.RUnlock()
	if !ok {
		return nil, &dynamo.ProfileError{Name: name}
	}
	return fn(g), nil
}

func (p *Profiles) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.funcs))
	for name := range p.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultProfiles = DefaultProfiles()

// NewProfile builds a profile from the default registry.
func NewProfile(name string, g dynamo.Grid) (dynamo.Field, error) {
	return defaultProfiles.New(name, g)
}

// StepProfile splits the field at n/2: StepLow before, StepMid at, StepHigh after.
func StepProfile(g dynamo.Grid) dynamo.Field {
	return StepAt(g.Len(), g.Len()/2)
}

// StepAt returns a length-n field stepping from StepLow to StepHigh with StepMid at index at.
func StepAt(n, at int) dynamo.Field {
	c := make(dynamo.Field, n)
	for i := range c {
		switch {
		case i < at:
			c[i] = StepLow
		case i == at:
			c[i] = StepMid
		default:
			c[i] = StepHigh
		}
	}
	return c
}

// ThresholdProfile sets ThresholdLeft where x <= Lx/2 and ThresholdRight elsewhere.
func ThresholdProfile(g dynamo.Grid) dynamo.Field {
	c := make(dynamo.Field, g.Len())
	mid := g.Midpoint()
	for i := range c {
		if g.At(i) <= mid {
			c[i] = ThresholdLeft
		} else {
			c[i] = ThresholdRight
		}
	}
	return c
}
