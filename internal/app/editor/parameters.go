package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// ErrUnknownParameter is returned for ids the store does not hold.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameter is one automatable processor parameter.
type Parameter struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Value   float64 `json:"value"`
}

// Clamp limits v to the parameter range.
func (p Parameter) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// ParameterStore is the processor side of the editor.
type ParameterStore interface {
	Parameters() []Parameter
	Get(id string) (Parameter, bool)
	// Set clamps v to the parameter range, stores it and returns the
	// updated parameter.
	Set(id string, v float64) (Parameter, error)
}

// MemoryStore is an in-memory ParameterStore. Values may be set from any
// goroutine, e.g. an audio thread applying automation.
type MemoryStore struct {
	params *xsync.Map[string, Parameter]

	mu    sync.RWMutex
	order []string
}

var _ ParameterStore = (*MemoryStore)(nil)

func NewMemoryStore(params ...Parameter) *MemoryStore {
	s := &MemoryStore{params: xsync.NewMap[string, Parameter]()}
	for _, p := range params {
		s.Add(p)
	}
	return s
}

// Add registers p with its default value. Re-adding an id replaces it.
func (s *MemoryStore) Add(p Parameter) {
	if p.Max < p.Min {
		p.Min, p.Max = p.Max, p.Min
	}
	p.Default = p.Clamp(p.Default)
	p.Value = p.Default

	if _, loaded := s.params.LoadAndStore(p.ID, p); loaded {
		return
	}
	s.mu.Lock()
	s.order = append(s.order, p.ID)
	s.mu.Unlock()
}

// Parameters returns the parameters in registration order.
func (s *MemoryStore) Parameters() []Parameter {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()

	out := make([]Parameter, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.params.Load(id); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *MemoryStore) Get(id string) (Parameter, bool) {
	return s.params.Load(id)
}

func (s *MemoryStore) Set(id string, v float64) (Parameter, error) {
	p, ok := s.params.Compute(id, func(old Parameter, loaded bool) (Parameter, xsync.ComputeOp) {
		if !loaded {
			return old, xsync.CancelOp
		}
		old.Value = old.Clamp(v)
		return old, xsync.UpdateOp
	})
	if !ok {
		return Parameter{}, fmt.Errorf("%w %q", ErrUnknownParameter, id)
	}
	return p, nil
}
