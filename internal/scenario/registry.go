package scenario

import "sync"

// Registry holds the known scenarios and the single active one.
// Activation is a pointer swap: already-generated history is never rewritten.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*Scenario
	order  []string
	active *Scenario
}

// NewRegistry constructs a registry. The first scenario is active; with no
// arguments the builtin set is loaded and "normal" is active.
func NewRegistry(scenarios ...Scenario) *Registry {
	if len(scenarios) == 0 {
		scenarios = Builtin()
	}
	r := &Registry{byID: make(map[string]*Scenario, len(scenarios))}
	for i := range scenarios {
		sc := scenarios[i]
		if _, dup := r.byID[sc.ID]; dup {
			continue
		}
		r.byID[sc.ID] = &sc
		r.order = append(r.order, sc.ID)
	}
	if len(r.order) > 0 {
		r.active = r.byID[r.order[0]]
	}
	return r
}

// Active returns the currently active scenario.
func (r *Registry) Active() *Scenario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Activate switches the active scenario. Unknown ids are ignored and the
// previous scenario stays active; the return reports whether a switch
// happened.
func (r *Registry) Activate(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.byID[id]
	if !ok {
		return false
	}
	r.active = sc
	return true
}

// IDs lists the known scenario ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
