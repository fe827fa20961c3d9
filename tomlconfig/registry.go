package tomlconfig

import (
	"path/filepath"
	"strings"
	"sync"
)

// Registry keeps the active configurations of a process, keyed by backing
// file. Registering a second instance for the same file replaces the first.
type Registry struct {
	mu     sync.RWMutex
	byPath map[string]*Instance
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byPath: make(map[string]*Instance)}
}

// Register adds inst under its path. Instances without a path are ignored.
func (r *Registry) Register(inst *Instance) {
	if inst == nil || inst.Path() == "" {
		return
	}
	key := filepath.Clean(inst.Path())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPath[key]; !exists {
		r.order = append(r.order, key)
	}
	r.byPath[key] = inst
}

// Lookup returns the instance bound to path.
func (r *Registry) Lookup(path string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.byPath[filepath.Clean(path)]
	return inst, ok
}

// LookupName returns the first registered instance whose schema name
// matches name, ignoring case.
func (r *Registry) LookupName(name string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range r.order {
		if inst := r.byPath[key]; strings.EqualFold(inst.Name(), name) {
			return inst, true
		}
	}
	return nil, false
}

// All returns the registered instances in registration order.
func (r *Registry) All() []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Instance, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byPath[key])
	}
	return out
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byPath)
}

// Clear removes every instance.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPath = make(map[string]*Instance)
	r.order = nil
}
