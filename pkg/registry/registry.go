package registry

import (
	"sort"
	"sync"

	"github.com/openecomap/ecomap/pkg/identity"
)

// Registry is the identity-keyed collection of canonical entities.
// It is exclusively owned by the reconciler during a run; the mutex only
// guards against accidental cross-goroutine reads while a run is active.
type Registry struct {
	mu       sync.RWMutex
	entities map[identity.Key]*Entity
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entities: make(map[identity.Key]*Entity),
	}
}

// Get returns an entity by identity key.
func (r *Registry) Get(key identity.Key) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, found := r.entities[key]
	return e, found
}

// Set stores an entity under its identity key.
func (r *Registry) Set(e *Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[e.ID] = e
}

// Delete removes an entity by identity key.
func (r *Registry) Delete(key identity.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entities, key)
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// List returns all entities sorted by identity key for deterministic output.
func (r *Registry) List() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*Entity, 0, len(r.entities))
	for _, e := range r.entities {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Kind returns all entities of the given kind, sorted by identity key.
func (r *Registry) Kind(kind Kind) []*Entity {
	var list []*Entity
	for _, e := range r.List() {
		if e.Kind == kind {
			list = append(list, e)
		}
	}
	return list
}

// Startups returns all startup entities.
func (r *Registry) Startups() []*Entity {
	return r.Kind(KindStartup)
}

// InvestorNames returns the display names of all investor and supporter
// entities. The legitimacy filter uses these to reject self-references.
func (r *Registry) InvestorNames() []string {
	var names []string
	for _, e := range r.List() {
		if e.Kind == KindInvestor || e.Kind == KindSupporter {
			names = append(names, e.Name)
		}
	}
	return names
}

// Copy returns a deep copy of the registry. The reconciler copies its
// baseline so a failed run never leaves the previous snapshot half-mutated.
func (r *Registry) Copy() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := New()
	for key, e := range r.entities {
		clone.entities[key] = e.Copy()
	}
	return clone
}
