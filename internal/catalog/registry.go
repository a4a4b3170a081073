package catalog

import "sync"

// Registry remembers every train the process has served so later lookups
// by id resolve to the same record. A re-registered id replaces the older
// snapshot.
type Registry struct {
	mu     sync.RWMutex
	trains map[int]*Train
}

func NewRegistry() *Registry {
	return &Registry{trains: make(map[int]*Train)}
}

func (r *Registry) Register(trains ...Train) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range trains {
		r.trains[trains[i].ID] = trains[i].Clone()
	}
}

// Lookup returns a private copy of the train registered under id
func (r *Registry) Lookup(id int) (*Train, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trains[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trains)
}
