package registry

import "sync"

// Registry is a concurrency-safe key/value store whose keys can be frozen.
// Extension points (api modules, cron jobs, commands) collect entries during
// init and lock their key once applied.
type Registry struct {
	mu     sync.RWMutex
	values map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry holds process-wide extension registries.
var GlobalRegistry = New()

func New() *Registry {
	return &Registry{
		values: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
}

// SetGlobal stores value under key. Panics if key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		panic("registry: key " + key + " is locked")
	}
	r.values[key] = value
}

func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// Lock freezes key; later SetGlobal calls on it panic.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	r.locked[key] = true
	r.mu.Unlock()
}

func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting reopens a locked key.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	delete(r.locked, key)
	r.mu.Unlock()
}

// RequestRegistry is a per-request scratch space, created by request middleware.
type RequestRegistry struct {
	mu     sync.Mutex
	values map[string]interface{}
}

func NewRequestRegistry() *RequestRegistry {
	return &RequestRegistry{values: make(map[string]interface{})}
}

func (r *RequestRegistry) Set(key string, value interface{}) {
	r.mu.Lock()
	r.values[key] = value
	r.mu.Unlock()
}

func (r *RequestRegistry) Get(key string) (interface{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	return v, ok
}
