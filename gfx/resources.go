package gfx

import "sync"

// Resources owns built meshes keyed by geometry description.
//
// It stands in for GPU-resident buffers: everything acquired here must be
// released with Dispose when the owning view goes away.
type Resources struct {
	mu       sync.Mutex
	meshes   map[string]*Mesh
	disposed bool
}

func NewResources() *Resources {
	return &Resources{meshes: make(map[string]*Mesh)}
}

// Mesh returns the cached mesh for key, building it on first use.
//
// After Dispose, Mesh still builds but does not retain the result.
func (r *Resources) Mesh(key string, build func() *Mesh) *Mesh {
	if r == nil {
		return build()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meshes[key]; ok {
		return m
	}
	m := build()
	if !r.disposed {
		r.meshes[key] = m
	}
	return m
}

// Len reports the number of retained meshes.
func (r *Resources) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meshes)
}

// Dispose releases every retained mesh. It is safe to call more than once.
func (r *Resources) Dispose() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.meshes {
		delete(r.meshes, k)
	}
	r.disposed = true
}
