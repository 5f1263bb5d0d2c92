package permclient

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Registry mantiene un Store por empresa en un LRU acotado con expiración.
// Un Store expulsado se vuelve a crear (y cargar) en el siguiente Get.
type Registry struct {
	loader Loader
	opts   []Option

	mu    sync.Mutex
	cache *lru.LRU[string, *Store]
}

// NewRegistry crea el registro. size<=0 usa 1024 entradas; ttl<=0 no expira.
func NewRegistry(loader Loader, size int, ttl time.Duration, opts ...Option) *Registry {
	if size <= 0 {
		size = 1024
	}
	return &Registry{
		loader: loader,
		opts:   opts,
		cache:  lru.NewLRU[string, *Store](size, nil, ttl),
	}
}

// Get devuelve el Store de la empresa, creándolo y haciendo la primera carga si no existe.
// Si la primera carga falla el Store se devuelve igual (fail closed) junto con el error.
func (r *Registry) Get(ctx context.Context, companyID string) (*Store, error) {
	r.mu.Lock()
	s, ok := r.cache.Get(companyID)
	if !ok {
		s = New(companyID, r.loader, r.opts...)
		r.cache.Add(companyID, s)
	}
	r.mu.Unlock()

	return s, s.Start(ctx)
}

// Peek devuelve el Store si ya existe, sin crearlo ni alterar el orden LRU.
func (r *Registry) Peek(companyID string) (*Store, bool) {
	return r.cache.Peek(companyID)
}

// Invalidate refresca el Store de la empresa si está en el registro.
func (r *Registry) Invalidate(ctx context.Context, companyID string) error {
	s, ok := r.cache.Peek(companyID)
	if !ok {
		return nil
	}
	return s.Refresh(ctx)
}

// Remove descarta el Store de la empresa.
func (r *Registry) Remove(companyID string) {
	r.cache.Remove(companyID)
}

// Len cantidad de Stores vivos.
func (r *Registry) Len() int {
	return r.cache.Len()
}
