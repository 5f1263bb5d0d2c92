// Package permclient mantiene en memoria la instantánea de permisos de una empresa
// para consumidores Go (otros servicios, la CLI permctl) y responde consultas
// síncronas sobre ella.
package permclient

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Agenda-api/pkg/modules"
)

// State estado del Store.
type State int

const (
	// StateLoading no hay instantánea todavía.
	StateLoading State = iota
	// StateReady hay instantánea y ninguna carga en curso.
	StateReady
	// StateRefreshing hay instantánea y una carga en curso.
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Loader obtiene la instantánea vigente de una empresa.
type Loader interface {
	Load(ctx context.Context, companyID string) (modules.Permissions, error)
}

// LoaderFunc adapta una función a Loader.
type LoaderFunc func(ctx context.Context, companyID string) (modules.Permissions, error)

func (f LoaderFunc) Load(ctx context.Context, companyID string) (modules.Permissions, error) {
	return f(ctx, companyID)
}

// Option configura un Store.
type Option func(*Store)

// WithInitialSnapshot arranca el Store en ready con la instantánea dada; Start no hace fetch.
func WithInitialSnapshot(p modules.Permissions) Option {
	return func(s *Store) {
		snap := p.Complete()
		s.snap = &snap
		s.state = StateReady
	}
}

// WithLogger usa log para los fallos de carga.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithLanguage idioma de los mensajes de upgrade ("es" por defecto).
func WithLanguage(lang string) Option {
	return func(s *Store) { s.lang = modules.MatchLanguage(lang) }
}

// Store caché de la instantánea de permisos de una empresa.
//
// Cada carga toma un número de secuencia; su resultado solo se aplica si no se
// aplicó antes otro más reciente (carga o Set). Hay como máximo una carga en vuelo.
type Store struct {
	companyID string
	loader    Loader
	log       zerolog.Logger
	lang      string

	group singleflight.Group
	seq   atomic.Uint64

	mu      sync.RWMutex
	snap    *modules.Permissions
	state   State
	applied uint64
	subs    map[uint64]func(modules.Permissions)
	nextSub uint64
}

// New crea el Store de companyID. Sin WithInitialSnapshot arranca en loading.
func New(companyID string, loader Loader, opts ...Option) *Store {
	s := &Store{
		companyID: companyID,
		loader:    loader,
		log:       zerolog.Nop(),
		lang:      modules.DefaultLanguage,
		state:     StateLoading,
		subs:      make(map[uint64]func(modules.Permissions)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompanyID empresa a la que pertenece el Store.
func (s *Store) CompanyID() string {
	return s.companyID
}

// Start hace la primera carga si el Store no arrancó con instantánea.
func (s *Store) Start(ctx context.Context) error {
	if s.State() != StateLoading {
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh vuelve a consultar los permisos. Las llamadas concurrentes comparten la
// carga en vuelo. Si la carga falla se conserva la instantánea anterior y se
// devuelve el error para quien quiera inspeccionarlo.
func (s *Store) Refresh(ctx context.Context) error {
	// la carga compartida no depende de la cancelación del primer llamador
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan("refresh", func() (any, error) {
		return nil, s.fetch(shared)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) fetch(ctx context.Context) error {
	seq := s.seq.Add(1)

	s.mu.Lock()
	if s.snap != nil {
		s.state = StateRefreshing
	}
	s.mu.Unlock()

	p, err := s.loader.Load(ctx, s.companyID)
	if err != nil {
		s.mu.Lock()
		if s.snap != nil {
			s.state = StateReady
		}
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("company_id", s.companyID).Uint64("seq", seq).
			Msg("no se pudieron refrescar los permisos, se conserva la instantánea anterior")
		return err
	}
	s.apply(seq, p)
	return nil
}

// Set reemplaza la instantánea (por ejemplo con una recibida del servidor por otra vía).
// Cualquier carga iniciada antes queda obsoleta.
func (s *Store) Set(p modules.Permissions) {
	s.apply(s.seq.Add(1), p)
}

func (s *Store) apply(seq uint64, p modules.Permissions) {
	snap := p.Complete()

	s.mu.Lock()
	if seq <= s.applied {
		if s.snap != nil {
			s.state = StateReady
		}
		s.mu.Unlock()
		s.log.Debug().Str("company_id", s.companyID).Uint64("seq", seq).Uint64("applied", s.applied).
			Msg("resultado obsoleto descartado")
		return
	}
	s.snap = &snap
	s.applied = seq
	s.state = StateReady
	subs := make([]func(modules.Permissions), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap.Clone())
	}
}

// State estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot copia de la instantánea; ok=false si todavía no hay ninguna.
func (s *Store) Snapshot() (modules.Permissions, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return modules.Permissions{}, false
	}
	return s.snap.Clone(), true
}

// HasModule informa si el módulo está habilitado. Sin instantánea siempre es
// false; con instantánea responde lo mismo que el servidor resolvió, sin volver
// a aplicar el estado de la suscripción.
func (s *Store) HasModule(m modules.ModuleName) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return false
	}
	return s.snap.Has(m)
}

// IsSubscriptionActive false mientras no haya instantánea.
func (s *Store) IsSubscriptionActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil && s.snap.Active()
}

// UpgradeMessage texto a mostrar en lugar del contenido de un módulo denegado.
func (s *Store) UpgradeMessage(m modules.ModuleName) string {
	return modules.UpgradeMessage(m, s.lang)
}

// Subscribe registra fn para cada instantánea aplicada. Devuelve la función que
// cancela la suscripción.
func (s *Store) Subscribe(fn func(modules.Permissions)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
