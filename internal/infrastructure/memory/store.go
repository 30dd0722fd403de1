// Package memory implementa los puertos de repositorio en memoria.
// Se usa en tests; TxRunner hace rollback restaurando un snapshot.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq         map[string]int64
	users       map[int64]entity.User
	permissions map[int64]entity.Permission
	rolePerms   map[string]map[int64]struct{}
	overrides   map[int64]map[int64]bool
	categories  map[int64]entity.Category
	suppliers   map[int64]entity.Supplier
	products    map[int64]entity.Product
	sales       map[int64]entity.Sale
	lines       map[int64]entity.SaleLine
	movements   map[int64]entity.StockMovement

	failures map[string]error

	// Now reloj del store (reemplazable en tests).
	Now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		seq:         map[string]int64{},
		users:       map[int64]entity.User{},
		permissions: map[int64]entity.Permission{},
		rolePerms:   map[string]map[int64]struct{}{},
		overrides:   map[int64]map[int64]bool{},
		categories:  map[int64]entity.Category{},
		suppliers:   map[int64]entity.Supplier{},
		products:    map[int64]entity.Product{},
		sales:       map[int64]entity.Sale{},
		lines:       map[int64]entity.SaleLine{},
		movements:   map[int64]entity.StockMovement{},
		failures:    map[string]error{},
		Now:         time.Now,
	}
}

// FailOn hace que la próxima llamada a op (ej. "sales.add_line") devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// fail consume el fallo inyectado para op. Llamar con mu tomado.
func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

type snapshot struct {
	seq         map[string]int64
	users       map[int64]entity.User
	permissions map[int64]entity.Permission
	rolePerms   map[string]map[int64]struct{}
	overrides   map[int64]map[int64]bool
	categories  map[int64]entity.Category
	suppliers   map[int64]entity.Supplier
	products    map[int64]entity.Product
	sales       map[int64]entity.Sale
	lines       map[int64]entity.SaleLine
	movements   map[int64]entity.StockMovement
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		seq:         copyMap(s.seq),
		users:       copyMap(s.users),
		permissions: copyMap(s.permissions),
		rolePerms:   make(map[string]map[int64]struct{}, len(s.rolePerms)),
		overrides:   make(map[int64]map[int64]bool, len(s.overrides)),
		categories:  copyMap(s.categories),
		suppliers:   copyMap(s.suppliers),
		products:    copyMap(s.products),
		sales:       copyMap(s.sales),
		lines:       copyMap(s.lines),
		movements:   copyMap(s.movements),
	}
	for k, v := range s.rolePerms {
		snap.rolePerms[k] = copyMap(v)
	}
	for k, v := range s.overrides {
		snap.overrides[k] = copyMap(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.users = snap.users
	s.permissions = snap.permissions
	s.rolePerms = snap.rolePerms
	s.overrides = snap.overrides
	s.categories = snap.categories
	s.suppliers = snap.suppliers
	s.products = snap.products
	s.sales = snap.sales
	s.lines = snap.lines
	s.movements = snap.movements
}

// Counts conteos por tabla (aserciones en tests).
type Counts struct {
	Sales, Lines, Movements int
}

// Counts devuelve los conteos actuales.
func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{Sales: len(s.sales), Lines: len(s.lines), Movements: len(s.movements)}
}
