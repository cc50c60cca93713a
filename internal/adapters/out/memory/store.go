// Package memory is an in-process store behind the repository ports.
//
// Committed state is an immutable snapshot swapped atomically on commit, so
// readers never block and always see one committed state. A unit of work reads
// from the snapshot taken at Begin plus its own staged writes. Writes are
// staged as operations and replayed onto the latest state under a commit
// mutex; rows read through GetForUpdate (and purchase orders read inside a
// transaction) are locked until the unit of work ends, which makes
// read-modify-write of those rows linearizable.
package memory

import (
	"errors"
	"maps"
	"sync"
	"sync/atomic"

	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/keylock"
)

var (
	// ErrNoTransaction is returned by Commit and Rollback without Begin.
	ErrNoTransaction = errors.New("no active transaction")
	// ErrDuplicateKey is returned by Add for a key that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
)

// state is one committed version of every table, keyed like the database.
type state struct {
	stock    map[string]stockRecord
	orders   map[string]orderRecord
	picks    map[warehouse.LineRef]struct{}
	putaways map[string]putawayRecord
	sessions map[string][]string
	pos      map[string]purchaseOrderRecord
}

// newState returns empty tables.
func newState() *state {
	return &state{
		stock:    make(map[string]stockRecord),
		orders:   make(map[string]orderRecord),
		picks:    make(map[warehouse.LineRef]struct{}),
		putaways: make(map[string]putawayRecord),
		sessions: make(map[string][]string),
		pos:      make(map[string]purchaseOrderRecord),
	}
}

// clone copies the maps. Records are values and are shared safely.
func (s *state) clone() *state {
	return &state{
		stock:    maps.Clone(s.stock),
		orders:   maps.Clone(s.orders),
		picks:    maps.Clone(s.picks),
		putaways: maps.Clone(s.putaways),
		sessions: maps.Clone(s.sessions),
		pos:      maps.Clone(s.pos),
	}
}

// op is one staged write. It must only replace whole records.
type op func(*state) error

// Store holds committed state for every repository.
type Store struct {
	current   atomic.Pointer[state]
	commitMu  sync.Mutex
	rows      *keylock.Locker
	publisher ports.EventPublisher
}

// NewStore returns an empty store. Committed order status changes go to publisher.
func NewStore(publisher ports.EventPublisher) *Store {
	s := &Store{rows: keylock.New(), publisher: publisher}
	s.current.Store(newState())
	return s
}

// snapshot returns the latest committed state. Callers must not mutate it.
func (s *Store) snapshot() *state {
	return s.current.Load()
}

// apply replays ops onto a copy of the latest state and publishes it. Nothing
// is published when any op fails.
func (s *Store) apply(ops []op) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	next := s.current.Load().clone()
	for _, o := range ops {
		if err := o(next); err != nil {
			return err
		}
	}
	s.current.Store(next)
	return nil
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory over store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a unit of work that has not begun.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return newUnitOfWork(f.store)
}
