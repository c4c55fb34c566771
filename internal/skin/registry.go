package skin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zjrosen/skinstore/internal/log"
	"github.com/zjrosen/skinstore/internal/tagtree"
)

var (
	// ErrAlreadyExists is returned by Put when the name is taken.
	ErrAlreadyExists = errors.New("skin already exists")
	// ErrNotInitialized is returned by operations on a registry that has
	// not been through Initialize.
	ErrNotInitialized = errors.New("registry not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("registry already initialized")
)

// State is the registry lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Registry is a thread-safe name to Record map with a one-way
// Uninitialized -> Ready lifecycle. Flushing reads the current state and
// does not close the registry.
type Registry struct {
	mu      sync.RWMutex
	state   State
	records map[string]Record
}

// NewRegistry creates an uninitialized Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize decodes a persisted store and moves the registry to Ready.
// A nil data slice means no store exists yet and yields an empty registry.
// A stream that cannot be decoded returns a *tagtree.DecodingError and
// leaves the registry uninitialized.
func (r *Registry) Initialize(data []byte) error {
	if data == nil {
		return r.InitializeTree(nil)
	}
	_, root, err := tagtree.Unmarshal(data)
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to decode store", err, "bytes", len(data))
		return fmt.Errorf("decoding store: %w", err)
	}
	return r.InitializeTree(root)
}

// InitializeTree populates the registry from an already decoded root.
func (r *Registry) InitializeTree(root *tagtree.Compound) error {
	records := Load(root)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	r.records = records
	r.state = StateReady

	if skipped := root.Len() - len(records); skipped > 0 {
		log.Warn(log.CatStore, "Skipped malformed entries", "skipped", skipped)
	}
	log.Debug(log.CatStore, "Registry initialized", "records", len(records))
	return nil
}

// Get returns a copy of the record stored under name.
func (r *Registry) Get(name string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[name]
	if !ok {
		return Record{}, false
	}
	return rec.Clone(), true
}

// Exists reports whether name is present.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[name]
	return ok
}

// Put stores rec under name unless the name is already taken, in which
// case it returns ErrAlreadyExists and leaves the registry unchanged. A
// record that could not be written to the store is rejected with a
// *tagtree.EncodingError.
func (r *Registry) Put(name string, rec Record) error {
	if err := encodable(name, rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return ErrNotInitialized
	}
	if _, exists := r.records[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	r.records[name] = rec.Clone()
	log.Debug(log.CatStore, "Saved skin", "name", name, "id", rec.ID)
	return nil
}

// Replace stores rec under name, overwriting any existing record. It
// rejects unencodable records the same way Put does.
func (r *Registry) Replace(name string, rec Record) error {
	if err := encodable(name, rec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return ErrNotInitialized
	}
	r.records[name] = rec.Clone()
	log.Debug(log.CatStore, "Replaced skin", "name", name, "id", rec.ID)
	return nil
}

// Names returns the stored names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Tree flattens the current records into a root compound.
func (r *Registry) Tree() (*tagtree.Compound, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.state != StateReady {
		return nil, ErrNotInitialized
	}
	return Save(r.records), nil
}

// Serialize encodes the current records in the persisted file format.
func (r *Registry) Serialize() ([]byte, error) {
	root, err := r.Tree()
	if err != nil {
		return nil, err
	}
	data, err := tagtree.Marshal("", root)
	if err != nil {
		return nil, fmt.Errorf("encoding store: %w", err)
	}
	return data, nil
}

// encodable reports whether name and rec fit the store's length prefixes,
// so oversized input fails at the call that introduced it rather than at
// flush.
func encodable(name string, rec Record) error {
	if _, err := tagtree.Marshal("", Save(map[string]Record{name: rec})); err != nil {
		return fmt.Errorf("skin %.32q: %w", name, err)
	}
	return nil
}
