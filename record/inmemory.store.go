package record

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
)

// NewMemoryStore returns an in-memory Store over a single ordered collection
// of records, identified by their position in the collection. The collection
// starts empty and lives for the lifetime of the store instance.
//
// The model handle is retained but never read or mutated; it keeps the
// construction signature aligned with adapters that wrap a real model
// handle, e.g. one of an ORM. Pass nil if there is nothing to hold on to.
//
// Deleting a record shifts all subsequent records down one position, so IDs
// captured before a deletion at or before that position are invalid
// afterwards. Callers must tolerate this; use KeyedStore when IDs have to
// survive deletions.
//
// If your store needs additional methods, you can embed this store into your
// own implementation to extend it to your use case. See the examples in the
// test files.
func NewMemoryStore(model any, opts ...Option) *MemoryStore {
	store := &MemoryStore{
		Mutex: &sync.Mutex{},
		Data:  []Record{},
		model: model,
		storeConfig: storeConfig{
			validate: ValidField("valid"),
			snapshot: noopSnapshot{},
			filename: "records.json",
		},
	}

	for _, opt := range opts {
		opt(&store.storeConfig)
	}

	err := store.snapshot.Load(store.filename, &store.Data)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("could not load collection for memory store from snapshot: " + err.Error())
	}

	return store
}

// MemoryStore implements Store with positional IDs. Use it to exercise code
// written against a real persistence adapter without one.
type MemoryStore struct {
	// Mutex is embedded, so that stores which extend MemoryStore can lock
	// the same mutex as the other methods.
	*sync.Mutex

	// Data is the store's collection. It is exposed in case you're extending
	// the store. PREVENT using and accessing Data directly, go through the
	// store's methods. If you write to Data, USE the Mutex to lock first.
	Data []Record

	model any // held for the store's lifetime but never used, see NewMemoryStore

	storeConfig
}

var _ Store = (*MemoryStore)(nil)

func (store *MemoryStore) All(_ context.Context) ([]Record, error) {
	store.Lock()
	defer store.Unlock()

	all := make([]Record, len(store.Data))
	for i, rec := range store.Data {
		all[i] = rec.Clone()
	}

	return all, nil
}

func (store *MemoryStore) Find(_ context.Context, id int) (Record, error) {
	store.Lock()
	defer store.Unlock()

	rec, err := store.find(id)
	if err != nil {
		return nil, err
	}

	return rec.Clone(), nil
}

// find expects the caller to hold the lock.
func (store *MemoryStore) find(id int) (Record, error) {
	if id < 0 || id >= len(store.Data) {
		return nil, notFound()
	}

	return store.Data[id], nil
}

func (store *MemoryStore) Create(ctx context.Context, data Record) (int, error) {
	store.Lock()
	defer store.Unlock()

	if err := store.validate.Validate(ctx, data); err != nil {
		return 0, err
	}

	store.Data = append(store.Data, data.Clone())

	err := store.snapshot.Store(store.filename, store.Data)
	if err != nil {
		store.Data = store.Data[:len(store.Data)-1]
		return 0, fmt.Errorf("could not create: %w", err)
	}

	return len(store.Data) - 1, nil
}

func (store *MemoryStore) Update(ctx context.Context, id int, data Record) (Record, error) {
	store.Lock()
	defer store.Unlock()

	prev, err := store.find(id)
	if err != nil {
		return nil, err
	}

	merged := prev.Merge(data)
	if err := store.validate.Validate(ctx, merged); err != nil {
		return nil, err
	}

	store.Data[id] = merged

	err = store.snapshot.Store(store.filename, store.Data)
	if err != nil {
		store.Data[id] = prev
		return nil, fmt.Errorf("could not update: %w", err)
	}

	return prev, nil
}

func (store *MemoryStore) Replace(ctx context.Context, id int, data Record) (Record, error) {
	store.Lock()
	defer store.Unlock()

	prev, err := store.find(id)
	if err != nil {
		return nil, err
	}

	if err := store.validate.Validate(ctx, data); err != nil {
		return nil, err
	}

	store.Data[id] = data.Clone()

	err = store.snapshot.Store(store.filename, store.Data)
	if err != nil {
		store.Data[id] = prev
		return nil, fmt.Errorf("could not replace: %w", err)
	}

	return prev, nil
}

func (store *MemoryStore) Delete(_ context.Context, id int) (Record, error) {
	store.Lock()
	defer store.Unlock()

	prev, err := store.find(id)
	if err != nil {
		return nil, err
	}

	store.Data = slices.Delete(store.Data, id, id+1)

	err = store.snapshot.Store(store.filename, store.Data)
	if err != nil {
		store.Data = slices.Insert(store.Data, id, prev)
		return nil, fmt.Errorf("could not delete: %w", err)
	}

	return prev, nil
}

func (store *MemoryStore) Validate(ctx context.Context, data Record) error {
	return store.validate.Validate(ctx, data)
}

func (store *MemoryStore) Count(_ context.Context) (int, error) {
	store.Lock()
	defer store.Unlock()

	return len(store.Data), nil
}

func (store *MemoryStore) IsEmpty(ctx context.Context) (bool, error) {
	count, err := store.Count(ctx)

	return count == 0, err
}

func (store *MemoryStore) Exists(_ context.Context, id int) (bool, error) {
	store.Lock()
	defer store.Unlock()

	return id >= 0 && id < len(store.Data), nil
}

func (store *MemoryStore) Clear(_ context.Context) error {
	store.Lock()
	defer store.Unlock()

	old := store.Data
	store.Data = []Record{}

	err := store.snapshot.Store(store.filename, store.Data)
	if err != nil {
		store.Data = old
		return fmt.Errorf("could not clear: %w", err)
	}

	return nil
}
