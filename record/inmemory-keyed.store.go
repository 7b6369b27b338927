package record

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewKeyedStore returns an in-memory store whose records are identified by
// generated UUIDs instead of positions. IDs stay valid across deletions,
// which makes it the better fit when captured IDs outlive mutations of the
// collection. Insertion order is preserved for All.
//
// Construction, validation, and snapshot behavior match NewMemoryStore.
func NewKeyedStore(model any, opts ...Option) *KeyedStore {
	store := &KeyedStore{
		Mutex: &sync.Mutex{},
		Data:  make(map[string]Record),
		order: []string{},
		model: model,
		storeConfig: storeConfig{
			validate: ValidField("valid"),
			snapshot: noopSnapshot{},
			filename: "records-keyed.json",
		},
	}

	for _, opt := range opts {
		opt(&store.storeConfig)
	}

	var collection keyedCollection

	err := store.snapshot.Load(store.filename, &collection)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("could not load collection for keyed store from snapshot: " + err.Error())
	}

	if collection.Records != nil {
		store.Data = collection.Records
		store.order = collection.Order
	}

	return store
}

// keyedCollection is the snapshot layout of a KeyedStore. The insertion
// order is kept explicitly, as map iteration would not preserve it.
type keyedCollection struct {
	Order   []string          `json:"order"`
	Records map[string]Record `json:"records"`
}

// KeyedStore is the stable-ID sibling of MemoryStore.
type KeyedStore struct {
	// Mutex is embedded, so that stores which extend KeyedStore can lock
	// the same mutex as the other methods.
	*sync.Mutex

	// Data is the store's collection, keyed by record ID. It is exposed in
	// case you're extending the store. PREVENT using and accessing Data
	// directly, go through the store's methods. If you write to Data, USE
	// the Mutex to lock first.
	Data  map[string]Record
	order []string

	model any // held for the store's lifetime but never used, see NewMemoryStore

	storeConfig
}

func (store *KeyedStore) All(_ context.Context) ([]Record, error) {
	store.Lock()
	defer store.Unlock()

	all := make([]Record, 0, len(store.order))
	for _, id := range store.order {
		all = append(all, store.Data[id].Clone())
	}

	return all, nil
}

func (store *KeyedStore) Find(_ context.Context, id string) (Record, error) {
	store.Lock()
	defer store.Unlock()

	rec, ok := store.Data[id]
	if !ok {
		return nil, notFound()
	}

	return rec.Clone(), nil
}

func (store *KeyedStore) Create(ctx context.Context, data Record) (string, error) {
	store.Lock()
	defer store.Unlock()

	if err := store.validate.Validate(ctx, data); err != nil {
		return "", err
	}

	id := uuid.New().String()
	store.Data[id] = data.Clone()
	store.order = append(store.order, id)

	err := store.snapshot.Store(store.filename, keyedCollection{Order: store.order, Records: store.Data})
	if err != nil {
		delete(store.Data, id)
		store.order = store.order[:len(store.order)-1]

		return "", fmt.Errorf("could not create: %w", err)
	}

	return id, nil
}

func (store *KeyedStore) Update(ctx context.Context, id string, data Record) (Record, error) {
	store.Lock()
	defer store.Unlock()

	prev, ok := store.Data[id]
	if !ok {
		return nil, notFound()
	}

	merged := prev.Merge(data)
	if err := store.validate.Validate(ctx, merged); err != nil {
		return nil, err
	}

	store.Data[id] = merged

	err := store.snapshot.Store(store.filename, keyedCollection{Order: store.order, Records: store.Data})
	if err != nil {
		store.Data[id] = prev
		return nil, fmt.Errorf("could not update: %w", err)
	}

	return prev, nil
}

func (store *KeyedStore) Replace(ctx context.Context, id string, data Record) (Record, error) {
	store.Lock()
	defer store.Unlock()

	prev, ok := store.Data[id]
	if !ok {
		return nil, notFound()
	}

	if err := store.validate.Validate(ctx, data); err != nil {
		return nil, err
	}

	store.Data[id] = data.Clone()

	err := store.snapshot.Store(store.filename, keyedCollection{Order: store.order, Records: store.Data})
	if err != nil {
		store.Data[id] = prev
		return nil, fmt.Errorf("could not replace: %w", err)
	}

	return prev, nil
}

func (store *KeyedStore) Delete(_ context.Context, id string) (Record, error) {
	store.Lock()
	defer store.Unlock()

	prev, ok := store.Data[id]
	if !ok {
		return nil, notFound()
	}

	pos := slices.Index(store.order, id)

	delete(store.Data, id)
	store.order = slices.Delete(store.order, pos, pos+1)

	err := store.snapshot.Store(store.filename, keyedCollection{Order: store.order, Records: store.Data})
	if err != nil {
		store.Data[id] = prev
		store.order = slices.Insert(store.order, pos, id)

		return nil, fmt.Errorf("could not delete: %w", err)
	}

	return prev, nil
}

func (store *KeyedStore) Validate(ctx context.Context, data Record) error {
	return store.validate.Validate(ctx, data)
}

func (store *KeyedStore) Count(_ context.Context) (int, error) {
	store.Lock()
	defer store.Unlock()

	return len(store.Data), nil
}

func (store *KeyedStore) IsEmpty(ctx context.Context) (bool, error) {
	count, err := store.Count(ctx)

	return count == 0, err
}

func (store *KeyedStore) Exists(_ context.Context, id string) (bool, error) {
	store.Lock()
	defer store.Unlock()

	_, ok := store.Data[id]

	return ok, nil
}

func (store *KeyedStore) Clear(_ context.Context) error {
	store.Lock()
	defer store.Unlock()

	oldData := store.Data
	oldOrder := store.order

	store.Data = make(map[string]Record)
	store.order = []string{}

	err := store.snapshot.Store(store.filename, keyedCollection{Order: store.order, Records: store.Data})
	if err != nil {
		store.Data = oldData
		store.order = oldOrder

		return fmt.Errorf("could not clear: %w", err)
	}

	return nil
}
