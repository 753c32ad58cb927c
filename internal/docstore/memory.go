package docstore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store. Documents live for the lifetime of the process.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]json.RawMessage)}
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc any) error {
	if err := validateCollection(collection); err != nil {
		return &StorageError{Op: OpInsert, Collection: collection, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: OpInsert, Collection: collection, Err: err}
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return &StorageError{Op: OpInsert, Collection: collection, Err: err}
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], body)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) FindAll(ctx context.Context, collection string, opts ...FindOption) ([]json.RawMessage, error) {
	if err := validateCollection(collection); err != nil {
		return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
	}
	o := buildFindOptions(opts)

	s.mu.RLock()
	stored := s.collections[collection]
	n := min(len(stored), o.limit)
	docs := make([]json.RawMessage, n)
	copy(docs, stored[:n])
	s.mu.RUnlock()

	if len(o.exclude) == 0 {
		return docs, nil
	}
	for i, raw := range docs {
		projected, err := project(raw, o.exclude)
		if err != nil {
			return nil, &StorageError{Op: OpFind, Collection: collection, Err: err}
		}
		docs[i] = projected
	}
	return docs, nil
}

func project(raw json.RawMessage, exclude []string) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for _, f := range exclude {
		delete(fields, f)
	}
	return json.Marshal(fields)
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: OpPing, Err: err}
	}
	return nil
}

func (s *MemoryStore) Close() {}
