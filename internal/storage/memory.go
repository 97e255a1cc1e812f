package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemoryEngine is an in-process Engine used by tests and local development.
// It honors the same contract as the Postgres engine, including an optional
// injected failure for exercising the degrade paths.
type MemoryEngine struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewMemory returns an empty in-memory engine.
func NewMemory() *MemoryEngine {
	return &MemoryEngine{collections: make(map[string]map[string][]byte)}
}

func (e *MemoryEngine) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailWith != nil {
		return nil, e.FailWith
	}

	ids := make([]string, 0, len(e.collections[collection]))
	for id := range e.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, json.RawMessage(e.collections[collection][id]))
	}
	return out, nil
}

func (e *MemoryEngine) Put(ctx context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailWith != nil {
		return e.FailWith
	}

	if e.collections[collection] == nil {
		e.collections[collection] = make(map[string][]byte)
	}
	e.collections[collection][id] = data
	return nil
}

func (e *MemoryEngine) Delete(ctx context.Context, collection, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.FailWith != nil {
		return e.FailWith
	}

	delete(e.collections[collection], id)
	return nil
}

// Count reports the number of records in a collection.
func (e *MemoryEngine) Count(collection string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.collections[collection])
}
