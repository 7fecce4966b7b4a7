package recordstore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps collections in process. Reads and writes copy the
// record slices so callers never share backing arrays with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]json.RawMessage)}
}

func (m *MemoryStore) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.collections[collection]), nil
}

func (m *MemoryStore) WriteAll(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = cloneRecords(records)
	return nil
}

func cloneRecords(records []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		out[i] = append(json.RawMessage(nil), r...)
	}
	return out
}
