// Package recordstore is the keyed collection store the fulfillment services
// read from and write to.
//
// A collection is read and replaced as a whole. There are no transactions,
// partial writes or concurrency tokens: every mutation is a
// read-collection, compute, write-collection sequence and callers must treat
// it as non-atomic.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	CollectionOrders   = "orders"
	CollectionInvoices = "invoices"
	CollectionPODs     = "pods"
	CollectionProducts = "products"
	CollectionStores   = "stores"
	CollectionUsers    = "users"
)

// Store reads and replaces whole collections. A collection that was never
// written reads as empty.
type Store interface {
	ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	WriteAll(ctx context.Context, collection string, records []json.RawMessage) error
}

// Load reads a collection and decodes every record into T.
func Load[T any](ctx context.Context, s Store, collection string) ([]T, error) {
	raw, err := s.ReadAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", collection, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Save encodes items and replaces the collection with them.
func Save[T any](ctx context.Context, s Store, collection string, items []T) error {
	raw := make([]json.RawMessage, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s[%d]: %w", collection, i, err)
		}
		raw[i] = b
	}
	if err := s.WriteAll(ctx, collection, raw); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

func encodeCollection(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	return json.Marshal(records)
}

func decodeCollection(data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
