// Package storetest holds record store doubles for service tests.
package storetest

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
)

var ErrInjected = errors.New("injected store failure")

// FailingStore delegates to Store but fails reads or writes of the listed collections.
type FailingStore struct {
	recordstore.Store
	FailReads  map[string]bool
	FailWrites map[string]bool
}

func (f *FailingStore) ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if f.FailReads[collection] {
		return nil, ErrInjected
	}
	return f.Store.ReadAll(ctx, collection)
}

func (f *FailingStore) WriteAll(ctx context.Context, collection string, records []json.RawMessage) error {
	if f.FailWrites[collection] {
		return ErrInjected
	}
	return f.Store.WriteAll(ctx, collection, records)
}
