package recordstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-fulfillment-service/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return newSQLiteStore(t) },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			t.Run("missing collection reads empty", func(t *testing.T) {
				got, err := Load[widget](ctx, s, "never-written")
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("write replaces whole collection", func(t *testing.T) {
				require.NoError(t, Save(ctx, s, "widgets", []widget{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}))
				require.NoError(t, Save(ctx, s, "widgets", []widget{{ID: "3", Name: "c"}}))

				got, err := Load[widget](ctx, s, "widgets")
				require.NoError(t, err)
				assert.Equal(t, []widget{{ID: "3", Name: "c"}}, got)
			})

			t.Run("collections are independent", func(t *testing.T) {
				require.NoError(t, Save(ctx, s, "left", []widget{{ID: "l"}}))
				require.NoError(t, Save(ctx, s, "right", []widget{}))

				left, err := Load[widget](ctx, s, "left")
				require.NoError(t, err)
				right, err := Load[widget](ctx, s, "right")
				require.NoError(t, err)
				assert.Len(t, left, 1)
				assert.Empty(t, right)
			})

			t.Run("preserves insertion order", func(t *testing.T) {
				items := []widget{{ID: "z"}, {ID: "a"}, {ID: "m"}}
				require.NoError(t, Save(ctx, s, "ordered", items))

				got, err := Load[widget](ctx, s, "ordered")
				require.NoError(t, err)
				assert.Equal(t, items, got)
			})
		})
	}
}

func TestLoadReportsDecodeErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.WriteAll(ctx, "widgets", []json.RawMessage{json.RawMessage(`{"id":1}`)}))

	_, err := Load[widget](ctx, s, "widgets")
	assert.ErrorContains(t, err, "decode widgets[0]")
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := json.RawMessage(`{"id":"1"}`)
	require.NoError(t, s.WriteAll(ctx, "widgets", []json.RawMessage{rec}))

	rec[2] = 'X'
	got, err := s.ReadAll(ctx, "widgets")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got[0]))
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().ReadAll(ctx, "widgets")
	assert.ErrorIs(t, err, context.Canceled)
}
