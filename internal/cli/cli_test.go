package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/cache"
	invRepo "github.com/fekuna/omnipos-fulfillment-service/internal/invoice/repository"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	ordRepo "github.com/fekuna/omnipos-fulfillment-service/internal/order/repository"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	podRepo "github.com/fekuna/omnipos-fulfillment-service/internal/pod/repository"
	podUC "github.com/fekuna/omnipos-fulfillment-service/internal/pod/usecase"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededFactory(t *testing.T) (ServiceFactory, recordstore.Store, *int) {
	t.Helper()
	ctx := context.Background()
	store := recordstore.NewMemoryStore()

	o := model.Order{ID: "o1", PONumber: "PO-1-001", Status: model.OrderStatusCompleted}
	o.SetItems([]model.OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")}})
	require.NoError(t, recordstore.Save(ctx, store, recordstore.CollectionOrders, []model.Order{o}))
	require.NoError(t, recordstore.Save(ctx, store, recordstore.CollectionPODs, []model.POD{{ID: "pod-1", PONumber: "PO-EXT"}}))

	closed := new(int)
	factory := func(ctx context.Context) (pod.UseCase, func() error, error) {
		orders := ordRepo.NewStoreRepository(store)
		svc := podUC.NewPODUseCase(podRepo.NewStoreRepository(store), orders, invRepo.NewStoreRepository(store),
			cache.NewLocalLocker(), podUC.Config{LockTTL: time.Second}, nil, logger.NewNop())
		return svc, func() error { *closed++; return nil }, nil
	}
	return factory, store, closed
}

func run(t *testing.T, factory ServiceFactory, args ...string) string {
	t.Helper()
	cmd := NewRootCommand(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestCommandPresence(t *testing.T) {
	factory, _, _ := seededFactory(t)
	cmd := NewRootCommand(factory)

	for _, name := range []string{"check", "fix"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	jsonFlag := cmd.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)
}

func TestCheckText(t *testing.T) {
	factory, _, closed := seededFactory(t)

	out := run(t, factory, "check")

	assert.Contains(t, out, "order_without_invoice")
	assert.Contains(t, out, "order:o1")
	assert.Contains(t, out, "orphan_pod")
	assert.Contains(t, out, "2 issue(s) found")
	assert.Less(t, bytes.Index([]byte(out), []byte("order_without_invoice")), bytes.Index([]byte(out), []byte("orphan_pod")))
	assert.Equal(t, 1, *closed)
}

func TestCheckJSON(t *testing.T) {
	factory, _, _ := seededFactory(t)

	out := run(t, factory, "check", "--json")

	var issues []model.IntegrityIssue
	require.NoError(t, json.Unmarshal([]byte(out), &issues))
	require.Len(t, issues, 2)
	assert.Equal(t, model.IssueOrderWithoutInvoice, issues[0].Type)
	assert.Equal(t, model.IssueOrphanPOD, issues[1].Type)
}

func TestFixCreatesInvoiceAndReportsRemaining(t *testing.T) {
	factory, store, _ := seededFactory(t)

	out := run(t, factory, "fix", "--user", "ops")

	assert.Contains(t, out, "fixed: 1, errors: 0")
	assert.Contains(t, out, "remaining issues: 1")

	invoices, err := recordstore.Load[model.Invoice](context.Background(), store, recordstore.CollectionInvoices)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, model.UserID("ops"), invoices[0].CreatedBy)
	assert.Equal(t, model.GenerationAutomatic, invoices[0].GenerationType)

	out = run(t, factory, "check")
	assert.NotContains(t, out, "order_without_invoice")
}

func TestFixJSON(t *testing.T) {
	factory, _, _ := seededFactory(t)

	out := run(t, factory, "fix", "--json")

	var res struct {
		Report struct {
			Fixed  int `json:"fixed"`
			Errors int `json:"errors"`
		} `json:"report"`
		Remaining []model.IntegrityIssue `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Report.Fixed)
	require.Len(t, res.Remaining, 1)
	assert.Equal(t, model.IssueOrphanPOD, res.Remaining[0].Type)
}
