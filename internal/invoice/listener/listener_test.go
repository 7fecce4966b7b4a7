package listener

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// scriptedReader replays messages and cancels the listener once drained.
type scriptedReader struct {
	messages []kafka.Message
	cancel   context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

type call struct {
	orderID   model.OrderID
	createdBy model.UserID
	gen       model.GenerationType
}

type recordingUseCase struct {
	invoice.UseCase
	calls []call
	err   error
}

func (u *recordingUseCase) CreateInvoiceFromOrder(_ context.Context, orderID model.OrderID, createdBy model.UserID, gen model.GenerationType) (*model.Invoice, error) {
	u.calls = append(u.calls, call{orderID, createdBy, gen})
	if u.err != nil {
		return nil, u.err
	}
	return &model.Invoice{ID: "inv-" + model.InvoiceID(orderID), OrderID: orderID}, nil
}

func encode(t *testing.T, event model.OrderEvent) kafka.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestListenerInvoicesCompletedOrders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{cancel: cancel, messages: []kafka.Message{
		encode(t, model.OrderEvent{EventType: model.EventTypeOrderCompleted, Payload: model.OrderPayload{ID: "o1"}, Timestamp: time.Now()}),
		encode(t, model.OrderEvent{EventType: "OrderCreated", Payload: model.OrderPayload{ID: "o2"}}),
		{Value: []byte("not json")},
	}}
	uc := &recordingUseCase{}

	core, logs := observer.New(zapcore.DebugLevel)
	l := NewInvoiceListener(reader, uc, logger.FromZap(zap.New(core)))
	l.Start(ctx)

	require.Len(t, uc.calls, 1)
	assert.Equal(t, call{"o1", auth.SystemUser, model.GenerationAutomatic}, uc.calls[0])
	assert.Equal(t, 1, logs.FilterMessage("Failed to unmarshal event").Len())
	assert.Equal(t, 1, logs.FilterMessage("Invoice generated from event").Len())
}

func TestListenerToleratesRedelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{cancel: cancel, messages: []kafka.Message{
		encode(t, model.OrderEvent{EventType: model.EventTypeOrderCompleted, Payload: model.OrderPayload{ID: "o1"}}),
	}}
	uc := &recordingUseCase{err: apperror.DuplicateLink("createInvoiceFromOrder", "order", "o1")}

	core, logs := observer.New(zapcore.DebugLevel)
	NewInvoiceListener(reader, uc, logger.FromZap(zap.New(core))).Start(ctx)

	assert.Len(t, uc.calls, 1)
	assert.Equal(t, 1, logs.FilterMessage("Order already invoiced").Len())
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
