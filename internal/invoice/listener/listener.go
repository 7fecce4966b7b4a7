package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// InvoiceListener creates automatic invoices for orders announced as completed.
type InvoiceListener struct {
	consumer MessageReader
	uc       invoice.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewInvoiceListener(consumer MessageReader, uc invoice.UseCase, logger logger.ZapLogger) *InvoiceListener {
	return &InvoiceListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *InvoiceListener) Start(ctx context.Context) {
	l.logger.Info("Starting Invoice Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Invoice Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *InvoiceListener) processMessage(ctx context.Context, value []byte) {
	var event model.OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != model.EventTypeOrderCompleted {
		return
	}

	orderID := event.Payload.ID
	l.logger.Info("Processing OrderCompleted event", zap.String("order_id", string(orderID)))

	inv, err := l.uc.CreateInvoiceFromOrder(ctx, orderID, auth.SystemUser, model.GenerationAutomatic)
	switch {
	case errors.Is(err, apperror.ErrDuplicateLink):
		// Redelivery, or the batch generator got there first.
		l.logger.Debug("Order already invoiced", zap.String("order_id", string(orderID)))
	case err != nil:
		l.logger.Error("Failed to invoice completed order",
			zap.String("order_id", string(orderID)),
			zap.Error(err),
		)
	default:
		l.logger.Info("Invoice generated from event",
			zap.String("order_id", string(orderID)),
			zap.String("invoice_id", string(inv.ID)),
		)
	}
}
