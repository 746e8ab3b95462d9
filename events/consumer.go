package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"travel-booking/models"
	"travel-booking/services"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange             = "travel.events"
	PaymentSucceededRoutingKey = "payment.succeeded.v1"
	PaymentFailedRoutingKey    = "payment.failed.v1"
	serviceName                = "travel-booking"
)

var errMalformed = errors.New("malformed payment event")

// PaymentEvent is published by the payment provider bridge when a payment for
// a transaction settles.
type PaymentEvent struct {
	EventID       string `json:"eventId"`
	TransactionID string `json:"transactionId"`
	InvoiceID     string `json:"invoiceId,omitempty"`
}

type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) (*models.Transaction, error)
}

func queueName(routingKey string) string {
	return serviceName + "." + routingKey
}

func statusFor(routingKey string) (models.TransactionStatus, bool) {
	switch routingKey {
	case PaymentSucceededRoutingKey:
		return models.StatusSuccess, true
	case PaymentFailedRoutingKey:
		return models.StatusFailed, true
	}
	return "", false
}

// StartPaymentConsumer declares the topic exchange and one durable queue per
// payment routing key, then applies each event until ctx is done.
func StartPaymentConsumer(ctx context.Context, conn *amqp.Connection, updater StatusUpdater) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}

	for _, key := range []string{PaymentSucceededRoutingKey, PaymentFailedRoutingKey} {
		q, err := ch.QueueDeclare(queueName(key), true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue declare %s: %w", key, err)
		}
		if err := ch.QueueBind(q.Name, key, EventsExchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", key, err)
		}

		msgs, err := ch.Consume(q.Name, serviceName, false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", key, err)
		}
		go consume(ctx, key, msgs, updater)
	}

	go func() {
		<-ctx.Done()
		ch.Close()
	}()

	return nil
}

func consume(ctx context.Context, key string, msgs <-chan amqp.Delivery, updater StatusUpdater) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping payment consumer", "routing_key", key)
			return
		case msg, ok := <-msgs:
			if !ok {
				slog.Warn("payment messages channel closed", "routing_key", key)
				return
			}

			err := HandlePaymentEvent(ctx, updater, msg.RoutingKey, msg.Body)
			switch dispositionFor(err) {
			case ack:
				_ = msg.Ack(false)
			case drop:
				slog.Warn("dropping payment event", "routing_key", msg.RoutingKey, "error", err)
				_ = msg.Nack(false, false)
			default:
				slog.Error("payment event failed, requeueing", "routing_key", msg.RoutingKey, "error", err)
				_ = msg.Nack(false, true)
			}
		}
	}
}

type disposition int

const (
	ack disposition = iota
	drop
	requeue
)

// dispositionFor decides what happens to a delivery after handling. Events
// that can never succeed are dropped; anything else is retried.
func dispositionFor(err error) disposition {
	switch {
	case err == nil:
		return ack
	case errors.Is(err, errMalformed), errors.Is(err, services.ErrNotFound):
		return drop
	}
	return requeue
}

// HandlePaymentEvent applies one payment event. A transaction that already
// left pending is left untouched and the event counts as handled.
func HandlePaymentEvent(ctx context.Context, updater StatusUpdater, routingKey string, body []byte) error {
	status, ok := statusFor(routingKey)
	if !ok {
		return fmt.Errorf("%w: unknown routing key %q", errMalformed, routingKey)
	}

	var ev PaymentEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if strings.TrimSpace(ev.TransactionID) == "" {
		return fmt.Errorf("%w: transactionId is required", errMalformed)
	}
	if err := uuid.Validate(ev.TransactionID); err != nil {
		return fmt.Errorf("%w: transactionId: %v", errMalformed, err)
	}

	_, err := updater.UpdateStatus(ctx, ev.TransactionID, status.String())
	if errors.Is(err, services.ErrPreconditionFailed) {
		slog.Info("payment event ignored for settled transaction",
			"transaction_id", ev.TransactionID, "event_id", ev.EventID, "reason", services.Message(err))
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("payment event applied", "transaction_id", ev.TransactionID, "event_id", ev.EventID, "status", status)
	return nil
}
