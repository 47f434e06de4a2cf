package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"order-service/internal/domain"
	"order-service/internal/infra/rabbitmq"
)

// ProcessFunc runs the asynchronous business logic for one order. It must
// be idempotent: at-least-once delivery means the same order id can arrive
// more than once.
type ProcessFunc func(ctx context.Context, orderID string) error

// Worker is the long-lived queue consumer. Run supervises the connection:
// a broken channel triggers a reconnect with backoff until the context is
// canceled.
type Worker struct {
	url     string
	queue   string
	process ProcessFunc
	requeue bool
	backoff time.Duration
}

func New(url, queue string, process ProcessFunc, requeue bool) *Worker {
	return &Worker{
		url:     url,
		queue:   queue,
		process: process,
		requeue: requeue,
		backoff: 5 * time.Second,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := w.consume(ctx); err != nil {
			log.Error().Err(err).Str("queue", w.queue).Msg("consumer stopped")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.backoff):
		}
		log.Info().Str("queue", w.queue).Msg("reconnecting consumer")
	}
}

func (w *Worker) consume(ctx context.Context) error {
	consumer, err := rabbitmq.NewConsumer(w.url, w.queue)
	if err != nil {
		return err
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		return err
	}
	log.Info().Str("queue", w.queue).Msg("consumer connected")

	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, m)
		}
	}
}

// handle processes one delivery. Malformed events are acked and dropped,
// never retried. Handler failures are isolated: the message is nacked and
// either requeued or dead-lettered per policy.
func (w *Worker) handle(ctx context.Context, m amqp.Delivery) {
	var evt domain.OrderEvent
	if err := json.Unmarshal(m.Body, &evt); err != nil {
		log.Warn().Err(err).Msg("dropping malformed event")
		_ = m.Ack(false)
		return
	}
	if evt.Event != domain.EventNewOrder || evt.OrderID == "" {
		log.Warn().Str("event", evt.Event).Str("order", evt.OrderID).
			Msg("dropping unrecognized event")
		_ = m.Ack(false)
		return
	}

	if err := w.process(ctx, evt.OrderID); err != nil {
		log.Error().Err(err).Str("order", evt.OrderID).Msg("order processing failed")
		_ = m.Nack(false, w.requeue)
		return
	}
	_ = m.Ack(false)
}

// ProcessOrder is the placeholder long-running post-processing step.
func ProcessOrder(ctx context.Context, orderID string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
	}
	log.Info().Str("order", orderID).Msg("order processed")
	return nil
}
