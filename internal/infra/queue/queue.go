package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrDeliveriesClosed is returned by Run when the broker side closes the
// consumer while its context is still live.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Publisher writes persistent JSON messages to one durable queue.
type Publisher struct {
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
	mu    sync.Mutex
}

func NewPublisher(conn *amqp.Connection, queue string, log *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := declare(ch, queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch, queue: queue, log: log}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, v interface{}) error {
	body, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	p.log.Debug("published", zap.String("queue", p.queue), zap.Int("bytes", len(body)))
	return nil
}

func (p *Publisher) Close() error { return p.ch.Close() }

// Shutdown closes the channel when the injector shuts down.
func (p *Publisher) Shutdown() error { return p.Close() }

// Handler processes one message body. A nil error acks the delivery.
type Handler func(ctx context.Context, body []byte) error

// Consumer runs a fixed pool of workers over one durable queue with manual
// acknowledgements.
type Consumer struct {
	conn     *amqp.Connection
	queue    string
	prefetch int
	log      *zap.Logger
}

func NewConsumer(conn *amqp.Connection, queue string, prefetch int, log *zap.Logger) *Consumer {
	return &Consumer{conn: conn, queue: queue, prefetch: prefetch, log: log}
}

// Run blocks until ctx is cancelled or the delivery channel closes.
// A failed first delivery is requeued once; a failed redelivery is rejected
// and left to the queue's dead-letter policy.
func (c *Consumer) Run(ctx context.Context, workers int, handle Handler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := declare(ch, c.queue); err != nil {
		return err
	}
	if c.prefetch > 0 {
		if err := ch.Qos(c.prefetch, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}
	}
	deliveries, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	if workers < 1 {
		workers = 1
	}
	c.log.Info("consumer started", zap.String("queue", c.queue), zap.Int("workers", workers))
	return c.drain(ctx, deliveries, workers, handle)
}

// drain fans deliveries out to workers until the channel closes. A close
// that was not caused by ctx reports ErrDeliveriesClosed.
func (c *Consumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery, workers int, handle Handler) error {
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range deliveries {
				c.process(ctx, d, handle)
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	c.log.Warn("delivery channel closed by broker", zap.String("queue", c.queue))
	return ErrDeliveriesClosed
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery, handle Handler) {
	if err := handle(ctx, d.Body); err != nil {
		requeue := !d.Redelivered
		c.log.Error("job failed",
			zap.String("queue", c.queue),
			zap.Bool("requeue", requeue),
			zap.Error(err))
		if nerr := d.Nack(false, requeue); nerr != nil {
			c.log.Error("nack failed", zap.Error(nerr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.log.Error("ack failed", zap.Error(err))
	}
}

func declare(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return q, nil
}
