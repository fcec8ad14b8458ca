package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer drains payment.settled and writes one structured log line per
// settlement. Settlements that did not fully succeed are logged at warn
// level so operators can reconcile them.
type Consumer struct {
	url string
	log *zap.Logger
}

func NewConsumer(url string, log *zap.Logger) *Consumer {
	return &Consumer{url: url, log: log.Named("settlement-consumer")}
}

// Run connects, consumes and reconnects with exponential backoff until ctx
// is cancelled. It returns ctx.Err() on shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("dial failed; retrying", zap.Duration("backoff", backoff), zap.Error(err))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("consume loop ended; reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(PaymentSettledQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(PaymentSettledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				c.log.Error("handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one payment.settled body and logs it.
func (c *Consumer) Handle(body []byte) error {
	var ev PaymentSettledEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.PaymentID == "" {
		return errors.New("event has no payment_id")
	}

	fields := []zap.Field{
		zap.String("payment_id", ev.PaymentID),
		zap.String("email", ev.Email),
		zap.Float64("price", ev.Price),
		zap.String("currency", ev.Currency),
		zap.Strings("cart_ids", ev.CartIDs),
		zap.Int("requested", ev.Requested),
		zap.Int64("deleted", ev.Deleted),
		zap.String("outcome", ev.Outcome),
		zap.String("settled_at", ev.SettledAt),
	}
	if ev.Error != "" {
		fields = append(fields, zap.String("error", ev.Error))
	}
	if ev.Outcome == OutcomeBothSucceeded {
		c.log.Info("payment settled", fields...)
	} else {
		c.log.Warn("payment needs reconciliation", fields...)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
